package fraud

import (
	"context"
	"errors"
	"testing"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/models"
	storemodels "lendsafe/internal/pkg/store/models"
	"lendsafe/internal/service/interfaces"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockLoanRepo struct {
	activeLoans []storemodels.Loan
	findErr     error
}

func (m *mockLoanRepo) CreateLoan(ctx context.Context, loan storemodels.Loan) error { return nil }
func (m *mockLoanRepo) GetLoanByLID(ctx context.Context, lid int64) (*storemodels.Loan, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockLoanRepo) ListLoans(ctx context.Context, mid int64, bid int64, status string) ([]storemodels.Loan, error) {
	return nil, nil
}
func (m *mockLoanRepo) CountActiveLoansByBID(ctx context.Context, bid int64) (int64, error) {
	return int64(len(m.activeLoans)), nil
}
func (m *mockLoanRepo) FindActiveLoansByBID(ctx context.Context, bid int64) ([]storemodels.Loan, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.activeLoans, nil
}
func (m *mockLoanRepo) FindOverdueActiveLoans(ctx context.Context, asOf time.Time) ([]storemodels.Loan, error) {
	return nil, nil
}
func (m *mockLoanRepo) ApplyPaymentUpdate(ctx context.Context, update interfaces.PaymentUpdate) (bool, error) {
	return false, nil
}
func (m *mockLoanRepo) CloseLoan(ctx context.Context, lid int64, totalPaid int64, closedAt time.Time) error {
	return nil
}

type mockAlertRepo struct {
	created  []storemodels.FraudAlert
	byBID    []storemodels.FraudAlert
	byFAID   *storemodels.FraudAlert
	resolved []int64
}

func (m *mockAlertRepo) CreateAlert(ctx context.Context, alert storemodels.FraudAlert) error {
	m.created = append(m.created, alert)
	return nil
}
func (m *mockAlertRepo) GetAlertByFAID(ctx context.Context, faid int64) (*storemodels.FraudAlert, error) {
	if m.byFAID == nil {
		return nil, mongo.ErrNoDocuments
	}
	return m.byFAID, nil
}
func (m *mockAlertRepo) GetAlertsByBID(ctx context.Context, bid int64, unresolvedOnly bool) ([]storemodels.FraudAlert, error) {
	return m.byBID, nil
}
func (m *mockAlertRepo) ResolveAlert(ctx context.Context, faid int64, resolvedAt time.Time) error {
	m.resolved = append(m.resolved, faid)
	return nil
}

type mockCounterRepo struct {
	next int64
}

func (m *mockCounterRepo) NextSequence(ctx context.Context, key string) (int64, error) {
	m.next++
	return m.next, nil
}

type mockTrustScoreService struct {
	penalties []int
	score     int
	err       error
}

func (m *mockTrustScoreService) Recompute(ctx context.Context, bid int64) (int, error) {
	return m.score, nil
}
func (m *mockTrustScoreService) AddEvent(ctx context.Context, bid int64, lid int64, eventType string, points int, description string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.penalties = append(m.penalties, points)
	return m.score, nil
}
func (m *mockTrustScoreService) Timeline(ctx context.Context, bid int64) ([]storemodels.TrustScoreEvent, error) {
	return nil, nil
}

type mockNotifier struct {
	sent []storemodels.Notification
}

func (m *mockNotifier) Notify(ctx context.Context, notification storemodels.Notification) {
	m.sent = append(m.sent, notification)
}

func activeLoan(lid int64, mid int64, createdAt time.Time, durationDays int) storemodels.Loan {
	return storemodels.Loan{
		LID:              lid,
		BID:              7,
		MID:              mid,
		Status:           consts.LoanStatusActive,
		CreatedAt:        createdAt,
		LoanDurationDays: durationDays,
		DueDate:          createdAt.AddDate(0, 0, durationDays),
	}
}

func newTestService(loanRepo *mockLoanRepo, alertRepo *mockAlertRepo, ts *mockTrustScoreService, notifier *mockNotifier, now time.Time) *FraudService {
	var n interfaces.NotifierInterface
	if notifier != nil {
		n = notifier
	}
	svc := NewFraudService(loanRepo, alertRepo, &mockCounterRepo{}, ts, n)
	svc.nowFunc = func() time.Time { return now }
	return svc
}

func TestRunLoanFraudChecks_CleanBorrower(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newLoan := activeLoan(10, 3, now, 30)
	loanRepo := &mockLoanRepo{activeLoans: []storemodels.Loan{newLoan}}
	alertRepo := &mockAlertRepo{}
	ts := &mockTrustScoreService{score: 95}

	svc := newTestService(loanRepo, alertRepo, ts, nil, now)

	alerts := svc.RunLoanFraudChecks(context.Background(), &newLoan)
	assert.Empty(t, alerts)
	assert.Empty(t, ts.penalties)
}

func TestRunLoanFraudChecks_CrossMerchantAndVolume(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newLoan := activeLoan(10, 3, now, 30)

	// three older active loans at other merchants, one of them overdue
	loanRepo := &mockLoanRepo{activeLoans: []storemodels.Loan{
		newLoan,
		activeLoan(1, 4, now.AddDate(0, 0, -40), 30),
		activeLoan(2, 5, now.AddDate(0, 0, -10), 30),
		activeLoan(3, 6, now.AddDate(0, 0, -5), 30),
	}}
	alertRepo := &mockAlertRepo{}
	ts := &mockTrustScoreService{score: 60}
	notifier := &mockNotifier{}

	svc := newTestService(loanRepo, alertRepo, ts, notifier, now)

	alerts := svc.RunLoanFraudChecks(context.Background(), &newLoan)

	types := map[string]string{}
	for _, a := range alerts {
		types[a.Type] = a.Severity
	}

	assert.Equal(t, consts.SeverityHigh, types[consts.FraudTypeMultipleActiveLoans])
	assert.Equal(t, consts.SeverityHigh, types[consts.FraudTypeCrossMerchantLoans])
	assert.Equal(t, consts.SeverityMedium, types[consts.FraudTypeOverdueLoans])

	// one cumulative penalty event: high 25 + high 25 + medium 10
	assert.Equal(t, []int{-60}, ts.penalties)

	// merchant notified for every medium or high alert
	assert.Len(t, notifier.sent, 3)
}

func TestRunLoanFraudChecks_LowScoreAlertAppended(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newLoan := activeLoan(10, 3, now, 30)

	loanRepo := &mockLoanRepo{activeLoans: []storemodels.Loan{
		newLoan,
		activeLoan(1, 3, now.AddDate(0, 0, -10), 30),
	}}
	alertRepo := &mockAlertRepo{}
	ts := &mockTrustScoreService{score: 40}

	svc := newTestService(loanRepo, alertRepo, ts, nil, now)

	alerts := svc.RunLoanFraudChecks(context.Background(), &newLoan)

	var hasLowScore bool
	for _, a := range alerts {
		if a.Type == consts.FraudTypeLowTrustScore {
			hasLowScore = true
			assert.Equal(t, consts.SeverityHigh, a.Severity)
		}
	}
	assert.True(t, hasLowScore)
}

func TestRunLoanFraudChecks_PenaltyEventFailureSkipsLowScoreAlert(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newLoan := activeLoan(10, 3, now, 30)

	loanRepo := &mockLoanRepo{activeLoans: []storemodels.Loan{
		newLoan,
		activeLoan(1, 3, now.AddDate(0, 0, -10), 30),
	}}
	alertRepo := &mockAlertRepo{}
	ts := &mockTrustScoreService{err: errors.New("event store down")}

	svc := newTestService(loanRepo, alertRepo, ts, nil, now)

	alerts := svc.RunLoanFraudChecks(context.Background(), &newLoan)

	// heuristic alerts still land, but no score was derived so the
	// low score alert must not
	assert.NotEmpty(t, alerts)
	for _, a := range alerts {
		assert.NotEqual(t, consts.FraudTypeLowTrustScore, a.Type)
	}
}

func TestRunLoanFraudChecks_NoScoreDerivedSkipsLowScoreAlert(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newLoan := activeLoan(10, 3, now, 30)

	loanRepo := &mockLoanRepo{activeLoans: []storemodels.Loan{
		newLoan,
		activeLoan(1, 3, now.AddDate(0, 0, -10), 30),
	}}
	ts := &mockTrustScoreService{score: consts.ScoreNotComputed}

	svc := newTestService(loanRepo, &mockAlertRepo{}, ts, nil, now)

	alerts := svc.RunLoanFraudChecks(context.Background(), &newLoan)

	assert.NotEmpty(t, alerts)
	for _, a := range alerts {
		assert.NotEqual(t, consts.FraudTypeLowTrustScore, a.Type)
	}
}

func TestRunLoanFraudChecks_StoreFailureNonFatal(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newLoan := activeLoan(10, 3, now, 30)
	loanRepo := &mockLoanRepo{findErr: errors.New("db down")}

	svc := newTestService(loanRepo, &mockAlertRepo{}, &mockTrustScoreService{}, nil, now)

	alerts := svc.RunLoanFraudChecks(context.Background(), &newLoan)
	assert.Nil(t, alerts)
}

func TestBorrowerFraudSummary(t *testing.T) {
	alertRepo := &mockAlertRepo{byBID: []storemodels.FraudAlert{
		{FAID: 1, Severity: consts.SeverityHigh},
		{FAID: 2, Severity: consts.SeverityMedium, IsResolved: true},
	}}

	svc := NewFraudService(&mockLoanRepo{}, alertRepo, &mockCounterRepo{}, &mockTrustScoreService{}, nil)

	summary, err := svc.BorrowerFraudSummary(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Unresolved)
	assert.Equal(t, 1, summary.BySeverity[consts.SeverityHigh])
}

func TestResolveAlert_NotFound(t *testing.T) {
	svc := NewFraudService(&mockLoanRepo{}, &mockAlertRepo{}, &mockCounterRepo{}, &mockTrustScoreService{}, nil)

	err := svc.ResolveAlert(context.Background(), 99)
	var customErr models.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, models.ErrCodeNotFound, customErr.Code)
}

func TestResolveAlert_AlreadyResolved(t *testing.T) {
	alertRepo := &mockAlertRepo{byFAID: &storemodels.FraudAlert{FAID: 1, IsResolved: true}}

	svc := NewFraudService(&mockLoanRepo{}, alertRepo, &mockCounterRepo{}, &mockTrustScoreService{}, nil)

	err := svc.ResolveAlert(context.Background(), 1)
	var customErr models.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, models.ErrCodeInvalidInput, customErr.Code)
}

func TestResolveAlert_OK(t *testing.T) {
	alertRepo := &mockAlertRepo{byFAID: &storemodels.FraudAlert{FAID: 1}}

	svc := NewFraudService(&mockLoanRepo{}, alertRepo, &mockCounterRepo{}, &mockTrustScoreService{}, nil)

	assert.NoError(t, svc.ResolveAlert(context.Background(), 1))
	assert.Equal(t, []int64{1}, alertRepo.resolved)
}
