package sweeps

import (
	"context"
	"errors"
	"testing"
	"time"

	"lendsafe/internal/pkg/consts"
	storemodels "lendsafe/internal/pkg/store/models"
	"lendsafe/internal/service/interfaces"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockLoanRepo struct {
	overdue []storemodels.Loan
	findErr error
}

func (m *mockLoanRepo) CreateLoan(ctx context.Context, loan storemodels.Loan) error { return nil }
func (m *mockLoanRepo) GetLoanByLID(ctx context.Context, lid int64) (*storemodels.Loan, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockLoanRepo) ListLoans(ctx context.Context, mid int64, bid int64, status string) ([]storemodels.Loan, error) {
	return nil, nil
}
func (m *mockLoanRepo) CountActiveLoansByBID(ctx context.Context, bid int64) (int64, error) {
	return 0, nil
}
func (m *mockLoanRepo) FindActiveLoansByBID(ctx context.Context, bid int64) ([]storemodels.Loan, error) {
	return nil, nil
}
func (m *mockLoanRepo) FindOverdueActiveLoans(ctx context.Context, asOf time.Time) ([]storemodels.Loan, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.overdue, nil
}
func (m *mockLoanRepo) ApplyPaymentUpdate(ctx context.Context, update interfaces.PaymentUpdate) (bool, error) {
	return false, nil
}
func (m *mockLoanRepo) CloseLoan(ctx context.Context, lid int64, totalPaid int64, closedAt time.Time) error {
	return nil
}

// mockEventLedger tracks per-loan event counts the way the collection and
// its unique index would.
type mockEventLedger struct {
	missed   map[int64]bool
	weekly   map[int64]int64
	countErr error
}

func newMockEventLedger() *mockEventLedger {
	return &mockEventLedger{missed: map[int64]bool{}, weekly: map[int64]int64{}}
}

func (m *mockEventLedger) CreateEvent(ctx context.Context, event storemodels.TrustScoreEvent) error {
	return nil
}
func (m *mockEventLedger) SumPointsByBID(ctx context.Context, bid int64) (int, error) { return 0, nil }
func (m *mockEventLedger) GetEventsByBID(ctx context.Context, bid int64) ([]storemodels.TrustScoreEvent, error) {
	return nil, nil
}
func (m *mockEventLedger) HasEventForLoan(ctx context.Context, lid int64, eventType string) (bool, error) {
	if m.countErr != nil {
		return false, m.countErr
	}
	return m.missed[lid], nil
}
func (m *mockEventLedger) CountEventsForLoan(ctx context.Context, lid int64, eventType string) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.weekly[lid], nil
}

// record applied events back into the ledger so re-runs see them
type mockTrustScore struct {
	ledger *mockEventLedger
	events []storemodels.TrustScoreEvent
	err    error
}

func (m *mockTrustScore) Recompute(ctx context.Context, bid int64) (int, error) { return 100, nil }

func (m *mockTrustScore) AddEvent(ctx context.Context, bid int64, lid int64, eventType string, points int, description string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.events = append(m.events, storemodels.TrustScoreEvent{BID: bid, LoanID: lid, EventType: eventType, Points: points})
	if m.ledger != nil {
		switch eventType {
		case consts.EventMissedDueDate:
			m.ledger.missed[lid] = true
		case consts.EventWeeklyOverdue:
			m.ledger.weekly[lid]++
		}
	}
	return 100, nil
}

func (m *mockTrustScore) Timeline(ctx context.Context, bid int64) ([]storemodels.TrustScoreEvent, error) {
	return nil, nil
}

func overdueLoan(lid int64, dueDate time.Time) storemodels.Loan {
	return storemodels.Loan{
		LID:        lid,
		BID:        7,
		MID:        3,
		LoanAmount: 50000,
		Status:     consts.LoanStatusActive,
		DueDate:    dueDate,
	}
}

func newSweepFixture(overdue []storemodels.Loan, now time.Time) (*SweepService, *mockTrustScore, *mockEventLedger) {
	ledger := newMockEventLedger()
	trust := &mockTrustScore{ledger: ledger}
	svc := NewSweepService(&mockLoanRepo{overdue: overdue}, ledger, trust, nil)
	svc.nowFunc = func() time.Time { return now }
	return svc, trust, ledger
}

func TestMissedDueDateSweep_AppliesOncePerLoan(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	loans := []storemodels.Loan{
		overdueLoan(1, now.AddDate(0, 0, -3)),
		overdueLoan(2, now.AddDate(0, 0, -1)),
	}
	svc, trust, _ := newSweepFixture(loans, now)

	summary, err := svc.RunMissedDueDateSweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Scanned)
	assert.Equal(t, 2, summary.Applied)
	assert.Zero(t, summary.Skipped)

	for _, e := range trust.events {
		assert.Equal(t, consts.EventMissedDueDate, e.EventType)
		assert.Equal(t, consts.MissedDueDatePoints, e.Points)
	}

	// second run finds both loans already penalized
	summary, err = svc.RunMissedDueDateSweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Skipped)
	assert.Zero(t, summary.Applied)
	assert.Len(t, trust.events, 2)
}

func TestMissedDueDateSweep_PerLoanFailureDoesNotAbort(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	loans := []storemodels.Loan{
		overdueLoan(1, now.AddDate(0, 0, -3)),
		overdueLoan(2, now.AddDate(0, 0, -1)),
	}
	svc, trust, _ := newSweepFixture(loans, now)
	trust.err = errors.New("db down")

	summary, err := svc.RunMissedDueDateSweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Failed)
	assert.Zero(t, summary.Applied)
}

func TestWeeklySweep_OneEventPerInvocation(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	// three whole weeks overdue
	loans := []storemodels.Loan{overdueLoan(1, now.AddDate(0, 0, -21))}
	svc, trust, ledger := newSweepFixture(loans, now)

	// each run catches up by exactly one event until parity at three
	for i := 1; i <= 3; i++ {
		summary, err := svc.RunWeeklyOverduePenaltySweep(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Applied)
		assert.Equal(t, int64(i), ledger.weekly[1])
	}

	summary, err := svc.RunWeeklyOverduePenaltySweep(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, summary.Applied)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, trust.events, 3)
}

func TestWeeklySweep_UnderOneWeekSkipped(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	loans := []storemodels.Loan{overdueLoan(1, now.AddDate(0, 0, -5))}
	svc, trust, _ := newSweepFixture(loans, now)

	summary, err := svc.RunWeeklyOverduePenaltySweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.Applied)
	assert.Empty(t, trust.events)
}

func TestWeeklySweep_CountFailureCountsLoanAsFailed(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	loans := []storemodels.Loan{overdueLoan(1, now.AddDate(0, 0, -14))}
	svc, _, ledger := newSweepFixture(loans, now)
	ledger.countErr = errors.New("db down")

	summary, err := svc.RunWeeklyOverduePenaltySweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
}

func TestSweep_FetchFailureReturnsError(t *testing.T) {
	svc := NewSweepService(&mockLoanRepo{findErr: errors.New("db down")}, newMockEventLedger(), &mockTrustScore{}, nil)

	_, err := svc.RunMissedDueDateSweep(context.Background())
	assert.Error(t, err)

	_, err = svc.RunWeeklyOverduePenaltySweep(context.Background())
	assert.Error(t, err)
}
