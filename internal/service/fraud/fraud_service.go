package fraud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/models"
	storemodels "lendsafe/internal/pkg/store/models"
	"lendsafe/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
)

// FraudService runs the lending heuristics on loan creation. Alerts and the
// penalty event are best effort: a failing check never blocks the loan.
type FraudService struct {
	loanRepo    interfaces.LoanRepositoryInterface
	alertRepo   interfaces.FraudAlertRepositoryInterface
	counterRepo interfaces.CounterRepositoryInterface
	trustScore  interfaces.TrustScoreServiceInterface
	notifier    interfaces.NotifierInterface
	nowFunc     func() time.Time
}

func NewFraudService(
	loanRepo interfaces.LoanRepositoryInterface,
	alertRepo interfaces.FraudAlertRepositoryInterface,
	counterRepo interfaces.CounterRepositoryInterface,
	trustScore interfaces.TrustScoreServiceInterface,
	notifier interfaces.NotifierInterface,
) *FraudService {
	return &FraudService{
		loanRepo:    loanRepo,
		alertRepo:   alertRepo,
		counterRepo: counterRepo,
		trustScore:  trustScore,
		notifier:    notifier,
		nowFunc:     time.Now,
	}
}

type candidateAlert struct {
	alertType string
	severity  string
	title     string
	message   string
	details   map[string]interface{}
}

func severityPenalty(severity string) int {
	switch severity {
	case consts.SeverityHigh:
		return consts.PenaltyHigh
	case consts.SeverityMedium:
		return consts.PenaltyMedium
	default:
		return consts.PenaltyLow
	}
}

// RunLoanFraudChecks evaluates the heuristics against the freshly created
// loan and returns the persisted alerts. The cumulative penalty lands in the
// event ledger as a single FRAUD_PENALTY event, never as a direct score write.
func (fs *FraudService) RunLoanFraudChecks(ctx context.Context, loan *storemodels.Loan) []storemodels.FraudAlert {

	activeLoans, err := fs.loanRepo.FindActiveLoansByBID(ctx, loan.BID)
	if err != nil {
		logger.CtxError(ctx, log_messages.FraudCheckFailed, err, slog.Int64("LID", loan.LID))
		return nil
	}

	candidates := fs.evaluate(loan, activeLoans)
	if len(candidates) == 0 {
		return nil
	}

	penalty := 0
	for _, c := range candidates {
		penalty += severityPenalty(c.severity)
	}

	score, err := fs.trustScore.AddEvent(ctx, loan.BID, loan.LID, consts.EventFraudPenalty, -penalty,
		fmt.Sprintf("fraud heuristics penalty for loan %d", loan.LID))
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorApplyingFraudPenalty, err, slog.Int64("BID", loan.BID))
	}

	// the low score check only runs on a score the ledger actually derived
	if err == nil && score != consts.ScoreNotComputed && score < consts.LowTrustScoreThreshold {
		candidates = append(candidates, candidateAlert{
			alertType: consts.FraudTypeLowTrustScore,
			severity:  consts.SeverityHigh,
			title:     "Low trust score",
			message:   fmt.Sprintf("Borrower trust score dropped to %d", score),
			details:   map[string]interface{}{"trustScore": score},
		})
	}

	return fs.persistAlerts(ctx, loan, candidates)
}

func (fs *FraudService) evaluate(loan *storemodels.Loan, activeLoans []storemodels.Loan) []candidateAlert {

	var candidates []candidateAlert
	now := fs.nowFunc()

	activeCount := len(activeLoans)
	if activeCount >= 2 {
		severity := consts.SeverityMedium
		if activeCount > 3 {
			severity = consts.SeverityHigh
		}
		candidates = append(candidates, candidateAlert{
			alertType: consts.FraudTypeMultipleActiveLoans,
			severity:  severity,
			title:     "Multiple active loans",
			message:   fmt.Sprintf("Borrower has %d active loans", activeCount),
			details:   map[string]interface{}{"activeLoans": activeCount},
		})
	}

	otherMerchant := 0
	overdue := 0
	for _, l := range activeLoans {
		if l.MID != loan.MID {
			otherMerchant++
		}
		// overdue is recomputed from the loan terms, not the stored dueDate
		if l.CreatedAt.AddDate(0, 0, l.LoanDurationDays).Before(now) {
			overdue++
		}
	}

	if otherMerchant >= 1 {
		severity := consts.SeverityMedium
		if otherMerchant > 1 {
			severity = consts.SeverityHigh
		}
		candidates = append(candidates, candidateAlert{
			alertType: consts.FraudTypeCrossMerchantLoans,
			severity:  severity,
			title:     "Active loans with other merchants",
			message:   fmt.Sprintf("Borrower has %d active loans with other merchants", otherMerchant),
			details:   map[string]interface{}{"otherMerchantLoans": otherMerchant},
		})
	}

	if overdue >= 1 {
		severity := consts.SeverityMedium
		if overdue > 1 {
			severity = consts.SeverityHigh
		}
		candidates = append(candidates, candidateAlert{
			alertType: consts.FraudTypeOverdueLoans,
			severity:  severity,
			title:     "Overdue active loans",
			message:   fmt.Sprintf("Borrower has %d overdue active loans", overdue),
			details:   map[string]interface{}{"overdueLoans": overdue},
		})
	}

	return candidates
}

func (fs *FraudService) persistAlerts(ctx context.Context, loan *storemodels.Loan, candidates []candidateAlert) []storemodels.FraudAlert {

	var alerts []storemodels.FraudAlert
	for _, c := range candidates {
		faid, err := fs.counterRepo.NextSequence(ctx, consts.FraudAlertSeqKey)
		if err != nil {
			logger.CtxError(ctx, log_messages.FraudCheckFailed, err, slog.String("type", c.alertType))
			continue
		}

		alert := storemodels.FraudAlert{
			FAID:      faid,
			BID:       loan.BID,
			MID:       loan.MID,
			LID:       loan.LID,
			Type:      c.alertType,
			Severity:  c.severity,
			Title:     c.title,
			Message:   c.message,
			Details:   c.details,
			CreatedAt: fs.nowFunc(),
		}

		if err := fs.alertRepo.CreateAlert(ctx, alert); err != nil {
			continue
		}
		alerts = append(alerts, alert)

		if fs.notifier != nil && (c.severity == consts.SeverityMedium || c.severity == consts.SeverityHigh) {
			fs.notifier.Notify(ctx, storemodels.Notification{
				TargetType: consts.NotifyTargetMerchant,
				MID:        loan.MID,
				BID:        loan.BID,
				LID:        loan.LID,
				Type:       "fraud_alert",
				Title:      c.title,
				Message:    c.message,
			})
		}
	}

	return alerts
}

// FraudSummary aggregates a borrower's alerts for the read endpoint.
type FraudSummary struct {
	BID        int64                    `json:"bid"`
	Total      int                      `json:"total"`
	Unresolved int                      `json:"unresolved"`
	BySeverity map[string]int           `json:"bySeverity"`
	Alerts     []storemodels.FraudAlert `json:"alerts"`
}

func (fs *FraudService) BorrowerFraudSummary(ctx context.Context, bid int64) (*FraudSummary, error) {

	alerts, err := fs.alertRepo.GetAlertsByBID(ctx, bid, false)
	if err != nil {
		return nil, models.InternalError("failed to read fraud alerts", err)
	}

	summary := &FraudSummary{
		BID:        bid,
		Total:      len(alerts),
		BySeverity: map[string]int{},
		Alerts:     alerts,
	}
	for _, a := range alerts {
		summary.BySeverity[a.Severity]++
		if !a.IsResolved {
			summary.Unresolved++
		}
	}

	return summary, nil
}

func (fs *FraudService) ResolveAlert(ctx context.Context, faid int64) error {

	alert, err := fs.alertRepo.GetAlertByFAID(ctx, faid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.NotFoundError(fmt.Sprintf("fraud alert %d not found", faid))
		}
		return models.InternalError("failed to read fraud alert", err)
	}
	if alert.IsResolved {
		return models.InvalidInputError(fmt.Sprintf("fraud alert %d is already resolved", faid))
	}

	if err := fs.alertRepo.ResolveAlert(ctx, faid, fs.nowFunc()); err != nil {
		return models.InternalError("failed to resolve fraud alert", err)
	}
	return nil
}
