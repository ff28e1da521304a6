package sweeps

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/models"
	storemodels "lendsafe/internal/pkg/store/models"
	"lendsafe/internal/pkg/utils"
	"lendsafe/internal/service/interfaces"
)

// SweepService runs the overdue penalty passes. Both sweeps are invoked
// over HTTP by an external scheduler, and both are safe to re-run: the
// missed due date penalty is keyed once per loan, and the weekly penalty
// catches up by at most one event per invocation.
type SweepService struct {
	loanRepo   interfaces.LoanRepositoryInterface
	eventRepo  interfaces.TrustEventRepositoryInterface
	trustScore interfaces.TrustScoreServiceInterface
	notifier   interfaces.NotifierInterface
	nowFunc    func() time.Time
}

func NewSweepService(
	loanRepo interfaces.LoanRepositoryInterface,
	eventRepo interfaces.TrustEventRepositoryInterface,
	trustScore interfaces.TrustScoreServiceInterface,
	notifier interfaces.NotifierInterface,
) *SweepService {
	return &SweepService{
		loanRepo:   loanRepo,
		eventRepo:  eventRepo,
		trustScore: trustScore,
		notifier:   notifier,
		nowFunc:    time.Now,
	}
}

// RunMissedDueDateSweep penalizes every active loan past its due date that
// has not been penalized for the miss yet. A failing loan is counted and
// the sweep moves on.
func (ss *SweepService) RunMissedDueDateSweep(ctx context.Context) (*models.SweepSummary, error) {

	now := ss.nowFunc()
	logger.CtxInfo(ctx, log_messages.SweepStarted, slog.String("sweep", "missed_due_date"))

	loans, err := ss.loanRepo.FindOverdueActiveLoans(ctx, now)
	if err != nil {
		return nil, models.InternalError("failed to scan overdue loans", err)
	}

	summary := &models.SweepSummary{Scanned: len(loans)}
	for _, loan := range loans {

		penalized, err := ss.eventRepo.HasEventForLoan(ctx, loan.LID, consts.EventMissedDueDate)
		if err != nil {
			logger.CtxError(ctx, log_messages.SweepLoanFailed, err, slog.Int64("LID", loan.LID))
			summary.Failed++
			continue
		}
		if penalized {
			summary.Skipped++
			continue
		}

		if _, err := ss.trustScore.AddEvent(ctx, loan.BID, loan.LID, consts.EventMissedDueDate, consts.MissedDueDatePoints,
			fmt.Sprintf("loan %d missed due date %s", loan.LID, loan.DueDate.Format(time.DateOnly))); err != nil {
			logger.CtxError(ctx, log_messages.SweepLoanFailed, err, slog.Int64("LID", loan.LID))
			summary.Failed++
			continue
		}
		summary.Applied++

		ss.notifyOverdue(ctx, loan, "payment_overdue", "Payment overdue",
			fmt.Sprintf("Loan %d passed its due date, %d still outstanding", loan.LID, loan.LoanAmount-loan.TotalPaid))
	}

	logger.CtxInfo(ctx, log_messages.SweepCompleted,
		slog.String("sweep", "missed_due_date"),
		slog.Int("scanned", summary.Scanned),
		slog.Int("applied", summary.Applied),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)

	return summary, nil
}

// RunWeeklyOverduePenaltySweep appends at most one WEEKLY_OVERDUE event per
// loan per invocation, until the applied count catches up with the number
// of whole weeks the loan has been overdue.
func (ss *SweepService) RunWeeklyOverduePenaltySweep(ctx context.Context) (*models.SweepSummary, error) {

	now := ss.nowFunc()
	logger.CtxInfo(ctx, log_messages.SweepStarted, slog.String("sweep", "weekly_overdue"))

	loans, err := ss.loanRepo.FindOverdueActiveLoans(ctx, now)
	if err != nil {
		return nil, models.InternalError("failed to scan overdue loans", err)
	}

	summary := &models.SweepSummary{Scanned: len(loans)}
	for _, loan := range loans {

		weeks := utils.WeeksOverdue(loan.DueDate, now)
		if weeks == 0 {
			summary.Skipped++
			continue
		}

		applied, err := ss.eventRepo.CountEventsForLoan(ctx, loan.LID, consts.EventWeeklyOverdue)
		if err != nil {
			logger.CtxError(ctx, log_messages.SweepLoanFailed, err, slog.Int64("LID", loan.LID))
			summary.Failed++
			continue
		}
		if int64(weeks) <= applied {
			summary.Skipped++
			continue
		}

		if _, err := ss.trustScore.AddEvent(ctx, loan.BID, loan.LID, consts.EventWeeklyOverdue, consts.WeeklyOverduePoints,
			fmt.Sprintf("loan %d overdue for %d weeks", loan.LID, weeks)); err != nil {
			logger.CtxError(ctx, log_messages.SweepLoanFailed, err, slog.Int64("LID", loan.LID))
			summary.Failed++
			continue
		}
		summary.Applied++

		ss.notifyOverdue(ctx, loan, "weekly_overdue_penalty", "Overdue penalty applied",
			fmt.Sprintf("Loan %d has been overdue for %d weeks", loan.LID, weeks))
	}

	logger.CtxInfo(ctx, log_messages.SweepCompleted,
		slog.String("sweep", "weekly_overdue"),
		slog.Int("scanned", summary.Scanned),
		slog.Int("applied", summary.Applied),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)

	return summary, nil
}

func (ss *SweepService) notifyOverdue(ctx context.Context, loan storemodels.Loan, notifType string, title string, message string) {
	if ss.notifier == nil {
		return
	}
	ss.notifier.Notify(ctx, storemodels.Notification{
		TargetType: consts.NotifyTargetBorrower,
		BID:        loan.BID,
		MID:        loan.MID,
		LID:        loan.LID,
		Type:       notifType,
		Title:      title,
		Message:    message,
	})
}
