package loans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/models"
	storemodels "lendsafe/internal/pkg/store/models"
	"lendsafe/internal/pkg/utils"
	"lendsafe/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
)

const defaultPaymentRetryAttempts = 3

// LoanService owns the loan lifecycle. Trust score changes always flow
// through the event ledger, and fan-out (Kafka, notifications, fraud
// checks) is best effort so the core write path never fails on it.
type LoanService struct {
	loanRepo        interfaces.LoanRepositoryInterface
	borrowerRepo    interfaces.BorrowerRepositoryInterface
	transactionRepo interfaces.TransactionRepositoryInterface
	counterRepo     interfaces.CounterRepositoryInterface
	trustScore      interfaces.TrustScoreServiceInterface
	fraud           interfaces.FraudServiceInterface
	notifier        interfaces.NotifierInterface
	paymentLedger   interfaces.KafkaPublisherInterface
	rng             *rand.Rand
	retryAttempts   int
	nowFunc         func() time.Time
}

func NewLoanService(
	loanRepo interfaces.LoanRepositoryInterface,
	borrowerRepo interfaces.BorrowerRepositoryInterface,
	transactionRepo interfaces.TransactionRepositoryInterface,
	counterRepo interfaces.CounterRepositoryInterface,
	trustScore interfaces.TrustScoreServiceInterface,
	fraud interfaces.FraudServiceInterface,
	notifier interfaces.NotifierInterface,
	paymentLedger interfaces.KafkaPublisherInterface,
	rng *rand.Rand,
	retryAttempts int,
) *LoanService {
	if retryAttempts <= 0 {
		retryAttempts = defaultPaymentRetryAttempts
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LoanService{
		loanRepo:        loanRepo,
		borrowerRepo:    borrowerRepo,
		transactionRepo: transactionRepo,
		counterRepo:     counterRepo,
		trustScore:      trustScore,
		fraud:           fraud,
		notifier:        notifier,
		paymentLedger:   paymentLedger,
		rng:             rng,
		retryAttempts:   retryAttempts,
		nowFunc:         time.Now,
	}
}

// CreateLoanResult carries the created loan plus the advisory warning and
// any fraud alerts raised during the synchronous checks.
type CreateLoanResult struct {
	Loan    *storemodels.Loan        `json:"loan"`
	Warning string                   `json:"-"`
	Alerts  []storemodels.FraudAlert `json:"fraudAlerts,omitempty"`
}

// PaymentResult reports one applied payment.
type PaymentResult struct {
	Loan            *storemodels.Loan `json:"loan"`
	TID             int64             `json:"tid"`
	Closed          bool              `json:"closed"`
	OnTime          bool              `json:"onTime,omitempty"`
	IncentivePoints int               `json:"incentivePoints,omitempty"`
}

func (ls *LoanService) CreateLoan(ctx context.Context, req models.CreateLoanRequest) (*CreateLoanResult, error) {

	if req.LoanAmount <= 0 {
		return nil, models.InvalidInputError("loanAmount must be a positive amount in minor units")
	}
	if req.LoanDurationDays <= 0 {
		return nil, models.InvalidInputError("loanDurationDays must be positive")
	}

	borrower, err := ls.borrowerRepo.GetBorrowerByBID(ctx, req.BID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFoundError(fmt.Sprintf("borrower %d not found", req.BID))
		}
		return nil, models.InternalError("failed to read borrower", err)
	}

	warning := ""
	if borrower.MerchantID != 0 && borrower.MerchantID != req.MID {
		warning = fmt.Sprintf("borrower %d is registered with merchant %d", req.BID, borrower.MerchantID)
	}

	lid, err := ls.counterRepo.NextSequence(ctx, consts.LoanSeqKey)
	if err != nil {
		return nil, models.InternalError("failed to allocate loan id", err)
	}

	now := ls.nowFunc()
	loan := storemodels.Loan{
		LID:              lid,
		BID:              req.BID,
		MID:              req.MID,
		LoanAmount:       req.LoanAmount,
		LoanDurationDays: req.LoanDurationDays,
		Purpose:          req.Purpose,
		Status:           consts.LoanStatusActive,
		DueDate:          now.AddDate(0, 0, req.LoanDurationDays),
		PaymentHistory:   []storemodels.PaymentEntry{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := ls.loanRepo.CreateLoan(ctx, loan); err != nil {
		return nil, models.InternalError("failed to create loan", err)
	}

	if err := ls.borrowerRepo.AdjustLoanCounters(ctx, req.BID, 1, 1); err != nil {
		logger.CtxError(ctx, "Failed to adjust borrower loan counters", err, slog.Int64("BID", req.BID))
	}

	if _, err := ls.trustScore.AddEvent(ctx, req.BID, lid, consts.EventLoanTaken, consts.LoanTakenPoints,
		fmt.Sprintf("loan %d taken", lid)); err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingTrustScoreEvent, err, slog.Int64("LID", lid))
	}

	var alerts []storemodels.FraudAlert
	if ls.fraud != nil {
		alerts = ls.fraud.RunLoanFraudChecks(ctx, &loan)
	}

	if ls.notifier != nil {
		message := fmt.Sprintf("Loan %d for %d is due on %s", lid, req.LoanAmount, loan.DueDate.Format(time.DateOnly))
		ls.notifier.Notify(ctx, storemodels.Notification{
			TargetType: consts.NotifyTargetBorrower,
			BID:        req.BID,
			MID:        req.MID,
			LID:        lid,
			Type:       "loan_created",
			Title:      "Loan created",
			Message:    message,
		})
		ls.notifier.Notify(ctx, storemodels.Notification{
			TargetType: consts.NotifyTargetMerchant,
			MID:        req.MID,
			BID:        req.BID,
			LID:        lid,
			Type:       "loan_created",
			Title:      "Loan created",
			Message:    message,
		})
	}

	logger.CtxInfo(ctx, "Loan created",
		slog.Int64("LID", lid),
		slog.Int64("BID", req.BID),
		slog.Int64("MID", req.MID),
		slog.Int64("loan_amount", req.LoanAmount),
	)

	return &CreateLoanResult{Loan: &loan, Warning: warning, Alerts: alerts}, nil
}

// ApplyPayment records a repayment against an active loan. The write is
// conditional on the totalPaid read at the start of the attempt, so two
// concurrent payments never double-apply; the loser retries on a fresh read.
func (ls *LoanService) ApplyPayment(ctx context.Context, lid int64, req models.ApplyPaymentRequest) (*PaymentResult, error) {

	if req.Amount <= 0 {
		return nil, models.InvalidInputError("amount must be a positive amount in minor units")
	}
	switch req.Method {
	case consts.PaymentMethodCash, consts.PaymentMethodUPI, consts.PaymentMethodBank:
	default:
		return nil, models.InvalidInputError(fmt.Sprintf("unsupported payment method %q", req.Method))
	}

	var (
		loan      *storemodels.Loan
		entry     storemodels.PaymentEntry
		fullyPaid bool
	)

	applied := false
	for attempt := 1; attempt <= ls.retryAttempts; attempt++ {

		var err error
		loan, err = ls.loanRepo.GetLoanByLID(ctx, lid)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, models.NotFoundError(fmt.Sprintf("loan %d not found", lid))
			}
			return nil, models.InternalError("failed to read loan", err)
		}

		if req.BID != 0 && req.BID != loan.BID {
			return nil, models.ForbiddenError(fmt.Sprintf("loan %d does not belong to borrower %d", lid, req.BID))
		}
		if loan.Status != consts.LoanStatusActive {
			return nil, models.InvalidInputError(fmt.Sprintf("loan %d is already closed", lid))
		}

		remaining := loan.LoanAmount - loan.TotalPaid
		if req.Amount > remaining {
			return nil, models.InvalidInputError(
				fmt.Sprintf("payment of %d exceeds outstanding balance, maximum payable is %d", req.Amount, remaining))
		}

		now := ls.nowFunc()
		newTotal := loan.TotalPaid + req.Amount
		fullyPaid = newTotal == loan.LoanAmount

		entry = storemodels.PaymentEntry{
			Amount:                req.Amount,
			Note:                  req.Note,
			PaidAt:                now,
			RemainingAfterPayment: loan.LoanAmount - newTotal,
		}

		matched, err := ls.loanRepo.ApplyPaymentUpdate(ctx, interfaces.PaymentUpdate{
			LID:               lid,
			ExpectedTotalPaid: loan.TotalPaid,
			Entry:             entry,
			NewTotalPaid:      newTotal,
			Close:             fullyPaid,
			ClosedAt:          now,
		})
		if err != nil {
			return nil, models.InternalError("failed to apply payment", err)
		}
		if matched {
			loan.TotalPaid = newTotal
			loan.PaymentHistory = append(loan.PaymentHistory, entry)
			loan.UpdatedAt = now
			if fullyPaid {
				loan.Status = consts.LoanStatusClosed
				loan.ClosedAt = &now
			}
			applied = true
			break
		}

		logger.CtxWarn(ctx, log_messages.PaymentConcurrentUpdateRetry,
			slog.Int64("LID", lid),
			slog.Int("attempt", attempt),
		)
	}

	if !applied {
		logger.CtxError(ctx, log_messages.PaymentConflictAfterRetries, nil, slog.Int64("LID", lid))
		return nil, models.ConflictError(fmt.Sprintf("loan %d was updated concurrently, please retry", lid))
	}

	result := &PaymentResult{Loan: loan, Closed: fullyPaid}

	tid, err := ls.counterRepo.NextSequence(ctx, consts.TransactionSeqKey)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorIncrementingSequenceCounter, err, slog.Int64("LID", lid))
	} else {
		result.TID = tid
		transaction := storemodels.Transaction{
			TID:                   tid,
			LID:                   lid,
			BID:                   loan.BID,
			MID:                   loan.MID,
			Amount:                req.Amount,
			Method:                req.Method,
			Note:                  req.Note,
			Type:                  consts.TransactionTypeYouGot,
			PaidAt:                entry.PaidAt,
			RemainingAfterPayment: entry.RemainingAfterPayment,
			CreatedAt:             entry.PaidAt,
		}
		if err := ls.transactionRepo.CreateTransaction(ctx, transaction); err != nil {
			logger.CtxError(ctx, log_messages.ErrorCreatingTransactionDocument, err, slog.Int64("LID", lid))
		}

		if ls.paymentLedger != nil {
			record := models.PaymentLedgerRecord{
				TID:                   tid,
				LID:                   lid,
				BID:                   loan.BID,
				MID:                   loan.MID,
				Amount:                req.Amount,
				Method:                req.Method,
				Type:                  consts.TransactionTypeYouGot,
				PaidAt:                entry.PaidAt,
				RemainingAfterPayment: entry.RemainingAfterPayment,
			}
			if err := ls.paymentLedger.PublishPaymentRecord(ctx, record); err != nil {
				logger.CtxError(ctx, log_messages.ErrorPublishingPaymentToKafka, err, slog.Int64("TID", tid))
			}
		}
	}

	if fullyPaid {
		ls.settleClosure(ctx, loan, result, entry.PaidAt)
	} else if ls.notifier != nil {
		ls.notifier.Notify(ctx, storemodels.Notification{
			TargetType: consts.NotifyTargetMerchant,
			MID:        loan.MID,
			BID:        loan.BID,
			LID:        lid,
			Type:       "payment_received",
			Title:      "Payment received",
			Message:    fmt.Sprintf("Payment of %d received on loan %d, %d remaining", req.Amount, lid, entry.RemainingAfterPayment),
		})
	}

	logger.CtxInfo(ctx, "Payment applied",
		slog.Int64("LID", lid),
		slog.Int64("amount", req.Amount),
		slog.Int64("total_paid", loan.TotalPaid),
		slog.Bool("closed", fullyPaid),
	)

	return result, nil
}

// settleClosure runs the repayment-driven closure effects. Exactly one of
// the two closure events lands in the ledger, picked by whether the final
// payment beat the due date.
func (ls *LoanService) settleClosure(ctx context.Context, loan *storemodels.Loan, result *PaymentResult, paidAt time.Time) {

	onTime := !paidAt.After(loan.DueDate)
	result.OnTime = onTime

	if onTime {
		if _, err := ls.trustScore.AddEvent(ctx, loan.BID, loan.LID, consts.EventOnTimePayment, consts.OnTimePaymentPoints,
			fmt.Sprintf("loan %d fully repaid on time", loan.LID)); err != nil {
			logger.CtxError(ctx, log_messages.ErrorCreatingTrustScoreEvent, err, slog.Int64("LID", loan.LID))
		}
	} else {
		points := utils.LateIncentivePoints(ls.rng)
		result.IncentivePoints = points
		if _, err := ls.trustScore.AddEvent(ctx, loan.BID, loan.LID, consts.EventLatePaymentIncentive, points,
			fmt.Sprintf("loan %d fully repaid after due date", loan.LID)); err != nil {
			logger.CtxError(ctx, log_messages.ErrorCreatingTrustScoreEvent, err, slog.Int64("LID", loan.LID))
		}
	}

	if err := ls.borrowerRepo.AdjustLoanCounters(ctx, loan.BID, 0, -1); err != nil {
		logger.CtxError(ctx, "Failed to adjust borrower loan counters", err, slog.Int64("BID", loan.BID))
	}

	if ls.notifier != nil {
		ls.notifier.Notify(ctx, storemodels.Notification{
			TargetType: consts.NotifyTargetBorrower,
			BID:        loan.BID,
			MID:        loan.MID,
			LID:        loan.LID,
			Type:       "loan_closed",
			Title:      "Loan fully repaid",
			Message:    fmt.Sprintf("Loan %d is fully repaid and closed", loan.LID),
		})
		ls.notifier.Notify(ctx, storemodels.Notification{
			TargetType: consts.NotifyTargetMerchant,
			MID:        loan.MID,
			BID:        loan.BID,
			LID:        loan.LID,
			Type:       "loan_closed",
			Title:      "Loan closed",
			Message:    fmt.Sprintf("Loan %d is fully repaid and closed", loan.LID),
		})
	}
}

// CloseLoan is the manual override. The loan is settled at the full
// principal and no closure trust score events are written.
func (ls *LoanService) CloseLoan(ctx context.Context, lid int64) (*storemodels.Loan, error) {

	loan, err := ls.loanRepo.GetLoanByLID(ctx, lid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFoundError(fmt.Sprintf("loan %d not found", lid))
		}
		return nil, models.InternalError("failed to read loan", err)
	}
	if loan.Status != consts.LoanStatusActive {
		return nil, models.InvalidInputError(fmt.Sprintf("loan %d is already closed", lid))
	}

	now := ls.nowFunc()
	if err := ls.loanRepo.CloseLoan(ctx, lid, loan.LoanAmount, now); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ConflictError(fmt.Sprintf("loan %d was updated concurrently, please retry", lid))
		}
		return nil, models.InternalError("failed to close loan", err)
	}

	loan.TotalPaid = loan.LoanAmount
	loan.Status = consts.LoanStatusClosed
	loan.ClosedAt = &now
	loan.UpdatedAt = now

	if err := ls.borrowerRepo.AdjustLoanCounters(ctx, loan.BID, 0, -1); err != nil {
		logger.CtxError(ctx, "Failed to adjust borrower loan counters", err, slog.Int64("BID", loan.BID))
	}

	logger.CtxInfo(ctx, "Loan closed manually", slog.Int64("LID", lid))

	return loan, nil
}

func (ls *LoanService) GetLoan(ctx context.Context, lid int64) (*storemodels.Loan, error) {
	loan, err := ls.loanRepo.GetLoanByLID(ctx, lid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFoundError(fmt.Sprintf("loan %d not found", lid))
		}
		return nil, models.InternalError("failed to read loan", err)
	}
	return loan, nil
}

func (ls *LoanService) ListLoans(ctx context.Context, mid int64, bid int64, status string) ([]storemodels.Loan, error) {
	if status != "" && status != consts.LoanStatusActive && status != consts.LoanStatusClosed {
		return nil, models.InvalidInputError(fmt.Sprintf("unknown loan status %q", status))
	}
	loans, err := ls.loanRepo.ListLoans(ctx, mid, bid, status)
	if err != nil {
		return nil, models.InternalError("failed to list loans", err)
	}
	return loans, nil
}

func (ls *LoanService) LoanTransactions(ctx context.Context, lid int64) ([]storemodels.Transaction, error) {
	if _, err := ls.GetLoan(ctx, lid); err != nil {
		return nil, err
	}
	transactions, err := ls.transactionRepo.GetTransactionsByLID(ctx, lid)
	if err != nil {
		return nil, models.InternalError("failed to read transactions", err)
	}
	return transactions, nil
}
