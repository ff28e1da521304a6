package consts

// Trust score bounds and event point deltas
const (
	BaseTrustScore = 100
	MinTrustScore  = 0
	MaxTrustScore  = 100

	LoanTakenPoints     = -5
	OnTimePaymentPoints = 5
	MissedDueDatePoints = -2
	WeeklyOverduePoints = -2

	LateIncentiveMinPoints = 1
	LateIncentiveMaxPoints = 10

	LowTrustScoreThreshold = 50

	// Returned by AddEvent when no score was derived (missing borrower)
	ScoreNotComputed = -1
)

// Trust score event kinds
const (
	EventLoanTaken            = "LOAN_TAKEN"
	EventOnTimePayment        = "ON_TIME_PAYMENT"
	EventMissedDueDate        = "MISSED_DUE_DATE"
	EventWeeklyOverdue        = "WEEKLY_OVERDUE"
	EventLatePaymentIncentive = "LATE_PAYMENT_INCENTIVE"
	EventFraudPenalty         = "FRAUD_PENALTY"
)

// Loan status values
const (
	LoanStatusActive = "active"
	LoanStatusClosed = "closed"
)

// Transaction direction and payment methods
const (
	TransactionTypeYouGot  = "YOU_GOT"
	TransactionTypeYouGave = "YOU_GAVE"

	PaymentMethodCash = "cash"
	PaymentMethodUPI  = "upi"
	PaymentMethodBank = "bank"
)

// Fraud alert severities and penalty weights
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"

	PenaltyHigh   = 25
	PenaltyMedium = 10
	PenaltyLow    = 5
)

// Fraud alert types
const (
	FraudTypeMultipleActiveLoans = "multiple_active_loans"
	FraudTypeCrossMerchantLoans  = "cross_merchant_loans"
	FraudTypeOverdueLoans        = "overdue_loans"
	FraudTypeLowTrustScore       = "low_trust_score"
)

// Notification target types
const (
	NotifyTargetBorrower = "borrower"
	NotifyTargetMerchant = "merchant"
)
