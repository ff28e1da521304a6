package consts

const (
	BorrowersCollection        = "Borrowers"
	LoansCollection            = "Loans"
	TransactionsCollection     = "Transactions"
	TrustScoreEventsCollection = "TrustScoreEvents"
	FraudAlertsCollection      = "FraudAlerts"
	NotificationsCollection    = "Notifications"
	SeqCountersCollection      = "SeqCounters"
)

// Sequence counter keys, one per entity ID space
const (
	BorrowerSeqKey     = "borrowerBID"
	LoanSeqKey         = "loanLID"
	TransactionSeqKey  = "transactionTID"
	FraudAlertSeqKey   = "fraudFAID"
	NotificationSeqKey = "notificationNID"
)
