package log_messages

const (
	ServerStartFailure         = "failed to start server: %v"
	ServerShutdown             = "Shutting down server..."
	ServerForcedShutdown       = "Server forced to shutdown: %v"
	ServerExiting              = "Server exiting"
	FailedLoadingConfiguration = "Failed to load configuration: %v"
	CleanupStarted             = "Starting cleanup of resources..."
	CleanupCompleted           = "All resources cleaned up successfully"

	// Database operation errors
	ErrorFetchingBorrowerDocument      = "Error fetching borrower document: %v"
	ErrorFetchingLoanDocument          = "Error fetching loan document: %v"
	ErrorFetchingTransactionsDocuments = "Error fetching transactions documents: %v"
	ErrorFetchingTrustScoreEvents      = "Error fetching trust score events: %v"
	ErrorFetchingFraudAlerts           = "Error fetching fraud alerts: %v"
	ErrorCreatingBorrowerDocument      = "Error inserting borrower document: %v"
	ErrorCreatingLoanDocument          = "Error inserting loan document: %v"
	ErrorCreatingTransactionDocument   = "Error inserting transaction document: %v"
	ErrorCreatingTrustScoreEvent       = "Error inserting trust score event: %v"
	ErrorCreatingFraudAlertDocument    = "Error inserting fraud alert document: %v"
	ErrorCreatingNotificationDocument  = "Error inserting notification document: %v"
	ErrorUpdatingBorrowerDocument      = "Error updating borrower document: %v"
	ErrorUpdatingLoanDocument          = "Error updating loan document: %v"
	ErrorUpdatingFraudAlertDocument    = "Error updating fraud alert document: %v"
	ErrorIncrementingSequenceCounter   = "Error incrementing sequence counter: %v"
	ErrorAggregatingTrustScorePoints   = "Error aggregating trust score points: %v"
	ErrorEnsuringIndexes               = "Error ensuring collection indexes: %v"
	DuplicateTrustScoreEventSkipped    = "Duplicate trust score event skipped"
	TrustScoreEventBorrowerMissing     = "Trust score event skipped, borrower not found"
	ErrorDecodingDocument              = "error decoding document: %w"
	CursorError                        = "cursor error: %w"

	// Payment flow
	PaymentConcurrentUpdateRetry   = "Concurrent loan update detected, retrying payment"
	PaymentConflictAfterRetries    = "Payment aborted after concurrent update retries"
	ErrorPublishingPaymentToKafka  = "Failed to publish payment record to Kafka"
	KafkaPublishingMessage         = "Kafka Publishing message"
	TimeoutWaitingForDeliveryEvent = "Timeout waiting for delivery event for key"
	DeliveryFailed                 = "Delivery failed"
	MessageDeliveredToTopic        = "Message delivered to topic, partition, offset"
	UnexpectedEventType            = "Unexpected event type"
	FailedToProduceKafkaMessage    = "Failed to produce Kafka message"

	// Notification flow
	ErrorPublishingNotification  = "Failed to publish notification to Pub/Sub"
	ErrorPersistingNotification  = "Failed to persist notification document"
	NotificationPublished        = "Notification published"
	ErrorMarshallingNotification = "Failed to marshal notification payload"

	// Sweeps
	SweepStarted              = "Penalty sweep started"
	SweepCompleted            = "Penalty sweep completed"
	SweepLoanFailed           = "Penalty sweep failed for loan, continuing"
	ErrorFetchingOverdueLoans = "Error fetching overdue loans: %v"
	ErrorCountingOverdueWeeks = "Error counting weekly overdue events: %v"

	// Fraud checks
	FraudCheckFailed          = "Fraud check failed, loan creation unaffected"
	FraudAlertRaised          = "Fraud alert raised"
	ErrorApplyingFraudPenalty = "Failed to apply fraud penalty event"

	// Trust score cache
	ErrorCachingTrustScore  = "Failed to cache trust score in Redis"
	ErrorReadingCachedScore = "Failed to read cached trust score from Redis"
)
