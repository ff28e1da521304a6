package interfaces

import (
	"context"

	"lendsafe/internal/pkg/models"
)

// KafkaPublisherInterface defines the methods for publishing payment records to Kafka.
type KafkaPublisherInterface interface {
	PublishPaymentRecord(ctx context.Context, record models.PaymentLedgerRecord) error
}
