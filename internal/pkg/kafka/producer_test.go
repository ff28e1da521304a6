package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"lendsafe/internal/pkg/models"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
)

type mockProducer struct {
	produceFunc func(msg *kafka.Message, deliveryChan chan kafka.Event) error
	flushed     bool
	closed      bool
}

func (m *mockProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	if m.produceFunc != nil {
		return m.produceFunc(msg, deliveryChan)
	}
	return errors.New("mock produce not implemented")
}

func (m *mockProducer) Flush(timeoutMs int) int {
	m.flushed = true
	return 0
}

func (m *mockProducer) Close() {
	m.closed = true
}

func testRecord() models.PaymentLedgerRecord {
	return models.PaymentLedgerRecord{
		TID:                   1,
		LID:                   5,
		BID:                   7,
		MID:                   3,
		Amount:                20000,
		Method:                "upi",
		Type:                  "YOU_GOT",
		PaidAt:                time.Now(),
		RemainingAfterPayment: 30000,
	}
}

func TestPublishPaymentRecord_Delivered(t *testing.T) {
	mock := &mockProducer{
		produceFunc: func(msg *kafka.Message, deliveryChan chan kafka.Event) error {
			assert.Equal(t, "payments", *msg.TopicPartition.Topic)
			assert.NotEmpty(t, msg.Value)
			go func() {
				deliveryChan <- &kafka.Message{TopicPartition: msg.TopicPartition}
			}()
			return nil
		},
	}

	producer := NewKafkaProducerWithInterface(mock, "payments")

	err := producer.PublishPaymentRecord(context.Background(), testRecord())
	assert.NoError(t, err)
}

func TestPublishPaymentRecord_DeliveryFailed(t *testing.T) {
	mock := &mockProducer{
		produceFunc: func(msg *kafka.Message, deliveryChan chan kafka.Event) error {
			failed := *msg
			failed.TopicPartition.Error = errors.New("broker unavailable")
			go func() {
				deliveryChan <- &failed
			}()
			return nil
		},
	}

	producer := NewKafkaProducerWithInterface(mock, "payments")

	err := producer.PublishPaymentRecord(context.Background(), testRecord())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "delivery failed")
}

func TestPublishPaymentRecord_ProduceError(t *testing.T) {
	mock := &mockProducer{
		produceFunc: func(msg *kafka.Message, deliveryChan chan kafka.Event) error {
			return errors.New("queue full")
		},
	}

	producer := NewKafkaProducerWithInterface(mock, "payments")

	err := producer.PublishPaymentRecord(context.Background(), testRecord())
	assert.Error(t, err)
}

func TestClose_FlushesAndCloses(t *testing.T) {
	mock := &mockProducer{}
	producer := NewKafkaProducerWithInterface(mock, "payments")

	err := producer.Close()
	assert.NoError(t, err)
	assert.True(t, mock.flushed)
	assert.True(t, mock.closed)
}
