package interfaces

import (
	"context"

	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TrustEventStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TrustScoreEvent, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, result interface{}) error
}

type TrustEventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event models.TrustScoreEvent) error
	SumPointsByBID(ctx context.Context, bid int64) (int, error)
	GetEventsByBID(ctx context.Context, bid int64) ([]models.TrustScoreEvent, error)
	HasEventForLoan(ctx context.Context, lid int64, eventType string) (bool, error)
	CountEventsForLoan(ctx context.Context, lid int64, eventType string) (int64, error)
}
