package interfaces

import (
	"context"
	"time"

	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FraudAlertStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.FraudAlert, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FraudAlert, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
}

type FraudAlertRepositoryInterface interface {
	CreateAlert(ctx context.Context, alert models.FraudAlert) error
	GetAlertByFAID(ctx context.Context, faid int64) (*models.FraudAlert, error)
	GetAlertsByBID(ctx context.Context, bid int64, unresolvedOnly bool) ([]models.FraudAlert, error)
	ResolveAlert(ctx context.Context, faid int64, resolvedAt time.Time) error
}
