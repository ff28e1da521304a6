package interfaces

import (
	"context"

	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BorrowerStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Borrower, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	UpdateOneRaw(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}

type BorrowerRepositoryInterface interface {
	CreateBorrower(ctx context.Context, borrower models.Borrower) error
	GetBorrowerByBID(ctx context.Context, bid int64) (*models.Borrower, error)
	SetTrustScore(ctx context.Context, bid int64, score int) error
	AdjustLoanCounters(ctx context.Context, bid int64, totalDelta int64, activeDelta int64) error
}
