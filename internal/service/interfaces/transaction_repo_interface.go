package interfaces

import (
	"context"

	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Transaction, error)
}

type TransactionRepositoryInterface interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) error
	GetTransactionsByLID(ctx context.Context, lid int64) ([]models.Transaction, error)
	GetTransactionsByBID(ctx context.Context, bid int64) ([]models.Transaction, error)
}
