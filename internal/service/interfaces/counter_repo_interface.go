package interfaces

import (
	"context"

	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type CounterStoreInterface interface {
	FindOneAndUpdate(
		ctx context.Context,
		filter interface{},
		update interface{},
		opt *options.FindOneAndUpdateOptions,
	) (models.SeqCounter, error)
}

type CounterRepositoryInterface interface {
	NextSequence(ctx context.Context, key string) (int64, error)
}
