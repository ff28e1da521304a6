package counters

import (
	"context"

	"lendsafe/internal/pkg/consts"
	mongodb "lendsafe/internal/pkg/db/mongo"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/store/models"
	"lendsafe/internal/pkg/store/repository"
	"lendsafe/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CounterRepository struct {
	repo interfaces.CounterStoreInterface
}

func NewCounterRepository(client *mongodb.MongoClient) *CounterRepository {
	collection := client.Database.Collection(consts.SeqCountersCollection)
	repo := repository.NewMongoRepository[models.SeqCounter](collection)
	return &CounterRepository{repo: repo}
}

func NewCounterRepositoryWithInterface(repo interfaces.CounterStoreInterface) *CounterRepository {
	return &CounterRepository{repo: repo}
}

// NextSequence atomically increments and returns the counter for the given
// key, creating it on first use.
func (cr *CounterRepository) NextSequence(ctx context.Context, key string) (int64, error) {

	filter := bson.M{"key": key}
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opt := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	counter, err := cr.repo.FindOneAndUpdate(ctx, filter, update, opt)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorIncrementingSequenceCounter, err)
		return 0, err
	}

	return counter.Seq, nil
}
