package trustevents

import (
	"context"
	"errors"
	"log/slog"

	"lendsafe/internal/pkg/consts"
	mongodb "lendsafe/internal/pkg/db/mongo"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/store/models"
	"lendsafe/internal/pkg/store/repository"
	"lendsafe/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TrustEventRepository struct {
	repo interfaces.TrustEventStoreInterface
}

func NewTrustEventRepository(client *mongodb.MongoClient) *TrustEventRepository {
	collection := client.Database.Collection(consts.TrustScoreEventsCollection)
	repo := repository.NewMongoRepository[models.TrustScoreEvent](collection)
	return &TrustEventRepository{repo: repo}
}

func NewTrustEventRepositoryWithInterface(repo interfaces.TrustEventStoreInterface) *TrustEventRepository {
	return &TrustEventRepository{repo: repo}
}

func (er *TrustEventRepository) CreateEvent(ctx context.Context, event models.TrustScoreEvent) error {
	result, err := er.repo.Create(ctx, event)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingTrustScoreEvent, err,
			slog.Int64("BID", event.BID),
			slog.String("event_type", event.EventType),
		)
		return err
	}
	logger.CtxDebug(ctx, "Trust score event appended",
		slog.Int64("BID", event.BID),
		slog.String("event_type", event.EventType),
		slog.Int("points", event.Points),
		slog.Any("document_id", result.InsertedID),
	)
	return nil
}

// SumPointsByBID totals event points for a borrower. A borrower with no
// events sums to zero.
func (er *TrustEventRepository) SumPointsByBID(ctx context.Context, bid int64) (int, error) {

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"BID": bid}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$points"},
		}}},
	}

	var sum models.TrustScorePointsSum
	if err := er.repo.Aggregate(ctx, pipeline, &sum); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		logger.CtxError(ctx, log_messages.ErrorAggregatingTrustScorePoints, err, slog.Int64("BID", bid))
		return 0, err
	}

	return sum.Total, nil
}

func (er *TrustEventRepository) GetEventsByBID(ctx context.Context, bid int64) ([]models.TrustScoreEvent, error) {
	filter := bson.M{"BID": bid}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	events, err := er.repo.Find(ctx, filter, opts)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingTrustScoreEvents, err, slog.Int64("BID", bid))
		return nil, err
	}
	return events, nil
}

func (er *TrustEventRepository) HasEventForLoan(ctx context.Context, lid int64, eventType string) (bool, error) {
	count, err := er.CountEventsForLoan(ctx, lid, eventType)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (er *TrustEventRepository) CountEventsForLoan(ctx context.Context, lid int64, eventType string) (int64, error) {
	filter := bson.M{"loanId": lid, "eventType": eventType}

	count, err := er.repo.CountDocuments(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingTrustScoreEvents, err, slog.Int64("LID", lid))
		return 0, err
	}
	return count, nil
}
