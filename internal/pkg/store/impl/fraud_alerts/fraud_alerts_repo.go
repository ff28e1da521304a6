package fraudalerts

import (
	"context"
	"errors"
	"log/slog"
	"time"

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

type FraudAlertRepository struct {
	repo interfaces.FraudAlertStoreInterface
}

func NewFraudAlertRepository(client *mongodb.MongoClient) *FraudAlertRepository {
	collection := client.Database.Collection(consts.FraudAlertsCollection)
	repo := repository.NewMongoRepository[models.FraudAlert](collection)
	return &FraudAlertRepository{repo: repo}
}

func NewFraudAlertRepositoryWithInterface(repo interfaces.FraudAlertStoreInterface) *FraudAlertRepository {
	return &FraudAlertRepository{repo: repo}
}

func (fr *FraudAlertRepository) CreateAlert(ctx context.Context, alert models.FraudAlert) error {
	result, err := fr.repo.Create(ctx, alert)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingFraudAlertDocument, err, slog.Int64("BID", alert.BID))
		return err
	}
	logger.CtxInfo(ctx, log_messages.FraudAlertRaised,
		slog.Int64("FAID", alert.FAID),
		slog.Int64("BID", alert.BID),
		slog.String("type", alert.Type),
		slog.String("severity", alert.Severity),
		slog.Any("document_id", result.InsertedID),
	)
	return nil
}

func (fr *FraudAlertRepository) GetAlertByFAID(ctx context.Context, faid int64) (*models.FraudAlert, error) {
	filter := bson.M{"FAID": faid}

	alert, err := fr.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No fraud alert found for FAID", slog.Int64("FAID", faid))
			return nil, err
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingFraudAlerts, err, slog.Int64("FAID", faid))
		return nil, err
	}

	return &alert, nil
}

func (fr *FraudAlertRepository) GetAlertsByBID(ctx context.Context, bid int64, unresolvedOnly bool) ([]models.FraudAlert, error) {
	filter := bson.M{"BID": bid}
	if unresolvedOnly {
		filter["isResolved"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	alerts, err := fr.repo.Find(ctx, filter, opts)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingFraudAlerts, err, slog.Int64("BID", bid))
		return nil, err
	}
	return alerts, nil
}

func (fr *FraudAlertRepository) ResolveAlert(ctx context.Context, faid int64, resolvedAt time.Time) error {
	filter := bson.M{"FAID": faid}
	update := bson.M{
		"isResolved": true,
		"resolvedAt": resolvedAt,
	}

	if err := fr.repo.UpdateOne(ctx, filter, update); err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpdatingFraudAlertDocument, err, slog.Int64("FAID", faid))
		return err
	}

	logger.CtxInfo(ctx, "Fraud alert resolved", slog.Int64("FAID", faid))
	return nil
}
