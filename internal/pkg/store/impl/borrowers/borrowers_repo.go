package borrowers

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

type BorrowerRepository struct {
	repo interfaces.BorrowerStoreInterface
}

func NewBorrowerRepository(client *mongodb.MongoClient) *BorrowerRepository {
	collection := client.Database.Collection(consts.BorrowersCollection)
	repo := repository.NewMongoRepository[models.Borrower](collection)
	return &BorrowerRepository{repo: repo}
}

func NewBorrowerRepositoryWithInterface(repo interfaces.BorrowerStoreInterface) *BorrowerRepository {
	return &BorrowerRepository{repo: repo}
}

func (br *BorrowerRepository) CreateBorrower(ctx context.Context, borrower models.Borrower) error {
	result, err := br.repo.Create(ctx, borrower)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingBorrowerDocument, err)
		return err
	}
	logger.CtxInfo(ctx, "Borrower created",
		slog.Int64("BID", borrower.BID),
		slog.Any("document_id", result.InsertedID),
	)
	return nil
}

func (br *BorrowerRepository) GetBorrowerByBID(ctx context.Context, bid int64) (*models.Borrower, error) {
	filter := bson.M{"BID": bid}

	borrower, err := br.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No borrower found for BID", slog.Int64("BID", bid))
			return nil, err
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingBorrowerDocument, err, slog.Int64("BID", bid))
		return nil, err
	}

	return &borrower, nil
}

// SetTrustScore writes the derived score cache on the borrower document.
func (br *BorrowerRepository) SetTrustScore(ctx context.Context, bid int64, score int) error {
	filter := bson.M{"BID": bid}
	update := bson.M{
		"trustScore": score,
		"updatedAt":  time.Now(),
	}

	if err := br.repo.UpdateOne(ctx, filter, update); err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpdatingBorrowerDocument, err, slog.Int64("BID", bid))
		return err
	}
	return nil
}

func (br *BorrowerRepository) AdjustLoanCounters(ctx context.Context, bid int64, totalDelta int64, activeDelta int64) error {
	filter := bson.M{"BID": bid}
	update := bson.M{
		"$inc": bson.M{
			"totalLoans":  totalDelta,
			"activeLoans": activeDelta,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	if _, err := br.repo.UpdateOneRaw(ctx, filter, update); err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpdatingBorrowerDocument, err, slog.Int64("BID", bid))
		return err
	}
	return nil
}
