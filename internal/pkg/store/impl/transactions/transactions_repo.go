package transactions

import (
	"context"
	"log/slog"

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

type TransactionRepository struct {
	repo interfaces.TransactionStoreInterface
}

func NewTransactionRepository(client *mongodb.MongoClient) *TransactionRepository {
	collection := client.Database.Collection(consts.TransactionsCollection)
	repo := repository.NewMongoRepository[models.Transaction](collection)
	return &TransactionRepository{repo: repo}
}

func NewTransactionRepositoryWithInterface(repo interfaces.TransactionStoreInterface) *TransactionRepository {
	return &TransactionRepository{repo: repo}
}

func (tr *TransactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	result, err := tr.repo.Create(ctx, tx)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingTransactionDocument, err, slog.Int64("TID", tx.TID))
		return err
	}
	logger.CtxDebug(ctx, "Transaction recorded",
		slog.Int64("TID", tx.TID),
		slog.Int64("LID", tx.LID),
		slog.Any("document_id", result.InsertedID),
	)
	return nil
}

func (tr *TransactionRepository) GetTransactionsByLID(ctx context.Context, lid int64) ([]models.Transaction, error) {
	filter := bson.M{"LID": lid}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	txs, err := tr.repo.Find(ctx, filter, opts)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingTransactionsDocuments, err, slog.Int64("LID", lid))
		return nil, err
	}
	return txs, nil
}

func (tr *TransactionRepository) GetTransactionsByBID(ctx context.Context, bid int64) ([]models.Transaction, error) {
	filter := bson.M{"BID": bid}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	txs, err := tr.repo.Find(ctx, filter, opts)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingTransactionsDocuments, err, slog.Int64("BID", bid))
		return nil, err
	}
	return txs, nil
}
