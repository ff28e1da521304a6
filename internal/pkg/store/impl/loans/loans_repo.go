package loans

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

type LoanRepository struct {
	repo interfaces.LoanStoreInterface
}

func NewLoanRepository(client *mongodb.MongoClient) *LoanRepository {
	collection := client.Database.Collection(consts.LoansCollection)
	repo := repository.NewMongoRepository[models.Loan](collection)
	return &LoanRepository{repo: repo}
}

func NewLoanRepositoryWithInterface(repo interfaces.LoanStoreInterface) *LoanRepository {
	return &LoanRepository{repo: repo}
}

func (lr *LoanRepository) CreateLoan(ctx context.Context, loan models.Loan) error {
	result, err := lr.repo.Create(ctx, loan)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingLoanDocument, err, slog.Int64("LID", loan.LID))
		return err
	}
	logger.CtxInfo(ctx, "Loan created",
		slog.Int64("LID", loan.LID),
		slog.Int64("BID", loan.BID),
		slog.Any("document_id", result.InsertedID),
	)
	return nil
}

func (lr *LoanRepository) GetLoanByLID(ctx context.Context, lid int64) (*models.Loan, error) {
	filter := bson.M{"LID": lid}

	loan, err := lr.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No loan found for LID", slog.Int64("LID", lid))
			return nil, err
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingLoanDocument, err, slog.Int64("LID", lid))
		return nil, err
	}

	return &loan, nil
}

func (lr *LoanRepository) ListLoans(ctx context.Context, mid int64, bid int64, status string) ([]models.Loan, error) {
	filter := bson.M{}
	if mid != 0 {
		filter["MID"] = mid
	}
	if bid != 0 {
		filter["BID"] = bid
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	loans, err := lr.repo.Find(ctx, filter, opts)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingLoanDocument, err)
		return nil, err
	}
	return loans, nil
}

func (lr *LoanRepository) CountActiveLoansByBID(ctx context.Context, bid int64) (int64, error) {
	filter := bson.M{"BID": bid, "status": consts.LoanStatusActive}
	return lr.repo.CountDocuments(ctx, filter)
}

func (lr *LoanRepository) FindActiveLoansByBID(ctx context.Context, bid int64) ([]models.Loan, error) {
	filter := bson.M{"BID": bid, "status": consts.LoanStatusActive}

	loans, err := lr.repo.Find(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingLoanDocument, err, slog.Int64("BID", bid))
		return nil, err
	}
	return loans, nil
}

func (lr *LoanRepository) FindOverdueActiveLoans(ctx context.Context, asOf time.Time) ([]models.Loan, error) {
	filter := bson.M{
		"status":  consts.LoanStatusActive,
		"dueDate": bson.M{"$lt": asOf},
	}

	loans, err := lr.repo.Find(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingOverdueLoans, err)
		return nil, err
	}
	return loans, nil
}

// ApplyPaymentUpdate performs the conditional payment write. The filter pins
// status and the previously read totalPaid, so a concurrent payment makes
// this update match nothing and the caller re-reads and retries.
func (lr *LoanRepository) ApplyPaymentUpdate(ctx context.Context, update interfaces.PaymentUpdate) (bool, error) {

	filter := bson.M{
		"LID":       update.LID,
		"status":    consts.LoanStatusActive,
		"totalPaid": update.ExpectedTotalPaid,
	}

	set := bson.M{
		"totalPaid": update.NewTotalPaid,
		"updatedAt": time.Now(),
	}
	if update.Close {
		set["status"] = consts.LoanStatusClosed
		set["closedAt"] = update.ClosedAt
	}

	doc := bson.M{
		"$set":  set,
		"$push": bson.M{"paymentHistory": update.Entry},
	}

	result, err := lr.repo.UpdateOneRaw(ctx, filter, doc)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpdatingLoanDocument, err, slog.Int64("LID", update.LID))
		return false, err
	}

	return result.MatchedCount == 1, nil
}

// CloseLoan is the manual override path. It does not guard on totalPaid.
func (lr *LoanRepository) CloseLoan(ctx context.Context, lid int64, totalPaid int64, closedAt time.Time) error {

	filter := bson.M{"LID": lid, "status": consts.LoanStatusActive}
	update := bson.M{
		"$set": bson.M{
			"status":    consts.LoanStatusClosed,
			"totalPaid": totalPaid,
			"closedAt":  closedAt,
			"updatedAt": time.Now(),
		},
	}

	result, err := lr.repo.UpdateOneRaw(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpdatingLoanDocument, err, slog.Int64("LID", lid))
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	logger.CtxInfo(ctx, "Loan closed", slog.Int64("LID", lid))
	return nil
}
