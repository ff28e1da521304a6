package interfaces

import (
	"context"
	"time"

	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoanStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Loan, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Loan, error)
	UpdateOneRaw(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

// PaymentUpdate carries the conditional write for one payment. The filter is
// built from ExpectedTotalPaid so a concurrent writer makes the update miss.
type PaymentUpdate struct {
	LID               int64
	ExpectedTotalPaid int64
	Entry             models.PaymentEntry
	NewTotalPaid      int64
	Close             bool
	ClosedAt          time.Time
}

type LoanRepositoryInterface interface {
	CreateLoan(ctx context.Context, loan models.Loan) error
	GetLoanByLID(ctx context.Context, lid int64) (*models.Loan, error)
	ListLoans(ctx context.Context, mid int64, bid int64, status string) ([]models.Loan, error)
	CountActiveLoansByBID(ctx context.Context, bid int64) (int64, error)
	FindActiveLoansByBID(ctx context.Context, bid int64) ([]models.Loan, error)
	FindOverdueActiveLoans(ctx context.Context, asOf time.Time) ([]models.Loan, error)
	ApplyPaymentUpdate(ctx context.Context, update PaymentUpdate) (bool, error)
	CloseLoan(ctx context.Context, lid int64, totalPaid int64, closedAt time.Time) error
}
