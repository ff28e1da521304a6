package borrowers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/models"
	storemodels "lendsafe/internal/pkg/store/models"
	"lendsafe/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
)

// BorrowerService handles borrower registration and reads. New borrowers
// start at the base trust score with no loan history.
type BorrowerService struct {
	borrowerRepo interfaces.BorrowerRepositoryInterface
	counterRepo  interfaces.CounterRepositoryInterface
	cache        interfaces.TrustScoreCacheInterface
	nowFunc      func() time.Time
}

func NewBorrowerService(
	borrowerRepo interfaces.BorrowerRepositoryInterface,
	counterRepo interfaces.CounterRepositoryInterface,
	cache interfaces.TrustScoreCacheInterface,
) *BorrowerService {
	return &BorrowerService{
		borrowerRepo: borrowerRepo,
		counterRepo:  counterRepo,
		cache:        cache,
		nowFunc:      time.Now,
	}
}

func (bs *BorrowerService) Register(ctx context.Context, req models.RegisterBorrowerRequest) (*storemodels.Borrower, error) {

	if req.FullName == "" {
		return nil, models.InvalidInputError("fullName is required")
	}
	if req.PhoneNumber == "" {
		return nil, models.InvalidInputError("phoneNumber is required")
	}

	bid, err := bs.counterRepo.NextSequence(ctx, consts.BorrowerSeqKey)
	if err != nil {
		return nil, models.InternalError("failed to allocate borrower id", err)
	}

	now := bs.nowFunc()
	borrower := storemodels.Borrower{
		BID:         bid,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		MerchantID:  req.MerchantID,
		TrustScore:  consts.BaseTrustScore,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := bs.borrowerRepo.CreateBorrower(ctx, borrower); err != nil {
		return nil, models.InternalError("failed to create borrower", err)
	}

	logger.CtxInfo(ctx, "Borrower registered",
		slog.Int64("BID", bid),
		slog.Int64("MID", req.MerchantID),
	)

	return &borrower, nil
}

func (bs *BorrowerService) GetBorrower(ctx context.Context, bid int64) (*storemodels.Borrower, error) {
	borrower, err := bs.borrowerRepo.GetBorrowerByBID(ctx, bid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFoundError(fmt.Sprintf("borrower %d not found", bid))
		}
		return nil, models.InternalError("failed to read borrower", err)
	}
	return borrower, nil
}

// TrustScore reads the borrower's current score, preferring the Redis
// cache and falling back to the borrower document.
func (bs *BorrowerService) TrustScore(ctx context.Context, bid int64) (int, bool, error) {

	if bs.cache != nil {
		score, hit, err := bs.cache.GetTrustScore(ctx, bid)
		if err != nil {
			logger.CtxWarn(ctx, log_messages.ErrorReadingCachedScore,
				slog.Int64("BID", bid),
				slog.String("error", err.Error()),
			)
		} else if hit {
			return score, true, nil
		}
	}

	borrower, err := bs.GetBorrower(ctx, bid)
	if err != nil {
		return 0, false, err
	}
	return borrower.TrustScore, false, nil
}
