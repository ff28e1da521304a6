package trustscore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/models"
	storemodels "lendsafe/internal/pkg/store/models"
	"lendsafe/internal/pkg/utils"
	"lendsafe/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
)

// TrustScoreService owns the trust score ledger. The event log is the source
// of truth; the borrower document and Redis only hold derived caches, and
// this service is the sole writer of both.
type TrustScoreService struct {
	eventRepo    interfaces.TrustEventRepositoryInterface
	borrowerRepo interfaces.BorrowerRepositoryInterface
	cache        interfaces.TrustScoreCacheInterface
	nowFunc      func() time.Time
}

func NewTrustScoreService(
	eventRepo interfaces.TrustEventRepositoryInterface,
	borrowerRepo interfaces.BorrowerRepositoryInterface,
	cache interfaces.TrustScoreCacheInterface,
) *TrustScoreService {
	return &TrustScoreService{
		eventRepo:    eventRepo,
		borrowerRepo: borrowerRepo,
		cache:        cache,
		nowFunc:      time.Now,
	}
}

// Recompute derives the borrower's score from the full event log and writes
// the caches. Running it any number of times converges on the same score.
func (ts *TrustScoreService) Recompute(ctx context.Context, bid int64) (int, error) {

	total, err := ts.eventRepo.SumPointsByBID(ctx, bid)
	if err != nil {
		return 0, models.InternalError("failed to sum trust score events", err)
	}

	score := utils.ScoreFromPoints(total)

	if err := ts.borrowerRepo.SetTrustScore(ctx, bid, score); err != nil {
		return 0, models.InternalError("failed to update borrower trust score", err)
	}

	if ts.cache != nil {
		if err := ts.cache.SetTrustScore(ctx, bid, score); err != nil {
			logger.CtxWarn(ctx, log_messages.ErrorCachingTrustScore,
				slog.Int64("BID", bid),
				slog.String("error", err.Error()),
			)
		}
	}

	logger.CtxDebug(ctx, "Trust score recomputed",
		slog.Int64("BID", bid),
		slog.Int("points_total", total),
		slog.Int("score", score),
	)

	return score, nil
}

// AddEvent appends one event and recomputes. A missing borrower is a logged
// no-op returning ScoreNotComputed so ledger writers never fail on orphaned
// references. A duplicate of an at-most-once event kind is absorbed the same
// way, minus the sentinel: the recomputed score is still valid.
func (ts *TrustScoreService) AddEvent(
	ctx context.Context,
	bid int64,
	lid int64,
	eventType string,
	points int,
	description string,
) (int, error) {

	if _, err := ts.borrowerRepo.GetBorrowerByBID(ctx, bid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, log_messages.TrustScoreEventBorrowerMissing,
				slog.Int64("BID", bid),
				slog.String("event_type", eventType),
			)
			return consts.ScoreNotComputed, nil
		}
		return 0, models.InternalError("failed to read borrower", err)
	}

	event := storemodels.TrustScoreEvent{
		BID:         bid,
		LoanID:      lid,
		EventType:   eventType,
		Points:      points,
		Description: description,
		CreatedAt:   ts.nowFunc(),
	}

	if err := ts.eventRepo.CreateEvent(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logger.CtxWarn(ctx, log_messages.DuplicateTrustScoreEventSkipped,
				slog.Int64("BID", bid),
				slog.Int64("LID", lid),
				slog.String("event_type", eventType),
			)
			return ts.Recompute(ctx, bid)
		}
		return 0, models.InternalError("failed to record trust score event", err)
	}

	return ts.Recompute(ctx, bid)
}

// Timeline returns the borrower's events newest first.
func (ts *TrustScoreService) Timeline(ctx context.Context, bid int64) ([]storemodels.TrustScoreEvent, error) {
	events, err := ts.eventRepo.GetEventsByBID(ctx, bid)
	if err != nil {
		return nil, models.InternalError("failed to read trust score events", err)
	}
	return events, nil
}
