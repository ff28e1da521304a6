package interfaces

import (
	"context"

	"lendsafe/internal/pkg/store/models"
)

// TrustScoreServiceInterface is the sole writer of borrower trust scores.
type TrustScoreServiceInterface interface {
	Recompute(ctx context.Context, bid int64) (int, error)
	AddEvent(ctx context.Context, bid int64, lid int64, eventType string, points int, description string) (int, error)
	Timeline(ctx context.Context, bid int64) ([]models.TrustScoreEvent, error)
}

// NotifierInterface delivers notifications best effort. Failures are logged,
// never returned to callers.
type NotifierInterface interface {
	Notify(ctx context.Context, notification models.Notification)
}

// FraudServiceInterface runs heuristic checks on loan creation.
type FraudServiceInterface interface {
	RunLoanFraudChecks(ctx context.Context, loan *models.Loan) []models.FraudAlert
}
