package utils

import (
	"math/rand"
	"time"

	"lendsafe/internal/pkg/consts"
)

// ClampTrustScore bounds a raw score to the valid trust score range.
func ClampTrustScore(score int) int {
	if score < consts.MinTrustScore {
		return consts.MinTrustScore
	}
	if score > consts.MaxTrustScore {
		return consts.MaxTrustScore
	}
	return score
}

// ScoreFromPoints derives a trust score from the event points total.
func ScoreFromPoints(pointsTotal int) int {
	return ClampTrustScore(consts.BaseTrustScore + pointsTotal)
}

// LateIncentivePoints draws the incentive for a late full repayment,
// uniform on [LateIncentiveMinPoints, LateIncentiveMaxPoints].
func LateIncentivePoints(rng *rand.Rand) int {
	span := consts.LateIncentiveMaxPoints - consts.LateIncentiveMinPoints + 1
	return consts.LateIncentiveMinPoints + rng.Intn(span)
}

// WeeksOverdue returns the number of whole weeks elapsed since the due date.
// A loan not yet a full week overdue returns zero.
func WeeksOverdue(dueDate time.Time, now time.Time) int {
	if !now.After(dueDate) {
		return 0
	}
	days := int(now.Sub(dueDate).Hours() / 24)
	return days / 7
}
