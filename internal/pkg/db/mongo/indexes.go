package mongo

import (
	"context"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the ledger depends on. The partial unique
// index on (loanId, eventType) backstops the at-most-once trust event kinds:
// a concurrent duplicate insert surfaces as a duplicate key error instead of
// a second event.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {

	eventIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "loanId", Value: 1}, {Key: "eventType", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"eventType": bson.M{"$in": []string{
						consts.EventLoanTaken,
						consts.EventOnTimePayment,
						consts.EventMissedDueDate,
						consts.EventLatePaymentIncentive,
					}},
				}),
		},
		{
			Keys: bson.D{{Key: "BID", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}
	if _, err := db.Collection(consts.TrustScoreEventsCollection).Indexes().CreateMany(ctx, eventIndexes); err != nil {
		return err
	}

	loanIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "LID", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "dueDate", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "BID", Value: 1}, {Key: "status", Value: 1}},
		},
	}
	if _, err := db.Collection(consts.LoansCollection).Indexes().CreateMany(ctx, loanIndexes); err != nil {
		return err
	}

	borrowerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "BID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(consts.BorrowersCollection).Indexes().CreateOne(ctx, borrowerIndex); err != nil {
		return err
	}

	counterIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(consts.SeqCountersCollection).Indexes().CreateOne(ctx, counterIndex); err != nil {
		return err
	}

	txIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "LID", Value: 1}, {Key: "createdAt", Value: -1}},
	}
	if _, err := db.Collection(consts.TransactionsCollection).Indexes().CreateOne(ctx, txIndex); err != nil {
		return err
	}

	alertIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "BID", Value: 1}, {Key: "isResolved", Value: 1}},
	}
	if _, err := db.Collection(consts.FraudAlertsCollection).Indexes().CreateOne(ctx, alertIndex); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "MongoDB indexes ensured")
	return nil
}
