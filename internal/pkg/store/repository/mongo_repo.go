package repository

import (
	"context"

	"lendsafe/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository[T any] struct {
	collection interfaces.MongoRepositoryInterface
}

func NewMongoRepository[T any](collection interfaces.MongoRepositoryInterface) *MongoRepository[T] {
	return &MongoRepository[T]{collection: collection}
}

func (r *MongoRepository[T]) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {

	if result, err := r.collection.InsertOne(ctx, document); err != nil {
		return nil, err
	} else {
		return result, nil
	}
}

// FindOne reads a single document by filter
func (r *MongoRepository[T]) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (T, error) {

	var result T

	if err := r.collection.FindOne(ctx, filter, opt).Decode(&result); err != nil {
		return result, err
	}

	return result, nil
}

// FindOneAndUpdate applies a raw update document and decodes the resulting document
func (r *MongoRepository[T]) FindOneAndUpdate(
	ctx context.Context,
	filter interface{},
	update interface{},
	opt *options.FindOneAndUpdateOptions,
) (T, error) {

	var result T

	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opt).Decode(&result); err != nil {
		return result, err
	}

	return result, nil
}

func (r *MongoRepository[T]) Aggregate(ctx context.Context, pipeline interface{}, result interface{}) error {

	if cursor, err := r.collection.Aggregate(ctx, pipeline); err != nil {
		return err
	} else {
		defer func() {
			if err := cursor.Close(ctx); err != nil {
				_ = err
			}
		}()

		if cursor.Next(ctx) {
			return cursor.Decode(result)
		}
		return mongo.ErrNoDocuments
	}
}

// UpdateOne wraps the update in $set
func (r *MongoRepository[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {

	if updateResult, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": update}); err != nil {
		return err
	} else {
		_ = updateResult
		return nil
	}
}

// UpdateOneRaw applies update operators as given and returns the result,
// so callers can inspect MatchedCount on conditional writes
func (r *MongoRepository[T]) UpdateOneRaw(
	ctx context.Context,
	filter interface{},
	update interface{},
) (*mongo.UpdateResult, error) {

	if result, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return nil, err
	} else {
		return result, nil
	}
}

func (r *MongoRepository[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {

	if cursor, err := r.collection.Find(ctx, filter, opts...); err != nil {
		return nil, err
	} else {
		defer func() {
			if err := cursor.Close(ctx); err != nil {
				_ = err
			}
		}()

		var results []T
		for cursor.Next(ctx) {
			var entity T
			if err := cursor.Decode(&entity); err != nil {
				return nil, err
			}
			results = append(results, entity)
		}
		return results, nil
	}
}

func (r *MongoRepository[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {

	if count, err := r.collection.CountDocuments(ctx, filter); err != nil {
		return 0, err
	} else {
		return count, nil
	}
}
