package borrowers

import (
	"context"
	"errors"
	"testing"

	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mockBorrowerStore struct {
	createFunc       func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	findOneFunc      func(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Borrower, error)
	updateOneFunc    func(ctx context.Context, filter interface{}, update interface{}) error
	updateOneRawFunc func(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}

func (m *mockBorrowerStore) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, document)
	}
	return nil, errors.New("mock create not implemented")
}

func (m *mockBorrowerStore) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Borrower, error) {
	if m.findOneFunc != nil {
		return m.findOneFunc(ctx, filter, opt)
	}
	return models.Borrower{}, errors.New("mock findOne not implemented")
}

func (m *mockBorrowerStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	if m.updateOneFunc != nil {
		return m.updateOneFunc(ctx, filter, update)
	}
	return errors.New("mock updateOne not implemented")
}

func (m *mockBorrowerStore) UpdateOneRaw(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	if m.updateOneRawFunc != nil {
		return m.updateOneRawFunc(ctx, filter, update)
	}
	return nil, errors.New("mock updateOneRaw not implemented")
}

func TestCreateBorrower(t *testing.T) {
	mockStore := &mockBorrowerStore{
		createFunc: func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
			borrower, ok := document.(models.Borrower)
			if !ok {
				t.Fatalf("Expected models.Borrower document, got %T", document)
			}
			if borrower.BID != 7 {
				t.Errorf("Expected BID 7, got %d", borrower.BID)
			}
			return &mongo.InsertOneResult{InsertedID: "id"}, nil
		},
	}

	repo := NewBorrowerRepositoryWithInterface(mockStore)

	err := repo.CreateBorrower(context.Background(), models.Borrower{BID: 7, FullName: "Asha Rao", TrustScore: 100})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestGetBorrowerByBID(t *testing.T) {
	mockStore := &mockBorrowerStore{
		findOneFunc: func(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Borrower, error) {
			f, ok := filter.(bson.M)
			if !ok || f["BID"] != int64(7) {
				t.Errorf("Expected filter on BID 7, got %v", filter)
			}
			return models.Borrower{BID: 7, FullName: "Asha Rao"}, nil
		},
	}

	repo := NewBorrowerRepositoryWithInterface(mockStore)

	borrower, err := repo.GetBorrowerByBID(context.Background(), 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if borrower.FullName != "Asha Rao" {
		t.Errorf("Expected borrower Asha Rao, got %s", borrower.FullName)
	}
}

func TestGetBorrowerByBID_NotFound(t *testing.T) {
	mockStore := &mockBorrowerStore{
		findOneFunc: func(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Borrower, error) {
			return models.Borrower{}, mongo.ErrNoDocuments
		},
	}

	repo := NewBorrowerRepositoryWithInterface(mockStore)

	borrower, err := repo.GetBorrowerByBID(context.Background(), 99)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("Expected ErrNoDocuments, got %v", err)
	}
	if borrower != nil {
		t.Errorf("Expected nil borrower, got %v", borrower)
	}
}

func TestAdjustLoanCounters(t *testing.T) {
	mockStore := &mockBorrowerStore{
		updateOneRawFunc: func(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
			u, ok := update.(bson.M)
			if !ok {
				t.Fatalf("Expected bson.M update, got %T", update)
			}
			inc, ok := u["$inc"].(bson.M)
			if !ok {
				t.Fatal("Expected $inc in update")
			}
			if inc["totalLoans"] != int64(1) || inc["activeLoans"] != int64(1) {
				t.Errorf("Expected counters incremented by 1, got %v", inc)
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}

	repo := NewBorrowerRepositoryWithInterface(mockStore)

	if err := repo.AdjustLoanCounters(context.Background(), 7, 1, 1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestSetTrustScore_Error(t *testing.T) {
	mockStore := &mockBorrowerStore{
		updateOneFunc: func(ctx context.Context, filter interface{}, update interface{}) error {
			return errors.New("db down")
		},
	}

	repo := NewBorrowerRepositoryWithInterface(mockStore)

	if err := repo.SetTrustScore(context.Background(), 7, 80); err == nil {
		t.Fatal("Expected error, got nil")
	}
}
