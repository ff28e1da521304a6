package fraudalerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mockFraudAlertStore struct {
	createFunc    func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	findOneFunc   func(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.FraudAlert, error)
	findFunc      func(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FraudAlert, error)
	updateOneFunc func(ctx context.Context, filter interface{}, update interface{}) error
}

func (m *mockFraudAlertStore) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, document)
	}
	return nil, errors.New("mock create not implemented")
}

func (m *mockFraudAlertStore) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.FraudAlert, error) {
	if m.findOneFunc != nil {
		return m.findOneFunc(ctx, filter, opt)
	}
	return models.FraudAlert{}, errors.New("mock findOne not implemented")
}

func (m *mockFraudAlertStore) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FraudAlert, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, filter, opts...)
	}
	return nil, errors.New("mock find not implemented")
}

func (m *mockFraudAlertStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	if m.updateOneFunc != nil {
		return m.updateOneFunc(ctx, filter, update)
	}
	return errors.New("mock updateOne not implemented")
}

func TestCreateAlert(t *testing.T) {
	mockStore := &mockFraudAlertStore{
		createFunc: func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
			alert, ok := document.(models.FraudAlert)
			if !ok || alert.Type != consts.FraudTypeMultipleActiveLoans {
				t.Errorf("Unexpected alert document: %v", document)
			}
			return &mongo.InsertOneResult{InsertedID: "id"}, nil
		},
	}
	repo := NewFraudAlertRepositoryWithInterface(mockStore)

	err := repo.CreateAlert(context.Background(), models.FraudAlert{
		FAID: 1, BID: 7, Type: consts.FraudTypeMultipleActiveLoans, Severity: consts.SeverityMedium,
	})
	if err != nil {
		t.Fatalf("CreateAlert returned error: %v", err)
	}
}

func TestGetAlertByFAIDNotFound(t *testing.T) {
	mockStore := &mockFraudAlertStore{
		findOneFunc: func(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.FraudAlert, error) {
			return models.FraudAlert{}, mongo.ErrNoDocuments
		},
	}
	repo := NewFraudAlertRepositoryWithInterface(mockStore)

	_, err := repo.GetAlertByFAID(context.Background(), 99)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("Expected ErrNoDocuments, got %v", err)
	}
}

func TestGetAlertsByBIDUnresolvedOnly(t *testing.T) {
	mockStore := &mockFraudAlertStore{
		findFunc: func(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FraudAlert, error) {
			f, ok := filter.(bson.M)
			if !ok || f["BID"] != int64(7) || f["isResolved"] != false {
				t.Errorf("Expected filter on BID 7 and isResolved false, got %v", filter)
			}
			return []models.FraudAlert{{FAID: 1, BID: 7}}, nil
		},
	}
	repo := NewFraudAlertRepositoryWithInterface(mockStore)

	alerts, err := repo.GetAlertsByBID(context.Background(), 7, true)
	if err != nil {
		t.Fatalf("GetAlertsByBID returned error: %v", err)
	}
	if len(alerts) != 1 {
		t.Errorf("Expected 1 alert, got %d", len(alerts))
	}
}

func TestResolveAlert(t *testing.T) {
	resolvedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mockStore := &mockFraudAlertStore{
		updateOneFunc: func(ctx context.Context, filter interface{}, update interface{}) error {
			f, ok := filter.(bson.M)
			if !ok || f["FAID"] != int64(3) {
				t.Errorf("Expected filter on FAID 3, got %v", filter)
			}
			u, ok := update.(bson.M)
			if !ok || u["isResolved"] != true || u["resolvedAt"] != resolvedAt {
				t.Errorf("Unexpected update document: %v", update)
			}
			return nil
		},
	}
	repo := NewFraudAlertRepositoryWithInterface(mockStore)

	if err := repo.ResolveAlert(context.Background(), 3, resolvedAt); err != nil {
		t.Fatalf("ResolveAlert returned error: %v", err)
	}
}
