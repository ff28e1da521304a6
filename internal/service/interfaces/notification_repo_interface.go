package interfaces

import (
	"context"

	"lendsafe/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
}

type NotificationRepositoryInterface interface {
	CreateNotification(ctx context.Context, notification models.Notification) error
}
