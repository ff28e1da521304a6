package notifications

import (
	"context"
	"log/slog"

	"lendsafe/internal/pkg/consts"
	mongodb "lendsafe/internal/pkg/db/mongo"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/store/models"
	"lendsafe/internal/pkg/store/repository"
	"lendsafe/internal/service/interfaces"
)

type NotificationRepository struct {
	repo interfaces.NotificationStoreInterface
}

func NewNotificationRepository(client *mongodb.MongoClient) *NotificationRepository {
	collection := client.Database.Collection(consts.NotificationsCollection)
	repo := repository.NewMongoRepository[models.Notification](collection)
	return &NotificationRepository{repo: repo}
}

func NewNotificationRepositoryWithInterface(repo interfaces.NotificationStoreInterface) *NotificationRepository {
	return &NotificationRepository{repo: repo}
}

func (nr *NotificationRepository) CreateNotification(ctx context.Context, notification models.Notification) error {
	result, err := nr.repo.Create(ctx, notification)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingNotificationDocument, err, slog.Int64("NID", notification.NID))
		return err
	}
	logger.CtxDebug(ctx, "Notification persisted",
		slog.Int64("NID", notification.NID),
		slog.String("target_type", notification.TargetType),
		slog.Any("document_id", result.InsertedID),
	)
	return nil
}
