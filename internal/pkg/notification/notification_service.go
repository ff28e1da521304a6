package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/log_messages"
	"lendsafe/internal/pkg/logger"
	"lendsafe/internal/pkg/models"
	storemodels "lendsafe/internal/pkg/store/models"
	"lendsafe/internal/service/interfaces"
)

// NotificationService persists notification documents and fans them out to
// the Pub/Sub topic. Delivery is best effort: every failure is logged and
// swallowed so callers never fail because of notifications.
type NotificationService struct {
	notificationRepo interfaces.NotificationRepositoryInterface
	counterRepo      interfaces.CounterRepositoryInterface
	publisher        interfaces.PublisherInterface
	nowFunc          func() time.Time
}

func NewNotificationService(
	notificationRepo interfaces.NotificationRepositoryInterface,
	counterRepo interfaces.CounterRepositoryInterface,
	publisher interfaces.PublisherInterface,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		counterRepo:      counterRepo,
		publisher:        publisher,
		nowFunc:          time.Now,
	}
}

func (ns *NotificationService) Notify(ctx context.Context, notification storemodels.Notification) {

	nid, err := ns.counterRepo.NextSequence(ctx, consts.NotificationSeqKey)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorPersistingNotification, err)
		return
	}
	notification.NID = nid
	notification.CreatedAt = ns.nowFunc()

	if err := ns.notificationRepo.CreateNotification(ctx, notification); err != nil {
		logger.CtxError(ctx, log_messages.ErrorPersistingNotification, err, slog.Int64("NID", nid))
		return
	}

	if ns.publisher == nil {
		return
	}

	msg := models.NotificationMessage{
		NID:        notification.NID,
		TargetType: notification.TargetType,
		BID:        notification.BID,
		MID:        notification.MID,
		LID:        notification.LID,
		Type:       notification.Type,
		Title:      notification.Title,
		Message:    notification.Message,
		CreatedAt:  notification.CreatedAt,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorMarshallingNotification, err, slog.Int64("NID", nid))
		return
	}

	if err := ns.publisher.Publish(ctx, payload); err != nil {
		logger.CtxError(ctx, log_messages.ErrorPublishingNotification, err, slog.Int64("NID", nid))
		return
	}

	logger.CtxDebug(ctx, log_messages.NotificationPublished,
		slog.Int64("NID", nid),
		slog.String("target_type", notification.TargetType),
	)
}
