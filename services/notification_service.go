package services

import (
	"context"
	"log"
	"sort"
	"time"

	"buzzme_server/models"
	"buzzme_server/repository"
	"buzzme_server/stream"

	"github.com/google/uuid"
)

// NotificationService is the best-effort side channel. A failed write is
// logged and swallowed: the match/message/request mutation that triggered it
// is authoritative and must not be rolled back.
type NotificationService struct {
	Notifications repository.NotificationRepository
	Hub           *stream.Hub
	Now           func() time.Time
}

func (s *NotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Notify emits one notification to toUid. When anonymous, the sender identity
// is replaced by sentinels in the persisted record.
func (s *NotificationService) Notify(ctx context.Context, toUID, fromUID, fromName string, anonymous bool, notificationType, message string) {
	if anonymous {
		fromUID = models.AnonymousUID
		fromName = models.AnonymousName
	}
	if fromName == "" {
		fromName = "A user"
	}

	n := &models.Notification{
		NotificationID: uuid.NewString(),
		ToUID:          toUID,
		FromUID:        fromUID,
		FromName:       fromName,
		Type:           notificationType,
		Message:        message,
		Read:           false,
		CreatedAt:      s.now().UTC().Format(time.RFC3339),
	}

	if err := s.Notifications.Put(ctx, n); err != nil {
		log.Printf("⚠️ Failed to write %s notification for %s: %v", notificationType, toUID, err)
		return
	}

	if s.Hub != nil {
		s.Hub.Publish(stream.UserTopic(toUID), "notification", n)
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, uid string) ([]models.Notification, error) {
	notifications, err := s.Notifications.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt > notifications[j].CreatedAt
	})
	return notifications, nil
}

// MarkRead flips the read flag on a single notification.
func (s *NotificationService) MarkRead(ctx context.Context, uid, notificationID string) error {
	return s.Notifications.MarkRead(ctx, uid, notificationID)
}
