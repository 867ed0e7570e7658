package repository

import (
	"context"

	"buzzme_server/models"
)

// Lookups return (nil, nil) when the record does not exist; absence is normal
// control flow for the match resolver, not an error.

type ProfileRepository interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	FindByBuzzID(ctx context.Context, buzzID string) (*models.UserProfile, error)
	SetLastSeen(ctx context.Context, uid, lastSeen string) error
}

type RequestRepository interface {
	Create(ctx context.Context, req *models.FriendRequest) error
	Get(ctx context.Context, requestID string) (*models.FriendRequest, error)
	// FindPending returns the pending request for the ordered pair, if any.
	FindPending(ctx context.Context, fromUID, toUID string) (*models.FriendRequest, error)
	ListPendingTo(ctx context.Context, toUID string) ([]models.FriendRequest, error)
	// Delete is idempotent: deleting an absent id is a no-op.
	Delete(ctx context.Context, requestID string) error
}

type SignalRepository interface {
	// PutIfAbsent stores the signal unless one already exists for
	// (fromUid, toUid, kind). Reports whether this call created it.
	PutIfAbsent(ctx context.Context, sig *models.InterestSignal) (bool, error)
	Get(ctx context.Context, fromUID, toUID, kind string) (*models.InterestSignal, error)
	SetStatus(ctx context.Context, fromUID, toUID, kind, status string) error
}

type MatchRepository interface {
	// CreateIfAbsent performs the deterministic-id idempotent upsert: at most
	// one logical creation survives concurrent attempts. Reports whether this
	// call won the create.
	CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error)
	Get(ctx context.Context, matchID string) (*models.Match, error)
	ListByUser(ctx context.Context, uid string) ([]models.Match, error)
	// RecordActivity atomically bumps the per-match message counter and
	// refreshes lastActivityAt plus the denormalized preview, returning the
	// new counter value.
	RecordActivity(ctx context.Context, matchID, at string, preview *models.MessagePreview) (int64, error)
}

type MessageRepository interface {
	Put(ctx context.Context, msg *models.Message) error
	Get(ctx context.Context, matchID, messageID string) (*models.Message, error)
	ListByMatch(ctx context.Context, matchID string) ([]models.Message, error)
}

type NotificationRepository interface {
	Put(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, toUID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, toUID, notificationID string) error
}
