package services

import (
	"context"
	"time"

	"buzzme_server/repository"

	apperrors "buzzme_server/pkg/errors"
)

// DefaultOnlineWindow is how long after a heartbeat a user still counts as
// online.
const DefaultOnlineWindow = 300 * time.Second

// PresenceService computes presence lazily from stored heartbeats. There is no
// "went offline" event: silence is the offline signal.
type PresenceService struct {
	Profiles repository.ProfileRepository
	Window   time.Duration
	Now      func() time.Time
}

func (s *PresenceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *PresenceService) window() time.Duration {
	if s.Window > 0 {
		return s.Window
	}
	return DefaultOnlineWindow
}

// Touch records the current server time as uid's lastSeen. Client-supplied
// timestamps are never accepted.
func (s *PresenceService) Touch(ctx context.Context, uid string) error {
	if uid == "" {
		return apperrors.InvalidArg("uid is required")
	}
	return s.Profiles.SetLastSeen(ctx, uid, s.now().UTC().Format(time.RFC3339))
}

// IsOnline reports whether uid heartbeated within the window. Unknown users
// and users who never heartbeated are offline, not errors.
func (s *PresenceService) IsOnline(ctx context.Context, uid string) (bool, error) {
	if uid == "" {
		return false, apperrors.InvalidArg("uid is required")
	}

	profile, err := s.Profiles.Get(ctx, uid)
	if err != nil {
		return false, err
	}
	if profile == nil || profile.LastSeen == "" {
		return false, nil
	}

	lastSeen, err := time.Parse(time.RFC3339, profile.LastSeen)
	if err != nil {
		return false, nil
	}
	return s.now().Sub(lastSeen) < s.window(), nil
}
