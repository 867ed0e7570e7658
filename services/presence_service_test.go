package services

import (
	"context"
	"testing"
	"time"

	"buzzme_server/models"

	apperrors "buzzme_server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresenceFixture(now time.Time) (*PresenceService, *fakeProfileRepo) {
	profiles := newFakeProfileRepo(models.UserProfile{UID: "alice", Name: "Alice"})
	return &PresenceService{
		Profiles: profiles,
		Now:      func() time.Time { return now },
	}, profiles
}

func TestTouchWritesServerTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service, profiles := newPresenceFixture(now)
	ctx := context.Background()

	require.NoError(t, service.Touch(ctx, "alice"))

	profile, err := profiles.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "2025-06-01T12:00:00Z", profile.LastSeen)

	assert.True(t, apperrors.IsCode(service.Touch(ctx, ""), apperrors.CodeInvalidArgument))
}

func TestIsOnlineWindowBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSeen time.Time
		online   bool
	}{
		{"just heartbeated", now, true},
		{"inside the window", now.Add(-299 * time.Second), true},
		{"exactly at the window", now.Add(-300 * time.Second), false},
		{"outside the window", now.Add(-301 * time.Second), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, profiles := newPresenceFixture(now)
			ctx := context.Background()

			require.NoError(t, profiles.SetLastSeen(ctx, "alice", tc.lastSeen.Format(time.RFC3339)))

			online, err := service.IsOnline(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, tc.online, online)
		})
	}
}

func TestIsOnlineAbsenceIsOffline(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service, profiles := newPresenceFixture(now)
	ctx := context.Background()

	// Unknown user.
	online, err := service.IsOnline(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, online)

	// Known user who never heartbeated.
	online, err = service.IsOnline(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, online)

	// Unparseable lastSeen degrades to offline, not an error.
	require.NoError(t, profiles.SetLastSeen(ctx, "alice", "not-a-timestamp"))
	online, err = service.IsOnline(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, online)
}
