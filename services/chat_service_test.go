package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"buzzme_server/models"
	"buzzme_server/stream"

	apperrors "buzzme_server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	service  *ChatService
	matches  *fakeMatchRepo
	messages *fakeMessageRepo
	profiles *fakeProfileRepo
	hub      *stream.Hub
	clock    *fakeClock
}

// fakeClock hands out strictly increasing timestamps unless frozen.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	frozen bool
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.frozen {
		c.now = c.now.Add(time.Second)
	}
	return c.now
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	profiles := newFakeProfileRepo(
		models.UserProfile{UID: "alice", Name: "Alice"},
		models.UserProfile{UID: "bob", Name: "Bob"},
	)
	matches := newFakeMatchRepo()
	created, err := matches.CreateIfAbsent(context.Background(), &models.Match{
		MatchID:   "alice_bob",
		Users:     []string{"alice", "bob"},
		CreatedAt: "2025-06-01T11:00:00Z",
	})
	require.NoError(t, err)
	require.True(t, created)

	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	messages := newFakeMessageRepo()
	hub := stream.NewHub()
	service := &ChatService{
		Matches:  matches,
		Messages: messages,
		Profiles: profiles,
		Hub:      hub,
		Now:      clock.Now,
	}

	return &chatFixture{
		service:  service,
		matches:  matches,
		messages: messages,
		profiles: profiles,
		hub:      hub,
		clock:    clock,
	}
}

func TestAppendMessageValidation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, err := f.service.AppendMessage(ctx, "alice_bob", "alice", "   ", "")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	_, err = f.service.AppendMessage(ctx, "nope", "alice", "hi", "")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = f.service.AppendMessage(ctx, "alice_bob", "mallory", "hi", "")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestAppendMessageAssignsSequenceAndPreview(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	first, err := f.service.AppendMessage(ctx, "alice_bob", "alice", "hey", "")
	require.NoError(t, err)
	second, err := f.service.AppendMessage(ctx, "alice_bob", "bob", "hey yourself", "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Sequence)
	assert.Equal(t, int64(2), second.Sequence)
	assert.NotEqual(t, first.MessageID, second.MessageID)

	match, err := f.matches.Get(ctx, "alice_bob")
	require.NoError(t, err)
	require.NotNil(t, match.LastMessage)
	assert.Equal(t, "hey yourself", match.LastMessage.Text)
	assert.Equal(t, "bob", match.LastMessage.SenderID)
	assert.False(t, match.LastMessage.IsReply)
	assert.Equal(t, second.CreatedAt, match.LastActivityAt)
}

func TestAppendMessageReplySnapshot(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	original, err := f.service.AppendMessage(ctx, "alice_bob", "alice", "first!", "")
	require.NoError(t, err)

	reply, err := f.service.AppendMessage(ctx, "alice_bob", "bob", "quoting you", original.MessageID)
	require.NoError(t, err)
	require.NotNil(t, reply.ReplyTo)
	assert.Equal(t, original.MessageID, reply.ReplyTo.MessageID)
	assert.Equal(t, "first!", reply.ReplyTo.TextSnapshot)
	assert.Equal(t, "Alice", reply.ReplyTo.AuthorLabel)

	match, err := f.matches.Get(ctx, "alice_bob")
	require.NoError(t, err)
	assert.True(t, match.LastMessage.IsReply)
}

func TestAppendMessageReplyTargetMustExist(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.AppendMessage(context.Background(), "alice_bob", "bob", "quoting ghosts", "no-such-id")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestListMessagesOrdering(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	// Freeze the clock so every append lands on the same coarse timestamp;
	// the sequence must break the tie.
	f.clock.frozen = true

	for _, text := range []string{"one", "two", "three"} {
		_, err := f.service.AppendMessage(ctx, "alice_bob", "alice", text, "")
		require.NoError(t, err)
	}

	messages, err := f.service.ListMessages(ctx, "alice_bob")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Text)
	assert.Equal(t, "two", messages[1].Text)
	assert.Equal(t, "three", messages[2].Text)

	_, err = f.service.ListMessages(ctx, "nope")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestListMessagesAfter(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := f.service.AppendMessage(ctx, "alice_bob", "alice", text, "")
		require.NoError(t, err)
	}

	tail, err := f.service.ListMessagesAfter(ctx, "alice_bob", 1)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "two", tail[0].Text)
	assert.Equal(t, "three", tail[1].Text)
}

func TestTailMessagesSnapshotThenDeltas(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, err := f.service.AppendMessage(ctx, "alice_bob", "alice", "before", "")
	require.NoError(t, err)

	tail, err := f.service.TailMessages(ctx, "alice_bob", 0)
	require.NoError(t, err)
	defer tail.Cancel()

	require.Len(t, tail.Snapshot, 1)
	assert.Equal(t, "before", tail.Snapshot[0].Text)

	_, err = f.service.AppendMessage(ctx, "alice_bob", "bob", "after", "")
	require.NoError(t, err)

	select {
	case msg := <-tail.Updates:
		assert.Equal(t, "after", msg.Text)
		assert.Equal(t, int64(2), msg.Sequence)
	case <-time.After(time.Second):
		t.Fatal("expected a live update")
	}
}

func TestTailMessagesCancelStopsDelivery(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	tail, err := f.service.TailMessages(ctx, "alice_bob", 0)
	require.NoError(t, err)
	tail.Cancel()

	_, err = f.service.AppendMessage(ctx, "alice_bob", "alice", "into the void", "")
	require.NoError(t, err)

	// The updates channel drains and closes without delivering the message.
	for msg := range tail.Updates {
		t.Fatalf("unexpected delivery after cancel: %q", msg.Text)
	}
}

func TestTailMessagesCancelIsIdempotent(t *testing.T) {
	f := newChatFixture(t)

	tail, err := f.service.TailMessages(context.Background(), "alice_bob", 0)
	require.NoError(t, err)

	tail.Cancel()
	tail.Cancel()
}

func TestListMatchesMostRecentFirst(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, err := f.matches.CreateIfAbsent(ctx, &models.Match{
		MatchID:   "alice_carol",
		Users:     []string{"alice", "carol"},
		CreatedAt: "2025-06-01T11:30:00Z",
	})
	require.NoError(t, err)

	// Activity in alice_bob makes it the most recent conversation.
	_, err = f.service.AppendMessage(ctx, "alice_bob", "bob", "ping", "")
	require.NoError(t, err)

	summaries, err := f.service.ListMatches(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "alice_bob", summaries[0].MatchID)
	assert.Equal(t, "alice_carol", summaries[1].MatchID)

	require.NotNil(t, summaries[0].OtherUser)
	assert.Equal(t, "Bob", summaries[0].OtherUser.Name)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "ping", summaries[0].LastMessage.Text)
	assert.Nil(t, summaries[1].OtherUser)

	_, err = f.service.ListMatches(ctx, "")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}
