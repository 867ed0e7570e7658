package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"buzzme_server/models"
	"buzzme_server/repository"
	"buzzme_server/stream"

	apperrors "buzzme_server/pkg/errors"

	"github.com/google/uuid"
)

// ChatService is the conversation store: an append-only, reply-threaded
// message log per match. Appends from different senders are independent
// inserts; ordering is settled at read time by (createdAt, sequence).
type ChatService struct {
	Matches  repository.MatchRepository
	Messages repository.MessageRepository
	Profiles repository.ProfileRepository
	Hub      *stream.Hub
	Now      func() time.Time
}

func (s *ChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AppendMessage validates, snapshots the reply target if any, assigns the
// per-match sequence and stores the message. The same update that hands out
// the sequence also refreshes the match's lastActivityAt and preview.
func (s *ChatService) AppendMessage(ctx context.Context, matchID, senderID, text, replyToID string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.InvalidArg("message text cannot be empty")
	}

	match, err := s.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, apperrors.NotFound("match not found")
	}
	if !match.Has(senderID) {
		return nil, apperrors.InvalidArg("sender is not part of this match")
	}

	var replyRef *models.ReplyRef
	if replyToID != "" {
		original, err := s.Messages.Get(ctx, matchID, replyToID)
		if err != nil {
			return nil, err
		}
		if original == nil {
			return nil, apperrors.NotFound("reply target not found in this match")
		}
		// Snapshot, not reference: the quote stays intact no matter what
		// happens to the original later.
		replyRef = &models.ReplyRef{
			MessageID:    original.MessageID,
			TextSnapshot: original.Text,
			AuthorLabel:  displayName(ctx, s.Profiles, original.SenderID),
		}
	}

	createdAt := s.now().UTC().Format(time.RFC3339)
	preview := &models.MessagePreview{
		Text:      text,
		SenderID:  senderID,
		IsReply:   replyRef != nil,
		CreatedAt: createdAt,
	}
	seq, err := s.Matches.RecordActivity(ctx, matchID, createdAt, preview)
	if err != nil {
		return nil, fmt.Errorf("failed to assign message sequence: %w", err)
	}

	message := &models.Message{
		MessageID: uuid.NewString(),
		MatchID:   matchID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: createdAt,
		Sequence:  seq,
		ReplyTo:   replyRef,
	}
	if err := s.Messages.Put(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if s.Hub != nil {
		s.Hub.Publish(stream.MatchTopic(matchID), "newMessage", message)
	}
	return message, nil
}

// ListMessages returns the full log ascending by (createdAt, sequence).
func (s *ChatService) ListMessages(ctx context.Context, matchID string) ([]models.Message, error) {
	match, err := s.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, apperrors.NotFound("match not found")
	}

	messages, err := s.Messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	sortMessages(messages)
	return messages, nil
}

// ListMessagesAfter returns only messages with sequence greater than afterSeq,
// the incremental-catch-up half of the tail contract.
func (s *ChatService) ListMessagesAfter(ctx context.Context, matchID string, afterSeq int64) ([]models.Message, error) {
	messages, err := s.ListMessages(ctx, matchID)
	if err != nil {
		return nil, err
	}

	filtered := messages[:0]
	for _, msg := range messages {
		if msg.Sequence > afterSeq {
			filtered = append(filtered, msg)
		}
	}
	return filtered, nil
}

// MessageTail is a live view over one match's log: a consistent snapshot
// followed by deltas until Cancel. Cancel is synchronous; once it returns no
// further messages are delivered.
type MessageTail struct {
	Snapshot []models.Message
	Updates  <-chan models.Message

	sub  *stream.Subscription
	done chan struct{}
	stop sync.Once
}

func (t *MessageTail) Cancel() {
	t.stop.Do(func() {
		t.sub.Cancel()
		close(t.done)
	})
}

// TailMessages subscribes before snapshotting, so nothing appended between
// the two is lost; anything delivered both ways is deduplicated by sequence.
func (s *ChatService) TailMessages(ctx context.Context, matchID string, afterSeq int64) (*MessageTail, error) {
	sub := s.Hub.Subscribe(stream.MatchTopic(matchID), 64)

	snapshot, err := s.ListMessagesAfter(ctx, matchID, afterSeq)
	if err != nil {
		sub.Cancel()
		return nil, err
	}

	lastSeq := afterSeq
	if n := len(snapshot); n > 0 {
		lastSeq = snapshot[n-1].Sequence
	}

	updates := make(chan models.Message, 64)
	done := make(chan struct{})
	go func() {
		defer close(updates)
		seen := lastSeq
		for event := range sub.C() {
			msg, ok := event.Data.(*models.Message)
			if !ok || msg.Sequence <= seen {
				continue
			}
			seen = msg.Sequence
			select {
			case updates <- *msg:
			case <-done:
				return
			}
		}
	}()

	return &MessageTail{Snapshot: snapshot, Updates: updates, sub: sub, done: done}, nil
}

// MatchSummary is one row of the conversation list, ordered by recency.
type MatchSummary struct {
	models.Match
	OtherUser *models.UserProfile `json:"otherUser,omitempty"`
}

// ListMatches returns uid's matches with counterpart profiles, most recently
// active first.
func (s *ChatService) ListMatches(ctx context.Context, uid string) ([]MatchSummary, error) {
	if uid == "" {
		return nil, apperrors.InvalidArg("uid is required")
	}

	matches, err := s.Matches.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return recency(matches[i]) > recency(matches[j])
	})

	summaries := make([]MatchSummary, 0, len(matches))
	for _, match := range matches {
		var other *models.UserProfile
		if otherUID := match.Other(uid); otherUID != "" {
			other, _ = s.Profiles.Get(ctx, otherUID)
		}
		summaries = append(summaries, MatchSummary{Match: match, OtherUser: other})
	}
	return summaries, nil
}

func recency(m models.Match) string {
	if m.LastActivityAt != "" {
		return m.LastActivityAt
	}
	return m.CreatedAt
}

// sortMessages orders ascending by createdAt, sequence breaking ties when the
// coarse timestamps collide.
func sortMessages(messages []models.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt != messages[j].CreatedAt {
			return messages[i].CreatedAt < messages[j].CreatedAt
		}
		return messages[i].Sequence < messages[j].Sequence
	})
}
