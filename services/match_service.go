package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"buzzme_server/models"
	"buzzme_server/repository"
	"buzzme_server/stream"
	"buzzme_server/utils"

	apperrors "buzzme_server/pkg/errors"

	"github.com/google/uuid"
)

// MatchService is the match resolver: it turns one-directional interest into
// at most one Match per unordered pair. There is no cross-user lock anywhere;
// correctness under concurrent evaluate calls rests entirely on the
// deterministic match id and the conditional create in MatchRepository.
type MatchService struct {
	Profiles repository.ProfileRepository
	Requests repository.RequestRepository
	Signals  repository.SignalRepository
	Matches  repository.MatchRepository
	Notifier *NotificationService
	Hub      *stream.Hub
	Now      func() time.Time
}

// EvaluateResult reports what a single evaluate call did.
type EvaluateResult struct {
	Matched   bool   `json:"matched"`
	MatchID   string `json:"matchId,omitempty"`
	Created   bool   `json:"created"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *MatchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Evaluate processes an interest event from actor toward target on the given
// channel and decides whether mutual interest now holds.
func (s *MatchService) Evaluate(ctx context.Context, actorUID, targetUID, channel, source string) (*EvaluateResult, error) {
	if actorUID == "" || targetUID == "" {
		return nil, apperrors.InvalidArg("actorUid and targetUid are required")
	}
	if actorUID == targetUID {
		return nil, apperrors.InvalidArg("cannot target yourself")
	}

	switch channel {
	case models.ChannelRequest:
		return s.evaluateRequest(ctx, actorUID, targetUID, source)
	case models.ChannelCrush:
		return s.evaluateCrush(ctx, actorUID, targetUID)
	case models.ChannelLike:
		return s.evaluateLike(ctx, actorUID, targetUID)
	default:
		return nil, apperrors.InvalidArg(fmt.Sprintf("unknown channel: %q", channel))
	}
}

// evaluateRequest handles the explicit pending/accepted flow: a reciprocal
// pending request means mutual interest; otherwise a new pending request is
// recorded unless one already exists in this direction.
func (s *MatchService) evaluateRequest(ctx context.Context, actorUID, targetUID, source string) (*EvaluateResult, error) {
	switch source {
	case "":
		source = models.RequestSourceSwipe
	case models.RequestSourceSwipe, models.RequestSourceExplore, models.RequestSourceRequest:
	default:
		return nil, apperrors.InvalidArg(fmt.Sprintf("unknown source: %q", source))
	}

	reciprocal, err := s.Requests.FindPending(ctx, targetUID, actorUID)
	if err != nil {
		return nil, err
	}

	if reciprocal != nil {
		matchID, created, err := s.ResolveMutual(ctx, actorUID, targetUID)
		if err != nil {
			return nil, err
		}

		// Retire both the reciprocal request and any request the actor had
		// already sent. Deletes of absent ids are no-ops, which is exactly
		// what heals the race where the other side's evaluate got here first.
		if err := s.Requests.Delete(ctx, reciprocal.RequestID); err != nil {
			log.Printf("⚠️ Failed to delete consumed request %s: %v", reciprocal.RequestID, err)
		}
		outgoing, err := s.Requests.FindPending(ctx, actorUID, targetUID)
		if err != nil {
			log.Printf("⚠️ Failed to look up implied request %s -> %s: %v", actorUID, targetUID, err)
		} else if outgoing != nil {
			if err := s.Requests.Delete(ctx, outgoing.RequestID); err != nil {
				log.Printf("⚠️ Failed to delete implied request %s: %v", outgoing.RequestID, err)
			}
		}

		s.pokeInbox(actorUID, targetUID)
		return &EvaluateResult{Matched: true, MatchID: matchID, Created: created}, nil
	}

	outgoing, err := s.Requests.FindPending(ctx, actorUID, targetUID)
	if err != nil {
		return nil, err
	}
	if outgoing != nil {
		// Already asked; nothing to do.
		return &EvaluateResult{RequestID: outgoing.RequestID}, nil
	}

	request := &models.FriendRequest{
		RequestID: uuid.NewString(),
		FromUID:   actorUID,
		ToUID:     targetUID,
		Status:    models.RequestStatusPending,
		Source:    source,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.Requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	s.pokeInbox(targetUID)
	return &EvaluateResult{RequestID: request.RequestID}, nil
}

// evaluateCrush handles the anonymous crush flow: a reciprocal crush means
// mutual interest; otherwise the signal is recorded once and the target is
// notified anonymously exactly once.
func (s *MatchService) evaluateCrush(ctx context.Context, actorUID, targetUID string) (*EvaluateResult, error) {
	reciprocal, err := s.Signals.Get(ctx, targetUID, actorUID, models.SignalKindCrush)
	if err != nil {
		return nil, err
	}

	if reciprocal != nil {
		matchID, created, err := s.ResolveMutual(ctx, actorUID, targetUID)
		if err != nil {
			return nil, err
		}

		// Audit trail: the actor's own signal lands already matched, and the
		// reciprocal one is promoted. Neither write is load-bearing for the
		// match itself.
		own := &models.InterestSignal{
			FromUID:   actorUID,
			ToUID:     targetUID,
			Kind:      models.SignalKindCrush,
			Anonymous: true,
			Status:    models.SignalStatusMatched,
			CreatedAt: s.now().UTC().Format(time.RFC3339),
		}
		if _, err := s.Signals.PutIfAbsent(ctx, own); err != nil {
			log.Printf("⚠️ Failed to record matched crush %s -> %s: %v", actorUID, targetUID, err)
		}
		if err := s.Signals.SetStatus(ctx, targetUID, actorUID, models.SignalKindCrush, models.SignalStatusMatched); err != nil {
			log.Printf("⚠️ Failed to promote crush %s -> %s: %v", targetUID, actorUID, err)
		}

		return &EvaluateResult{Matched: true, MatchID: matchID, Created: created}, nil
	}

	signal := &models.InterestSignal{
		FromUID:   actorUID,
		ToUID:     targetUID,
		Kind:      models.SignalKindCrush,
		Anonymous: true,
		Status:    models.SignalStatusSent,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	created, err := s.Signals.PutIfAbsent(ctx, signal)
	if err != nil {
		return nil, fmt.Errorf("failed to record crush: %w", err)
	}
	if !created {
		// Repeat crush from the same side: silent no-op, no re-notify.
		return &EvaluateResult{}, nil
	}

	s.Notifier.Notify(ctx, targetUID, actorUID, "", true, models.NotificationTypeCrushAnon, "Somebody has a crush on you! 🫣")
	return &EvaluateResult{}, nil
}

// evaluateLike handles the named explore flow. Same shape as the crush
// channel, but the sender is identified in the notification.
func (s *MatchService) evaluateLike(ctx context.Context, actorUID, targetUID string) (*EvaluateResult, error) {
	reciprocal, err := s.Signals.Get(ctx, targetUID, actorUID, models.SignalKindLike)
	if err != nil {
		return nil, err
	}

	if reciprocal != nil {
		matchID, created, err := s.ResolveMutual(ctx, actorUID, targetUID)
		if err != nil {
			return nil, err
		}

		own := &models.InterestSignal{
			FromUID:   actorUID,
			ToUID:     targetUID,
			Kind:      models.SignalKindLike,
			Status:    models.SignalStatusMatched,
			CreatedAt: s.now().UTC().Format(time.RFC3339),
		}
		if _, err := s.Signals.PutIfAbsent(ctx, own); err != nil {
			log.Printf("⚠️ Failed to record matched like %s -> %s: %v", actorUID, targetUID, err)
		}
		if err := s.Signals.SetStatus(ctx, targetUID, actorUID, models.SignalKindLike, models.SignalStatusMatched); err != nil {
			log.Printf("⚠️ Failed to promote like %s -> %s: %v", targetUID, actorUID, err)
		}

		return &EvaluateResult{Matched: true, MatchID: matchID, Created: created}, nil
	}

	signal := &models.InterestSignal{
		FromUID:   actorUID,
		ToUID:     targetUID,
		Kind:      models.SignalKindLike,
		Status:    models.SignalStatusSent,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	created, err := s.Signals.PutIfAbsent(ctx, signal)
	if err != nil {
		return nil, fmt.Errorf("failed to record like: %w", err)
	}
	if !created {
		// Repeat like from the same side: silent no-op, no re-notify.
		return &EvaluateResult{}, nil
	}

	name := displayName(ctx, s.Profiles, actorUID)
	s.Notifier.Notify(ctx, targetUID, actorUID, name, false, models.NotificationTypeLike, fmt.Sprintf("%s liked you! 💛", name))
	return &EvaluateResult{}, nil
}

// ResolveMutual creates the Match for the pair via the deterministic-id
// conditional put. Both sides of a race converge on the same id; only the
// winning call notifies, so duplicate match notifications cannot occur.
func (s *MatchService) ResolveMutual(ctx context.Context, aUID, bUID string) (string, bool, error) {
	matchID := utils.MatchID(aUID, bUID)
	match := &models.Match{
		MatchID:   matchID,
		Users:     utils.SortedPair(aUID, bUID),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	created, err := s.Matches.CreateIfAbsent(ctx, match)
	if err != nil {
		return "", false, fmt.Errorf("failed to create match: %w", err)
	}

	if created {
		log.Printf("🎉 Match created: %s", matchID)
		aName := displayName(ctx, s.Profiles, aUID)
		bName := displayName(ctx, s.Profiles, bUID)
		s.Notifier.Notify(ctx, aUID, bUID, bName, false, models.NotificationTypeMatch, fmt.Sprintf("You matched with %s! Say Hi!", bName))
		s.Notifier.Notify(ctx, bUID, aUID, aName, false, models.NotificationTypeMatch, fmt.Sprintf("You matched with %s! Say Hi!", aName))
	}

	return matchID, created, nil
}

// pokeInbox nudges each user's live request inbox to refresh.
func (s *MatchService) pokeInbox(uids ...string) {
	if s.Hub == nil {
		return
	}
	for _, uid := range uids {
		s.Hub.Publish(stream.UserTopic(uid), "requests", nil)
	}
}
