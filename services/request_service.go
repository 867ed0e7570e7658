package services

import (
	"context"
	"log"
	"sort"

	"buzzme_server/models"
	"buzzme_server/repository"

	apperrors "buzzme_server/pkg/errors"
)

// RequestService serves the pending-request inbox and the two terminal
// transitions. Both accept and reject end in deletion: there is no archived
// request state to resurrect.
type RequestService struct {
	Requests repository.RequestRepository
	Profiles repository.ProfileRepository
	Resolver *MatchService
}

// IncomingRequest is a pending request enriched with the sender's profile for
// the activity view.
type IncomingRequest struct {
	models.FriendRequest
	Sender *models.UserProfile `json:"sender,omitempty"`
}

// ListIncoming returns the pending requests addressed to uid, newest first.
func (s *RequestService) ListIncoming(ctx context.Context, uid string) ([]IncomingRequest, error) {
	if uid == "" {
		return nil, apperrors.InvalidArg("uid is required")
	}

	requests, err := s.Requests.ListPendingTo(ctx, uid)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt > requests[j].CreatedAt
	})

	incoming := make([]IncomingRequest, 0, len(requests))
	for _, req := range requests {
		sender, err := s.Profiles.Get(ctx, req.FromUID)
		if err != nil {
			log.Printf("⚠️ Failed to load sender profile %s: %v", req.FromUID, err)
		}
		incoming = append(incoming, IncomingRequest{FriendRequest: req, Sender: sender})
	}
	return incoming, nil
}

// Accept consumes the pending request into a Match. Only the recipient may
// accept. The request record is deleted; the match creation itself goes
// through the resolver's idempotent path, so a racing evaluate from the other
// side cannot double-create.
func (s *RequestService) Accept(ctx context.Context, requestID, actorUID string) (*EvaluateResult, error) {
	req, err := s.Requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.NotFound("request not found")
	}
	if req.ToUID != actorUID {
		return nil, apperrors.InvalidArg("only the recipient can accept a request")
	}

	matchID, created, err := s.Resolver.ResolveMutual(ctx, req.FromUID, req.ToUID)
	if err != nil {
		return nil, err
	}

	if err := s.Requests.Delete(ctx, requestID); err != nil {
		log.Printf("⚠️ Failed to delete accepted request %s: %v", requestID, err)
	}
	s.Resolver.pokeInbox(req.FromUID, req.ToUID)

	return &EvaluateResult{Matched: true, MatchID: matchID, Created: created}, nil
}

// Reject discards the pending request. The transition is terminal: a later
// request from the same sender is a brand-new record, not a reopening.
func (s *RequestService) Reject(ctx context.Context, requestID, actorUID string) error {
	req, err := s.Requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return apperrors.NotFound("request not found")
	}
	if req.ToUID != actorUID {
		return apperrors.InvalidArg("only the recipient can reject a request")
	}

	if err := s.Requests.Delete(ctx, requestID); err != nil {
		return err
	}
	s.Resolver.pokeInbox(req.ToUID)
	return nil
}
