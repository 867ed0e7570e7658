package services

import (
	"context"
	"errors"
	"sync"

	"buzzme_server/models"
)

var errFakePut = errors.New("put failed")

// In-memory repository fakes. All of them are mutex-guarded so the concurrency
// tests can hammer them from multiple goroutines.

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
}

func newFakeProfileRepo(profiles ...models.UserProfile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: make(map[string]models.UserProfile)}
	for _, p := range profiles {
		r.profiles[p.UID] = p
	}
	return r
}

func (r *fakeProfileRepo) Get(_ context.Context, uid string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, nil
	}
	copied := p
	return &copied, nil
}

func (r *fakeProfileRepo) FindByBuzzID(_ context.Context, buzzID string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.BuzzID == buzzID {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) SetLastSeen(_ context.Context, uid, lastSeen string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[uid]
	p.UID = uid
	p.LastSeen = lastSeen
	r.profiles[uid] = p
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]models.FriendRequest

	// findPendingErr injects lookup failures for specific pairs.
	findPendingErr func(fromUID, toUID string) error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]models.FriendRequest)}
}

func (r *fakeRequestRepo) Create(_ context.Context, req *models.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.RequestID] = *req
	return nil
}

func (r *fakeRequestRepo) Get(_ context.Context, requestID string) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok {
		return nil, nil
	}
	copied := req
	return &copied, nil
}

func (r *fakeRequestRepo) FindPending(_ context.Context, fromUID, toUID string) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findPendingErr != nil {
		if err := r.findPendingErr(fromUID, toUID); err != nil {
			return nil, err
		}
	}
	for _, req := range r.requests {
		if req.FromUID == fromUID && req.ToUID == toUID && req.Status == models.RequestStatusPending {
			copied := req
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRequestRepo) ListPendingTo(_ context.Context, toUID string) ([]models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FriendRequest
	for _, req := range r.requests {
		if req.ToUID == toUID && req.Status == models.RequestStatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, requestID)
	return nil
}

func (r *fakeRequestRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

type fakeSignalRepo struct {
	mu      sync.Mutex
	signals map[string]models.InterestSignal
}

func newFakeSignalRepo() *fakeSignalRepo {
	return &fakeSignalRepo{signals: make(map[string]models.InterestSignal)}
}

func signalKey(fromUID, toUID, kind string) string {
	return fromUID + "|" + models.SignalTargetKey(toUID, kind)
}

func (r *fakeSignalRepo) PutIfAbsent(_ context.Context, sig *models.InterestSignal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := signalKey(sig.FromUID, sig.ToUID, sig.Kind)
	if _, ok := r.signals[key]; ok {
		return false, nil
	}
	sig.TargetKey = models.SignalTargetKey(sig.ToUID, sig.Kind)
	r.signals[key] = *sig
	return true, nil
}

func (r *fakeSignalRepo) Get(_ context.Context, fromUID, toUID, kind string) (*models.InterestSignal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sig, ok := r.signals[signalKey(fromUID, toUID, kind)]
	if !ok {
		return nil, nil
	}
	copied := sig
	return &copied, nil
}

func (r *fakeSignalRepo) SetStatus(_ context.Context, fromUID, toUID, kind, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := signalKey(fromUID, toUID, kind)
	if sig, ok := r.signals[key]; ok {
		sig.Status = status
		r.signals[key] = sig
	}
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[string]models.Match
	creates int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]models.Match)}
}

func (r *fakeMatchRepo) CreateIfAbsent(_ context.Context, match *models.Match) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[match.MatchID]; ok {
		return false, nil
	}
	r.matches[match.MatchID] = *match
	r.creates++
	return true, nil
}

func (r *fakeMatchRepo) Get(_ context.Context, matchID string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[matchID]
	if !ok {
		return nil, nil
	}
	copied := match
	return &copied, nil
}

func (r *fakeMatchRepo) ListByUser(_ context.Context, uid string) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Match
	for _, match := range r.matches {
		if match.Has(uid) {
			out = append(out, match)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) RecordActivity(_ context.Context, matchID, at string, preview *models.MessagePreview) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match := r.matches[matchID]
	match.Seq++
	match.LastActivityAt = at
	match.LastMessage = preview
	r.matches[matchID] = match
	return match.Seq, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[string][]models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string][]models.Message)}
}

func (r *fakeMessageRepo) Put(_ context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.MatchID] = append(r.messages[msg.MatchID], *msg)
	return nil
}

func (r *fakeMessageRepo) Get(_ context.Context, matchID, messageID string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages[matchID] {
		if msg.MessageID == messageID {
			copied := msg
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) ListByMatch(_ context.Context, matchID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Message, len(r.messages[matchID]))
	copy(out, r.messages[matchID])
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string][]models.Notification
	failPut       bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string][]models.Notification)}
}

func (r *fakeNotificationRepo) Put(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failPut {
		return errFakePut
	}
	r.notifications[n.ToUID] = append(r.notifications[n.ToUID], *n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, toUID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.notifications[toUID]))
	copy(out, r.notifications[toUID])
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, toUID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.notifications[toUID]
	for i := range list {
		if list[i].NotificationID == notificationID {
			list[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) forUser(toUID string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.notifications[toUID]))
	copy(out, r.notifications[toUID])
	return out
}
