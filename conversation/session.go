package conversation

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Tag identifies the multi-step dialog a user is in
type Tag string

const (
	TagNone             Tag = "none"
	TagWithdrawUsername Tag = "withdraw_username"
	TagWithdrawAmount   Tag = "withdraw_amount"
	TagChannelLink      Tag = "channel_link"
	TagChannelName      Tag = "channel_name"
	TagBroadcastText    Tag = "broadcast_text"
)

// Keys for data collected across turns
const (
	KeyPayoutUsername = "payout_username"
	KeyChannelLink    = "channel_link"
)

// Session is the open dialog of one user
type Session struct {
	UserID    int64
	Tag       Tag
	Data      map[string]string
	UpdatedAt time.Time
}

func (s *Session) clone() *Session {
	c := *s
	c.Data = make(map[string]string, len(s.Data))
	for k, v := range s.Data {
		c.Data[k] = v
	}
	return &c
}

// Store keeps sessions keyed by user. Get returns nil when there is no session.
type Store interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, userID int64) error
}

// MemoryStore is a process-local Store. Sessions idle longer than ttl are
// treated as absent and removed by Cleanup.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an in-memory session store. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) expired(session *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(session.UpdatedAt) > s.ttl
}

// Get returns a copy of the user's session
func (s *MemoryStore) Get(ctx context.Context, userID int64) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok || s.expired(session, s.now()) {
		return nil, nil
	}
	return session.clone(), nil
}

// Put stores a copy of session and stamps UpdatedAt
func (s *MemoryStore) Put(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := session.clone()
	stored.UpdatedAt = s.now()
	s.sessions[session.UserID] = stored
	return nil
}

// Delete removes the user's session
func (s *MemoryStore) Delete(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet cleaned
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup removes expired sessions and returns how many were dropped
func (s *MemoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for userID, session := range s.sessions {
		if s.expired(session, now) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done
func (s *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Cleanup(); removed > 0 {
				log.WithField("removed", removed).Debug("Expired conversation sessions")
			}
		}
	}
}
