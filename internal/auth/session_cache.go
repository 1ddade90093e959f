package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spark/internal/cache"
)

const sessionKeyPrefix = "session:"

// CachedSession is the cached view of a session row. A Revoked entry is a
// tombstone left by logout or user removal.
type CachedSession struct {
	UserID    uint      `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked,omitempty"`
}

// SessionCacheInterface defines the interface for session cache operations.
type SessionCacheInterface interface {
	Get(ctx context.Context, sessionID string) (*CachedSession, bool)
	// Store caches a session unless an entry, such as a tombstone, exists.
	Store(ctx context.Context, sessionID string, session CachedSession) error
	// Revoke replaces entries with tombstones.
	Revoke(ctx context.Context, sessionIDs ...string) error
}

// SessionCache keeps session lookups in Redis in front of the database.
type SessionCache struct {
	cache *cache.Client
	ttl   time.Duration
}

// Ensure SessionCache implements SessionCacheInterface
var _ SessionCacheInterface = (*SessionCache)(nil)

// NewSessionCache creates a new session cache. Entries and tombstones expire
// after ttl.
func NewSessionCache(cache *cache.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{cache: cache, ttl: ttl}
}

// Get returns the cached entry, if any. Tombstones are returned with Revoked
// set.
func (s *SessionCache) Get(ctx context.Context, sessionID string) (*CachedSession, bool) {
	var session CachedSession
	if !s.cache.GetJSON(ctx, sessionKeyPrefix+sessionID, &session) {
		return nil, false
	}
	if !session.Revoked && session.UserID == 0 {
		return nil, false
	}
	return &session, true
}

// Store caches a session. It never overwrites an existing entry, so a fill
// racing a revocation cannot resurrect the session.
func (s *SessionCache) Store(ctx context.Context, sessionID string, session CachedSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.SetNX(ctx, sessionKeyPrefix+sessionID, payload, s.ttl)
}

// Revoke writes a tombstone for every session.
func (s *SessionCache) Revoke(ctx context.Context, sessionIDs ...string) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	payload, err := json.Marshal(CachedSession{Revoked: true})
	if err != nil {
		return fmt.Errorf("marshal tombstone: %w", err)
	}
	for _, id := range sessionIDs {
		if err := s.cache.Put(ctx, sessionKeyPrefix+id, payload, s.ttl); err != nil {
			return fmt.Errorf("revoke session %s: %w", id, err)
		}
	}
	return nil
}
