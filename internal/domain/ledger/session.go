package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session is one admin viewer's mounted ledger: the record set fetched on
// mount plus the filter and page the viewer is on.
type Session struct {
	ID        string              `json:"id"`
	Records   []TransactionRecord `json:"records"`
	Filter    FilterState         `json:"filter"`
	Page      int                 `json:"page"`
	Timezone  string              `json:"timezone,omitempty"`
	Loaded    bool                `json:"loaded"`
	CreatedAt time.Time           `json:"created_at"`
}

// Filtered returns the records passing the current filter.
func (s *Session) Filtered() []TransactionRecord {
	return ApplyFilters(s.Records, s.Filter)
}

// TotalPages of the filtered set.
func (s *Session) TotalPages() int {
	return TotalPages(len(s.Filtered()), PageSize)
}

// SetFilter replaces the filter and returns to page 1.
func (s *Session) SetFilter(f FilterState) {
	s.Filter = f
	s.Page = 1
}

// Next advances one page; no-op on the last page.
func (s *Session) Next() {
	s.Page = ClampPage(s.Page+1, s.TotalPages())
}

// Previous goes back one page; no-op on page 1.
func (s *Session) Previous() {
	s.Page = ClampPage(s.Page-1, s.TotalPages())
}

// SetPage jumps to page, clamped to the available range.
func (s *Session) SetPage(page int) {
	s.Page = ClampPage(page, s.TotalPages())
}

// View renders the session in loc.
func (s *Session) View(loc *time.Location) RenderModel {
	if !s.Loaded {
		return LoadingView()
	}
	return View(s.Records, s.Filter, s.Page, loc)
}

// SessionStore persists sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// redisSessionStore keeps sessions as JSON with a sliding TTL.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "ledger:session:" + id
}

func (s *redisSessionStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.GetEx(ctx, sessionKey(id), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memorySessionStore is used when Redis is not configured.
type memorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionStore creates an in-process session store.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memorySessionStore) Save(ctx context.Context, sess *Session) error {
	// Stored encoded so callers never share the held slice.
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.entries[sess.ID] = memoryEntry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *memorySessionStore) Load(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	now := s.now()
	if ok && !now.Before(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	if ok {
		entry.expiresAt = now.Add(s.ttl)
		s.entries[id] = entry
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal(entry.data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.entries, id)
	return nil
}

// sweep drops expired entries; caller holds mu.
func (s *memorySessionStore) sweep(now time.Time) {
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
