package cache

import (
	"context"
	"sync"
	"time"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
)

// MemoryStore is an in-process session store with expiration
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	value      entities.Session
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store. Sessions expire ttl after
// their last Put.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		ttl:   ttl,
		done:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired(5 * time.Minute)

	return store
}

// Put stores a session, replacing any previous value for its id
func (ms *MemoryStore) Put(_ context.Context, session entities.Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[session.ID] = &memoryItem{
		value:      session,
		expireTime: time.Now().Add(ms.ttl),
	}
	return nil
}

// Get retrieves a session by id
func (ms *MemoryStore) Get(_ context.Context, id string) (*entities.Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[id]
	if !exists {
		return nil, usecaseErrors.ErrSessionNotFound
	}

	// Check if expired
	if time.Now().After(item.expireTime) {
		return nil, usecaseErrors.ErrSessionNotFound
	}

	session := item.value
	return &session, nil
}

// Delete removes a session
func (ms *MemoryStore) Delete(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, id)
	return nil
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() error {
	ms.once.Do(func() { close(ms.done) })
	return nil
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.done:
			return
		case <-ticker.C:
			ms.removeExpired(time.Now())
		}
	}
}

func (ms *MemoryStore) removeExpired(now time.Time) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for key, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, key)
		}
	}
}
