package repository

import (
	"context"
	"sync"
	"time"

	"crm-console/internal/model"
)

// PermissionMirror persists permission sets per session so a restarted
// process can hydrate its cache without asking the CRM API again.
type PermissionMirror interface {
	Load(ctx context.Context, sessionKey string) (model.PermissionSet, bool, error)
	Save(ctx context.Context, sessionKey, userID string, set model.PermissionSet) error
	Delete(ctx context.Context, sessionKey string) error
	DeleteAll(ctx context.Context) (int64, error)
	// Prune removes mirrors last written before cutoff.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

type memoryEntry struct {
	set       model.PermissionSet
	updatedAt time.Time
}

type memoryMirror struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryMirror() PermissionMirror {
	return &memoryMirror{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *memoryMirror) Load(_ context.Context, sessionKey string) (model.PermissionSet, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[sessionKey]
	if !ok {
		return nil, false, nil
	}
	return entry.set.Clone(), true, nil
}

func (m *memoryMirror) Save(_ context.Context, sessionKey, _ string, set model.PermissionSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionKey] = memoryEntry{set: set.Clone(), updatedAt: m.now()}
	return nil
}

func (m *memoryMirror) Delete(_ context.Context, sessionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionKey)
	return nil
}

func (m *memoryMirror) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.entries))
	m.entries = make(map[string]memoryEntry)
	return n, nil
}

func (m *memoryMirror) Prune(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key, entry := range m.entries {
		if entry.updatedAt.Before(cutoff) {
			delete(m.entries, key)
			n++
		}
	}
	return n, nil
}
