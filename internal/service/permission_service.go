package service

import (
	"context"
	"sync"

	"crm-console/internal/model"
	"crm-console/internal/repository"
	"crm-console/pkg/logger"
)

// PermissionStore answers "may this session do X on category Y" from a cache
// that is only filled by an explicit Fetch. Reads never reach the CRM API and
// an unknown session is granted nothing.
type PermissionStore interface {
	// Fetch asks the CRM API once. On failure it logs and returns an empty
	// set, leaving whatever was cached before untouched.
	Fetch(ctx context.Context, sess model.Session) model.PermissionSet
	// Get returns the cached set, hydrating from the mirror when memory is
	// empty. It never fails.
	Get(ctx context.Context, sessionKey string) model.PermissionSet
	Can(ctx context.Context, sessionKey, category, action string) bool
	// Clear wipes memory and the mirror for the session.
	Clear(ctx context.Context, sessionKey string) error
}

type permissionStore struct {
	api    PermissionAPI
	mirror repository.PermissionMirror
	log    *logger.Logger

	mu    sync.RWMutex
	cache map[string]model.PermissionSet
}

func NewPermissionStore(api PermissionAPI, mirror repository.PermissionMirror) PermissionStore {
	return &permissionStore{
		api:    api,
		mirror: mirror,
		log:    logger.New("PERMISSIONS"),
		cache:  make(map[string]model.PermissionSet),
	}
}

func (s *permissionStore) Fetch(ctx context.Context, sess model.Session) model.PermissionSet {
	set, err := s.api.Permissions(ctx, sess.Token)
	if err != nil {
		s.log.Warn("permission fetch failed for session %s: %v", shortKey(sess.Key), err)
		return model.PermissionSet{}
	}
	if set == nil {
		set = model.PermissionSet{}
	}

	s.mu.Lock()
	s.cache[sess.Key] = set.Clone()
	s.mu.Unlock()

	if err := s.mirror.Save(ctx, sess.Key, sess.UserID, set); err != nil {
		s.log.Warn("permission mirror write failed for session %s: %v", shortKey(sess.Key), err)
	}
	return set.Clone()
}

func (s *permissionStore) Get(ctx context.Context, sessionKey string) model.PermissionSet {
	s.mu.RLock()
	set, ok := s.cache[sessionKey]
	s.mu.RUnlock()
	if ok {
		return set.Clone()
	}

	mirrored, found, err := s.mirror.Load(ctx, sessionKey)
	if err != nil {
		s.log.Warn("permission mirror read failed for session %s: %v", shortKey(sessionKey), err)
		return model.PermissionSet{}
	}
	if !found {
		return model.PermissionSet{}
	}

	s.mu.Lock()
	// a Fetch that landed meanwhile is newer than the mirror
	if current, ok := s.cache[sessionKey]; ok {
		s.mu.Unlock()
		return current.Clone()
	}
	s.cache[sessionKey] = mirrored.Clone()
	s.mu.Unlock()
	return mirrored.Clone()
}

func (s *permissionStore) Can(ctx context.Context, sessionKey, category, action string) bool {
	return s.Get(ctx, sessionKey).Can(category, action)
}

func (s *permissionStore) Clear(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	delete(s.cache, sessionKey)
	s.mu.Unlock()

	if err := s.mirror.Delete(ctx, sessionKey); err != nil {
		return s.log.Error("clear permission mirror", err)
	}
	return nil
}

func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
