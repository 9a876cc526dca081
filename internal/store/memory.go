package store

import (
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/crecokenya/truthguard/internal/model"
)

const (
	keyClaims        = "truthguard:claims"
	keyNotifications = "truthguard:notifications"
	keyProfiles      = "truthguard:profiles"
)

// MemoryStore keeps all collections in an in-process cache. The mutex
// serializes whole read-modify-write cycles, not just single cache calls.
type MemoryStore struct {
	cache *gocache.Cache
	mu    sync.Mutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// ListClaims returns all claims in insertion order, newest first
func (s *MemoryStore) ListClaims() ([]model.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyClaims(s.claims()), nil
}

// PutClaims replaces the whole claim collection
func (s *MemoryStore) PutClaims(claims []model.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(keyClaims, copyClaims(claims), gocache.NoExpiration)
	return nil
}

// GetClaim returns the claim with the given id, or ErrNotFound
func (s *MemoryStore) GetClaim(id string) (*model.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.claims() {
		if c.ID == id {
			claim := c
			return &claim, nil
		}
	}
	return nil, fmt.Errorf("claim %s: %w", id, ErrNotFound)
}

// DeleteClaim removes the claim with the given id, or returns ErrNotFound
func (s *MemoryStore) DeleteClaim(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims := s.claims()
	kept := make([]model.Claim, 0, len(claims))
	found := false
	for _, c := range claims {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("claim %s: %w", id, ErrNotFound)
	}

	s.cache.Set(keyClaims, kept, gocache.NoExpiration)
	return nil
}

// ListNotifications returns notifications for the given user, newest first.
// An empty userID returns every notification.
func (s *MemoryStore) ListNotifications(userID string) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.notifications()
	if userID == "" {
		return append([]model.Notification(nil), all...), nil
	}

	var filtered []model.Notification
	for _, n := range all {
		if n.UserID == userID {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// AppendNotification prepends a notification so listings are newest first
func (s *MemoryStore) AppendNotification(n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.notifications()
	updated := make([]model.Notification, 0, len(all)+1)
	updated = append(updated, n)
	updated = append(updated, all...)
	s.cache.Set(keyNotifications, updated, gocache.NoExpiration)
	return nil
}

// MarkNotificationRead marks a single notification read
func (s *MemoryStore) MarkNotificationRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.notifications()
	for i := range all {
		if all[i].ID == id {
			all[i].Read = true
			s.cache.Set(keyNotifications, all, gocache.NoExpiration)
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

// ListUserProfiles returns all user profiles
func (s *MemoryStore) ListUserProfiles() ([]model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.UserProfile(nil), s.profiles()...), nil
}

// PutUserProfiles replaces the whole profile collection
func (s *MemoryStore) PutUserProfiles(profiles []model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(keyProfiles, append([]model.UserProfile(nil), profiles...), gocache.NoExpiration)
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}

// claims reads the raw claim slice; callers must hold the mutex
func (s *MemoryStore) claims() []model.Claim {
	if val, found := s.cache.Get(keyClaims); found {
		return val.([]model.Claim)
	}
	return nil
}

func (s *MemoryStore) notifications() []model.Notification {
	if val, found := s.cache.Get(keyNotifications); found {
		return val.([]model.Notification)
	}
	return nil
}

func (s *MemoryStore) profiles() []model.UserProfile {
	if val, found := s.cache.Get(keyProfiles); found {
		return val.([]model.UserProfile)
	}
	return nil
}

// copyClaims returns a shallow copy so callers never alias cached slices
func copyClaims(claims []model.Claim) []model.Claim {
	return append([]model.Claim(nil), claims...)
}
