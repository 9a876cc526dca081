package store

import (
	"errors"

	"github.com/crecokenya/truthguard/internal/model"
)

// ErrNotFound is returned when a referenced record is absent from the store
var ErrNotFound = errors.New("record not found")

// Store defines the keyed persistence the engine depends on. Claims are
// read and written as whole collections (read-modify-write-all); the store
// is expected to serialize those cycles. Notifications are append-only from
// the engine's side. Implementations: MemoryStore, SQLiteStore.
type Store interface {
	ListClaims() ([]model.Claim, error)
	PutClaims(claims []model.Claim) error
	GetClaim(id string) (*model.Claim, error)
	DeleteClaim(id string) error

	ListNotifications(userID string) ([]model.Notification, error)
	AppendNotification(n model.Notification) error
	MarkNotificationRead(id string) error

	ListUserProfiles() ([]model.UserProfile, error)
	PutUserProfiles(profiles []model.UserProfile) error

	Close() error
}
