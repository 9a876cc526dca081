package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crecokenya/truthguard/internal/model"
	"github.com/crecokenya/truthguard/internal/store"
)

// Fanout emits notifications for lifecycle transitions. Calls are not
// idempotent: two calls append two notifications, so transition code guards
// against duplicate triggers before calling in here.
type Fanout struct {
	store store.Store
	log   *zap.SugaredLogger

	now   func() time.Time
	newID func() string
}

// NewFanout creates a fan-out over the given store
func NewFanout(st store.Store, log *zap.SugaredLogger) *Fanout {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Fanout{
		store: st,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Notify appends one unread notification for the user
func (f *Fanout) Notify(userID, claimID string, typ model.NotificationType, title, message string) error {
	n := model.Notification{
		ID:        f.newID(),
		UserID:    userID,
		ClaimID:   claimID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: f.now(),
	}

	if err := f.store.AppendNotification(n); err != nil {
		return fmt.Errorf("append notification for %s: %w", userID, err)
	}

	f.log.Debugw("notification sent", "user", userID, "claim", claimID, "type", typ)
	return nil
}

// NotifyAdmins resolves the admin cohort from user profiles and notifies
// each admin once. Returns the number of admins notified.
func (f *Fanout) NotifyAdmins(claimID, title, message string) (int, error) {
	profiles, err := f.store.ListUserProfiles()
	if err != nil {
		return 0, fmt.Errorf("list user profiles: %w", err)
	}

	notified := 0
	for _, p := range profiles {
		if !p.IsAdmin() {
			continue
		}
		if err := f.Notify(p.ID, claimID, model.NotifyClaimApproved, title, message); err != nil {
			return notified, err
		}
		notified++
	}

	return notified, nil
}
