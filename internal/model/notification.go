package model

import "time"

// NotificationType classifies a user-facing event
type NotificationType string

const (
	NotifyVerdictPublished NotificationType = "verdict_published"
	NotifyClaimApproved    NotificationType = "claim_approved"
	NotifyClaimRejected    NotificationType = "claim_rejected"
	NotifyTrending         NotificationType = "trending"
)

// Notification represents one user-facing event. Created by the fan-out
// engine, marked read by the UI, never deleted by the core.
type Notification struct {
	ID        string           `json:"id" yaml:"id"`
	UserID    string           `json:"user_id" yaml:"user_id"`
	ClaimID   string           `json:"claim_id" yaml:"claim_id"`
	Type      NotificationType `json:"type" yaml:"type"`
	Title     string           `json:"title" yaml:"title"`
	Message   string           `json:"message" yaml:"message"`
	Read      bool             `json:"read" yaml:"read"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at"`
}
