package model

import "time"

// UserRole determines what a user may do in the review flow
type UserRole string

const (
	RoleUser        UserRole = "user"
	RoleAdmin       UserRole = "admin"
	RoleFactChecker UserRole = "fact-checker"
)

// UserProfile holds the per-user record the engine reads for fan-out and
// writes submission/verification counters to
type UserProfile struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Email           string    `json:"email" yaml:"email"`
	Role            UserRole  `json:"role" yaml:"role"`
	Points          int       `json:"points" yaml:"points"`
	Badges          []string  `json:"badges,omitempty" yaml:"badges,omitempty"`
	ClaimsSubmitted int       `json:"claims_submitted" yaml:"claims_submitted"`
	ClaimsVerified  int       `json:"claims_verified" yaml:"claims_verified"`
	JoinedAt        time.Time `json:"joined_at" yaml:"joined_at"`
}

// IsAdmin reports whether the profile belongs to the admin cohort
func (p *UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
