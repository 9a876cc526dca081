package model

import "time"

// ClaimStatus is the fact-check verdict state of a claim
type ClaimStatus string

const (
	StatusPending      ClaimStatus = "pending"       // Awaiting review
	StatusTrue         ClaimStatus = "true"          // Verified true
	StatusFalse        ClaimStatus = "false"         // Verified false
	StatusMisleading   ClaimStatus = "misleading"    // Partially true but misleading
	StatusSatire       ClaimStatus = "satire"        // Originated as satire
	StatusNeedsContext ClaimStatus = "needs-context" // True but missing context
)

// ClaimCategory classifies the subject area of a claim
type ClaimCategory string

const (
	CategoryElections   ClaimCategory = "elections"
	CategoryGovernance  ClaimCategory = "governance"
	CategoryHealth      ClaimCategory = "health"
	CategorySecurity    ClaimCategory = "security"
	CategoryEconomy     ClaimCategory = "economy"
	CategoryEducation   ClaimCategory = "education"
	CategoryEnvironment ClaimCategory = "environment"
	CategorySocial      ClaimCategory = "social"
	CategoryTechnology  ClaimCategory = "technology"
	CategoryOther       ClaimCategory = "other"
)

// ClaimPriority indicates review urgency
type ClaimPriority string

const (
	PriorityLow    ClaimPriority = "low"
	PriorityMedium ClaimPriority = "medium"
	PriorityHigh   ClaimPriority = "high"
	PriorityUrgent ClaimPriority = "urgent"
)

// Claim represents one fact-checkable assertion
type Claim struct {
	ID          string        `json:"id" yaml:"id"`
	Content     string        `json:"content" yaml:"content"`
	Status      ClaimStatus   `json:"status" yaml:"status"`
	Category    ClaimCategory `json:"category" yaml:"category"`
	SubmittedBy string        `json:"submitted_by" yaml:"submitted_by"`
	SubmittedAt time.Time     `json:"submitted_at" yaml:"submitted_at"`
	VerifiedBy  string        `json:"verified_by,omitempty" yaml:"verified_by,omitempty"`
	Priority    ClaimPriority `json:"priority" yaml:"priority"`

	Verdict     string   `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	References  []string `json:"references,omitempty" yaml:"references,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	Approved          bool `json:"approved" yaml:"approved"`
	AIAnalyzed        bool `json:"ai_analyzed" yaml:"ai_analyzed"`
	AIPendingApproval bool `json:"ai_pending_approval" yaml:"ai_pending_approval"`
	PublishedToFeed   bool `json:"published_to_feed" yaml:"published_to_feed"`

	// DuplicateOf points to the primary claim this one was merged under.
	// Empty on the primary itself. DuplicateCount is tracked only on the
	// primary and equals 1 + merged submissions.
	DuplicateOf    string `json:"duplicate_of,omitempty" yaml:"duplicate_of,omitempty"`
	DuplicateCount int    `json:"duplicate_count" yaml:"duplicate_count"`

	Views        int      `json:"views" yaml:"views"`
	Likes        int      `json:"likes" yaml:"likes"`
	Shares       int      `json:"shares" yaml:"shares"`
	Trending     bool     `json:"trending" yaml:"trending"`
	BookmarkedBy []string `json:"bookmarked_by,omitempty" yaml:"bookmarked_by,omitempty"`
}

// IsPrimary reports whether the claim is the primary of its duplicate cluster
func (c *Claim) IsPrimary() bool {
	return c.DuplicateOf == ""
}

// ClaimUpdate is a partial update to a claim. Nil pointer fields mean
// "not part of this update", so cascading to a duplicate cluster can tell an
// unset field from one deliberately set to its zero value.
type ClaimUpdate struct {
	Status            *ClaimStatus   `json:"status,omitempty"`
	Verdict           *string        `json:"verdict,omitempty"`
	Explanation       *string        `json:"explanation,omitempty"`
	References        []string       `json:"references,omitempty"`
	Approved          *bool          `json:"approved,omitempty"`
	Priority          *ClaimPriority `json:"priority,omitempty"`
	VerifiedBy        *string        `json:"verified_by,omitempty"`
	AIAnalyzed        *bool          `json:"ai_analyzed,omitempty"`
	AIPendingApproval *bool          `json:"ai_pending_approval,omitempty"`
	PublishedToFeed   *bool          `json:"published_to_feed,omitempty"`
}

// EffectiveStatus returns the status a claim would have after this update
func (u *ClaimUpdate) EffectiveStatus(current ClaimStatus) ClaimStatus {
	if u.Status != nil {
		return *u.Status
	}
	return current
}

// HasVerdict reports whether the update carries a non-empty verdict
func (u *ClaimUpdate) HasVerdict() bool {
	return u.Verdict != nil && *u.Verdict != ""
}
