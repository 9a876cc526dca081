package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crecokenya/truthguard/internal/model"
	"github.com/crecokenya/truthguard/internal/similarity"
	"github.com/crecokenya/truthguard/internal/store"
	"github.com/crecokenya/truthguard/internal/worker"
)

var (
	// ErrEmptyContent is returned when a submission carries no visible text
	ErrEmptyContent = errors.New("claim content is empty")

	// ErrRateLimited is returned when a user exceeds the submission rate
	ErrRateLimited = errors.New("submission rate limit exceeded")
)

// scheduler is the deferred-analysis hook Submit fires for new claims
type scheduler interface {
	Schedule(claimID string)
}

// Engine drives claim deduplication, the review lifecycle, and notification
// fan-out over an injected store
type Engine struct {
	store   store.Store
	grouper *similarity.Grouper
	fanout  *Fanout
	limiter *worker.Limiter
	sched   scheduler
	cfg     *model.Config
	log     *zap.SugaredLogger

	now   func() time.Time
	newID func() string
}

// New creates an engine over the given store
func New(st store.Store, cfg *model.Config, log *zap.SugaredLogger) *Engine {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Engine{
		store:   st,
		grouper: similarity.NewGrouper(),
		fanout:  NewFanout(st, log),
		limiter: worker.NewLimiter(cfg.Submit.RatePerMinute, cfg.Submit.Burst),
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// AttachScheduler wires the deferred analysis scheduler. Without one,
// submissions skip the simulated analysis step.
func (e *Engine) AttachScheduler(s scheduler) {
	e.sched = s
}

// Fanout exposes the engine's notification fan-out
func (e *Engine) Fanout() *Fanout {
	return e.fanout
}

// SubmitRequest carries a new claim submission
type SubmitRequest struct {
	Content     string
	Category    model.ClaimCategory
	SubmittedBy string
	Priority    model.ClaimPriority
	Tags        []string
	References  []string
}

// SubmitResult is the effective record for a submission. Merged means the
// submission matched an existing claim and no new record was created.
type SubmitResult struct {
	Claim  model.Claim
	Merged bool
}

// Submit files a claim. If the content scores as a duplicate of an existing
// claim, the first match absorbs the submission: its duplicate count grows
// and it becomes the effective record. Otherwise a new pending claim is
// created, the submitter is notified, and the analysis step is scheduled.
func (e *Engine) Submit(req SubmitRequest) (*SubmitResult, error) {
	content := similarity.StripHTML(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if e.limiter != nil && !e.limiter.Allow(req.SubmittedBy) {
		return nil, fmt.Errorf("user %s: %w", req.SubmittedBy, ErrRateLimited)
	}

	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}

	matches := e.grouper.FindSimilar(content, claims, e.cfg.Similarity.Threshold)
	if len(matches) > 0 {
		return e.mergeSubmission(req, matches[0], claims)
	}

	claim := model.Claim{
		ID:             e.newID(),
		Content:        content,
		Status:         model.StatusPending,
		Category:       req.Category,
		SubmittedBy:    req.SubmittedBy,
		SubmittedAt:    e.now(),
		Priority:       req.Priority,
		Tags:           req.Tags,
		References:     req.References,
		DuplicateCount: 1,
	}
	if claim.Priority == "" {
		claim.Priority = model.PriorityMedium
	}
	if claim.Category == "" {
		claim.Category = model.CategoryOther
	}

	// Newest first, matching feed order
	updated := make([]model.Claim, 0, len(claims)+1)
	updated = append(updated, claim)
	updated = append(updated, claims...)

	if err := e.store.PutClaims(updated); err != nil {
		return nil, fmt.Errorf("put claims: %w", err)
	}

	if err := e.fanout.Notify(req.SubmittedBy, claim.ID, model.NotifyClaimApproved,
		"Claim Submitted", "Your claim has been submitted for review"); err != nil {
		return nil, err
	}

	e.bumpSubmitted(req.SubmittedBy)

	if e.sched != nil {
		e.sched.Schedule(claim.ID)
	}

	e.log.Infow("claim submitted", "claim", claim.ID, "user", req.SubmittedBy, "category", claim.Category)
	return &SubmitResult{Claim: claim}, nil
}

// mergeSubmission folds a duplicate submission into the first match
func (e *Engine) mergeSubmission(req SubmitRequest, match model.Claim, claims []model.Claim) (*SubmitResult, error) {
	var merged model.Claim
	for i := range claims {
		if claims[i].ID == match.ID {
			if claims[i].DuplicateCount < 1 {
				claims[i].DuplicateCount = 1
			}
			claims[i].DuplicateCount++
			merged = claims[i]
			break
		}
	}

	if err := e.store.PutClaims(claims); err != nil {
		return nil, fmt.Errorf("put claims: %w", err)
	}

	if err := e.fanout.Notify(req.SubmittedBy, merged.ID, model.NotifyClaimApproved,
		"Similar Claim Found", "Your claim was similar to an existing one. You'll be notified when it's reviewed."); err != nil {
		return nil, err
	}

	e.bumpSubmitted(req.SubmittedBy)

	e.log.Infow("claim merged into existing", "claim", merged.ID, "user", req.SubmittedBy, "duplicates", merged.DuplicateCount)
	return &SubmitResult{Claim: merged, Merged: true}, nil
}

// ApplyUpdate writes a partial update onto the primary claim, cascades the
// shareable fields to every claim similar to the primary's pre-update
// content, and fans out a verdict-published notification across the cluster
// when this update publishes the first verdict.
func (e *Engine) ApplyUpdate(primaryID string, upd model.ClaimUpdate) (*model.Claim, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}

	idx := -1
	for i := range claims {
		if claims[i].ID == primaryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("claim %s: %w", primaryID, store.ErrNotFound)
	}

	primary := claims[idx]
	preStatus := primary.Status

	// Similar set against the pre-update content. The primary matches
	// itself at score 1.0, so it is excluded here and handled separately;
	// otherwise its submitter would be notified twice.
	similarIDs := make(map[string]bool)
	var cluster []model.Claim
	for _, c := range e.grouper.FindSimilar(primary.Content, claims, e.cfg.Similarity.Threshold) {
		if c.ID == primaryID {
			continue
		}
		similarIDs[c.ID] = true
	}

	applyUpdate(&claims[idx], upd)

	for i := range claims {
		if !similarIDs[claims[i].ID] {
			continue
		}
		cascadeUpdate(&claims[i], upd)
		claims[i].DuplicateOf = primaryID
		cluster = append(cluster, claims[i])
	}

	if err := e.store.PutClaims(claims); err != nil {
		return nil, fmt.Errorf("put claims: %w", err)
	}

	// First verdict only: a later edit of an already-reviewed claim must
	// not re-notify the cluster.
	newStatus := upd.EffectiveStatus(preStatus)
	if upd.HasVerdict() && newStatus != model.StatusPending && preStatus == model.StatusPending {
		message := fmt.Sprintf("A claim similar to yours has been fact-checked: %s", newStatus)
		if err := e.fanout.Notify(claims[idx].SubmittedBy, primaryID, model.NotifyVerdictPublished,
			"Verdict Published", message); err != nil {
			return nil, err
		}
		for _, member := range cluster {
			if err := e.fanout.Notify(member.SubmittedBy, member.ID, model.NotifyVerdictPublished,
				"Verdict Published", message); err != nil {
				return nil, err
			}
		}
		e.log.Infow("verdict published", "claim", primaryID, "status", newStatus, "cluster_size", len(cluster)+1)
	}

	if upd.VerifiedBy != nil && *upd.VerifiedBy != "" {
		e.bumpVerified(*upd.VerifiedBy)
	}

	updated := claims[idx]
	return &updated, nil
}

// ApproveAIAnalysis publishes a claim whose simulated analysis awaited human
// sign-off. Approval targets exactly one record; it never cascades.
func (e *Engine) ApproveAIAnalysis(claimID, adminID string) (*model.Claim, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}

	for i := range claims {
		if claims[i].ID != claimID {
			continue
		}

		claims[i].Approved = true
		claims[i].PublishedToFeed = true
		claims[i].AIPendingApproval = false
		claims[i].VerifiedBy = adminID

		if err := e.store.PutClaims(claims); err != nil {
			return nil, fmt.Errorf("put claims: %w", err)
		}

		if err := e.fanout.Notify(claims[i].SubmittedBy, claimID, model.NotifyVerdictPublished,
			"AI Analysis Approved", "Your claim has been verified and published"); err != nil {
			return nil, err
		}

		e.bumpVerified(adminID)

		e.log.Infow("ai analysis approved", "claim", claimID, "admin", adminID)
		approved := claims[i]
		return &approved, nil
	}

	return nil, fmt.Errorf("claim %s: %w", claimID, store.ErrNotFound)
}

// RejectAIAnalysis clears the pending-approval flag and returns the claim to
// the manual review queue. No notification fires here: there is no verdict
// yet at this stage.
func (e *Engine) RejectAIAnalysis(claimID string) (*model.Claim, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}

	for i := range claims {
		if claims[i].ID != claimID {
			continue
		}

		claims[i].AIPendingApproval = false
		claims[i].Status = model.StatusPending

		if err := e.store.PutClaims(claims); err != nil {
			return nil, fmt.Errorf("put claims: %w", err)
		}

		e.log.Infow("ai analysis rejected", "claim", claimID)
		rejected := claims[i]
		return &rejected, nil
	}

	return nil, fmt.Errorf("claim %s: %w", claimID, store.ErrNotFound)
}

// Claim returns a single claim by id
func (e *Engine) Claim(claimID string) (*model.Claim, error) {
	return e.store.GetClaim(claimID)
}

// Claims returns every stored claim, newest first
func (e *Engine) Claims() ([]model.Claim, error) {
	return e.store.ListClaims()
}

// Delete removes a claim from the store. A pending analysis timer for the
// claim detects the missing record at fire time and does nothing.
func (e *Engine) Delete(claimID string) error {
	return e.store.DeleteClaim(claimID)
}

// ClaimsByCategory returns claims in the given category
func (e *Engine) ClaimsByCategory(category model.ClaimCategory) ([]model.Claim, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, err
	}

	var filtered []model.Claim
	for _, c := range claims {
		if c.Category == category {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// SearchClaims returns claims whose content, verdict, or tags contain the
// query, case-insensitive
func (e *Engine) SearchClaims(query string) ([]model.Claim, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matched []model.Claim
	for _, c := range claims {
		if strings.Contains(strings.ToLower(c.Content), q) ||
			strings.Contains(strings.ToLower(c.Verdict), q) ||
			tagsContain(c.Tags, q) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// AIPendingClaims returns claims that completed the analysis step and await
// human sign-off
func (e *Engine) AIPendingClaims() ([]model.Claim, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, err
	}

	var pending []model.Claim
	for _, c := range claims {
		if c.AIPendingApproval && !c.Approved {
			pending = append(pending, c)
		}
	}
	return pending, nil
}

// applyUpdate writes every field the update carries onto the primary claim
func applyUpdate(claim *model.Claim, upd model.ClaimUpdate) {
	if upd.Status != nil {
		claim.Status = *upd.Status
	}
	if upd.Verdict != nil {
		claim.Verdict = *upd.Verdict
	}
	if upd.Explanation != nil {
		claim.Explanation = *upd.Explanation
	}
	if upd.References != nil {
		claim.References = upd.References
	}
	if upd.Approved != nil {
		claim.Approved = *upd.Approved
	}
	if upd.Priority != nil {
		claim.Priority = *upd.Priority
	}
	if upd.VerifiedBy != nil {
		claim.VerifiedBy = *upd.VerifiedBy
	}
	if upd.AIAnalyzed != nil {
		claim.AIAnalyzed = *upd.AIAnalyzed
	}
	if upd.AIPendingApproval != nil {
		claim.AIPendingApproval = *upd.AIPendingApproval
	}
	if upd.PublishedToFeed != nil {
		claim.PublishedToFeed = *upd.PublishedToFeed
	}
}

// cascadeUpdate copies the shareable subset onto a duplicate-cluster member.
// Identity and engagement fields are never cascaded, and fields the update
// left unset keep the member's own prior values.
func cascadeUpdate(claim *model.Claim, upd model.ClaimUpdate) {
	if upd.Status != nil {
		claim.Status = *upd.Status
	}
	if upd.Verdict != nil {
		claim.Verdict = *upd.Verdict
	}
	if upd.Explanation != nil {
		claim.Explanation = *upd.Explanation
	}
	if upd.References != nil {
		claim.References = upd.References
	}
	if upd.Approved != nil {
		claim.Approved = *upd.Approved
	}
}

// bumpSubmitted increments the submitter's counter, creating the profile on
// first contact. Counter failures never fail the operation that triggered
// them.
func (e *Engine) bumpSubmitted(userID string) {
	if err := e.adjustProfile(userID, func(p *model.UserProfile) {
		p.ClaimsSubmitted++
	}); err != nil {
		e.log.Warnw("update submitter profile", "user", userID, "error", err)
	}
}

// bumpVerified increments the reviewer's verification counter
func (e *Engine) bumpVerified(userID string) {
	if err := e.adjustProfile(userID, func(p *model.UserProfile) {
		p.ClaimsVerified++
	}); err != nil {
		e.log.Warnw("update reviewer profile", "user", userID, "error", err)
	}
}

func (e *Engine) adjustProfile(userID string, mutate func(*model.UserProfile)) error {
	profiles, err := e.store.ListUserProfiles()
	if err != nil {
		return err
	}

	for i := range profiles {
		if profiles[i].ID == userID {
			mutate(&profiles[i])
			return e.store.PutUserProfiles(profiles)
		}
	}

	profile := model.UserProfile{
		ID:       userID,
		Name:     "User",
		Role:     model.RoleUser,
		Badges:   []string{"Rookie"},
		JoinedAt: e.now(),
	}
	mutate(&profile)
	return e.store.PutUserProfiles(append(profiles, profile))
}

func tagsContain(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
