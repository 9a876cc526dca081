package engine

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/crecokenya/truthguard/internal/model"
	"github.com/crecokenya/truthguard/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.MemoryStore) {
	t.Helper()

	st := store.NewMemoryStore()
	cfg := model.DefaultConfig()
	cfg.Submit.RatePerMinute = 60000
	cfg.Submit.Burst = 1000

	return New(st, cfg, zap.NewNop().Sugar()), st
}

func notificationsOfType(t *testing.T, st store.Store, typ model.NotificationType) []model.Notification {
	t.Helper()

	all, err := st.ListNotifications("")
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}

	var matched []model.Notification
	for _, n := range all {
		if n.Type == typ {
			matched = append(matched, n)
		}
	}
	return matched
}

func statusPtr(s model.ClaimStatus) *model.ClaimStatus { return &s }
func strPtr(s string) *string                          { return &s }

func TestSubmit_NewClaim(t *testing.T) {
	eng, st := newTestEngine(t)

	res, err := eng.Submit(SubmitRequest{
		Content:     "County X built 40 new schools this year",
		Category:    model.CategoryEducation,
		SubmittedBy: "user1",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.Merged {
		t.Errorf("expected new claim, got merged")
	}

	claim := res.Claim
	if claim.Status != model.StatusPending {
		t.Errorf("status = %s, want pending", claim.Status)
	}
	if claim.DuplicateCount != 1 {
		t.Errorf("duplicateCount = %d, want 1", claim.DuplicateCount)
	}
	if claim.Approved || claim.AIAnalyzed || claim.PublishedToFeed {
		t.Errorf("new claim must start unapproved and unanalyzed")
	}

	claims, _ := st.ListClaims()
	if len(claims) != 1 {
		t.Fatalf("expected 1 stored claim, got %d", len(claims))
	}

	submitted, err := st.ListNotifications("user1")
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(submitted) != 1 {
		t.Fatalf("expected exactly 1 notification for submitter, got %d", len(submitted))
	}
	if submitted[0].ClaimID != claim.ID {
		t.Errorf("notification references claim %s, want %s", submitted[0].ClaimID, claim.ID)
	}

	profiles, _ := st.ListUserProfiles()
	if len(profiles) != 1 || profiles[0].ClaimsSubmitted != 1 {
		t.Errorf("expected submitter profile with 1 submission, got %+v", profiles)
	}
}

func TestSubmit_DuplicateMerges(t *testing.T) {
	eng, st := newTestEngine(t)

	first, err := eng.Submit(SubmitRequest{
		Content:     "Kenya's GDP grew by 15% last quarter",
		Category:    model.CategoryEconomy,
		SubmittedBy: "user1",
	})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second, err := eng.Submit(SubmitRequest{
		Content:     "Kenya's GDP grew by 15% last quarter",
		Category:    model.CategoryEconomy,
		SubmittedBy: "user2",
	})
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	if !second.Merged {
		t.Fatalf("expected identical content to merge")
	}
	if second.Claim.ID != first.Claim.ID {
		t.Errorf("merged into claim %s, want %s", second.Claim.ID, first.Claim.ID)
	}
	if second.Claim.DuplicateCount != 2 {
		t.Errorf("duplicateCount = %d, want 2", second.Claim.DuplicateCount)
	}

	claims, _ := st.ListClaims()
	if len(claims) != 1 {
		t.Errorf("total claim count changed: got %d, want 1", len(claims))
	}

	// The duplicate submitter is still told their claim was received
	merged, _ := st.ListNotifications("user2")
	if len(merged) != 1 {
		t.Errorf("expected 1 notification for duplicate submitter, got %d", len(merged))
	}
}

func TestSubmit_EmptyContent(t *testing.T) {
	eng, st := newTestEngine(t)

	cases := []string{"", "   ", "<div><span></span></div>"}
	for _, content := range cases {
		_, err := eng.Submit(SubmitRequest{Content: content, SubmittedBy: "user1"})
		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("submit(%q) error = %v, want ErrEmptyContent", content, err)
		}
	}

	// Rejected before any store write
	claims, _ := st.ListClaims()
	if len(claims) != 0 {
		t.Errorf("expected no claims stored, got %d", len(claims))
	}
	all, _ := st.ListNotifications("")
	if len(all) != 0 {
		t.Errorf("expected no notifications, got %d", len(all))
	}
}

func TestSubmit_StripsHTML(t *testing.T) {
	eng, _ := newTestEngine(t)

	res, err := eng.Submit(SubmitRequest{
		Content:     "<p>The budget was <b>doubled</b> this year</p>",
		SubmittedBy: "user1",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if res.Claim.Content != "The budget was doubled this year" {
		t.Errorf("content = %q, want stripped text", res.Claim.Content)
	}

	// A plain-text resubmission of the same assertion must merge
	second, err := eng.Submit(SubmitRequest{
		Content:     "The budget was doubled this year",
		SubmittedBy: "user2",
	})
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if !second.Merged {
		t.Errorf("expected plain-text duplicate of HTML submission to merge")
	}
}

func TestSubmit_RateLimited(t *testing.T) {
	st := store.NewMemoryStore()
	cfg := model.DefaultConfig()
	cfg.Submit.RatePerMinute = 1
	cfg.Submit.Burst = 1
	eng := New(st, cfg, zap.NewNop().Sugar())

	if _, err := eng.Submit(SubmitRequest{Content: "first unique assertion about roads", SubmittedBy: "user1"}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := eng.Submit(SubmitRequest{Content: "second unique assertion about hospitals", SubmittedBy: "user1"})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited", err)
	}

	// Other users are unaffected
	if _, err := eng.Submit(SubmitRequest{Content: "third unique assertion about schools", SubmittedBy: "user2"}); err != nil {
		t.Errorf("other user's submit failed: %v", err)
	}
}

// clusterFixture installs a pending primary and two claims with matching
// content from different submitters
func clusterFixture(t *testing.T, st store.Store) {
	t.Helper()

	content := "Kenya's GDP grew by 15% last quarter"
	now := time.Now()
	err := st.PutClaims([]model.Claim{
		{ID: "p", Content: content, Status: model.StatusPending, SubmittedBy: "user1", SubmittedAt: now, DuplicateCount: 3, Views: 10},
		{ID: "d1", Content: content, Status: model.StatusPending, SubmittedBy: "user2", SubmittedAt: now, DuplicateCount: 1, Views: 20, Explanation: "kept"},
		{ID: "d2", Content: content, Status: model.StatusPending, SubmittedBy: "user3", SubmittedAt: now, DuplicateCount: 1, Views: 30},
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
}

func TestApplyUpdate_CascadeAndFanout(t *testing.T) {
	eng, st := newTestEngine(t)
	clusterFixture(t, st)

	updated, err := eng.ApplyUpdate("p", model.ClaimUpdate{
		Status:  statusPtr(model.StatusFalse),
		Verdict: strPtr("Debunked"),
	})
	if err != nil {
		t.Fatalf("apply update failed: %v", err)
	}

	if updated.Status != model.StatusFalse || updated.Verdict != "Debunked" {
		t.Errorf("primary not updated: %+v", updated)
	}

	claims, _ := st.ListClaims()
	byID := make(map[string]model.Claim)
	for _, c := range claims {
		byID[c.ID] = c
	}

	for _, id := range []string{"d1", "d2"} {
		dup := byID[id]
		if dup.Status != model.StatusFalse {
			t.Errorf("%s status = %s, want cascaded false", id, dup.Status)
		}
		if dup.Verdict != "Debunked" {
			t.Errorf("%s verdict = %q, want cascaded verdict", id, dup.Verdict)
		}
		if dup.DuplicateOf != "p" {
			t.Errorf("%s duplicateOf = %q, want p", id, dup.DuplicateOf)
		}
	}

	// Fields absent from the update keep their prior values
	if byID["d1"].Explanation != "kept" {
		t.Errorf("cascade overwrote explanation the update never set")
	}

	// Identity and engagement fields are never cascaded
	if byID["d1"].SubmittedBy != "user2" || byID["d1"].Views != 20 || byID["d1"].DuplicateCount != 1 {
		t.Errorf("cascade touched protected fields: %+v", byID["d1"])
	}
	if byID["p"].DuplicateOf != "" {
		t.Errorf("primary gained a duplicateOf back-reference")
	}

	published := notificationsOfType(t, st, model.NotifyVerdictPublished)
	if len(published) != 3 {
		t.Fatalf("expected 3 verdict-published notifications, got %d", len(published))
	}

	recipients := make(map[string]bool)
	for _, n := range published {
		recipients[n.UserID] = true
	}
	for _, user := range []string{"user1", "user2", "user3"} {
		if !recipients[user] {
			t.Errorf("cluster member %s never notified", user)
		}
	}
}

func TestApplyUpdate_NoRepeatFanout(t *testing.T) {
	eng, st := newTestEngine(t)
	clusterFixture(t, st)

	if _, err := eng.ApplyUpdate("p", model.ClaimUpdate{
		Status:  statusPtr(model.StatusFalse),
		Verdict: strPtr("Debunked"),
	}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	before := len(notificationsOfType(t, st, model.NotifyVerdictPublished))

	// Editing an already-reviewed claim must not re-notify the cluster
	if _, err := eng.ApplyUpdate("p", model.ClaimUpdate{
		Verdict: strPtr("Debunked with updated sources"),
	}); err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	after := len(notificationsOfType(t, st, model.NotifyVerdictPublished))
	if after != before {
		t.Errorf("repeat update re-triggered fan-out: %d -> %d notifications", before, after)
	}
}

func TestApplyUpdate_NoFanoutWhileStillPending(t *testing.T) {
	eng, st := newTestEngine(t)
	clusterFixture(t, st)

	// A verdict with effective status still pending (the analysis step's
	// shape of update) publishes nothing
	if _, err := eng.ApplyUpdate("p", model.ClaimUpdate{
		Status:  statusPtr(model.StatusPending),
		Verdict: strPtr("AI advisory verdict"),
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if got := len(notificationsOfType(t, st, model.NotifyVerdictPublished)); got != 0 {
		t.Errorf("expected no verdict notifications while pending, got %d", got)
	}
}

func TestApplyUpdate_NotFound(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.ApplyUpdate("missing", model.ClaimUpdate{Verdict: strPtr("x")})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestApproveAIAnalysis(t *testing.T) {
	eng, st := newTestEngine(t)
	clusterFixture(t, st)

	claim, err := eng.ApproveAIAnalysis("p", "admin1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if !claim.Approved || !claim.PublishedToFeed || claim.AIPendingApproval {
		t.Errorf("approval flags wrong: %+v", claim)
	}
	if claim.VerifiedBy != "admin1" {
		t.Errorf("verifiedBy = %q, want admin1", claim.VerifiedBy)
	}

	// Exactly one notification, to the original submitter, regardless of
	// cluster size
	all, _ := st.ListNotifications("")
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(all))
	}
	if all[0].UserID != "user1" {
		t.Errorf("notified %s, want submitter user1", all[0].UserID)
	}

	// Approval never cascades
	claims, _ := st.ListClaims()
	for _, c := range claims {
		if c.ID != "p" && c.Approved {
			t.Errorf("approval cascaded to %s", c.ID)
		}
	}
}

func TestApproveAIAnalysis_NotFound(t *testing.T) {
	eng, _ := newTestEngine(t)

	if _, err := eng.ApproveAIAnalysis("missing", "admin1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRejectAIAnalysis(t *testing.T) {
	eng, st := newTestEngine(t)

	err := st.PutClaims([]model.Claim{{
		ID:                "p",
		Content:           "claim under ai review",
		Status:            model.StatusPending,
		SubmittedBy:       "user1",
		AIAnalyzed:        true,
		AIPendingApproval: true,
		DuplicateCount:    1,
	}})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	claim, err := eng.RejectAIAnalysis("p")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	if claim.AIPendingApproval {
		t.Errorf("aiPendingApproval still set after rejection")
	}
	if claim.Status != model.StatusPending {
		t.Errorf("status = %s, want pending for manual re-review", claim.Status)
	}

	// No fan-out on rejection: there is no verdict yet
	all, _ := st.ListNotifications("")
	if len(all) != 0 {
		t.Errorf("expected no notifications, got %d", len(all))
	}
}

func TestSearchAndFilters(t *testing.T) {
	eng, st := newTestEngine(t)

	err := st.PutClaims([]model.Claim{
		{ID: "1", Content: "Budget doubled for roads", Category: model.CategoryGovernance, Tags: []string{"budget"}, DuplicateCount: 1},
		{ID: "2", Content: "Vaccine rollout complete", Category: model.CategoryHealth, Verdict: "Verified by ministry", DuplicateCount: 1},
		{ID: "3", Content: "Exam results delayed", Category: model.CategoryEducation, AIPendingApproval: true, DuplicateCount: 1},
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	byCategory, err := eng.ClaimsByCategory(model.CategoryHealth)
	if err != nil || len(byCategory) != 1 || byCategory[0].ID != "2" {
		t.Errorf("category filter: got %v (%v)", byCategory, err)
	}

	// Search hits content, verdict and tags
	for query, wantID := range map[string]string{
		"roads":    "1",
		"ministry": "2",
		"BUDGET":   "1",
	} {
		found, err := eng.SearchClaims(query)
		if err != nil || len(found) != 1 || found[0].ID != wantID {
			t.Errorf("search %q: got %v (%v), want claim %s", query, found, err, wantID)
		}
	}

	pending, err := eng.AIPendingClaims()
	if err != nil || len(pending) != 1 || pending[0].ID != "3" {
		t.Errorf("ai-pending filter: got %v (%v)", pending, err)
	}
}
