package similarity

import (
	"testing"

	"github.com/crecokenya/truthguard/internal/model"
)

func claim(id, content string) model.Claim {
	return model.Claim{ID: id, Content: content}
}

func TestFindSimilar(t *testing.T) {
	claims := []model.Claim{
		claim("1", "Kenya's GDP grew by 15% last quarter"),
		claim("2", "GDP grew last quarter in Kenya"),
		claim("3", "New tax policies affect small businesses"),
	}

	g := NewGrouper()
	similar := g.FindSimilar("Kenya's GDP grew by 15% last quarter", claims, 0.6)

	if len(similar) != 2 {
		t.Fatalf("expected 2 similar claims, got %d", len(similar))
	}
	if similar[0].ID != "1" || similar[1].ID != "2" {
		t.Errorf("expected claims 1 and 2 in input order, got %s and %s", similar[0].ID, similar[1].ID)
	}
}

func TestFindSimilar_NoMatches(t *testing.T) {
	claims := []model.Claim{
		claim("1", "New tax policies affect small businesses"),
	}

	g := NewGrouper()
	similar := g.FindSimilar("wholly unrelated assertion about weather patterns", claims, 0.6)

	// Absence of duplicates is a normal empty result
	if len(similar) != 0 {
		t.Errorf("expected no similar claims, got %d", len(similar))
	}
}

func TestGroupBySimilarity_Partition(t *testing.T) {
	claims := []model.Claim{
		claim("1", "alpha bravo charlie delta echo foxtrot"),
		claim("2", "alpha bravo charlie delta echo golf"),
		claim("3", "totally different content about markets"),
		claim("4", "markets content totally different about"),
		claim("5", "singular standalone assertion nothing shared"),
	}

	g := NewGrouper()
	groups := g.GroupBySimilarity(claims, 0.6)

	seen := make(map[string]int)
	total := 0
	for _, group := range groups {
		if len(group) == 0 {
			t.Fatalf("empty cluster in partition")
		}
		for _, c := range group {
			seen[c.ID]++
			total++
		}
	}

	if total != len(claims) {
		t.Errorf("partition covers %d claims, want %d", total, len(claims))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("claim %s appears %d times, want exactly once", id, count)
		}
	}

	if len(groups) != 3 {
		t.Errorf("expected 3 clusters, got %d", len(groups))
	}
}

func TestGroupBySimilarity_SeedLink_NotTransitive(t *testing.T) {
	// B and C each overlap the seed A enough to join its cluster but do
	// not overlap each other enough to be mutual duplicates. They still
	// share a cluster: membership is judged against the seed only.
	a := claim("a", "alpha bravo charlie delta echo foxtrot golf hotel india juliet")
	b := claim("b", "alpha bravo charlie delta echo foxtrot golf hotel kilo lima")
	c := claim("c", "charlie delta echo foxtrot golf hotel india juliet mike november")

	m := NewMatcher()
	if m.Similarity(b.Content, c.Content) >= 0.6 {
		t.Fatalf("fixture broken: b and c should not be mutually similar")
	}

	g := NewGrouper()
	groups := g.GroupBySimilarity([]model.Claim{a, b, c}, 0.6)

	if len(groups) != 1 {
		t.Fatalf("expected one seed-linked cluster, got %d", len(groups))
	}
	if len(groups[0]) != 3 {
		t.Errorf("expected all 3 claims clustered via seed, got %d", len(groups[0]))
	}
	if groups[0][0].ID != "a" {
		t.Errorf("expected seed first in cluster, got %s", groups[0][0].ID)
	}
}

func TestGroupBySimilarity_OrderDependent(t *testing.T) {
	a := claim("a", "alpha bravo charlie delta echo foxtrot golf hotel india juliet")
	b := claim("b", "alpha bravo charlie delta echo foxtrot golf hotel kilo lima")
	c := claim("c", "charlie delta echo foxtrot golf hotel india juliet mike november")

	g := NewGrouper()

	// With b as the seed, c does not join; it seeds its own cluster
	groups := g.GroupBySimilarity([]model.Claim{b, c, a}, 0.6)
	if len(groups) != 2 {
		t.Errorf("expected 2 clusters when b seeds first, got %d", len(groups))
	}
}
