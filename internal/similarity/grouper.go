package similarity

import (
	"github.com/crecokenya/truthguard/internal/model"
)

// Grouper partitions claim collections into duplicate clusters
type Grouper struct {
	matcher *Matcher
}

// NewGrouper creates a new grouper
func NewGrouper() *Grouper {
	return &Grouper{matcher: NewMatcher()}
}

// FindSimilar returns every claim whose content scores at or above the
// threshold against the given text, preserving input order. An empty result
// means no duplicates, not an error.
func (g *Grouper) FindSimilar(text string, claims []model.Claim, threshold float64) []model.Claim {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var similar []model.Claim
	for _, claim := range claims {
		if g.matcher.Similarity(text, claim.Content) >= threshold {
			similar = append(similar, claim)
		}
	}
	return similar
}

// GroupBySimilarity partitions the claims into clusters: every claim lands
// in exactly one cluster, each cluster ordered with its seed first.
//
// Membership is single-link against the seed only. Two members similar to
// the seed but not to each other still share a cluster, so the result is
// order-dependent and not transitively closed. That matches the observed
// merge behavior downstream counts depend on; do not close it transitively.
func (g *Grouper) GroupBySimilarity(claims []model.Claim, threshold float64) [][]model.Claim {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var groups [][]model.Claim
	processed := make(map[string]bool)

	for _, seed := range claims {
		if processed[seed.ID] {
			continue
		}

		cluster := []model.Claim{seed}
		processed[seed.ID] = true

		for _, other := range claims {
			if processed[other.ID] {
				continue
			}
			if g.matcher.Similarity(seed.Content, other.Content) >= threshold {
				cluster = append(cluster, other)
				processed[other.ID] = true
			}
		}

		groups = append(groups, cluster)
	}

	return groups
}
