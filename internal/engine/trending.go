package engine

import (
	"fmt"

	"github.com/crecokenya/truthguard/internal/model"
)

// Engagement weights. Shares spread a claim furthest, so they count most.
const (
	viewWeight  = 1
	likeWeight  = 2
	shareWeight = 3
)

// engagementScore is the weighted reach of a claim
func engagementScore(c model.Claim) int {
	return c.Views*viewWeight + c.Likes*likeWeight + c.Shares*shareWeight
}

// RefreshTrending recomputes the trending flag across all claims and
// returns the claims that just became trending. Submitters are notified on
// the rising edge only; a claim that stays trending between refreshes does
// not re-notify.
func (e *Engine) RefreshTrending() ([]model.Claim, error) {
	claims, err := e.store.ListClaims()
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}

	min := e.cfg.Trending.MinEngagement
	var rising []model.Claim

	for i := range claims {
		hot := engagementScore(claims[i]) >= min
		if hot && !claims[i].Trending {
			claims[i].Trending = true
			rising = append(rising, claims[i])
		} else if !hot && claims[i].Trending {
			claims[i].Trending = false
		}
	}

	if err := e.store.PutClaims(claims); err != nil {
		return nil, fmt.Errorf("put claims: %w", err)
	}

	for _, c := range rising {
		if err := e.fanout.Notify(c.SubmittedBy, c.ID, model.NotifyTrending,
			"Your Claim Is Trending", "A claim you submitted is getting significant attention"); err != nil {
			return rising, err
		}
	}

	if len(rising) > 0 {
		e.log.Infow("trending refresh", "rising", len(rising))
	}
	return rising, nil
}
