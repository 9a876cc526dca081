package store

import (
	"time"

	"github.com/crecokenya/truthguard/internal/model"
)

// Seed installs the reference sample data when the store is empty. Existing
// collections are left alone, so seeding is safe to run repeatedly.
func Seed(s Store) error {
	claims, err := s.ListClaims()
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		if err := s.PutClaims(sampleClaims()); err != nil {
			return err
		}
	}

	profiles, err := s.ListUserProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		if err := s.PutUserProfiles(sampleProfiles()); err != nil {
			return err
		}
	}

	return nil
}

func sampleClaims() []model.Claim {
	return []model.Claim{
		{
			ID:             "1",
			Content:        "The government has allocated 50 billion shillings for infrastructure development in 2024",
			Status:         model.StatusTrue,
			SubmittedAt:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Verdict:        "Verified: This allocation was confirmed in the 2024 budget documents",
			Category:       model.CategoryGovernance,
			SubmittedBy:    "user1",
			VerifiedBy:     "admin@crecokenya.org",
			Priority:       model.PriorityHigh,
			Views:          245,
			Trending:       true,
			References:     []string{"Ministry of Finance Budget 2024", "National Treasury Reports"},
			Tags:           []string{"budget", "infrastructure", "2024"},
			Approved:       true,
			DuplicateCount: 1,
		},
		{
			ID:             "2",
			Content:        "Kenya's GDP grew by 15% last quarter",
			Status:         model.StatusFalse,
			SubmittedAt:    time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
			Verdict:        "False: Official KNBS data shows GDP growth was 5.2% for the quarter",
			Category:       model.CategoryEconomy,
			SubmittedBy:    "user2",
			VerifiedBy:     "admin@crecokenya.org",
			Priority:       model.PriorityHigh,
			Views:          189,
			Trending:       true,
			References:     []string{"KNBS Economic Survey 2024"},
			Tags:           []string{"gdp", "economy", "statistics"},
			Approved:       true,
			DuplicateCount: 1,
		},
		{
			ID:             "3",
			Content:        "New tax policies will affect small businesses starting next month",
			Status:         model.StatusNeedsContext,
			SubmittedAt:    time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC),
			Verdict:        "Needs Context: While new tax policies are being implemented, the timeline and specific impacts vary by business type and size.",
			Category:       model.CategoryGovernance,
			SubmittedBy:    "user3",
			Priority:       model.PriorityMedium,
			Views:          87,
			Tags:           []string{"tax", "business", "policy"},
			DuplicateCount: 1,
		},
		{
			ID:             "4",
			Content:        "Social media posts claiming free government laptops for students are circulating",
			Status:         model.StatusSatire,
			SubmittedAt:    time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			Verdict:        "Satire: This originated from a satirical social media account and has no basis in official government policy.",
			Category:       model.CategoryEducation,
			SubmittedBy:    "user4",
			Priority:       model.PriorityLow,
			Views:          156,
			Tags:           []string{"education", "laptops", "hoax"},
			DuplicateCount: 1,
		},
	}
}

func sampleProfiles() []model.UserProfile {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.UserProfile{
		{
			ID:             "admin@crecokenya.org",
			Name:           "CRECO Admin",
			Email:          "admin@crecokenya.org",
			Role:           model.RoleAdmin,
			Points:         500,
			Badges:         []string{"Verifier"},
			ClaimsVerified: 2,
			JoinedAt:       joined,
		},
		{
			ID:       "checker@crecokenya.org",
			Name:     "Fact-Check Team",
			Email:    "checker@crecokenya.org",
			Role:     model.RoleFactChecker,
			Points:   120,
			Badges:   []string{"Rookie"},
			JoinedAt: joined,
		},
		{
			ID:              "user1",
			Name:            "User One",
			Role:            model.RoleUser,
			Badges:          []string{"Rookie"},
			ClaimsSubmitted: 1,
			JoinedAt:        joined,
		},
		{
			ID:              "user2",
			Name:            "User Two",
			Role:            model.RoleUser,
			Badges:          []string{"Rookie"},
			ClaimsSubmitted: 1,
			JoinedAt:        joined,
		},
	}
}
