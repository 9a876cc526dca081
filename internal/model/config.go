package model

import "time"

// Config holds the full engine configuration
type Config struct {
	Similarity SimilarityConfig `json:"similarity" yaml:"similarity"`
	Analysis   AnalysisConfig   `json:"analysis" yaml:"analysis"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Submit     SubmitConfig     `json:"submit" yaml:"submit"`
	Trending   TrendingConfig   `json:"trending" yaml:"trending"`
	Output     OutputConfig     `json:"output" yaml:"output"`
}

// SimilarityConfig controls duplicate detection
type SimilarityConfig struct {
	// Threshold is the Jaccard score at or above which two claims are
	// considered duplicates
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// AnalysisConfig controls the simulated AI analysis step
type AnalysisConfig struct {
	Delay       time.Duration `json:"delay" yaml:"delay"`
	Verdict     string        `json:"verdict" yaml:"verdict"`
	Explanation string        `json:"explanation" yaml:"explanation"`
}

// StoreConfig selects and configures the claim store backend
type StoreConfig struct {
	// Driver is "memory" or "sqlite"
	Driver string `json:"driver" yaml:"driver"`
	// Path is the sqlite database file (ignored by the memory driver)
	Path string `json:"path" yaml:"path"`
}

// SubmitConfig controls per-user submission rate limiting
type SubmitConfig struct {
	RatePerMinute float64 `json:"rate_per_minute" yaml:"rate_per_minute"`
	Burst         int     `json:"burst" yaml:"burst"`
}

// TrendingConfig controls the trending refresh pass
type TrendingConfig struct {
	// MinEngagement is the weighted views/likes/shares score at which a
	// claim is marked trending
	MinEngagement int `json:"min_engagement" yaml:"min_engagement"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// DefaultConfig returns the reference configuration
func DefaultConfig() *Config {
	return &Config{
		Similarity: SimilarityConfig{
			Threshold: 0.6,
		},
		Analysis: AnalysisConfig{
			Delay:       3 * time.Second,
			Verdict:     "AI Analysis: This claim requires fact-checking review",
			Explanation: "AI has analyzed this claim and flagged it for expert review based on content patterns and source credibility.",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "truthguard.db",
		},
		Submit: SubmitConfig{
			RatePerMinute: 10,
			Burst:         5,
		},
		Trending: TrendingConfig{
			MinEngagement: 150,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
