package taxonomy

import "time"

// Config carries every tunable the engine reads. Values are copied on every
// access; callers replace the whole value instead of mutating fields in place.
type Config struct {
	// DuplicateThreshold is the default minimum similarity for merge candidates.
	DuplicateThreshold float64 `json:"duplicate_threshold"`
	// AdvisoryThreshold is the looser threshold used for analytics-only
	// duplicate counting.
	AdvisoryThreshold float64 `json:"advisory_threshold"`
	// MaxDuplicateCandidates caps the candidate pair list per scan.
	MaxDuplicateCandidates int `json:"max_duplicate_candidates"`
	// MaxBulkItems bounds every bulk operation's item count per call.
	MaxBulkItems int `json:"max_bulk_items"`
	// TreeSeparator joins path segments and splits compound names. Empty
	// disables compound-name splitting.
	TreeSeparator string `json:"tree_separator"`
	// CaseSensitiveSlugs keeps slug casing as typed instead of lowering.
	CaseSensitiveSlugs bool `json:"case_sensitive_slugs"`
	// MaxTreeDepth is the deepest level a tag may occupy, root = 1.
	MaxTreeDepth int `json:"max_tree_depth"`
	// AutoCleanupAge is the minimum age before an orphaned tag is eligible
	// for cleanup, in nanoseconds on the wire.
	AutoCleanupAge time.Duration `json:"auto_cleanup_age"`
	// FollowingEnabled gates the tag-follow endpoints.
	FollowingEnabled bool `json:"following_enabled"`
	// ProtectAllTags upgrades every protected tag to hard-undeletable.
	ProtectAllTags bool `json:"protect_all_tags"`
	// TrendingLimit is the number of tags flagged trending on refresh.
	TrendingLimit int `json:"trending_limit"`
	// TopUsageLimit is the number of tags reported in analytics top lists.
	TopUsageLimit int `json:"top_usage_limit"`
}

func DefaultConfig() Config {
	return Config{
		DuplicateThreshold:     0.70,
		AdvisoryThreshold:      0.35,
		MaxDuplicateCandidates: 50,
		MaxBulkItems:           100,
		TreeSeparator:          "/",
		CaseSensitiveSlugs:     false,
		MaxTreeDepth:           10,
		AutoCleanupAge:         90 * 24 * time.Hour,
		FollowingEnabled:       true,
		ProtectAllTags:         false,
		TrendingLimit:          10,
		TopUsageLimit:          10,
	}
}
