package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
	"github.com/yungbote/tagforge-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AllowedOrigins []string

	RedisAddr    string
	RedisDB      int
	AnalyticsTTL time.Duration

	Taxonomy taxonomy.Config
}

// engineOverrides is the YAML shape for tuning the engine. Every field is
// optional; unset fields keep their defaults.
type engineOverrides struct {
	DuplicateThreshold     *float64 `yaml:"duplicate_threshold"`
	AdvisoryThreshold      *float64 `yaml:"advisory_threshold"`
	MaxDuplicateCandidates *int     `yaml:"max_duplicate_candidates"`
	MaxBulkItems           *int     `yaml:"max_bulk_items"`
	TreeSeparator          *string  `yaml:"tree_separator"`
	CaseSensitiveSlugs     *bool    `yaml:"case_sensitive_slugs"`
	MaxTreeDepth           *int     `yaml:"max_tree_depth"`
	AutoCleanupAgeDays     *int     `yaml:"auto_cleanup_age_days"`
	FollowingEnabled       *bool    `yaml:"following_enabled"`
	ProtectAllTags         *bool    `yaml:"protect_all_tags"`
	TrendingLimit          *int     `yaml:"trending_limit"`
	TopUsageLimit          *int     `yaml:"top_usage_limit"`
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	origins := utils.GetEnv("ALLOWED_ORIGINS", "", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	redisDB := utils.GetEnvAsInt("REDIS_DB", 0, log)
	analyticsTTL := utils.GetEnvAsDuration("ANALYTICS_CACHE_TTL", 5*time.Minute, log)

	cfg := Config{
		JWTSecretKey: jwtSecretKey,
		RedisAddr:    redisAddr,
		RedisDB:      redisDB,
		AnalyticsTTL: analyticsTTL,
		Taxonomy:     loadTaxonomyConfig(log),
	}
	if origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}
	return cfg
}

// loadTaxonomyConfig starts from the engine defaults and applies the YAML
// override file named by TAXONOMY_CONFIG_PATH, if any. A broken file logs a
// warning and falls back to defaults rather than refusing to start.
func loadTaxonomyConfig(log *logger.Logger) taxonomy.Config {
	cfg := taxonomy.DefaultConfig()
	path := utils.GetEnv("TAXONOMY_CONFIG_PATH", "", log)
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Taxonomy config file unreadable, using defaults", "path", path, "error", err)
		return cfg
	}
	var overrides engineOverrides
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		log.Warn("Taxonomy config file malformed, using defaults", "path", path, "error", err)
		return cfg
	}
	applyOverrides(&cfg, overrides)
	log.Info("Taxonomy config loaded", "path", path, "summary", fmt.Sprintf("threshold=%.2f bulk=%d depth=%d", cfg.DuplicateThreshold, cfg.MaxBulkItems, cfg.MaxTreeDepth))
	return cfg
}

func applyOverrides(cfg *taxonomy.Config, o engineOverrides) {
	if o.DuplicateThreshold != nil {
		cfg.DuplicateThreshold = *o.DuplicateThreshold
	}
	if o.AdvisoryThreshold != nil {
		cfg.AdvisoryThreshold = *o.AdvisoryThreshold
	}
	if o.MaxDuplicateCandidates != nil {
		cfg.MaxDuplicateCandidates = *o.MaxDuplicateCandidates
	}
	if o.MaxBulkItems != nil {
		cfg.MaxBulkItems = *o.MaxBulkItems
	}
	if o.TreeSeparator != nil {
		cfg.TreeSeparator = *o.TreeSeparator
	}
	if o.CaseSensitiveSlugs != nil {
		cfg.CaseSensitiveSlugs = *o.CaseSensitiveSlugs
	}
	if o.MaxTreeDepth != nil {
		cfg.MaxTreeDepth = *o.MaxTreeDepth
	}
	if o.AutoCleanupAgeDays != nil {
		cfg.AutoCleanupAge = time.Duration(*o.AutoCleanupAgeDays) * 24 * time.Hour
	}
	if o.FollowingEnabled != nil {
		cfg.FollowingEnabled = *o.FollowingEnabled
	}
	if o.ProtectAllTags != nil {
		cfg.ProtectAllTags = *o.ProtectAllTags
	}
	if o.TrendingLimit != nil {
		cfg.TrendingLimit = *o.TrendingLimit
	}
	if o.TopUsageLimit != nil {
		cfg.TopUsageLimit = *o.TopUsageLimit
	}
}
