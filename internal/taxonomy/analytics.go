package taxonomy

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// TagStat is the per-tag projection the analytics pass consumes.
type TagStat struct {
	ID           uuid.UUID
	Name         string
	ParentName   string
	HasParent    bool
	UsageCount   int
	ChildCount   int
	SynonymCount int
	SynonymHits  int
	CreatedAt    time.Time
}

// TagUsage names a tag with its usage count for top/recent listings.
type TagUsage struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UsageCount int       `json:"usage_count"`
}

// TagAnalytics is the taxonomy-wide report returned by the analytics pass.
type TagAnalytics struct {
	TotalTags          int            `json:"total_tags"`
	OrphanCount        int            `json:"orphan_count"`
	DuplicatePairCount int            `json:"duplicate_pair_count"`
	AverageUsage       float64        `json:"average_usage"`
	TopTags            []TagUsage     `json:"top_tags"`
	RecentTags         []TagUsage     `json:"recent_tags"`
	ZeroUsageCount     int            `json:"zero_usage_count"`
	TagsByParent       map[string]int `json:"tags_by_parent"`
	RootCount          int            `json:"root_count"`
	SynonymsDefined    int            `json:"synonyms_defined"`
	SynonymHits        int            `json:"synonym_hits"`
	FollowCount        int            `json:"follow_count"`
	HealthScore        int            `json:"health_score"`
	Recommendations    []string       `json:"recommendations"`
	GeneratedAt        time.Time      `json:"generated_at"`
}

// AnalyticsInput bundles the corpus-wide reads the report derives from.
type AnalyticsInput struct {
	Tags               []TagStat
	DuplicatePairCount int
	FollowCount        int
	Now                time.Time
}

const rootGroupName = "(root)"

// ComputeAnalytics aggregates the tag corpus into counts, rankings and a
// health score. The score starts at 100 and takes fixed deductions per
// triggered rule, floored at 0; each rule appends a recommendation, and a
// single positive message replaces the list when nothing triggers.
func ComputeAnalytics(in AnalyticsInput, cfg Config) TagAnalytics {
	report := TagAnalytics{
		TotalTags:          len(in.Tags),
		DuplicatePairCount: in.DuplicatePairCount,
		FollowCount:        in.FollowCount,
		TagsByParent:       make(map[string]int),
		GeneratedAt:        in.Now,
	}

	totalUsage := 0
	synonymless := 0
	for _, t := range in.Tags {
		totalUsage += t.UsageCount
		if t.UsageCount == 0 {
			report.ZeroUsageCount++
		}
		if t.UsageCount == 0 && t.ChildCount == 0 {
			report.OrphanCount++
		}
		if !t.HasParent {
			report.RootCount++
			report.TagsByParent[rootGroupName]++
		} else {
			report.TagsByParent[t.ParentName]++
		}
		if t.SynonymCount == 0 {
			synonymless++
		}
		report.SynonymsDefined += t.SynonymCount
		report.SynonymHits += t.SynonymHits
	}
	if len(in.Tags) > 0 {
		report.AverageUsage = float64(totalUsage) / float64(len(in.Tags))
	}

	topLimit := cfg.TopUsageLimit
	if topLimit <= 0 {
		topLimit = 10
	}

	byUsage := append([]TagStat(nil), in.Tags...)
	sort.Slice(byUsage, func(i, j int) bool {
		if byUsage[i].UsageCount != byUsage[j].UsageCount {
			return byUsage[i].UsageCount > byUsage[j].UsageCount
		}
		return byUsage[i].Name < byUsage[j].Name
	})
	for _, t := range byUsage {
		if len(report.TopTags) >= topLimit {
			break
		}
		report.TopTags = append(report.TopTags, TagUsage{ID: t.ID, Name: t.Name, UsageCount: t.UsageCount})
	}

	byCreated := append([]TagStat(nil), in.Tags...)
	sort.Slice(byCreated, func(i, j int) bool {
		if !byCreated[i].CreatedAt.Equal(byCreated[j].CreatedAt) {
			return byCreated[i].CreatedAt.After(byCreated[j].CreatedAt)
		}
		return byCreated[i].Name < byCreated[j].Name
	})
	for _, t := range byCreated {
		if len(report.RecentTags) >= topLimit {
			break
		}
		report.RecentTags = append(report.RecentTags, TagUsage{ID: t.ID, Name: t.Name, UsageCount: t.UsageCount})
	}

	report.HealthScore, report.Recommendations = scoreHealth(&report, len(in.Tags), synonymless)
	return report
}

func scoreHealth(report *TagAnalytics, total, synonymless int) (int, []string) {
	score := 100
	recs := make([]string, 0)

	if total > 0 {
		orphanRatio := float64(report.OrphanCount) / float64(total)
		if orphanRatio > 0.30 {
			score -= 15
			recs = append(recs, fmt.Sprintf("%d of %d tags are orphaned (no posts, no children); review and clean them up", report.OrphanCount, total))
		}
	}
	if report.DuplicatePairCount > 5 {
		score -= 10
		recs = append(recs, fmt.Sprintf("%d near-duplicate tag pairs detected; consider running a bulk merge", report.DuplicatePairCount))
	}
	if report.RootCount > 20 {
		score -= 10
		recs = append(recs, fmt.Sprintf("%d tags sit at the root level; group related tags under parents", report.RootCount))
	}
	if total > 0 && float64(synonymless)/float64(total) > 0.50 {
		score -= 5
		recs = append(recs, "over half of all tags define no synonyms; adding synonyms improves auto-tagging")
	}
	if total > 0 && report.AverageUsage < 2 {
		score -= 10
		recs = append(recs, fmt.Sprintf("average tag usage is %.1f posts; many tags may be too narrow", report.AverageUsage))
	}

	if score < 0 {
		score = 0
	}
	if len(recs) == 0 {
		recs = append(recs, "taxonomy is healthy; no action needed")
	}
	return score, recs
}
