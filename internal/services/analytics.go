package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/tagforge-backend/internal/domain"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// GetAnalytics builds the taxonomy-wide report. The corpus scan and the
// follow count fan out concurrently; the duplicate pair count runs at the
// advisory threshold so the report flags looser matches than a merge would.
func (ts *taxonomyService) GetAnalytics(ctx context.Context) (*taxonomy.TagAnalytics, error) {
	if cached := ts.analytics.Get(ctx); cached != nil {
		return cached, nil
	}
	cfg := ts.CurrentConfig()

	var (
		all         []*domain.Tag
		followCount int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tags, err := ts.tagRepo.ListAll(gctx, nil)
		if err != nil {
			return fmt.Errorf("loading tag corpus: %w", err)
		}
		all = tags
		return nil
	})
	g.Go(func() error {
		count, err := ts.followRepo.CountAll(gctx, nil)
		if err != nil {
			return fmt.Errorf("counting follows: %w", err)
		}
		followCount = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pairs := taxonomy.FindDuplicatePairs(summariesFromTags(all), cfg.AdvisoryThreshold, cfg.MaxDuplicateCandidates)

	report := taxonomy.ComputeAnalytics(taxonomy.AnalyticsInput{
		Tags:               statsFromTags(all),
		DuplicatePairCount: len(pairs),
		FollowCount:        int(followCount),
		Now:                time.Now().UTC(),
	}, cfg)

	ts.analytics.Set(ctx, &report)
	return &report, nil
}

// statsFromTags projects the corpus into analytics rows, deriving child
// counts and parent names in memory from one pass over the list.
func statsFromTags(tags []*domain.Tag) []taxonomy.TagStat {
	nameByID := make(map[string]string, len(tags))
	childCount := make(map[string]int, len(tags))
	for _, t := range tags {
		nameByID[t.ID.String()] = t.Name
	}
	for _, t := range tags {
		if t.ParentID != nil {
			childCount[t.ParentID.String()]++
		}
	}

	stats := make([]taxonomy.TagStat, 0, len(tags))
	for _, t := range tags {
		stat := taxonomy.TagStat{
			ID:           t.ID,
			Name:         t.Name,
			UsageCount:   t.UsageCount,
			ChildCount:   childCount[t.ID.String()],
			SynonymCount: len(t.SynonymList()),
			SynonymHits:  t.SynonymHits,
			CreatedAt:    t.CreatedAt,
		}
		if t.ParentID != nil {
			if name, ok := nameByID[t.ParentID.String()]; ok {
				stat.HasParent = true
				stat.ParentName = name
			}
		}
		stats = append(stats, stat)
	}
	return stats
}
