package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/domain"
	pkgerrors "github.com/yungbote/tagforge-backend/internal/pkg/errors"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// FindDuplicateTags scores every tag-name pair and returns candidates at or
// above threshold; threshold <= 0 falls back to the configured default.
func (ts *taxonomyService) FindDuplicateTags(ctx context.Context, threshold float64) ([]taxonomy.DuplicateCandidate, error) {
	cfg := ts.CurrentConfig()
	if threshold <= 0 {
		threshold = cfg.DuplicateThreshold
	}
	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading tag corpus: %w", err)
	}
	return taxonomy.FindDuplicatePairs(summariesFromTags(all), threshold, cfg.MaxDuplicateCandidates), nil
}

// GroupDuplicates clusters transitively-related candidates into disjoint
// merge groups.
func (ts *taxonomyService) GroupDuplicates(ctx context.Context, threshold float64, excludeIDs []uuid.UUID) ([]taxonomy.DuplicateGroup, error) {
	cfg := ts.CurrentConfig()
	if threshold <= 0 {
		threshold = cfg.DuplicateThreshold
	}
	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading tag corpus: %w", err)
	}
	return taxonomy.GroupDuplicates(summariesFromTags(all), threshold, excludeIDs, cfg.MaxDuplicateCandidates), nil
}

// MergeTags absorbs the source tags into the target and returns the updated
// target. Locked tags are never sources or targets.
func (ts *taxonomyService) MergeTags(ctx context.Context, sourceIDs []uuid.UUID, targetID uuid.UUID) (*domain.Tag, error) {
	if len(sourceIDs) == 0 {
		return nil, fmt.Errorf("no source tags given: %w", pkgerrors.ErrInvalidArgument)
	}
	for _, id := range sourceIDs {
		if id == targetID {
			return nil, fmt.Errorf("target cannot be a source: %w", pkgerrors.ErrInvalidArgument)
		}
	}

	targets, err := ts.tagRepo.GetByIDsWithPosts(ctx, nil, []uuid.UUID{targetID})
	if err != nil {
		return nil, fmt.Errorf("loading target: %w", err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("target %s: %w", targetID, taxonomy.ErrTagNotFound)
	}
	survivor := targets[0]
	if survivor.Locked {
		return nil, fmt.Errorf("target %q: %w", survivor.Name, taxonomy.ErrTagLocked)
	}

	sources, err := ts.tagRepo.GetByIDsWithPosts(ctx, nil, sourceIDs)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}
	if len(sources) != len(sourceIDs) {
		return nil, fmt.Errorf("one or more source tags: %w", taxonomy.ErrTagNotFound)
	}
	for _, src := range sources {
		if src.Locked {
			return nil, fmt.Errorf("source %q: %w", src.Name, taxonomy.ErrTagLocked)
		}
	}

	if _, err := ts.mergeGroup(ctx, survivor, sources); err != nil {
		return nil, err
	}

	merged, err := ts.tagRepo.GetByIDsWithPosts(ctx, nil, []uuid.UUID{targetID})
	if err != nil || len(merged) == 0 {
		return nil, fmt.Errorf("reloading merged target: %w", err)
	}
	return merged[0], nil
}

// BulkMergeDuplicates clusters the corpus at threshold and merges each
// cluster into its survivor. Clusters are processed sequentially; a cluster
// that cannot be processed is reported in Skipped and the loop continues.
// Completed clusters are never rolled back. Under dryRun no write happens and
// receipts report PostsRelinked as 0, since unions are not materialized.
func (ts *taxonomyService) BulkMergeDuplicates(ctx context.Context, threshold float64, dryRun bool, excludeIDs []uuid.UUID) (*MergeResult, error) {
	cfg := ts.CurrentConfig()
	if threshold <= 0 {
		threshold = cfg.DuplicateThreshold
	}
	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading tag corpus: %w", err)
	}
	groups := taxonomy.GroupDuplicates(summariesFromTags(all), threshold, excludeIDs, cfg.MaxDuplicateCandidates)

	result := &MergeResult{
		DryRun:   dryRun,
		Receipts: make([]MergeReceipt, 0, len(groups)),
		Skipped:  make([]SkippedCluster, 0),
	}

	for _, group := range groups {
		absorbed := make([]uuid.UUID, 0, len(group.Duplicates))
		for _, d := range group.Duplicates {
			absorbed = append(absorbed, d.ID)
		}

		if dryRun {
			result.Receipts = append(result.Receipts, MergeReceipt{
				SurvivorID:   group.Survivor.ID,
				SurvivorName: group.Survivor.Name,
				AbsorbedIDs:  absorbed,
				Score:        group.MaxScore,
			})
			continue
		}

		survivors, err := ts.tagRepo.GetByIDsWithPosts(ctx, nil, []uuid.UUID{group.Survivor.ID})
		if err != nil || len(survivors) == 0 {
			ts.log.Warn("Skipping cluster, survivor not loadable", "survivor_id", group.Survivor.ID, "error", err)
			result.Skipped = append(result.Skipped, SkippedCluster{
				SurvivorID: group.Survivor.ID,
				Reason:     "survivor not found",
			})
			continue
		}
		duplicates, err := ts.tagRepo.GetByIDsWithPosts(ctx, nil, absorbed)
		if err != nil || len(duplicates) == 0 {
			result.Skipped = append(result.Skipped, SkippedCluster{
				SurvivorID: group.Survivor.ID,
				Reason:     "duplicates not found",
			})
			continue
		}

		receipt, err := ts.mergeGroup(ctx, survivors[0], duplicates)
		if err != nil {
			ts.log.Error("Cluster merge failed", "survivor_id", group.Survivor.ID, "error", err)
			result.Skipped = append(result.Skipped, SkippedCluster{
				SurvivorID: group.Survivor.ID,
				Reason:     err.Error(),
			})
			continue
		}
		receipt.Score = group.MaxScore
		result.Receipts = append(result.Receipts, receipt)
	}

	ts.log.Info("Bulk merge finished", "clusters", len(groups), "merged", len(result.Receipts), "skipped", len(result.Skipped), "dry_run", dryRun)
	return result, nil
}

// mergeGroup runs the relink/merge/delete sequence for one cluster. Order
// matters: followers move before duplicates are deleted, and posts are
// detached from duplicates before deletion instead of relying on cascade.
func (ts *taxonomyService) mergeGroup(ctx context.Context, survivor *domain.Tag, duplicates []*domain.Tag) (MergeReceipt, error) {
	postSet := make(map[uuid.UUID]*domain.Post)
	for _, p := range survivor.Posts {
		postSet[p.ID] = p
	}
	for _, dup := range duplicates {
		for _, p := range dup.Posts {
			postSet[p.ID] = p
		}
	}
	union := make([]*domain.Post, 0, len(postSet))
	for _, p := range postSet {
		union = append(union, p)
	}
	sort.Slice(union, func(i, j int) bool { return union[i].ID.String() < union[j].ID.String() })

	survivorName := strings.ToLower(survivor.Name)
	synonymSet := make(map[string]bool)
	for _, s := range survivor.SynonymList() {
		synonymSet[strings.ToLower(s)] = true
	}
	for _, dup := range duplicates {
		synonymSet[strings.ToLower(dup.Name)] = true
		for _, s := range dup.SynonymList() {
			synonymSet[strings.ToLower(s)] = true
		}
	}
	delete(synonymSet, survivorName)
	synonyms := make([]string, 0, len(synonymSet))
	for s := range synonymSet {
		synonyms = append(synonyms, s)
	}
	sort.Strings(synonyms)

	dupIDs := make([]uuid.UUID, 0, len(duplicates))
	for _, dup := range duplicates {
		dupIDs = append(dupIDs, dup.ID)
	}

	moved, err := ts.followRepo.ReassignTags(ctx, nil, dupIDs, survivor.ID)
	if err != nil {
		return MergeReceipt{}, fmt.Errorf("reassigning followers: %w", err)
	}

	if err := ts.tagRepo.ReplacePosts(ctx, nil, survivor.ID, union); err != nil {
		return MergeReceipt{}, fmt.Errorf("attaching post union: %w", err)
	}
	scratch := domain.Tag{}
	if err := scratch.SetSynonymList(synonyms); err != nil {
		return MergeReceipt{}, fmt.Errorf("encoding merged synonyms: %w", err)
	}
	err = ts.tagRepo.Update(ctx, nil, survivor.ID, map[string]any{
		"usage_count": len(union),
		"merge_count": survivor.MergeCount + len(duplicates),
		"synonyms":    scratch.Synonyms,
	})
	if err != nil {
		return MergeReceipt{}, fmt.Errorf("updating survivor: %w", err)
	}

	for _, dup := range duplicates {
		if err := ts.tagRepo.ClearPosts(ctx, nil, dup.ID); err != nil {
			return MergeReceipt{}, fmt.Errorf("detaching posts from %q: %w", dup.Name, err)
		}
		if err := ts.tagRepo.DeleteHard(ctx, nil, []uuid.UUID{dup.ID}); err != nil {
			return MergeReceipt{}, fmt.Errorf("deleting %q: %w", dup.Name, err)
		}
	}

	ts.analytics.Invalidate(ctx)
	ts.log.Info("Cluster merged", "survivor_id", survivor.ID, "survivor", survivor.Name, "absorbed", len(duplicates), "posts_relinked", len(union), "followers_moved", moved)

	return MergeReceipt{
		SurvivorID:    survivor.ID,
		SurvivorName:  survivor.Name,
		AbsorbedIDs:   dupIDs,
		PostsRelinked: len(union),
	}, nil
}
