package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/domain"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// checkBulkSize rejects oversized batches before any item is touched.
func (ts *taxonomyService) checkBulkSize(tagIDs []uuid.UUID, cfg taxonomy.Config) error {
	if cfg.MaxBulkItems > 0 && len(tagIDs) > cfg.MaxBulkItems {
		return fmt.Errorf("%d items, limit %d: %w", len(tagIDs), cfg.MaxBulkItems, taxonomy.ErrBulkLimitExceeded)
	}
	return nil
}

// loadBulkTargets fetches the requested tags and pre-fails ids that do not
// resolve. Callers get the loaded tags plus a result seeded with the misses.
func (ts *taxonomyService) loadBulkTargets(ctx context.Context, tagIDs []uuid.UUID) ([]*domain.Tag, *BulkResult, error) {
	result := &BulkResult{
		Succeeded: make([]uuid.UUID, 0, len(tagIDs)),
		Failed:    make([]BulkFailure, 0),
	}
	found, err := ts.tagRepo.GetByIDs(ctx, nil, tagIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("loading bulk targets: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.Tag, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	ordered := make([]*domain.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tag, ok := byID[id]
		if !ok {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: "not found"})
			continue
		}
		ordered = append(ordered, tag)
	}
	return ordered, result, nil
}

func (ts *taxonomyService) BulkDelete(ctx context.Context, tagIDs []uuid.UUID, force bool) (*BulkResult, error) {
	cfg := ts.CurrentConfig()
	if err := ts.checkBulkSize(tagIDs, cfg); err != nil {
		return nil, err
	}
	tags, result, err := ts.loadBulkTargets(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		switch {
		case tag.Locked:
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: "locked"})
		case tag.Protected && (cfg.ProtectAllTags || !force):
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: "protected"})
		default:
			if err := ts.deleteOne(ctx, tag, cfg); err != nil {
				result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: err.Error()})
				continue
			}
			result.Succeeded = append(result.Succeeded, tag.ID)
		}
	}
	ts.log.Info("Bulk delete finished", "requested", len(tagIDs), "deleted", len(result.Succeeded), "failed", len(result.Failed))
	return result, nil
}

func (ts *taxonomyService) BulkSetLocked(ctx context.Context, tagIDs []uuid.UUID, locked bool) (*BulkResult, error) {
	cfg := ts.CurrentConfig()
	if err := ts.checkBulkSize(tagIDs, cfg); err != nil {
		return nil, err
	}
	tags, result, err := ts.loadBulkTargets(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if err := ts.tagRepo.Update(ctx, nil, tag.ID, map[string]any{"locked": locked}); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, tag.ID)
	}
	if len(result.Succeeded) > 0 {
		ts.analytics.Invalidate(ctx)
	}
	return result, nil
}

// BulkSetParent moves each tag under parentID (nil detaches to root). Each
// move is validated against the current arena independently; a rejected move
// fails that item only.
func (ts *taxonomyService) BulkSetParent(ctx context.Context, tagIDs []uuid.UUID, parentID *uuid.UUID) (*BulkResult, error) {
	cfg := ts.CurrentConfig()
	if err := ts.checkBulkSize(tagIDs, cfg); err != nil {
		return nil, err
	}
	tags, result, err := ts.loadBulkTargets(ctx, tagIDs)
	if err != nil {
		return nil, err
	}

	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading tag corpus: %w", err)
	}
	arena := arenaFromTags(all)
	if parentID != nil {
		if _, ok := arena[*parentID]; !ok {
			return nil, fmt.Errorf("parent %s: %w", *parentID, taxonomy.ErrTagNotFound)
		}
	}

	for _, tag := range tags {
		if tag.Locked {
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: "locked"})
			continue
		}
		if err := taxonomy.ValidateParent(tag.ID, parentID, arena); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: err.Error()})
			continue
		}

		node := arena[tag.ID]
		node.ParentID = parentID
		arena[tag.ID] = node

		fields, err := taxonomy.ComputeTreeFields(tag.Name, parentID, arena, cfg)
		if err != nil {
			node.ParentID = tag.ParentID
			arena[tag.ID] = node
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: err.Error()})
			continue
		}
		if cfg.MaxTreeDepth > 0 && fields.Level > cfg.MaxTreeDepth {
			node.ParentID = tag.ParentID
			arena[tag.ID] = node
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: taxonomy.ErrMaxDepthExceeded.Error()})
			continue
		}

		if err := ts.tagRepo.Update(ctx, nil, tag.ID, map[string]any{"parent_id": parentID}); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: err.Error()})
			continue
		}
		if err := ts.applyTreeFields(ctx, arena, tag.ID, cfg); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, tag.ID)
	}
	if len(result.Succeeded) > 0 {
		ts.analytics.Invalidate(ctx)
	}
	return result, nil
}

func (ts *taxonomyService) BulkUpdateStyle(ctx context.Context, tagIDs []uuid.UUID, color, icon string) (*BulkResult, error) {
	cfg := ts.CurrentConfig()
	if err := ts.checkBulkSize(tagIDs, cfg); err != nil {
		return nil, err
	}
	tags, result, err := ts.loadBulkTargets(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if color != "" {
		updates["color"] = color
	}
	if icon != "" {
		updates["icon"] = icon
	}
	for _, tag := range tags {
		if len(updates) == 0 {
			result.Succeeded = append(result.Succeeded, tag.ID)
			continue
		}
		if err := ts.tagRepo.Update(ctx, nil, tag.ID, updates); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: tag.ID, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, tag.ID)
	}
	return result, nil
}

// CleanupOrphans deletes tags with no posts, no children and no protection
// that are older than the configured age. Locked and protected tags survive.
func (ts *taxonomyService) CleanupOrphans(ctx context.Context) (int, error) {
	cfg := ts.CurrentConfig()
	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("loading tag corpus: %w", err)
	}
	hasChildren := make(map[uuid.UUID]bool, len(all))
	for _, t := range all {
		if t.ParentID != nil {
			hasChildren[*t.ParentID] = true
		}
	}
	cutoff := time.Now().UTC().Add(-cfg.AutoCleanupAge)

	removed := 0
	for _, tag := range all {
		if tag.UsageCount > 0 || hasChildren[tag.ID] {
			continue
		}
		if tag.Locked || tag.Protected || tag.Featured {
			continue
		}
		if tag.CreatedAt.After(cutoff) {
			continue
		}
		// usage_count can drift; the join table is the source of truth
		live, err := ts.postRepo.CountByTag(ctx, nil, tag.ID)
		if err != nil {
			return removed, fmt.Errorf("counting posts for %q: %w", tag.Name, err)
		}
		if live > 0 {
			continue
		}
		if err := ts.deleteOne(ctx, tag, cfg); err != nil {
			ts.log.Warn("Orphan cleanup skipped tag", "tag_id", tag.ID, "name", tag.Name, "error", err)
			continue
		}
		removed++
	}
	ts.log.Info("Orphan cleanup finished", "scanned", len(all), "removed", removed)
	return removed, nil
}

// RefreshTrending re-flags the top-used tags as trending and clears the flag
// everywhere else. Returns the number of tags now flagged.
func (ts *taxonomyService) RefreshTrending(ctx context.Context) (int, error) {
	cfg := ts.CurrentConfig()
	limit := cfg.TrendingLimit
	if limit <= 0 {
		limit = 10
	}
	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("loading tag corpus: %w", err)
	}

	summaries := summariesFromTags(all)
	// Reuse the usage-desc, name-asc ordering the merge survivor pick uses.
	taxonomy.SortByUsage(summaries)

	trendingIDs := make([]uuid.UUID, 0, limit)
	for _, s := range summaries {
		if len(trendingIDs) >= limit {
			break
		}
		if s.UsageCount == 0 {
			break
		}
		trendingIDs = append(trendingIDs, s.ID)
	}

	trending := make(map[uuid.UUID]bool, len(trendingIDs))
	for _, id := range trendingIDs {
		trending[id] = true
	}
	clearIDs := make([]uuid.UUID, 0)
	for _, t := range all {
		if t.Trending && !trending[t.ID] {
			clearIDs = append(clearIDs, t.ID)
		}
	}

	if _, err := ts.tagRepo.UpdateMany(ctx, nil, clearIDs, map[string]any{"trending": false}); err != nil {
		return 0, fmt.Errorf("clearing trending flags: %w", err)
	}
	if _, err := ts.tagRepo.UpdateMany(ctx, nil, trendingIDs, map[string]any{"trending": true}); err != nil {
		return 0, fmt.Errorf("setting trending flags: %w", err)
	}
	ts.analytics.Invalidate(ctx)
	ts.log.Info("Trending refreshed", "flagged", len(trendingIDs), "cleared", len(clearIDs))
	return len(trendingIDs), nil
}
