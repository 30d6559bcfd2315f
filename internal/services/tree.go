package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/domain"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// RebuildTreePaths recomputes path, label and level for the whole corpus in
// name order and persists only the rows that changed. Safe to run twice: the
// second pass writes nothing.
func (ts *taxonomyService) RebuildTreePaths(ctx context.Context) (int, error) {
	cfg := ts.CurrentConfig()
	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("loading tag corpus: %w", err)
	}
	arena := arenaFromTags(all)
	fields := taxonomy.RebuildTreeFields(arena, cfg)

	updated := 0
	for _, tag := range all {
		next, ok := fields[tag.ID]
		if !ok {
			continue
		}
		if next.Path == tag.Path && next.Label == tag.Label && next.Level == tag.Level {
			continue
		}
		err := ts.tagRepo.Update(ctx, nil, tag.ID, map[string]any{
			"path":  next.Path,
			"label": next.Label,
			"level": next.Level,
		})
		if err != nil {
			return updated, fmt.Errorf("updating tree fields for %q: %w", tag.Name, err)
		}
		updated++
	}
	ts.log.Info("Tree paths rebuilt", "tags", len(all), "updated", updated)
	return updated, nil
}

func (ts *taxonomyService) GetAncestors(ctx context.Context, tagID uuid.UUID) ([]*domain.Tag, error) {
	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading tag corpus: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.Tag, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}
	tag, ok := byID[tagID]
	if !ok {
		return nil, fmt.Errorf("tag %s: %w", tagID, taxonomy.ErrTagNotFound)
	}

	// Walk upward, then reverse so the root comes first, matching path order.
	chain := make([]*domain.Tag, 0)
	visited := map[uuid.UUID]bool{tagID: true}
	current := tag.ParentID
	for current != nil {
		if visited[*current] {
			break
		}
		visited[*current] = true
		ancestor, ok := byID[*current]
		if !ok {
			break
		}
		chain = append(chain, ancestor)
		current = ancestor.ParentID
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

func (ts *taxonomyService) GetDescendants(ctx context.Context, tagID uuid.UUID) ([]*domain.Tag, error) {
	tag, err := ts.getTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	cfg := ts.CurrentConfig()
	sep := cfg.TreeSeparator
	if sep == "" {
		sep = "/"
	}
	return ts.tagRepo.ListByPathPrefix(ctx, nil, tag.Path+sep)
}

func (ts *taxonomyService) GetSiblings(ctx context.Context, tagID uuid.UUID) ([]*domain.Tag, error) {
	tag, err := ts.getTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	peers, err := ts.tagRepo.ListByParent(ctx, nil, tag.ParentID)
	if err != nil {
		return nil, err
	}
	siblings := make([]*domain.Tag, 0, len(peers))
	for _, p := range peers {
		if p.ID != tagID {
			siblings = append(siblings, p)
		}
	}
	return siblings, nil
}

func (ts *taxonomyService) GetNestedTree(ctx context.Context, parentID *uuid.UUID) ([]*TagTreeNode, error) {
	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading tag corpus: %w", err)
	}
	children := make(map[uuid.UUID][]*domain.Tag)
	roots := make([]*domain.Tag, 0)
	for _, t := range all {
		if t.ParentID == nil {
			roots = append(roots, t)
		} else {
			children[*t.ParentID] = append(children[*t.ParentID], t)
		}
	}

	var build func(tags []*domain.Tag) []*TagTreeNode
	build = func(tags []*domain.Tag) []*TagTreeNode {
		sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
		nodes := make([]*TagTreeNode, 0, len(tags))
		for _, t := range tags {
			nodes = append(nodes, &TagTreeNode{
				Tag:      t,
				Children: build(children[t.ID]),
			})
		}
		return nodes
	}

	if parentID == nil {
		return build(roots), nil
	}
	if _, err := ts.getTag(ctx, *parentID); err != nil {
		return nil, err
	}
	return build(children[*parentID]), nil
}

// applyTreeFields recomputes and persists tree fields for tagID and all of
// its descendants. The arena must already reflect the mutation being applied
// (renames, reparenting, removals); descendants resolve by parent links, not
// by the possibly-stale stored paths.
func (ts *taxonomyService) applyTreeFields(ctx context.Context, arena map[uuid.UUID]taxonomy.Node, tagID uuid.UUID, cfg taxonomy.Config) error {
	childIndex := make(map[uuid.UUID][]uuid.UUID, len(arena))
	for id, node := range arena {
		if node.ParentID != nil {
			childIndex[*node.ParentID] = append(childIndex[*node.ParentID], id)
		}
	}

	queue := []uuid.UUID{tagID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		node, ok := arena[id]
		if !ok {
			continue
		}
		fields, err := taxonomy.ComputeTreeFields(node.Name, node.ParentID, arena, cfg)
		if err != nil {
			return err
		}
		err = ts.tagRepo.Update(ctx, nil, id, map[string]any{
			"path":  fields.Path,
			"label": fields.Label,
			"level": fields.Level,
		})
		if err != nil {
			return err
		}
		queue = append(queue, childIndex[id]...)
	}
	return nil
}
