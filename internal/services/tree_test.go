package services

import (
	"context"
	"testing"

	"github.com/yungbote/tagforge-backend/internal/domain"
)

func TestRebuildTreePathsRepairsAndIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	root, _ := svc.CreateTag(ctx, CreateTagInput{Name: "Data"})
	child, _ := svc.CreateTag(ctx, CreateTagInput{Name: "SQL", ParentID: &root.ID})

	// corrupt the stored fields behind the engine's back
	if err := db.Model(&domain.Tag{}).Where("id = ?", child.ID).
		Updates(map[string]any{"path": "wrong", "level": 9}).Error; err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	updated, err := svc.RebuildTreePaths(ctx)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if updated != 1 {
		t.Fatalf("first rebuild updates: got=%d want=1", updated)
	}
	repaired, _ := svc.GetTag(ctx, child.ID)
	if repaired.Path != "data/sql" || repaired.Level != 2 {
		t.Fatalf("not repaired: path=%q level=%d", repaired.Path, repaired.Level)
	}

	updated, err = svc.RebuildTreePaths(ctx)
	if err != nil {
		t.Fatalf("second rebuild: %v", err)
	}
	if updated != 0 {
		t.Fatalf("second rebuild should write nothing, wrote %d", updated)
	}
}

func TestAncestorsDescendantsSiblings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	root, _ := svc.CreateTag(ctx, CreateTagInput{Name: "Web"})
	mid, _ := svc.CreateTag(ctx, CreateTagInput{Name: "Frontend", ParentID: &root.ID})
	leaf, _ := svc.CreateTag(ctx, CreateTagInput{Name: "React", ParentID: &mid.ID})
	sibling, _ := svc.CreateTag(ctx, CreateTagInput{Name: "Vue", ParentID: &mid.ID})

	ancestors, err := svc.GetAncestors(ctx, leaf.ID)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	if len(ancestors) != 2 || ancestors[0].ID != root.ID || ancestors[1].ID != mid.ID {
		t.Fatalf("ancestor chain wrong: %d entries", len(ancestors))
	}

	descendants, err := svc.GetDescendants(ctx, root.ID)
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	if len(descendants) != 3 {
		t.Fatalf("descendants: got=%d want=3", len(descendants))
	}

	siblings, err := svc.GetSiblings(ctx, leaf.ID)
	if err != nil {
		t.Fatalf("siblings: %v", err)
	}
	if len(siblings) != 1 || siblings[0].ID != sibling.ID {
		t.Fatalf("siblings wrong: %d entries", len(siblings))
	}
}

func TestGetNestedTreeOrdersChildrenByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	root, _ := svc.CreateTag(ctx, CreateTagInput{Name: "Root"})
	svc.CreateTag(ctx, CreateTagInput{Name: "Zeta", ParentID: &root.ID})
	svc.CreateTag(ctx, CreateTagInput{Name: "Alpha", ParentID: &root.ID})
	svc.CreateTag(ctx, CreateTagInput{Name: "Other"})

	tree, err := svc.GetNestedTree(ctx, nil)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("roots: got=%d want=2", len(tree))
	}
	if tree[0].Tag.Name != "Other" || tree[1].Tag.Name != "Root" {
		t.Fatalf("root order: %q, %q", tree[0].Tag.Name, tree[1].Tag.Name)
	}
	children := tree[1].Children
	if len(children) != 2 || children[0].Tag.Name != "Alpha" || children[1].Tag.Name != "Zeta" {
		t.Fatalf("child order wrong")
	}

	subtree, err := svc.GetNestedTree(ctx, &root.ID)
	if err != nil {
		t.Fatalf("subtree: %v", err)
	}
	if len(subtree) != 2 {
		t.Fatalf("subtree roots: got=%d want=2", len(subtree))
	}
}
