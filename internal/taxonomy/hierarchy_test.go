package taxonomy

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func testArena(nodes ...Node) map[uuid.UUID]Node {
	arena := make(map[uuid.UUID]Node, len(nodes))
	for _, n := range nodes {
		arena[n.ID] = n
	}
	return arena
}

func TestComputeTreeFieldsRoot(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	fields, err := ComputeTreeFields("Frontend", nil, testArena(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.Path != "frontend" || fields.Label != "Frontend" || fields.Level != 1 {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestComputeTreeFieldsNested(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	frontend := Node{ID: uuid.New(), Name: "Frontend", Slug: "frontend"}
	react := Node{ID: uuid.New(), Name: "React", Slug: "react", ParentID: &frontend.ID}
	arena := testArena(frontend, react)

	fields, err := ComputeTreeFields("Hooks", &react.ID, arena, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.Path != "frontend/react/hooks" {
		t.Fatalf("unexpected path: %q", fields.Path)
	}
	if fields.Level != 3 {
		t.Fatalf("unexpected level: %d", fields.Level)
	}
}

func TestComputeTreeFieldsCompoundLabel(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	fields, err := ComputeTreeFields("Backend/Databases", nil, testArena(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.Label != "Databases" {
		t.Fatalf("compound name label: got=%q want=%q", fields.Label, "Databases")
	}
}

func TestComputeTreeFieldsDetectsCorruptAncestry(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	idA, idB := uuid.New(), uuid.New()
	// a and b point at each other; any walk through them loops
	arena := testArena(
		Node{ID: idA, Name: "A", Slug: "a", ParentID: &idB},
		Node{ID: idB, Name: "B", Slug: "b", ParentID: &idA},
	)
	_, err := ComputeTreeFields("C", &idA, arena, cfg)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestComputeTreeFieldsMissingAncestor(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	missing := uuid.New()
	_, err := ComputeTreeFields("Orphan", &missing, testArena(), cfg)
	if !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestValidateParentRejectsSelf(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	arena := testArena(Node{ID: id, Name: "Self", Slug: "self"})
	if err := ValidateParent(id, &id, arena); !errors.Is(err, ErrSelfParent) {
		t.Fatalf("expected ErrSelfParent, got %v", err)
	}
}

func TestValidateParentRejectsDescendant(t *testing.T) {
	t.Parallel()
	root := Node{ID: uuid.New(), Name: "Root", Slug: "root"}
	child := Node{ID: uuid.New(), Name: "Child", Slug: "child", ParentID: &root.ID}
	grandchild := Node{ID: uuid.New(), Name: "Grandchild", Slug: "grandchild", ParentID: &child.ID}
	arena := testArena(root, child, grandchild)

	if err := ValidateParent(root.ID, &grandchild.ID, arena); !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("reparenting root under its grandchild: expected ErrCycleDetected, got %v", err)
	}
	if err := ValidateParent(grandchild.ID, &root.ID, arena); err != nil {
		t.Fatalf("valid move rejected: %v", err)
	}
	if err := ValidateParent(child.ID, nil, arena); err != nil {
		t.Fatalf("detach to root rejected: %v", err)
	}
}

func TestRebuildTreeFieldsIdempotent(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	root := Node{ID: uuid.New(), Name: "Languages", Slug: "languages"}
	child := Node{ID: uuid.New(), Name: "Go", Slug: "go", ParentID: &root.ID}
	arena := testArena(root, child)

	first := RebuildTreeFields(arena, cfg)
	second := RebuildTreeFields(arena, cfg)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected fields for both nodes, got %d then %d", len(first), len(second))
	}
	for id, fields := range first {
		if second[id] != fields {
			t.Fatalf("rebuild not idempotent for %s: %+v vs %+v", id, fields, second[id])
		}
	}
	if first[child.ID].Path != "languages/go" {
		t.Fatalf("unexpected child path: %q", first[child.ID].Path)
	}
}

func TestRebuildTreeFieldsSkipsUnresolvable(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	missing := uuid.New()
	ok := Node{ID: uuid.New(), Name: "Fine", Slug: "fine"}
	broken := Node{ID: uuid.New(), Name: "Broken", Slug: "broken", ParentID: &missing}
	arena := testArena(ok, broken)

	fields := RebuildTreeFields(arena, cfg)
	if _, found := fields[broken.ID]; found {
		t.Fatalf("node with missing ancestor should be skipped")
	}
	if _, found := fields[ok.ID]; !found {
		t.Fatalf("healthy node missing from rebuild")
	}
}
