package taxonomy

import (
	"testing"

	"github.com/google/uuid"
)

func TestUnionFindTransitiveClusters(t *testing.T) {
	t.Parallel()
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	uf := NewUnionFind()
	uf.Union(a, b)
	uf.Union(b, c)

	if uf.Find(a) != uf.Find(c) {
		t.Fatalf("a and c should share a root after chained unions")
	}
	if uf.Find(a) == uf.Find(d) {
		t.Fatalf("d was never unioned but shares a's root")
	}
}

func TestUnionFindGroups(t *testing.T) {
	t.Parallel()
	a, b, c, d, e := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	uf := NewUnionFind()
	uf.Union(a, b)
	uf.Union(c, d)
	uf.Find(e)

	groups := uf.Groups()
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	sizes := map[int]int{}
	for _, members := range groups {
		sizes[len(members)]++
	}
	if sizes[2] != 2 || sizes[1] != 1 {
		t.Fatalf("unexpected group sizes: %v", sizes)
	}
}

func TestUnionFindIdempotentUnion(t *testing.T) {
	t.Parallel()
	a, b := uuid.New(), uuid.New()

	uf := NewUnionFind()
	first := uf.Union(a, b)
	second := uf.Union(a, b)
	if first != second {
		t.Fatalf("repeated union changed the root: %s then %s", first, second)
	}
}
