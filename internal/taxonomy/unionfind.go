package taxonomy

import "github.com/google/uuid"

// UnionFind is a map-backed disjoint-set over tag ids with path compression.
// Elements are added lazily on first Find or Union.
type UnionFind struct {
	parent map[uuid.UUID]uuid.UUID
}

func NewUnionFind() *UnionFind {
	return &UnionFind{parent: make(map[uuid.UUID]uuid.UUID)}
}

// Find returns the representative of id's cluster, compressing the walked
// path so future lookups are near-constant.
func (uf *UnionFind) Find(id uuid.UUID) uuid.UUID {
	p, ok := uf.parent[id]
	if !ok {
		uf.parent[id] = id
		return id
	}
	if p == id {
		return id
	}
	root := uf.Find(p)
	uf.parent[id] = root
	return root
}

// Union merges the clusters containing a and b and returns the surviving root.
func (uf *UnionFind) Union(a, b uuid.UUID) uuid.UUID {
	rootA := uf.Find(a)
	rootB := uf.Find(b)
	if rootA == rootB {
		return rootA
	}
	uf.parent[rootB] = rootA
	return rootA
}

// Groups collects every cluster as root -> member ids (members include the
// root itself). Only elements seen by Find/Union appear.
func (uf *UnionFind) Groups() map[uuid.UUID][]uuid.UUID {
	groups := make(map[uuid.UUID][]uuid.UUID)
	for id := range uf.parent {
		root := uf.Find(id)
		groups[root] = append(groups[root], id)
	}
	return groups
}
