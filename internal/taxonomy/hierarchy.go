package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Node is the flat-arena view of a tag used for tree computations. Parent and
// child relationships resolve by id lookup only; no object graph is built.
type Node struct {
	ID       uuid.UUID
	Name     string
	Slug     string
	ParentID *uuid.UUID
}

// TreeFields is the materialized hierarchy triple stored on every tag.
type TreeFields struct {
	Path  string
	Label string
	Level int
}

// ComputeTreeFields derives path, label and level for a tag named name under
// parentID. Path is the separator-joined chain of ancestor slugs including
// self; level counts the segments, root = 1. Label is the last
// separator-delimited segment of the (possibly compound) name. The routine
// itself enforces no depth limit; callers bound depth via config.
func ComputeTreeFields(name string, parentID *uuid.UUID, arena map[uuid.UUID]Node, cfg Config) (TreeFields, error) {
	label := name
	if cfg.TreeSeparator != "" {
		segments := strings.Split(name, cfg.TreeSeparator)
		label = segments[len(segments)-1]
	}

	slug := Slugify(name, cfg.CaseSensitiveSlugs)
	if parentID == nil {
		return TreeFields{Path: slug, Label: label, Level: 1}, nil
	}

	sep := cfg.TreeSeparator
	if sep == "" {
		sep = "/"
	}

	path := slug
	level := 1
	visited := map[uuid.UUID]bool{}
	current := parentID
	for current != nil {
		if visited[*current] {
			return TreeFields{}, fmt.Errorf("walking ancestors of %q: %w", name, ErrCycleDetected)
		}
		visited[*current] = true
		ancestor, ok := arena[*current]
		if !ok {
			return TreeFields{}, fmt.Errorf("parent %s of %q: %w", *current, name, ErrTagNotFound)
		}
		path = ancestor.Slug + sep + path
		level++
		current = ancestor.ParentID
	}
	return TreeFields{Path: path, Label: label, Level: level}, nil
}

// WouldCycle walks upward from candidateParentID and reports whether the walk
// reaches tagID or revisits a node (pre-existing corruption). It must be
// consulted before persisting any parent reassignment. A self-parent
// assignment is rejected by ValidateParent without a walk.
func WouldCycle(tagID uuid.UUID, candidateParentID *uuid.UUID, arena map[uuid.UUID]Node) bool {
	visited := map[uuid.UUID]bool{}
	current := candidateParentID
	for current != nil {
		if *current == tagID {
			return true
		}
		if visited[*current] {
			return true
		}
		visited[*current] = true
		node, ok := arena[*current]
		if !ok {
			return false
		}
		current = node.ParentID
	}
	return false
}

// ValidateParent rejects self-parent assignments unconditionally and cycle
// introducing ones via WouldCycle. Nil candidate (detach to root) is valid.
func ValidateParent(tagID uuid.UUID, candidateParentID *uuid.UUID, arena map[uuid.UUID]Node) error {
	if candidateParentID == nil {
		return nil
	}
	if *candidateParentID == tagID {
		return ErrSelfParent
	}
	if WouldCycle(tagID, candidateParentID, arena) {
		return ErrCycleDetected
	}
	return nil
}

// RebuildTreeFields recomputes path, label and level for every node in the
// arena, in name order. Idempotent: a second run over the same arena yields
// identical values. Nodes whose ancestry cannot be resolved are skipped.
func RebuildTreeFields(arena map[uuid.UUID]Node, cfg Config) map[uuid.UUID]TreeFields {
	nodes := make([]Node, 0, len(arena))
	for _, n := range arena {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })

	result := make(map[uuid.UUID]TreeFields, len(nodes))
	for _, n := range nodes {
		fields, err := ComputeTreeFields(n.Name, n.ParentID, arena, cfg)
		if err != nil {
			continue
		}
		result[n.ID] = fields
	}
	return result
}
