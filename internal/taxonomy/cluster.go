package taxonomy

import (
	"sort"

	"github.com/google/uuid"
)

// TagSummary is the light projection the duplicate scan works on.
type TagSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	UsageCount int       `json:"usage_count"`
	Locked     bool      `json:"locked"`
}

// DuplicateCandidate is an ephemeral scored pair; never persisted.
type DuplicateCandidate struct {
	TagA  TagSummary `json:"tag_a"`
	TagB  TagSummary `json:"tag_b"`
	Score float64    `json:"score"`
}

// DuplicateGroup is an ephemeral merge cluster: one survivor plus the tags it
// would absorb, with the maximum pairwise score seen inside the cluster.
type DuplicateGroup struct {
	Survivor   TagSummary   `json:"survivor"`
	Duplicates []TagSummary `json:"duplicates"`
	MaxScore   float64      `json:"max_score"`
}

// FindDuplicatePairs scores every unordered pair of tag names and keeps those
// at or above threshold, sorted by score descending with name tiebreaks, and
// capped at limit to bound downstream work. Locked tags never pair. The scan
// is O(n^2) over the corpus, which stays bounded by configuration.
func FindDuplicatePairs(tags []TagSummary, threshold float64, limit int) []DuplicateCandidate {
	candidates := make([]DuplicateCandidate, 0)
	for i := 0; i < len(tags); i++ {
		if tags[i].Locked {
			continue
		}
		for j := i + 1; j < len(tags); j++ {
			if tags[j].Locked {
				continue
			}
			score := Similarity(tags[i].Name, tags[j].Name)
			if score < threshold {
				continue
			}
			candidates = append(candidates, DuplicateCandidate{
				TagA:  tags[i],
				TagB:  tags[j],
				Score: score,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].TagA.Name != candidates[j].TagA.Name {
			return candidates[i].TagA.Name < candidates[j].TagA.Name
		}
		return candidates[i].TagB.Name < candidates[j].TagB.Name
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// SortByUsage orders summaries by usage count descending, name ascending on
// ties. Survivor selection and trending ranking share this ordering.
func SortByUsage(summaries []TagSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].UsageCount != summaries[j].UsageCount {
			return summaries[i].UsageCount > summaries[j].UsageCount
		}
		return summaries[i].Name < summaries[j].Name
	})
}

// GroupDuplicates clusters the candidate pairs at or above threshold into
// disjoint merge groups via union-find. Pairs touching an excluded id are
// skipped entirely. Clustering follows connectivity, not direct pairwise
// scores: if A~B and B~C pass the threshold but A~C does not, all three still
// share a group. Within each group members sort by usage count descending,
// name ascending on ties; the first member is the survivor. Groups sort by
// their max pairwise score descending.
func GroupDuplicates(tags []TagSummary, threshold float64, excludeIDs []uuid.UUID, limit int) []DuplicateGroup {
	excluded := make(map[uuid.UUID]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	pairs := FindDuplicatePairs(tags, threshold, limit)

	uf := NewUnionFind()
	linked := make(map[uuid.UUID]bool)
	for _, pair := range pairs {
		if excluded[pair.TagA.ID] || excluded[pair.TagB.ID] {
			continue
		}
		uf.Union(pair.TagA.ID, pair.TagB.ID)
		linked[pair.TagA.ID] = true
		linked[pair.TagB.ID] = true
	}

	maxScore := make(map[uuid.UUID]float64)
	for _, pair := range pairs {
		if excluded[pair.TagA.ID] || excluded[pair.TagB.ID] {
			continue
		}
		root := uf.Find(pair.TagA.ID)
		if pair.Score > maxScore[root] {
			maxScore[root] = pair.Score
		}
	}

	byID := make(map[uuid.UUID]TagSummary, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}

	groups := make([]DuplicateGroup, 0)
	for root, memberIDs := range uf.Groups() {
		if len(memberIDs) < 2 {
			continue
		}
		members := make([]TagSummary, 0, len(memberIDs))
		for _, id := range memberIDs {
			if !linked[id] {
				continue
			}
			if summary, ok := byID[id]; ok {
				members = append(members, summary)
			}
		}
		if len(members) < 2 {
			continue
		}
		SortByUsage(members)
		groups = append(groups, DuplicateGroup{
			Survivor:   members[0],
			Duplicates: members[1:],
			MaxScore:   maxScore[root],
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].MaxScore != groups[j].MaxScore {
			return groups[i].MaxScore > groups[j].MaxScore
		}
		return groups[i].Survivor.Name < groups[j].Survivor.Name
	})
	return groups
}
