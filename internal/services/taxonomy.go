package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"gorm.io/gorm"

	postrepo "github.com/yungbote/tagforge-backend/internal/data/repos/post"
	tagrepo "github.com/yungbote/tagforge-backend/internal/data/repos/tag"
	"github.com/yungbote/tagforge-backend/internal/domain"
	pkgerrors "github.com/yungbote/tagforge-backend/internal/pkg/errors"
	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// TaxonomyService is the engine's public surface: tag CRUD, hierarchy
// maintenance, duplicate detection, merging, analytics and bulk operations.
// Each operation runs to completion synchronously, issuing independent writes
// against the store; no cross-step transaction is demarcated.
type TaxonomyService interface {
	CreateTag(ctx context.Context, input CreateTagInput) (*domain.Tag, error)
	UpdateTag(ctx context.Context, tagID uuid.UUID, input UpdateTagInput) (*domain.Tag, error)
	DeleteTag(ctx context.Context, tagID uuid.UUID, force bool) error
	GetTag(ctx context.Context, tagID uuid.UUID) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	FindDuplicateTags(ctx context.Context, threshold float64) ([]taxonomy.DuplicateCandidate, error)
	GroupDuplicates(ctx context.Context, threshold float64, excludeIDs []uuid.UUID) ([]taxonomy.DuplicateGroup, error)
	MergeTags(ctx context.Context, sourceIDs []uuid.UUID, targetID uuid.UUID) (*domain.Tag, error)
	BulkMergeDuplicates(ctx context.Context, threshold float64, dryRun bool, excludeIDs []uuid.UUID) (*MergeResult, error)

	RebuildTreePaths(ctx context.Context) (int, error)
	GetAncestors(ctx context.Context, tagID uuid.UUID) ([]*domain.Tag, error)
	GetDescendants(ctx context.Context, tagID uuid.UUID) ([]*domain.Tag, error)
	GetSiblings(ctx context.Context, tagID uuid.UUID) ([]*domain.Tag, error)
	GetNestedTree(ctx context.Context, parentID *uuid.UUID) ([]*TagTreeNode, error)

	GetAnalytics(ctx context.Context) (*taxonomy.TagAnalytics, error)

	BulkDelete(ctx context.Context, tagIDs []uuid.UUID, force bool) (*BulkResult, error)
	BulkSetLocked(ctx context.Context, tagIDs []uuid.UUID, locked bool) (*BulkResult, error)
	BulkSetParent(ctx context.Context, tagIDs []uuid.UUID, parentID *uuid.UUID) (*BulkResult, error)
	BulkUpdateStyle(ctx context.Context, tagIDs []uuid.UUID, color, icon string) (*BulkResult, error)

	CleanupOrphans(ctx context.Context) (int, error)
	RefreshTrending(ctx context.Context) (int, error)

	CurrentConfig() taxonomy.Config
	UpdateConfig(cfg taxonomy.Config)
}

// AnalyticsCache is the slice of the cache layer the service depends on.
// Every mutating operation invalidates through it so the next analytics read
// recomputes instead of serving a stale report.
type AnalyticsCache interface {
	Get(ctx context.Context) *taxonomy.TagAnalytics
	Set(ctx context.Context, report *taxonomy.TagAnalytics)
	Invalidate(ctx context.Context)
}

type noopAnalyticsCache struct{}

func (noopAnalyticsCache) Get(context.Context) *taxonomy.TagAnalytics  { return nil }
func (noopAnalyticsCache) Set(context.Context, *taxonomy.TagAnalytics) {}
func (noopAnalyticsCache) Invalidate(context.Context)                  {}

type taxonomyService struct {
	db         *gorm.DB
	log        *logger.Logger
	cfg        atomic.Pointer[taxonomy.Config]
	tagRepo    tagrepo.TagRepo
	followRepo tagrepo.FollowRepo
	postRepo   postrepo.PostRepo
	analytics  AnalyticsCache
}

func NewTaxonomyService(db *gorm.DB, log *logger.Logger, cfg taxonomy.Config, tagRepo tagrepo.TagRepo, followRepo tagrepo.FollowRepo, postRepo postrepo.PostRepo, analytics AnalyticsCache) TaxonomyService {
	serviceLog := log.With("service", "TaxonomyService")
	if analytics == nil {
		analytics = noopAnalyticsCache{}
	}
	ts := &taxonomyService{
		db:         db,
		log:        serviceLog,
		tagRepo:    tagRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
		analytics:  analytics,
	}
	ts.cfg.Store(&cfg)
	return ts
}

// CurrentConfig returns a copy of the active settings.
func (ts *taxonomyService) CurrentConfig() taxonomy.Config {
	return *ts.cfg.Load()
}

// UpdateConfig swaps the whole settings value atomically; in-flight
// operations keep the copy they loaded.
func (ts *taxonomyService) UpdateConfig(cfg taxonomy.Config) {
	ts.cfg.Store(&cfg)
	ts.log.Info("Engine config replaced", "duplicate_threshold", cfg.DuplicateThreshold, "max_bulk_items", cfg.MaxBulkItems)
}

func (ts *taxonomyService) CreateTag(ctx context.Context, input CreateTagInput) (*domain.Tag, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("tag name required: %w", pkgerrors.ErrInvalidArgument)
	}
	cfg := ts.CurrentConfig()
	slug := taxonomy.Slugify(name, cfg.CaseSensitiveSlugs)

	exists, err := ts.tagRepo.NameOrSlugExists(ctx, nil, strings.ToLower(name), slug, nil)
	if err != nil {
		return nil, fmt.Errorf("checking name uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%q: %w", name, taxonomy.ErrDuplicateNameOrSlug)
	}

	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading tag corpus: %w", err)
	}
	arena := arenaFromTags(all)

	if input.ParentID != nil {
		if _, ok := arena[*input.ParentID]; !ok {
			return nil, fmt.Errorf("parent %s: %w", *input.ParentID, taxonomy.ErrTagNotFound)
		}
	}
	fields, err := taxonomy.ComputeTreeFields(name, input.ParentID, arena, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.MaxTreeDepth > 0 && fields.Level > cfg.MaxTreeDepth {
		return nil, fmt.Errorf("level %d: %w", fields.Level, taxonomy.ErrMaxDepthExceeded)
	}

	tag := &domain.Tag{
		ID:             uuid.New(),
		Name:           name,
		Slug:           slug,
		ParentID:       input.ParentID,
		Path:           fields.Path,
		Label:          fields.Label,
		Level:          fields.Level,
		Color:          input.Color,
		Icon:           input.Icon,
		SEOTitle:       input.SEOTitle,
		SEODescription: input.SEODesc,
		SEOImage:       input.SEOImage,
		Featured:       input.Featured,
		Protected:      input.Protected,
	}
	if err := tag.SetSynonymList(foldSynonyms(input.Synonyms, name)); err != nil {
		return nil, fmt.Errorf("encoding synonyms: %w", err)
	}

	created, err := ts.tagRepo.Create(ctx, nil, []*domain.Tag{tag})
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}
	ts.analytics.Invalidate(ctx)
	ts.log.Info("Tag created", "tag_id", tag.ID, "name", name, "path", fields.Path)
	return created[0], nil
}

func (ts *taxonomyService) UpdateTag(ctx context.Context, tagID uuid.UUID, input UpdateTagInput) (*domain.Tag, error) {
	tag, err := ts.getTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag.Locked {
		return nil, fmt.Errorf("%q: %w", tag.Name, taxonomy.ErrTagLocked)
	}
	cfg := ts.CurrentConfig()

	all, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading tag corpus: %w", err)
	}
	arena := arenaFromTags(all)

	newName := tag.Name
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		newName = strings.TrimSpace(*input.Name)
	}
	newParentID := tag.ParentID
	parentChanged := false
	if input.ClearParent {
		newParentID = nil
		parentChanged = tag.ParentID != nil
	} else if input.ParentID != nil {
		newParentID = input.ParentID
		parentChanged = tag.ParentID == nil || *tag.ParentID != *input.ParentID
	}

	// Validation happens before any write; a rejected move leaves no
	// partial state behind.
	if parentChanged {
		if newParentID != nil {
			if _, ok := arena[*newParentID]; !ok {
				return nil, fmt.Errorf("parent %s: %w", *newParentID, taxonomy.ErrTagNotFound)
			}
		}
		if err := taxonomy.ValidateParent(tagID, newParentID, arena); err != nil {
			return nil, err
		}
	}

	newSlug := tag.Slug
	nameChanged := newName != tag.Name
	if nameChanged {
		newSlug = taxonomy.Slugify(newName, cfg.CaseSensitiveSlugs)
		exists, err := ts.tagRepo.NameOrSlugExists(ctx, nil, strings.ToLower(newName), newSlug, &tagID)
		if err != nil {
			return nil, fmt.Errorf("checking name uniqueness: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%q: %w", newName, taxonomy.ErrDuplicateNameOrSlug)
		}
	}

	updates := map[string]any{}
	if nameChanged {
		updates["name"] = newName
		updates["slug"] = newSlug
	}
	if parentChanged {
		updates["parent_id"] = newParentID
	}
	if input.Synonyms != nil {
		scratch := domain.Tag{}
		if err := scratch.SetSynonymList(foldSynonyms(*input.Synonyms, newName)); err != nil {
			return nil, fmt.Errorf("encoding synonyms: %w", err)
		}
		updates["synonyms"] = scratch.Synonyms
	}
	if input.Color != nil {
		updates["color"] = *input.Color
	}
	if input.Icon != nil {
		updates["icon"] = *input.Icon
	}
	if input.SEOTitle != nil {
		updates["seo_title"] = *input.SEOTitle
	}
	if input.SEODesc != nil {
		updates["seo_description"] = *input.SEODesc
	}
	if input.SEOImage != nil {
		updates["seo_image"] = *input.SEOImage
	}
	if input.Featured != nil {
		updates["featured"] = *input.Featured
	}
	if input.Protected != nil {
		updates["protected"] = *input.Protected
	}

	if nameChanged || parentChanged {
		node := arena[tagID]
		node.Name = newName
		node.Slug = newSlug
		node.ParentID = newParentID
		arena[tagID] = node

		fields, err := taxonomy.ComputeTreeFields(newName, newParentID, arena, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.MaxTreeDepth > 0 && fields.Level > cfg.MaxTreeDepth {
			return nil, fmt.Errorf("level %d: %w", fields.Level, taxonomy.ErrMaxDepthExceeded)
		}
		updates["path"] = fields.Path
		updates["label"] = fields.Label
		updates["level"] = fields.Level
	}

	if len(updates) > 0 {
		if err := ts.tagRepo.Update(ctx, nil, tagID, updates); err != nil {
			return nil, fmt.Errorf("updating tag: %w", err)
		}
		ts.analytics.Invalidate(ctx)
	}

	if nameChanged || parentChanged {
		if err := ts.applyTreeFields(ctx, arena, tagID, cfg); err != nil {
			return nil, fmt.Errorf("recomputing subtree paths: %w", err)
		}
	}

	return ts.getTag(ctx, tagID)
}

func (ts *taxonomyService) DeleteTag(ctx context.Context, tagID uuid.UUID, force bool) error {
	tag, err := ts.getTag(ctx, tagID)
	if err != nil {
		return err
	}
	cfg := ts.CurrentConfig()
	if tag.Locked {
		return fmt.Errorf("%q: %w", tag.Name, taxonomy.ErrTagLocked)
	}
	if tag.Protected && (cfg.ProtectAllTags || !force) {
		return fmt.Errorf("%q: %w", tag.Name, taxonomy.ErrTagProtected)
	}
	return ts.deleteOne(ctx, tag, cfg)
}

// deleteOne detaches posts, drops follows, reparents children to root and
// soft-deletes the tag. Eligibility is the caller's problem.
func (ts *taxonomyService) deleteOne(ctx context.Context, tag *domain.Tag, cfg taxonomy.Config) error {
	if err := ts.tagRepo.ClearPosts(ctx, nil, tag.ID); err != nil {
		return fmt.Errorf("detaching posts: %w", err)
	}
	if err := ts.followRepo.DeleteByTagIDs(ctx, nil, []uuid.UUID{tag.ID}); err != nil {
		return fmt.Errorf("removing follows: %w", err)
	}

	children, err := ts.tagRepo.ListByParent(ctx, nil, &tag.ID)
	if err != nil {
		return fmt.Errorf("listing children: %w", err)
	}
	if err := ts.tagRepo.Delete(ctx, nil, []uuid.UUID{tag.ID}); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	if len(children) > 0 {
		childIDs := make([]uuid.UUID, 0, len(children))
		for _, child := range children {
			childIDs = append(childIDs, child.ID)
		}
		if _, err := ts.tagRepo.UpdateMany(ctx, nil, childIDs, map[string]any{"parent_id": nil}); err != nil {
			return fmt.Errorf("detaching children: %w", err)
		}
		all, err := ts.tagRepo.ListAll(ctx, nil)
		if err != nil {
			return fmt.Errorf("loading tag corpus: %w", err)
		}
		arena := arenaFromTags(all)
		for _, child := range children {
			if err := ts.applyTreeFields(ctx, arena, child.ID, cfg); err != nil {
				return fmt.Errorf("recomputing child subtree: %w", err)
			}
		}
	}
	ts.analytics.Invalidate(ctx)
	ts.log.Info("Tag deleted", "tag_id", tag.ID, "name", tag.Name)
	return nil
}

func (ts *taxonomyService) GetTag(ctx context.Context, tagID uuid.UUID) (*domain.Tag, error) {
	return ts.getTag(ctx, tagID)
}

func (ts *taxonomyService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return ts.tagRepo.ListAll(ctx, nil)
}

func (ts *taxonomyService) getTag(ctx context.Context, tagID uuid.UUID) (*domain.Tag, error) {
	found, err := ts.tagRepo.GetByIDs(ctx, nil, []uuid.UUID{tagID})
	if err != nil {
		return nil, fmt.Errorf("fetching tag: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("tag %s: %w", tagID, taxonomy.ErrTagNotFound)
	}
	return found[0], nil
}

func arenaFromTags(tags []*domain.Tag) map[uuid.UUID]taxonomy.Node {
	arena := make(map[uuid.UUID]taxonomy.Node, len(tags))
	for _, t := range tags {
		arena[t.ID] = taxonomy.Node{
			ID:       t.ID,
			Name:     t.Name,
			Slug:     t.Slug,
			ParentID: t.ParentID,
		}
	}
	return arena
}

func summariesFromTags(tags []*domain.Tag) []taxonomy.TagSummary {
	summaries := make([]taxonomy.TagSummary, 0, len(tags))
	for _, t := range tags {
		summaries = append(summaries, taxonomy.TagSummary{
			ID:         t.ID,
			Name:       t.Name,
			Slug:       t.Slug,
			UsageCount: t.UsageCount,
			Locked:     t.Locked,
		})
	}
	return summaries
}

// foldSynonyms lowercases, dedupes and strips the tag's own name.
func foldSynonyms(synonyms []string, ownName string) []string {
	seen := make(map[string]bool, len(synonyms))
	out := make([]string, 0, len(synonyms))
	own := strings.ToLower(strings.TrimSpace(ownName))
	for _, s := range synonyms {
		folded := strings.ToLower(strings.TrimSpace(s))
		if folded == "" || folded == own || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, folded)
	}
	return out
}
