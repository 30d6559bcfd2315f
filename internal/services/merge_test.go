package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/data/repos/testutil"
	"github.com/yungbote/tagforge-backend/internal/domain"
	pkgerrors "github.com/yungbote/tagforge-backend/internal/pkg/errors"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

func TestMergeTagsUnionsPostsFollowersAndSynonyms(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	survivor := testutil.SeedTag(t, db, "react", 0)
	dup := testutil.SeedTag(t, db, "reactjs", 0)
	if err := db.Model(dup).Update("synonyms", `["react.js"]`).Error; err != nil {
		t.Fatalf("seed synonyms: %v", err)
	}

	testutil.SeedPosts(t, db, 2, survivor)
	testutil.SeedPosts(t, db, 2, dup)
	testutil.SeedPosts(t, db, 1, survivor, dup)

	userShared := uuid.New()
	testutil.SeedFollow(t, db, survivor, userShared)
	testutil.SeedFollow(t, db, dup, userShared)
	testutil.SeedFollow(t, db, dup, uuid.New())

	merged, err := svc.MergeTags(ctx, []uuid.UUID{dup.ID}, survivor.ID)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	// 2 + 2 + 1 shared
	if merged.UsageCount != 5 {
		t.Fatalf("usage after merge: got=%d want=5", merged.UsageCount)
	}
	if len(merged.Posts) != 5 {
		t.Fatalf("post union: got=%d want=5", len(merged.Posts))
	}
	if merged.MergeCount != 1 {
		t.Fatalf("merge count: got=%d want=1", merged.MergeCount)
	}

	synonyms := merged.SynonymList()
	if len(synonyms) != 2 || synonyms[0] != "react.js" || synonyms[1] != "reactjs" {
		t.Fatalf("synonym union: %v", synonyms)
	}

	// duplicate is gone for good
	var remaining int64
	if err := db.Unscoped().Model(&domain.Tag{}).Where("id = ?", dup.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count dup: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("absorbed tag still exists")
	}

	// both followers ended up on the survivor, no double rows
	var follows int64
	if err := db.Table("tag_follow").Where("tag_id = ?", survivor.ID).Count(&follows).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}
	if follows != 2 {
		t.Fatalf("survivor followers: got=%d want=2", follows)
	}
}

func TestMergeTagsUserFollowingSeveralSources(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	survivor := testutil.SeedTag(t, db, "node", 20)
	dupA := testutil.SeedTag(t, db, "nodejs", 8)
	dupB := testutil.SeedTag(t, db, "node-js", 1)

	// one user follows both duplicates and not the survivor
	fan := uuid.New()
	testutil.SeedFollow(t, db, dupA, fan)
	testutil.SeedFollow(t, db, dupB, fan)

	if _, err := svc.MergeTags(ctx, []uuid.UUID{dupA.ID, dupB.ID}, survivor.ID); err != nil {
		t.Fatalf("merge with repeat follower: %v", err)
	}

	var follows int64
	if err := db.Table("tag_follow").Where("tag_id = ?", survivor.ID).Count(&follows).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}
	if follows != 1 {
		t.Fatalf("survivor followers: got=%d want=1", follows)
	}
}

func TestMergeTagsValidation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	target := testutil.SeedTag(t, db, "go", 5)
	source := testutil.SeedTag(t, db, "golang", 2)

	if _, err := svc.MergeTags(ctx, nil, target.ID); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("no sources: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.MergeTags(ctx, []uuid.UUID{target.ID}, target.ID); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("self merge: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.MergeTags(ctx, []uuid.UUID{uuid.New()}, target.ID); !errors.Is(err, taxonomy.ErrTagNotFound) {
		t.Fatalf("missing source: expected ErrTagNotFound, got %v", err)
	}

	if err := db.Model(source).Update("locked", true).Error; err != nil {
		t.Fatalf("lock source: %v", err)
	}
	if _, err := svc.MergeTags(ctx, []uuid.UUID{source.ID}, target.ID); !errors.Is(err, taxonomy.ErrTagLocked) {
		t.Fatalf("locked source: expected ErrTagLocked, got %v", err)
	}
}

func TestBulkMergeDuplicatesDryRunLeavesStoreUntouched(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	a := testutil.SeedTag(t, db, "react", 10)
	testutil.SeedTag(t, db, "reactjs", 2)

	result, err := svc.BulkMergeDuplicates(ctx, 0.70, true, nil)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !result.DryRun {
		t.Fatalf("result not flagged as dry run")
	}
	if len(result.Receipts) != 1 {
		t.Fatalf("expected 1 planned receipt, got %d", len(result.Receipts))
	}
	receipt := result.Receipts[0]
	if receipt.SurvivorID != a.ID || len(receipt.AbsorbedIDs) != 1 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if receipt.PostsRelinked != 0 {
		t.Fatalf("dry run reported relinked posts: %d", receipt.PostsRelinked)
	}
	if receipt.Score == 0 {
		t.Fatalf("dry run receipt missing score")
	}

	var count int64
	if err := db.Model(&domain.Tag{}).Count(&count).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if count != 2 {
		t.Fatalf("dry run mutated the corpus: %d tags", count)
	}
}

func TestBulkMergeDuplicatesMergesEachCluster(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	react := testutil.SeedTag(t, db, "react", 10)
	reactjs := testutil.SeedTag(t, db, "reactjs", 2)
	node := testutil.SeedTag(t, db, "nodejs", 8)
	nodejs2 := testutil.SeedTag(t, db, "node-js", 1)
	standalone := testutil.SeedTag(t, db, "postgres", 5)

	testutil.SeedPosts(t, db, 2, reactjs)

	result, err := svc.BulkMergeDuplicates(ctx, 0.70, false, nil)
	if err != nil {
		t.Fatalf("bulk merge: %v", err)
	}
	if len(result.Receipts) != 2 {
		t.Fatalf("expected 2 merged clusters, got %d (skipped %d)", len(result.Receipts), len(result.Skipped))
	}
	if len(result.Skipped) != 0 {
		t.Fatalf("unexpected skips: %v", result.Skipped)
	}

	survivors := map[uuid.UUID]bool{}
	for _, r := range result.Receipts {
		survivors[r.SurvivorID] = true
	}
	if !survivors[react.ID] || !survivors[node.ID] {
		t.Fatalf("wrong survivors: %v", survivors)
	}

	for _, absorbed := range []uuid.UUID{reactjs.ID, nodejs2.ID} {
		var n int64
		if err := db.Unscoped().Model(&domain.Tag{}).Where("id = ?", absorbed).Count(&n).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Fatalf("absorbed tag %s survived", absorbed)
		}
	}

	kept, err := svc.GetTag(ctx, standalone.ID)
	if err != nil || kept == nil {
		t.Fatalf("standalone tag was touched: %v", err)
	}
	mergedReact, _ := svc.GetTag(ctx, react.ID)
	if mergedReact.UsageCount != 2 {
		t.Fatalf("survivor usage after post relink: got=%d want=2", mergedReact.UsageCount)
	}
}

func TestBulkMergeDuplicatesSkipsLockedAndExcluded(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	locked := testutil.SeedTag(t, db, "react", 10)
	if err := db.Model(locked).Update("locked", true).Error; err != nil {
		t.Fatalf("lock: %v", err)
	}
	testutil.SeedTag(t, db, "reactjs", 2)

	result, err := svc.BulkMergeDuplicates(ctx, 0.70, false, nil)
	if err != nil {
		t.Fatalf("bulk merge: %v", err)
	}
	if len(result.Receipts) != 0 {
		t.Fatalf("locked tag merged anyway: %+v", result.Receipts)
	}

	a := testutil.SeedTag(t, db, "golang", 4)
	testutil.SeedTag(t, db, "go-lang", 1)
	result, err = svc.BulkMergeDuplicates(ctx, 0.70, false, []uuid.UUID{a.ID})
	if err != nil {
		t.Fatalf("bulk merge with exclusion: %v", err)
	}
	if len(result.Receipts) != 0 {
		t.Fatalf("excluded tag merged anyway: %+v", result.Receipts)
	}
}

func TestFindDuplicateTagsUsesConfiguredDefault(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	testutil.SeedTag(t, db, "react", 10)
	testutil.SeedTag(t, db, "reactjs", 2)
	testutil.SeedTag(t, db, "postgres", 5)

	candidates, err := svc.FindDuplicateTags(ctx, 0)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate at default threshold, got %d", len(candidates))
	}
	if candidates[0].TagA.Name != "react" || candidates[0].TagB.Name != "reactjs" {
		t.Fatalf("unexpected candidate: %+v", candidates[0])
	}
}
