package tag

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/data/repos/testutil"
	"github.com/yungbote/tagforge-backend/internal/domain"
)

func TestReassignTagsMovesFollowers(t *testing.T) {
	db := testutil.DB(t)
	repo := NewFollowRepo(db, testutil.Logger(t))
	ctx := context.Background()

	source := testutil.SeedTag(t, db, "reactjs", 2)
	target := testutil.SeedTag(t, db, "react", 10)

	userA := uuid.New()
	userB := uuid.New()
	testutil.SeedFollow(t, db, source, userA)
	testutil.SeedFollow(t, db, source, userB)

	moved, err := repo.ReassignTags(ctx, nil, []uuid.UUID{source.ID}, target.ID)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if moved != 2 {
		t.Fatalf("moved count: got=%d want=2", moved)
	}

	count, err := repo.CountByTag(ctx, nil, target.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("target followers: got=%d want=2", count)
	}
}

func TestReassignTagsDropsConflictingFollows(t *testing.T) {
	db := testutil.DB(t)
	repo := NewFollowRepo(db, testutil.Logger(t))
	ctx := context.Background()

	source := testutil.SeedTag(t, db, "reactjs", 2)
	target := testutil.SeedTag(t, db, "react", 10)

	// this user follows both; moving their source follow would violate the
	// (tag, user) unique index, so it must be dropped instead
	both := uuid.New()
	onlySource := uuid.New()
	testutil.SeedFollow(t, db, source, both)
	testutil.SeedFollow(t, db, target, both)
	testutil.SeedFollow(t, db, source, onlySource)

	moved, err := repo.ReassignTags(ctx, nil, []uuid.UUID{source.ID}, target.ID)
	if err != nil {
		t.Fatalf("reassign with conflict: %v", err)
	}
	if moved != 1 {
		t.Fatalf("moved count: got=%d want=1", moved)
	}

	count, err := repo.CountByTag(ctx, nil, target.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("target followers: got=%d want=2", count)
	}

	var sourceRows int64
	if err := db.Model(&domain.TagFollow{}).Where("tag_id = ?", source.ID).Count(&sourceRows).Error; err != nil {
		t.Fatalf("source rows: %v", err)
	}
	if sourceRows != 0 {
		t.Fatalf("follows left on source tag: %d", sourceRows)
	}
}

func TestReassignTagsCollapsesFollowsAcrossSources(t *testing.T) {
	db := testutil.DB(t)
	repo := NewFollowRepo(db, testutil.Logger(t))
	ctx := context.Background()

	sourceA := testutil.SeedTag(t, db, "nodejs", 8)
	sourceB := testutil.SeedTag(t, db, "node-js", 1)
	target := testutil.SeedTag(t, db, "node", 20)

	// this user follows both sources but not the target; only one of the two
	// rows may land on the target
	both := uuid.New()
	other := uuid.New()
	testutil.SeedFollow(t, db, sourceA, both)
	testutil.SeedFollow(t, db, sourceB, both)
	testutil.SeedFollow(t, db, sourceB, other)

	moved, err := repo.ReassignTags(ctx, nil, []uuid.UUID{sourceA.ID, sourceB.ID}, target.ID)
	if err != nil {
		t.Fatalf("reassign across sources: %v", err)
	}
	if moved != 2 {
		t.Fatalf("moved count: got=%d want=2", moved)
	}

	count, err := repo.CountByTag(ctx, nil, target.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("target followers: got=%d want=2", count)
	}

	var perUser int64
	if err := db.Model(&domain.TagFollow{}).
		Where("tag_id = ? AND user_id = ?", target.ID, both).
		Count(&perUser).Error; err != nil {
		t.Fatalf("per-user rows: %v", err)
	}
	if perUser != 1 {
		t.Fatalf("user follows target %d times", perUser)
	}
}

func TestGetByTagAndUserAndDelete(t *testing.T) {
	db := testutil.DB(t)
	repo := NewFollowRepo(db, testutil.Logger(t))
	ctx := context.Background()

	tag := testutil.SeedTag(t, db, "go", 5)
	user := uuid.New()
	seeded := testutil.SeedFollow(t, db, tag, user)

	found, err := repo.GetByTagAndUser(ctx, nil, tag.ID, user)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.ID != seeded.ID {
		t.Fatalf("wrong follow returned")
	}

	if err := repo.Delete(ctx, nil, seeded.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByTagAndUser(ctx, nil, tag.ID, user); err == nil {
		t.Fatalf("deleted follow still found")
	}
}
