package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/data/repos/testutil"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

func TestFollowLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	follows := newTestFollowService(t, svc, db)
	ctx := context.Background()

	tag := testutil.SeedTag(t, db, "go", 5)
	user := uuid.New()

	following, err := follows.IsFollowing(ctx, tag.ID, user)
	if err != nil || following {
		t.Fatalf("fresh user already following: %v %v", following, err)
	}

	created, err := follows.Follow(ctx, tag.ID, user)
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if created.TagID != tag.ID || created.UserID != user {
		t.Fatalf("wrong follow row: %+v", created)
	}

	if _, err := follows.Follow(ctx, tag.ID, user); !errors.Is(err, taxonomy.ErrAlreadyFollowing) {
		t.Fatalf("double follow: expected ErrAlreadyFollowing, got %v", err)
	}

	count, err := follows.FollowerCount(ctx, tag.ID)
	if err != nil || count != 1 {
		t.Fatalf("follower count: %d %v", count, err)
	}

	if err := follows.Unfollow(ctx, tag.ID, user); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if err := follows.Unfollow(ctx, tag.ID, user); !errors.Is(err, taxonomy.ErrNotFollowing) {
		t.Fatalf("double unfollow: expected ErrNotFollowing, got %v", err)
	}
}

func TestFollowUnknownTag(t *testing.T) {
	svc, db := newTestService(t)
	follows := newTestFollowService(t, svc, db)
	ctx := context.Background()

	if _, err := follows.Follow(ctx, uuid.New(), uuid.New()); !errors.Is(err, taxonomy.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestFollowRespectsFeatureGate(t *testing.T) {
	svc, db := newTestService(t)
	follows := newTestFollowService(t, svc, db)
	ctx := context.Background()

	cfg := svc.CurrentConfig()
	cfg.FollowingEnabled = false
	svc.UpdateConfig(cfg)

	tag := testutil.SeedTag(t, db, "gated", 0)
	if _, err := follows.Follow(ctx, tag.ID, uuid.New()); !errors.Is(err, taxonomy.ErrFollowingDisabled) {
		t.Fatalf("follow while disabled: expected ErrFollowingDisabled, got %v", err)
	}
	if err := follows.Unfollow(ctx, tag.ID, uuid.New()); !errors.Is(err, taxonomy.ErrFollowingDisabled) {
		t.Fatalf("unfollow while disabled: expected ErrFollowingDisabled, got %v", err)
	}
}
