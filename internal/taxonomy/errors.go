package taxonomy

import "errors"

var (
	// ErrDuplicateNameOrSlug means another tag already owns the name or slug.
	ErrDuplicateNameOrSlug = errors.New("tag name or slug already in use")
	// ErrTagLocked means the tag is immune to edit, merge and delete.
	ErrTagLocked = errors.New("tag is locked")
	// ErrTagProtected means the tag cannot be deleted under current policy.
	ErrTagProtected = errors.New("tag is protected")
	// ErrTagNotFound means the referenced tag does not exist.
	ErrTagNotFound = errors.New("tag not found")
	// ErrCycleDetected means the parent assignment would create a cycle.
	ErrCycleDetected = errors.New("parent assignment would create a cycle")
	// ErrSelfParent means a tag was assigned itself as parent.
	ErrSelfParent = errors.New("tag cannot be its own parent")
	// ErrMaxDepthExceeded means the tree would exceed the configured depth.
	ErrMaxDepthExceeded = errors.New("max tree depth exceeded")
	// ErrBulkLimitExceeded means a bulk call carried too many items.
	ErrBulkLimitExceeded = errors.New("bulk item limit exceeded")
	// ErrFollowingDisabled means tag following is turned off by config.
	ErrFollowingDisabled = errors.New("tag following is disabled")
	// ErrAlreadyFollowing means the (tag, user) follow already exists.
	ErrAlreadyFollowing = errors.New("already following tag")
	// ErrNotFollowing means no (tag, user) follow exists to remove.
	ErrNotFollowing = errors.New("not following tag")
)
