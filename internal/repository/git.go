package repository

import (
	"context"

	"github.com/compozy/conventional-release/internal/domain"
)

// GitRepository defines the local version-control surface the release run
// touches: read tags and the mainline tip, then write exactly one commit,
// one lightweight tag and one branch reference.

type GitRepository interface {
	// HeadCommit returns the commit at the tip of the checked-out branch.
	HeadCommit(ctx context.Context) (*domain.RawCommit, error)
	// ListTags returns every tag with its resolved target commit.
	// Annotated tags are peeled; unresolvable refs are skipped.
	ListTags(ctx context.Context) ([]domain.TagRecord, error)
	// StageFiles adds the given worktree paths to the index.
	StageFiles(ctx context.Context, paths []string) error
	// DetachHead points HEAD directly at a commit so that the following
	// commit operation advances no named branch.
	DetachHead(ctx context.Context, sha string) error
	// CommitWithParents snapshots the index into a tree and creates a
	// commit with the given ordered parents. No content merge happens;
	// the parent list is a pointer join.
	CommitWithParents(ctx context.Context, message string, parents []string) (string, error)
	// CreateLightweightTag creates a tag reference with no metadata
	// payload. An existing tag with the same name is an error.
	CreateLightweightTag(ctx context.Context, name, sha string) error
	// UpsertBranch force-points the branch at the commit, creating it
	// when absent. No ancestry check. Reports whether it was created.
	UpsertBranch(ctx context.Context, name, sha string) (bool, error)
	// CreateBranchRef and DeleteBranchRef manage short-lived local refs
	// used to stage a push.
	CreateBranchRef(ctx context.Context, name, sha string) error
	DeleteBranchRef(ctx context.Context, name string) error
}
