package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/compozy/conventional-release/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Fixed identity used for release commits.
const (
	releaseBotName  = "Release Bot"
	releaseBotEmail = "release@github.com"
)

// gitRepository implements GitRepository and RemotePublisher on go-git.
type gitRepository struct {
	repo  *git.Repository
	token string
}

// NewGitRepository opens the repository at path. The token, when non-empty,
// authenticates remote operations; it is injected rather than read from the
// environment.
func NewGitRepository(path, token string) (GitRepository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo, token: token}, nil
}

// NewRemotePublisher opens the repository at path for push operations.
func NewRemotePublisher(path, token string) (RemotePublisher, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo, token: token}, nil
}

// HeadCommit returns the commit at the tip of the checked-out branch.
func (r *gitRepository) HeadCommit(_ context.Context) (*domain.RawCommit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD commit: %w", err)
	}
	return &domain.RawCommit{SHA: commit.Hash.String(), Message: commit.Message}, nil
}

// ListTags returns every tag with its resolved target commit.
func (r *gitRepository) ListTags(_ context.Context) ([]domain.TagRecord, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	var tags []domain.TagRecord
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		sha, err := r.resolveTagCommit(ref)
		if err != nil {
			return nil // Skip refs we cannot peel to a commit
		}
		tags = append(tags, domain.TagRecord{Name: ref.Name().Short(), SHA: sha.String()})
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// resolveTagCommit resolves a tag reference to its commit hash, trying the
// lightweight form first and peeling annotated tags otherwise.
func (r *gitRepository) resolveTagCommit(tagRef *plumbing.Reference) (plumbing.Hash, error) {
	if commit, err := r.repo.CommitObject(tagRef.Hash()); err == nil {
		return commit.Hash, nil
	}
	if tagObj, err := r.repo.TagObject(tagRef.Hash()); err == nil {
		if commit, err := r.repo.CommitObject(tagObj.Target); err == nil {
			return commit.Hash, nil
		}
	}
	return plumbing.Hash{}, fmt.Errorf("failed to resolve commit for tag %s", tagRef.Name().Short())
}

// StageFiles adds the given worktree paths to the index.
func (r *gitRepository) StageFiles(_ context.Context, paths []string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	for _, path := range paths {
		if _, err := w.Add(path); err != nil {
			return fmt.Errorf("failed to stage %s: %w", path, err)
		}
	}
	return nil
}

// DetachHead points HEAD directly at the given commit.
func (r *gitRepository) DetachHead(_ context.Context, sha string) error {
	ref := plumbing.NewHashReference(plumbing.HEAD, plumbing.NewHash(sha))
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("failed to detach HEAD to %s: %w", sha, err)
	}
	return nil
}

// CommitWithParents snapshots the index and commits it with the given
// ordered parents under the fixed bot identity.
func (r *gitRepository) CommitWithParents(_ context.Context, message string, parents []string) (string, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	hashes := make([]plumbing.Hash, 0, len(parents))
	for _, p := range parents {
		hashes = append(hashes, plumbing.NewHash(p))
	}
	sig := &object.Signature{
		Name:  releaseBotName,
		Email: releaseBotEmail,
		When:  time.Now(),
	}
	hash, err := w.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   hashes,
		// A release with no configured file rules changes no content.
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}
	return hash.String(), nil
}

// CreateLightweightTag creates a tag reference with no metadata payload.
func (r *gitRepository) CreateLightweightTag(_ context.Context, name, sha string) error {
	if _, err := r.repo.CreateTag(name, plumbing.NewHash(sha), nil); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// UpsertBranch force-points the branch at the commit, creating it when
// absent. Reports whether the branch was created.
func (r *gitRepository) UpsertBranch(_ context.Context, name, sha string) (bool, error) {
	branchRef := plumbing.NewBranchReferenceName(name)
	_, lookupErr := r.repo.Reference(branchRef, false)
	created := lookupErr == plumbing.ErrReferenceNotFound
	if lookupErr != nil && !created {
		return false, fmt.Errorf("failed to look up branch %s: %w", name, lookupErr)
	}
	ref := plumbing.NewHashReference(branchRef, plumbing.NewHash(sha))
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return false, fmt.Errorf("failed to set branch %s: %w", name, err)
	}
	return created, nil
}

// CreateBranchRef creates a local branch reference at the commit.
func (r *gitRepository) CreateBranchRef(_ context.Context, name, sha string) error {
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(sha))
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("failed to create branch ref %s: %w", name, err)
	}
	return nil
}

// DeleteBranchRef removes a local branch reference.
func (r *gitRepository) DeleteBranchRef(_ context.Context, name string) error {
	if err := r.repo.Storer.RemoveReference(plumbing.NewBranchReferenceName(name)); err != nil {
		return fmt.Errorf("failed to delete branch ref %s: %w", name, err)
	}
	return nil
}

// PushBranches pushes the named branches to origin. Force is used because
// the major-version branch is repointed without ancestry checks.
func (r *gitRepository) PushBranches(ctx context.Context, names ...string) error {
	refSpecs := make([]config.RefSpec, 0, len(names))
	for _, name := range names {
		refSpecs = append(refSpecs,
			config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", name, name)))
	}
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RefSpecs: refSpecs,
		Auth:     r.getAuth(),
		Force:    true,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return &domain.RemoteError{Op: "push branches", Err: err}
	}
	return nil
}

// DeleteRemoteBranch deletes a branch on origin by pushing an empty ref.
func (r *gitRepository) DeleteRemoteBranch(ctx context.Context, name string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RefSpecs: []config.RefSpec{config.RefSpec(":refs/heads/" + name)},
		Auth:     r.getAuth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return &domain.RemoteError{Op: fmt.Sprintf("delete remote branch %s", name), Err: err}
	}
	return nil
}

// getAuth returns token authentication for pushes, or nil when no token is
// configured (local remotes, tests).
func (r *gitRepository) getAuth() *githttp.BasicAuth {
	if r.token == "" {
		return nil
	}
	return &githttp.BasicAuth{
		Username: "x-access-token",
		Password: r.token,
	}
}
