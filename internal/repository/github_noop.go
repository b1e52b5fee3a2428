package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/conventional-release/internal/domain"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

// githubNoopRepository stands in when no token is configured, so tokenless
// dry runs can still be wired. Every operation fails with a descriptive
// error.
type githubNoopRepository struct {
	owner string
	repo  string
}

func NewGithubNoopRepository(owner, repo string) GithubRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) GetRepository(_ context.Context) (*domain.RepositoryInfo, error) {
	return nil, r.operationError("fetch repository metadata")
}

func (r *githubNoopRepository) ListTags(_ context.Context) ([]domain.TagRecord, error) {
	return nil, r.operationError("list tags")
}

func (r *githubNoopRepository) CreateRelease(
	_ context.Context,
	_, _, _ string,
) (*domain.ReleaseInfo, error) {
	return nil, r.operationError("create release")
}

func (r *githubNoopRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s for %s/%s", ErrGithubTokenRequired, action, r.owner, r.repo)
}
