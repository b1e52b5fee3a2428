package repository

import (
	"context"

	"github.com/compozy/conventional-release/internal/domain"
)

// GithubRepository defines the hosting-platform REST surface the run
// consumes: repository metadata, the tag list, and release creation.

type GithubRepository interface {
	GetRepository(ctx context.Context) (*domain.RepositoryInfo, error)
	ListTags(ctx context.Context) ([]domain.TagRecord, error)
	CreateRelease(ctx context.Context, tagName, name, targetSHA string) (*domain.ReleaseInfo, error)
}
