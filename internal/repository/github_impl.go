package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/conventional-release/internal/domain"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a GithubRepository authenticated with token.
func NewGithubRepository(token, owner, repo string) (GithubRepository, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("github owner and repository are required")
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubRepository{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// GetRepository fetches the repository metadata.
func (r *githubRepository) GetRepository(ctx context.Context) (*domain.RepositoryInfo, error) {
	repo, _, err := r.client.Repositories.Get(ctx, r.owner, r.repo)
	if err != nil {
		return nil, &domain.RemoteError{Op: "get repository", Err: err}
	}
	return &domain.RepositoryInfo{
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		DefaultBranch: repo.GetDefaultBranch(),
	}, nil
}

// ListTags fetches the full tag list, following pagination.
func (r *githubRepository) ListTags(ctx context.Context) ([]domain.TagRecord, error) {
	opts := &github.ListOptions{PerPage: 100}
	var tags []domain.TagRecord
	for {
		page, resp, err := r.client.Repositories.ListTags(ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, &domain.RemoteError{Op: "list tags", Err: err}
		}
		for _, t := range page {
			tags = append(tags, domain.TagRecord{
				Name: t.GetName(),
				SHA:  t.GetCommit().GetSHA(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return tags, nil
}

// CreateRelease creates the platform release record for a tag.
func (r *githubRepository) CreateRelease(
	ctx context.Context,
	tagName, name, targetSHA string,
) (*domain.ReleaseInfo, error) {
	release, _, err := r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, &github.RepositoryRelease{
		TagName:         github.Ptr(tagName),
		Name:            github.Ptr(name),
		TargetCommitish: github.Ptr(targetSHA),
	})
	if err != nil {
		return nil, &domain.RemoteError{Op: fmt.Sprintf("create release %s", tagName), Err: err}
	}
	return &domain.ReleaseInfo{
		TagName: release.GetTagName(),
		Name:    release.GetName(),
		HTMLURL: release.GetHTMLURL(),
	}, nil
}
