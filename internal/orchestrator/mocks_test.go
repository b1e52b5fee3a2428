package orchestrator

import (
	"context"

	"github.com/compozy/conventional-release/internal/config"
	"github.com/compozy/conventional-release/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct {
	mock.Mock
}

func (m *mockGitRepository) HeadCommit(ctx context.Context) (*domain.RawCommit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawCommit), args.Error(1)
}

func (m *mockGitRepository) ListTags(ctx context.Context) ([]domain.TagRecord, error) {
	args := m.Called(ctx)
	if tags := args.Get(0); tags != nil {
		return tags.([]domain.TagRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGitRepository) StageFiles(ctx context.Context, paths []string) error {
	args := m.Called(ctx, paths)
	return args.Error(0)
}

func (m *mockGitRepository) DetachHead(ctx context.Context, sha string) error {
	args := m.Called(ctx, sha)
	return args.Error(0)
}

func (m *mockGitRepository) CommitWithParents(ctx context.Context, message string, parents []string) (string, error) {
	args := m.Called(ctx, message, parents)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) CreateLightweightTag(ctx context.Context, name, sha string) error {
	args := m.Called(ctx, name, sha)
	return args.Error(0)
}

func (m *mockGitRepository) UpsertBranch(ctx context.Context, name, sha string) (bool, error) {
	args := m.Called(ctx, name, sha)
	return args.Bool(0), args.Error(1)
}

func (m *mockGitRepository) CreateBranchRef(ctx context.Context, name, sha string) error {
	args := m.Called(ctx, name, sha)
	return args.Error(0)
}

func (m *mockGitRepository) DeleteBranchRef(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Mock for RemotePublisher
type mockRemotePublisher struct {
	mock.Mock
}

func (m *mockRemotePublisher) PushBranches(ctx context.Context, names ...string) error {
	callArgs := make([]any, 0, len(names)+1)
	callArgs = append(callArgs, ctx)
	for _, name := range names {
		callArgs = append(callArgs, name)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *mockRemotePublisher) DeleteRemoteBranch(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Mock for GithubRepository
type mockGithubRepository struct {
	mock.Mock
}

func (m *mockGithubRepository) GetRepository(ctx context.Context) (*domain.RepositoryInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RepositoryInfo), args.Error(1)
}

func (m *mockGithubRepository) ListTags(ctx context.Context) ([]domain.TagRecord, error) {
	args := m.Called(ctx)
	if tags := args.Get(0); tags != nil {
		return tags.([]domain.TagRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubRepository) CreateRelease(
	ctx context.Context,
	tagName, name, targetSHA string,
) (*domain.ReleaseInfo, error) {
	args := m.Called(ctx, tagName, name, targetSHA)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReleaseInfo), args.Error(1)
}

// Mock for FileUpdater
type mockFileUpdater struct {
	mock.Mock
}

func (m *mockFileUpdater) Apply(ctx context.Context, rule config.FileRule, version *domain.Version) (bool, error) {
	args := m.Called(ctx, rule, version)
	return args.Bool(0), args.Error(1)
}
