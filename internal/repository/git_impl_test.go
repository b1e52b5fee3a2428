package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	testFile := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test content"), 0644))
	_, err = wt.Add("test.txt")
	require.NoError(t, err)
	_, err = wt.Commit("feat: initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return dir, repo
}

func headSHA(t *testing.T, repo *git.Repository) string {
	t.Helper()
	head, err := repo.Head()
	require.NoError(t, err)
	return head.Hash().String()
}

func TestNewGitRepository(t *testing.T) {
	t.Run("Should open existing repository", func(t *testing.T) {
		dir, _ := setupTestRepo(t)
		gitRepo, err := NewGitRepository(dir, "")
		assert.NoError(t, err)
		assert.NotNil(t, gitRepo)
	})
	t.Run("Should fail on non-git directory", func(t *testing.T) {
		gitRepo, err := NewGitRepository(t.TempDir(), "")
		assert.Error(t, err)
		assert.Nil(t, gitRepo)
	})
}

func TestGitRepository_HeadCommit(t *testing.T) {
	t.Run("Should return tip commit with message", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		commit, err := gitRepo.HeadCommit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, headSHA(t, repo), commit.SHA)
		assert.Contains(t, commit.Message, "feat: initial commit")
	})
}

func TestGitRepository_ListTags(t *testing.T) {
	t.Run("Should return empty list for repository without tags", func(t *testing.T) {
		dir, _ := setupTestRepo(t)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		tags, err := gitRepo.ListTags(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
	t.Run("Should list lightweight tags with target commit", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		head, err := repo.Head()
		require.NoError(t, err)
		_, err = repo.CreateTag("v1.0.0", head.Hash(), nil)
		require.NoError(t, err)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		tags, err := gitRepo.ListTags(context.Background())
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "v1.0.0", tags[0].Name)
		assert.Equal(t, head.Hash().String(), tags[0].SHA)
	})
	t.Run("Should peel annotated tags to their commit", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		head, err := repo.Head()
		require.NoError(t, err)
		_, err = repo.CreateTag("v2.0.0", head.Hash(), &git.CreateTagOptions{
			Message: "Release v2.0.0",
			Tagger: &object.Signature{
				Name:  "Test User",
				Email: "test@example.com",
				When:  time.Now(),
			},
		})
		require.NoError(t, err)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		tags, err := gitRepo.ListTags(context.Background())
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "v2.0.0", tags[0].Name)
		assert.Equal(t, head.Hash().String(), tags[0].SHA)
	})
}

func TestGitRepository_CreateLightweightTag(t *testing.T) {
	t.Run("Should create tag pointing at commit", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		sha := headSHA(t, repo)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		require.NoError(t, gitRepo.CreateLightweightTag(context.Background(), "v1.0.0", sha))
		ref, err := repo.Reference(plumbing.NewTagReferenceName("v1.0.0"), false)
		require.NoError(t, err)
		assert.Equal(t, sha, ref.Hash().String())
	})
	t.Run("Should fail on duplicate tag", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		sha := headSHA(t, repo)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		require.NoError(t, gitRepo.CreateLightweightTag(context.Background(), "v1.0.0", sha))
		err = gitRepo.CreateLightweightTag(context.Background(), "v1.0.0", sha)
		assert.Error(t, err)
	})
}

func TestGitRepository_UpsertBranch(t *testing.T) {
	t.Run("Should create branch when absent", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		sha := headSHA(t, repo)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		created, err := gitRepo.UpsertBranch(context.Background(), "v1", sha)
		require.NoError(t, err)
		assert.True(t, created)
		ref, err := repo.Reference(plumbing.NewBranchReferenceName("v1"), false)
		require.NoError(t, err)
		assert.Equal(t, sha, ref.Hash().String())
	})
	t.Run("Should repoint existing branch", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		first := headSHA(t, repo)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		created, err := gitRepo.UpsertBranch(context.Background(), "v1", first)
		require.NoError(t, err)
		require.True(t, created)

		// Second commit to move the branch to.
		wt, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "more.txt"), []byte("more"), 0644))
		_, err = wt.Add("more.txt")
		require.NoError(t, err)
		secondHash, err := wt.Commit("feat: second", &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Test User",
				Email: "test@example.com",
				When:  time.Now(),
			},
		})
		require.NoError(t, err)

		created, err = gitRepo.UpsertBranch(context.Background(), "v1", secondHash.String())
		require.NoError(t, err)
		assert.False(t, created)
		ref, err := repo.Reference(plumbing.NewBranchReferenceName("v1"), false)
		require.NoError(t, err)
		assert.Equal(t, secondHash.String(), ref.Hash().String())
	})
}

func TestGitRepository_CommitWithParents(t *testing.T) {
	t.Run("Should create commit with two parents and no content merge", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		first := headSHA(t, repo)

		wt, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "more.txt"), []byte("more"), 0644))
		_, err = wt.Add("more.txt")
		require.NoError(t, err)
		secondHash, err := wt.Commit("feat: second", &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Test User",
				Email: "test@example.com",
				When:  time.Now(),
			},
		})
		require.NoError(t, err)

		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, gitRepo.DetachHead(ctx, first))
		sha, err := gitRepo.CommitWithParents(ctx, "chore: release version 1.0.0",
			[]string{first, secondHash.String()})
		require.NoError(t, err)

		commit, err := repo.CommitObject(plumbing.NewHash(sha))
		require.NoError(t, err)
		assert.Equal(t, "chore: release version 1.0.0", commit.Message)
		require.Len(t, commit.ParentHashes, 2)
		assert.Equal(t, first, commit.ParentHashes[0].String())
		assert.Equal(t, secondHash.String(), commit.ParentHashes[1].String())
		assert.Equal(t, "Release Bot", commit.Author.Name)
		assert.Equal(t, "release@github.com", commit.Author.Email)
	})
	t.Run("Should allow empty release commit", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		tip := headSHA(t, repo)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, gitRepo.DetachHead(ctx, tip))
		sha, err := gitRepo.CommitWithParents(ctx, "chore: release version 0.1.0", []string{tip})
		require.NoError(t, err)
		commit, err := repo.CommitObject(plumbing.NewHash(sha))
		require.NoError(t, err)
		require.Len(t, commit.ParentHashes, 1)
		assert.Equal(t, tip, commit.ParentHashes[0].String())
	})
}

func TestGitRepository_DetachHead(t *testing.T) {
	t.Run("Should point HEAD directly at the commit", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		sha := headSHA(t, repo)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		require.NoError(t, gitRepo.DetachHead(context.Background(), sha))
		head, err := repo.Reference(plumbing.HEAD, false)
		require.NoError(t, err)
		assert.Equal(t, plumbing.HashReference, head.Type())
		assert.Equal(t, sha, head.Hash().String())
	})
}

func TestGitRepository_BranchRefs(t *testing.T) {
	t.Run("Should create and delete a branch ref", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		sha := headSHA(t, repo)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, gitRepo.CreateBranchRef(ctx, "release-tmp", sha))
		ref, err := repo.Reference(plumbing.NewBranchReferenceName("release-tmp"), false)
		require.NoError(t, err)
		assert.Equal(t, sha, ref.Hash().String())
		require.NoError(t, gitRepo.DeleteBranchRef(ctx, "release-tmp"))
		_, err = repo.Reference(plumbing.NewBranchReferenceName("release-tmp"), false)
		assert.ErrorIs(t, err, plumbing.ErrReferenceNotFound)
	})
}

func TestGitRepository_StageFiles(t *testing.T) {
	t.Run("Should stage listed paths", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "staged.txt"), []byte("x"), 0644))
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		require.NoError(t, gitRepo.StageFiles(context.Background(), []string{"staged.txt"}))
		wt, err := repo.Worktree()
		require.NoError(t, err)
		status, err := wt.Status()
		require.NoError(t, err)
		assert.Equal(t, git.Added, status.File("staged.txt").Staging)
	})
	t.Run("Should fail on missing path", func(t *testing.T) {
		dir, _ := setupTestRepo(t)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		err = gitRepo.StageFiles(context.Background(), []string{"missing.txt"})
		assert.Error(t, err)
	})
}

func TestGitRepository_PushBranches(t *testing.T) {
	t.Run("Should push branch to a local bare remote", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		remoteDir := t.TempDir()
		_, err := git.PlainInit(remoteDir, true)
		require.NoError(t, err)
		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{remoteDir},
		})
		require.NoError(t, err)
		sha := headSHA(t, repo)

		publisher, err := NewRemotePublisher(dir, "")
		require.NoError(t, err)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, gitRepo.CreateBranchRef(ctx, "v1", sha))
		require.NoError(t, publisher.PushBranches(ctx, "v1"))

		remoteRepo, err := git.PlainOpen(remoteDir)
		require.NoError(t, err)
		ref, err := remoteRepo.Reference(plumbing.NewBranchReferenceName("v1"), false)
		require.NoError(t, err)
		assert.Equal(t, sha, ref.Hash().String())
	})
	t.Run("Should delete branch on the remote", func(t *testing.T) {
		dir, repo := setupTestRepo(t)
		remoteDir := t.TempDir()
		_, err := git.PlainInit(remoteDir, true)
		require.NoError(t, err)
		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{remoteDir},
		})
		require.NoError(t, err)
		sha := headSHA(t, repo)

		publisher, err := NewRemotePublisher(dir, "")
		require.NoError(t, err)
		gitRepo, err := NewGitRepository(dir, "")
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, gitRepo.CreateBranchRef(ctx, "release-tmp", sha))
		require.NoError(t, publisher.PushBranches(ctx, "release-tmp"))
		require.NoError(t, publisher.DeleteRemoteBranch(ctx, "release-tmp"))

		remoteRepo, err := git.PlainOpen(remoteDir)
		require.NoError(t, err)
		_, err = remoteRepo.Reference(plumbing.NewBranchReferenceName("release-tmp"), false)
		assert.ErrorIs(t, err, plumbing.ErrReferenceNotFound)
	})
}
