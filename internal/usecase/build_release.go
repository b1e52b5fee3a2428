package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/conventional-release/internal/config"
	"github.com/compozy/conventional-release/internal/domain"
	"github.com/compozy/conventional-release/internal/repository"
	"github.com/compozy/conventional-release/internal/service"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// releaseMessageFormat is the deterministic release commit message.
const releaseMessageFormat = "chore: release version %s"

// BuildReleaseUseCase constructs the release graph: a new commit chained to
// the previous release and the branch tip, its lightweight tag, and the
// rolling major-version branch. Everything here is local; publication is a
// separate step.

type BuildReleaseUseCase struct {
	GitRepo   repository.GitRepository
	FsRepo    repository.FileSystemRepository
	Updater   service.FileUpdater
	Files     []config.FileRule
	TagPrefix string
	TagSuffix string
	Log       *zap.Logger
}

// Execute builds the release for target. Any failure other than an
// individual file substitution aborts with no partial release considered
// valid.
func (uc *BuildReleaseUseCase) Execute(ctx context.Context, target *domain.Version) (*domain.ReleaseCommit, error) {
	parents, err := uc.resolveParents(ctx)
	if err != nil {
		return nil, err
	}
	staged := uc.applyFileRules(ctx, target)
	if err := uc.GitRepo.StageFiles(ctx, staged); err != nil {
		return nil, &domain.GraphError{Op: "stage files", Err: err}
	}
	// Detach before committing so no named branch advances as a side
	// effect of the commit itself.
	if err := uc.GitRepo.DetachHead(ctx, parents[0]); err != nil {
		return nil, &domain.GraphError{Op: "detach HEAD", Err: err}
	}
	message := fmt.Sprintf(releaseMessageFormat, target)
	sha, err := uc.GitRepo.CommitWithParents(ctx, message, parents)
	if err != nil {
		return nil, &domain.GraphError{Op: "create release commit", Err: err}
	}
	tagName := uc.TagPrefix + target.String() + uc.TagSuffix
	// Unconditional: an existing tag with this name is a duplicate
	// release, never silently overwritten.
	if err := uc.GitRepo.CreateLightweightTag(ctx, tagName, sha); err != nil {
		return nil, &domain.GraphError{Op: fmt.Sprintf("create tag %s", tagName), Err: err}
	}
	branchName := fmt.Sprintf("v%d", target.Major())
	created, err := uc.GitRepo.UpsertBranch(ctx, branchName, sha)
	if err != nil {
		return nil, &domain.GraphError{Op: fmt.Sprintf("upsert branch %s", branchName), Err: err}
	}
	if created {
		uc.Log.Info("created major version branch",
			zap.String("branch", branchName), zap.String("sha", sha))
	} else {
		uc.Log.Info("repointed major version branch",
			zap.String("branch", branchName), zap.String("sha", sha))
	}
	return &domain.ReleaseCommit{
		SHA:        sha,
		Parents:    parents,
		Version:    target,
		TagName:    tagName,
		BranchName: branchName,
	}, nil
}

// resolveParents locates the previous release commit via tag decoding and
// orders it before the current branch tip. With no prior release the tip is
// the sole parent.
func (uc *BuildReleaseUseCase) resolveParents(ctx context.Context) ([]string, error) {
	tags, err := uc.GitRepo.ListTags(ctx)
	if err != nil {
		return nil, &domain.GraphError{Op: "list tags", Err: err}
	}
	head, err := uc.GitRepo.HeadCommit(ctx)
	if err != nil {
		return nil, &domain.GraphError{Op: "read branch tip", Err: err}
	}
	var prevSHA string
	var prevVersion *domain.Version
	for _, tag := range tags {
		v, ok := DecodeTagVersion(tag.Name, uc.TagPrefix, uc.TagSuffix)
		if !ok {
			continue
		}
		if prevVersion == nil || v.Compare(prevVersion) > 0 {
			prevVersion = v
			prevSHA = tag.SHA
		}
	}
	if prevSHA == "" {
		uc.Log.Info("no previous release found, basing on branch tip only",
			zap.String("tip", head.SHA))
		return []string{head.SHA}, nil
	}
	uc.Log.Info("chaining release to previous release and branch tip",
		zap.String("previous", prevSHA),
		zap.String("previous_version", prevVersion.String()),
		zap.String("tip", head.SHA))
	return []string{prevSHA, head.SHA}, nil
}

// applyFileRules runs every substitution rule and returns the rule paths
// that exist on disk for staging. A failing rule is logged and skipped: a
// missing or broken templated file must not block an otherwise-valid
// release.
func (uc *BuildReleaseUseCase) applyFileRules(ctx context.Context, target *domain.Version) []string {
	var staged []string
	for _, rule := range uc.Files {
		if _, err := uc.Updater.Apply(ctx, rule, target); err != nil {
			uc.Log.Warn("file substitution failed, skipping",
				zap.String("path", rule.Path), zap.Error(err))
			continue
		}
		exists, err := afero.Exists(uc.FsRepo, rule.Path)
		if err != nil || !exists {
			continue
		}
		staged = append(staged, rule.Path)
	}
	return staged
}
