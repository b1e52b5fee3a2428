package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/conventional-release/internal/config"
	"github.com/compozy/conventional-release/internal/domain"
	"github.com/compozy/conventional-release/internal/repository"
	"github.com/compozy/conventional-release/internal/service"
	"github.com/compozy/conventional-release/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReleaseConfig contains per-invocation options for the release workflow.
type ReleaseConfig struct {
	// DryRun computes and reports the next version without creating any
	// release artifacts, locally or remotely.
	DryRun bool
	// WorkingDirectory is the checkout the run operates on.
	WorkingDirectory string
}

// ReleaseOrchestrator sequences one release run: validate (PR mode) or
// classify, resolve, calculate, build the release graph, then publish.
// Execution is strictly sequential; each step completes before the next.
type ReleaseOrchestrator struct {
	gitRepo    repository.GitRepository
	remote     repository.RemotePublisher
	githubRepo repository.GithubRepository
	fsRepo     repository.FileSystemRepository
	updater    service.FileUpdater
	cfg        *config.Config
	env        *config.Environment
	log        *zap.Logger
}

// NewReleaseOrchestrator creates a new release orchestrator.
func NewReleaseOrchestrator(
	gitRepo repository.GitRepository,
	remote repository.RemotePublisher,
	githubRepo repository.GithubRepository,
	fsRepo repository.FileSystemRepository,
	updater service.FileUpdater,
	cfg *config.Config,
	env *config.Environment,
	log *zap.Logger,
) *ReleaseOrchestrator {
	return &ReleaseOrchestrator{
		gitRepo:    gitRepo,
		remote:     remote,
		githubRepo: githubRepo,
		fsRepo:     fsRepo,
		updater:    updater,
		cfg:        cfg,
		env:        env,
		log:        log,
	}
}

// Execute runs the complete workflow and returns the run result.
func (o *ReleaseOrchestrator) Execute(ctx context.Context, rc ReleaseConfig) (*domain.ReleaseResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultRunTimeout)
	defer cancel()

	// Pull-request runs only validate the title, before any release logic.
	if o.env.IsPullRequest() && o.env.EventPath != "" {
		if err := o.validatePRTitle(ctx); err != nil {
			return nil, err
		}
		return &domain.ReleaseResult{Released: false}, nil
	}

	repoInfo, err := o.githubRepo.GetRepository(ctx)
	if err != nil {
		return nil, err
	}
	o.log.Info("working with repository", zap.String("repository", repoInfo.FullName))

	current, err := o.resolveCurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	o.log.Info("current version", zap.String("version", current.String()))

	classify := &usecase.ClassifyCommitUseCase{GitRepo: o.gitRepo, Log: o.log}
	bump, err := classify.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if bump == domain.BumpNone {
		o.log.Info("no release needed based on the latest commit")
	}
	next := current.Bump(bump)

	if rc.DryRun {
		o.log.Info("dry run mode, no release will be created",
			zap.String("proposed_version", next.String()))
		return &domain.ReleaseResult{Released: false, Version: next.String()}, nil
	}
	if bump == domain.BumpNone {
		return &domain.ReleaseResult{Released: false, Version: next.String()}, nil
	}
	o.log.Info("proposed new version", zap.String("version", next.String()))

	lock, err := acquireRunLock(ctx, rc.WorkingDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			o.log.Warn("failed to release run lock", zap.Error(unlockErr))
		}
	}()

	release, err := o.buildRelease(ctx, next)
	if err != nil {
		return nil, err
	}
	o.log.Info("created release commit",
		zap.String("sha", release.SHA),
		zap.Strings("parents", release.Parents),
		zap.String("tag", release.TagName))

	info, err := o.publish(ctx, release)
	if err != nil {
		return nil, err
	}
	o.log.Info("successfully created release", zap.String("url", info.HTMLURL))
	return &domain.ReleaseResult{
		Released:   true,
		Version:    next.String(),
		Tag:        info.TagName,
		ReleaseURL: info.HTMLURL,
	}, nil
}

// validatePRTitle checks the pull-request title against the commit grammar.
func (o *ReleaseOrchestrator) validatePRTitle(ctx context.Context) error {
	uc := &usecase.ValidatePRTitleUseCase{FsRepo: o.fsRepo, Log: o.log}
	_, err := uc.Execute(ctx, o.env.EventPath)
	return err
}

// resolveCurrentVersion resolves the currently released version from the
// platform tag list, falling back to the configured initial version.
func (o *ReleaseOrchestrator) resolveCurrentVersion(ctx context.Context) (*domain.Version, error) {
	initial, err := o.cfg.InitialVersion()
	if err != nil {
		return nil, err
	}
	uc := &usecase.ResolveVersionUseCase{
		GithubRepo: o.githubRepo,
		TagPrefix:  o.cfg.Version.TagPrefix,
		TagSuffix:  o.cfg.Version.TagSuffix,
		Initial:    initial,
	}
	return uc.Execute(ctx)
}

// buildRelease constructs the local release graph for target.
func (o *ReleaseOrchestrator) buildRelease(ctx context.Context, target *domain.Version) (*domain.ReleaseCommit, error) {
	uc := &usecase.BuildReleaseUseCase{
		GitRepo:   o.gitRepo,
		FsRepo:    o.fsRepo,
		Updater:   o.updater,
		Files:     o.cfg.Version.Files,
		TagPrefix: o.cfg.Version.TagPrefix,
		TagSuffix: o.cfg.Version.TagSuffix,
		Log:       o.log,
	}
	return uc.Execute(ctx, target)
}

// publish pushes the release commit via a short-lived branch together with
// the major-version branch, creates the platform release record, and cleans
// the temporary branch up.
func (o *ReleaseOrchestrator) publish(ctx context.Context, release *domain.ReleaseCommit) (*domain.ReleaseInfo, error) {
	tempBranch := o.tempBranchName(release.SHA)
	if err := o.gitRepo.CreateBranchRef(ctx, tempBranch, release.SHA); err != nil {
		return nil, &domain.GraphError{Op: "create temporary branch", Err: err}
	}
	if err := o.remote.PushBranches(ctx, tempBranch, release.BranchName); err != nil {
		return nil, err
	}
	o.log.Info("pushed release refs",
		zap.String("temp_branch", tempBranch),
		zap.String("major_branch", release.BranchName))
	if err := o.gitRepo.DeleteBranchRef(ctx, tempBranch); err != nil {
		return nil, &domain.GraphError{Op: "delete temporary branch ref", Err: err}
	}
	releaseName := fmt.Sprintf("Release %s", release.TagName)
	info, err := o.githubRepo.CreateRelease(ctx, release.TagName, releaseName, release.SHA)
	if err != nil {
		return nil, err
	}
	if err := o.remote.DeleteRemoteBranch(ctx, tempBranch); err != nil {
		return nil, err
	}
	o.log.Info("deleted temporary release branch", zap.String("branch", tempBranch))
	return info, nil
}

// tempBranchName derives a unique branch name for the push, using the CI
// run id when present and a random id otherwise.
func (o *ReleaseOrchestrator) tempBranchName(sha string) string {
	id := o.env.RunID
	if id == "" {
		id = uuid.New().String()
	}
	return fmt.Sprintf("release-%s-%s", sha[:8], id)
}
