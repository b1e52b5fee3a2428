package cmd

import (
	"github.com/compozy/conventional-release/internal/config"
	"github.com/compozy/conventional-release/internal/orchestrator"
	"github.com/compozy/conventional-release/internal/output"
	"github.com/compozy/conventional-release/internal/repository"
	"github.com/compozy/conventional-release/internal/service"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for one run. It is built after the
// working directory is entered, so repository paths are relative to it.
type container struct {
	cfg    *config.Config
	env    *config.Environment
	orch   *orchestrator.ReleaseOrchestrator
	writer *output.Writer
	fsRepo repository.FileSystemRepository
	log    *zap.Logger
}

// newContainer creates a new container with all the dependencies.
func newContainer(configFile string, env *config.Environment, log *zap.Logger) (*container, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	gitRepo, err := repository.NewGitRepository(".", env.GithubToken)
	if err != nil {
		return nil, err
	}
	remote, err := repository.NewRemotePublisher(".", env.GithubToken)
	if err != nil {
		return nil, err
	}
	// The GitHub client degrades to a noop without a token so tokenless
	// local dry runs still construct.
	var ghRepo repository.GithubRepository
	if env.GithubToken != "" {
		ghRepo, err = repository.NewGithubRepository(env.GithubToken, env.Owner(), env.Repo())
		if err != nil {
			return nil, err
		}
	} else {
		ghRepo = repository.NewGithubNoopRepository(env.Owner(), env.Repo())
	}
	updater := service.NewFileUpdater(fsRepo, log)
	orch := orchestrator.NewReleaseOrchestrator(gitRepo, remote, ghRepo, fsRepo, updater, cfg, env, log)
	return &container{
		cfg:    cfg,
		env:    env,
		orch:   orch,
		writer: output.NewWriter(fsRepo, env, log),
		fsRepo: fsRepo,
		log:    log,
	}, nil
}
