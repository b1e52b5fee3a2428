package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/conventional-release/internal/domain"
	"github.com/compozy/conventional-release/internal/repository"
	"go.uber.org/zap"
)

// ClassifyCommitUseCase reads the commit at the branch tip and derives the
// change severity from its message. A message that does not follow the
// conventional grammar is not an error here: it simply qualifies for no
// release.

type ClassifyCommitUseCase struct {
	GitRepo repository.GitRepository
	Log     *zap.Logger
}

// Execute runs the use case.
func (uc *ClassifyCommitUseCase) Execute(ctx context.Context) (domain.BumpType, error) {
	commit, err := uc.GitRepo.HeadCommit(ctx)
	if err != nil {
		return domain.BumpNone, fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	parsed, err := domain.ParseConventionalCommit(commit.Message)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			uc.Log.Info("head commit is not a conventional commit, no release",
				zap.String("sha", commit.SHA))
			return domain.BumpNone, nil
		}
		return domain.BumpNone, err
	}
	bump := parsed.BumpType()
	uc.Log.Info("classified head commit",
		zap.String("sha", commit.SHA),
		zap.String("type", parsed.Type),
		zap.Bool("breaking", parsed.BreakingChange),
		zap.String("bump", bump.String()))
	return bump, nil
}
