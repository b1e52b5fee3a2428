package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/compozy/conventional-release/internal/domain"
	"github.com/compozy/conventional-release/internal/repository"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// prEvent is the subset of the pull-request event payload we consume.
type prEvent struct {
	PullRequest struct {
		Title string `json:"title"`
	} `json:"pull_request"`
}

// ValidatePRTitleUseCase checks a pull-request title against the
// conventional commit grammar. Validation failures are fatal and reported
// before any release logic runs.

type ValidatePRTitleUseCase struct {
	FsRepo repository.FileSystemRepository
	Log    *zap.Logger
}

// Execute reads the event payload at eventPath and parses the PR title.
func (uc *ValidatePRTitleUseCase) Execute(_ context.Context, eventPath string) (*domain.ConventionalCommit, error) {
	data, err := afero.ReadFile(uc.FsRepo, eventPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload %s: %w", eventPath, err)
	}
	var event prEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}
	if event.PullRequest.Title == "" {
		return nil, fmt.Errorf("could not extract PR title from event payload")
	}
	uc.Log.Info("validating PR title", zap.String("title", event.PullRequest.Title))
	parsed, err := domain.ParseConventionalCommit(event.PullRequest.Title)
	if err != nil {
		return nil, err
	}
	uc.Log.Info("PR title follows conventional commit format",
		zap.String("type", parsed.Type),
		zap.String("scope", parsed.Scope),
		zap.Bool("breaking", parsed.BreakingChange))
	return parsed, nil
}
