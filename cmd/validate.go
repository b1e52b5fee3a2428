package cmd

import (
	"errors"
	"fmt"

	"github.com/compozy/conventional-release/internal/config"
	"github.com/compozy/conventional-release/internal/domain"
	"github.com/compozy/conventional-release/internal/usecase"
	"github.com/compozy/conventional-release/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// newValidateCmd validates a pull-request title against the conventional
// commit grammar, without running any release logic.
func newValidateCmd() *cobra.Command {
	var eventPath string
	var title string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a pull-request title against the commit grammar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(flagVerbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck // stderr sync failures are unactionable
			if title != "" {
				return validateTitle(title)
			}
			if eventPath == "" {
				env, err := config.CaptureEnvironment()
				if err != nil {
					return err
				}
				eventPath = env.EventPath
			}
			if eventPath == "" {
				return fmt.Errorf("either --title or --event-path (or GITHUB_EVENT_PATH) is required")
			}
			uc := &usecase.ValidatePRTitleUseCase{FsRepo: afero.NewOsFs(), Log: log}
			if _, err := uc.Execute(cmd.Context(), eventPath); err != nil {
				var parseErr *domain.ParseError
				if errors.As(err, &parseErr) {
					printTitleGrammarHelp(parseErr)
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&eventPath, "event-path", "", "Path to the pull-request event payload")
	cmd.Flags().StringVar(&title, "title", "", "Validate this title directly instead of an event payload")
	return cmd
}

// validateTitle checks a title given directly on the command line.
func validateTitle(title string) error {
	parsed, err := domain.ParseConventionalCommit(title)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			printTitleGrammarHelp(parseErr)
		}
		return err
	}
	fmt.Printf("Title follows conventional commit format (type=%s, bump=%s)\n",
		parsed.Type, parsed.BumpType())
	return nil
}
