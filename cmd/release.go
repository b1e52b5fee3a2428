package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/compozy/conventional-release/internal/config"
	"github.com/compozy/conventional-release/internal/domain"
	"github.com/compozy/conventional-release/internal/orchestrator"
	"github.com/compozy/conventional-release/pkg/logger"
	"github.com/spf13/cobra"
)

// runRelease is the default command: the full release workflow.
func runRelease(cmd *cobra.Command, _ []string) error {
	env, err := config.CaptureEnvironment()
	if err != nil {
		return err
	}
	configFile, dryRun, workDir := effectiveArgs(cmd, env)
	if err := os.Chdir(workDir); err != nil {
		return fmt.Errorf("failed to change to working directory %s: %w", workDir, err)
	}
	log, err := logger.New(flagVerbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failures are unactionable

	c, err := newContainer(configFile, env, log)
	if err != nil {
		return err
	}
	result, err := c.orch.Execute(cmd.Context(), orchestrator.ReleaseConfig{
		DryRun:           dryRun,
		WorkingDirectory: ".",
	})
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			printTitleGrammarHelp(parseErr)
		}
		return err
	}
	return c.writer.Write(result)
}

// effectiveArgs resolves the run arguments. Inside the CI automation
// context, environment variables substitute for flags that were not set
// explicitly.
func effectiveArgs(cmd *cobra.Command, env *config.Environment) (string, bool, string) {
	configFile := flagConfigFile
	dryRun := flagDryRun
	workDir := flagWorkingDirectory
	if env.CI {
		if !cmd.Flags().Changed("config-file") {
			configFile = env.ConfigFile
		}
		if !cmd.Flags().Changed("dry-run") {
			dryRun = env.DryRun
		}
		if !cmd.Flags().Changed("working-directory") {
			workDir = env.WorkingDirectory
		}
	}
	return configFile, dryRun, workDir
}

// printTitleGrammarHelp explains the expected grammar after a failed
// title/commit parse.
func printTitleGrammarHelp(parseErr *domain.ParseError) {
	fmt.Fprintln(os.Stderr, "Title does not follow conventional commit format")
	fmt.Fprintf(os.Stderr, "   Error: %v\n", parseErr)
	fmt.Fprintln(os.Stderr, "Expected format: type(scope): description")
	fmt.Fprintln(os.Stderr,
		"Valid types: feat, fix, docs, style, refactor, perf, test, chore, build, ci, revert, security")
	fmt.Fprintln(os.Stderr, "Example: feat(auth): add user login functionality")
}
