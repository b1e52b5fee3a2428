package cmd

import (
	"github.com/compozy/conventional-release/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagConfigFile       string
	flagDryRun           bool
	flagWorkingDirectory string
	flagVerbose          bool
)

var rootCmd = &cobra.Command{
	Use:   "conventional-release",
	Short: "Config-driven semantic-version releases from conventional commits",
	Long: `conventional-release inspects the latest commit message, resolves the
currently released version from the repository's tags, and creates the next
release: a release commit chained to the previous release, a version tag,
a rolling major-version branch, and the platform release record.`,
	SilenceUsage: true,
	RunE:         runRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config-file", config.DefaultConfigFile,
		"Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false,
		"Compute and report the next version without creating a release")
	rootCmd.PersistentFlags().StringVar(&flagWorkingDirectory, "working-directory", ".",
		"Working directory")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false,
		"Enable debug logging")
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
