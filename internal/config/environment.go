package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Environment is the ambient process environment captured once at the
// boundary. Components receive it explicitly; nothing below the cmd layer
// reads environment variables directly.
type Environment struct {
	GithubToken      string `mapstructure:"github_token"`
	Repository       string `mapstructure:"repository"`
	RunID            string `mapstructure:"run_id"`
	CI               bool   `mapstructure:"ci"`
	EventName        string `mapstructure:"event_name"`
	EventPath        string `mapstructure:"event_path"`
	OutputPath       string `mapstructure:"output_path"`
	StepSummaryPath  string `mapstructure:"step_summary_path"`
	ConfigFile       string `mapstructure:"config_file"`
	DryRun           bool   `mapstructure:"dry_run"`
	WorkingDirectory string `mapstructure:"working_directory"`
}

// CaptureEnvironment reads the recognized environment variables into an
// explicit value. CONFIG_FILE, DRY_RUN and WORKING_DIRECTORY substitute for
// flags when running inside the hosting platform's automation context.
func CaptureEnvironment() (*Environment, error) {
	v := viper.New()
	bindings := map[string][]string{
		"github_token":      {"GITHUB_TOKEN", "RELEASE_TOKEN"},
		"repository":        {"GITHUB_REPOSITORY"},
		"run_id":            {"GITHUB_RUN_ID"},
		"ci":                {"GITHUB_ACTIONS"},
		"event_name":        {"GITHUB_EVENT_NAME"},
		"event_path":        {"GITHUB_EVENT_PATH"},
		"output_path":       {"GITHUB_OUTPUT"},
		"step_summary_path": {"GITHUB_STEP_SUMMARY"},
		"config_file":       {"CONFIG_FILE"},
		"dry_run":           {"DRY_RUN"},
		"working_directory": {"WORKING_DIRECTORY"},
	}
	for key, vars := range bindings {
		if err := v.BindEnv(append([]string{key}, vars...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	v.SetDefault("config_file", DefaultConfigFile)
	v.SetDefault("working_directory", ".")
	var env Environment
	if err := v.Unmarshal(&env); err != nil {
		return nil, fmt.Errorf("failed to capture environment: %w", err)
	}
	return &env, nil
}

// Owner returns the owner half of the "owner/repo" repository slug.
func (e *Environment) Owner() string {
	if idx := strings.Index(e.Repository, "/"); idx > 0 {
		return e.Repository[:idx]
	}
	return ""
}

// Repo returns the name half of the "owner/repo" repository slug.
func (e *Environment) Repo() string {
	if idx := strings.Index(e.Repository, "/"); idx > 0 && idx < len(e.Repository)-1 {
		return e.Repository[idx+1:]
	}
	return ""
}

// IsPullRequest reports whether this run was triggered by a pull request
// event, which switches the tool into title-validation mode.
func (e *Environment) IsPullRequest() bool {
	return e.EventName == "pull_request"
}
