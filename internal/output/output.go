package output

import (
	"encoding/json"
	"fmt"

	"github.com/compozy/conventional-release/internal/config"
	"github.com/compozy/conventional-release/internal/domain"
	"github.com/compozy/conventional-release/internal/repository"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const filePermissionsReadWrite = 0644

// Writer emits the run result for machine consumption (key=value lines),
// for the CI step summary (markdown), and for logs (JSON).
type Writer struct {
	fsRepo repository.FileSystemRepository
	env    *config.Environment
	log    *zap.Logger
}

// NewWriter creates a Writer bound to the captured environment.
func NewWriter(fsRepo repository.FileSystemRepository, env *config.Environment, log *zap.Logger) *Writer {
	return &Writer{fsRepo: fsRepo, env: env, log: log}
}

// Write emits the result to every configured destination.
func (w *Writer) Write(result *domain.ReleaseResult) error {
	if w.env.CI {
		if w.env.OutputPath != "" {
			if err := w.writeOutputFile(result); err != nil {
				return err
			}
		}
		if w.env.StepSummaryPath != "" {
			if err := w.writeStepSummary(result); err != nil {
				return err
			}
		}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	fmt.Printf("Result: %s\n", data)
	w.log.Info("run result",
		zap.Bool("released", result.Released),
		zap.String("version", result.Version),
		zap.String("tag", result.Tag),
		zap.String("release_url", result.ReleaseURL))
	return nil
}

// writeOutputFile writes key=value lines to the machine-readable output.
func (w *Writer) writeOutputFile(result *domain.ReleaseResult) error {
	content := fmt.Sprintf("released=%t\nversion=%s\ntag=%s\nrelease-url=%s",
		result.Released, result.Version, result.Tag, result.ReleaseURL)
	if err := afero.WriteFile(w.fsRepo, w.env.OutputPath, []byte(content), filePermissionsReadWrite); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writeStepSummary writes the human-readable summary, worded as a preview
// for pull-request runs and as a result otherwise.
func (w *Writer) writeStepSummary(result *domain.ReleaseResult) error {
	var content string
	switch {
	case w.env.IsPullRequest() && result.Released:
		content = fmt.Sprintf(
			"**Release Preview (Dry Run)**\n\n"+
				"This PR would create a new release:\n"+
				"- **Proposed Version:** %s\n- **Proposed Tag:** %s\n",
			orNA(result.Version), orNA(result.Tag))
	case w.env.IsPullRequest():
		content = "**Release Preview (Dry Run)**\n\nNo release would be created - no qualifying commits found\n"
	case result.Released:
		content = fmt.Sprintf(
			"**Release Created Successfully**\n\n"+
				"- **Version:** %s\n- **Tag:** %s\n- **Release URL:** %s\n",
			orNA(result.Version), orNA(result.Tag), orNA(result.ReleaseURL))
	default:
		content = "**No release created** - no qualifying commits found\n"
	}
	if err := afero.WriteFile(w.fsRepo, w.env.StepSummaryPath, []byte(content), filePermissionsReadWrite); err != nil {
		return fmt.Errorf("failed to write step summary: %w", err)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
