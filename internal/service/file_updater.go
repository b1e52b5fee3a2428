package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/conventional-release/internal/config"
	"github.com/compozy/conventional-release/internal/domain"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FilePermissionsReadWrite is the permission for rewritten files.
const FilePermissionsReadWrite = 0644

// versionPlaceholder is the token replaced inside a rule template.
const versionPlaceholder = "{version}"

// FileUpdater applies a version string into tracked files ahead of the
// release commit. A missing target file or an already-current file is a
// no-op, not an error.

type FileUpdater interface {
	// Apply runs one substitution rule and reports whether the file
	// content changed.
	Apply(ctx context.Context, rule config.FileRule, version *domain.Version) (bool, error)
}

// fileUpdater is the afero-backed implementation of FileUpdater.
type fileUpdater struct {
	fs  afero.Fs
	log *zap.Logger
}

// NewFileUpdater creates a new FileUpdater on the given filesystem.
func NewFileUpdater(fs afero.Fs, log *zap.Logger) FileUpdater {
	return &fileUpdater{fs: fs, log: log}
}

// Apply replaces every occurrence of the rule marker. When the rule has a
// template, {version} inside it is substituted first; otherwise the version
// string itself replaces the marker.
func (u *fileUpdater) Apply(_ context.Context, rule config.FileRule, version *domain.Version) (bool, error) {
	exists, err := afero.Exists(u.fs, rule.Path)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", rule.Path, err)
	}
	if !exists {
		u.log.Info("file does not exist, skipping", zap.String("path", rule.Path))
		return false, nil
	}
	data, err := afero.ReadFile(u.fs, rule.Path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", rule.Path, err)
	}
	replacement := version.String()
	if rule.Template != "" {
		replacement = strings.ReplaceAll(rule.Template, versionPlaceholder, version.String())
	}
	content := string(data)
	updated := strings.ReplaceAll(content, rule.Marker, replacement)
	if updated == content {
		u.log.Info("no changes needed", zap.String("path", rule.Path))
		return false, nil
	}
	if err := afero.WriteFile(u.fs, rule.Path, []byte(updated), FilePermissionsReadWrite); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", rule.Path, err)
	}
	u.log.Info("updated file version",
		zap.String("path", rule.Path),
		zap.String("version", version.String()))
	return true, nil
}
