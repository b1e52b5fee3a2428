package usecase

import (
	"context"
	"strings"

	"github.com/compozy/conventional-release/internal/domain"
	"github.com/compozy/conventional-release/internal/repository"
)

// DecodeTagVersion strips the configured prefix and suffix from a tag name
// and parses the remainder as a semantic version. It is the inverse of the
// tag composition prefix+version+suffix. Tags that do not decode are simply
// not release tags.
func DecodeTagVersion(name, prefix, suffix string) (*domain.Version, bool) {
	text := name
	if prefix != "" && strings.HasPrefix(text, prefix) {
		text = text[len(prefix):]
	}
	if suffix != "" && strings.HasSuffix(text, suffix) {
		text = text[:len(text)-len(suffix)]
	}
	v, err := domain.ParseVersion(text)
	if err != nil {
		return nil, false
	}
	return v, true
}

// ResolveVersion returns the highest version encoded in tags, or initial
// when none decode. Malformed and unrelated tags are expected to coexist
// with release tags and are skipped silently.
func ResolveVersion(tags []domain.TagRecord, prefix, suffix string, initial *domain.Version) *domain.Version {
	var current *domain.Version
	for _, tag := range tags {
		v, ok := DecodeTagVersion(tag.Name, prefix, suffix)
		if !ok {
			continue
		}
		if current == nil || v.Compare(current) > 0 {
			current = v
		}
	}
	if current == nil {
		return initial
	}
	return current
}

// ResolveVersionUseCase determines the currently released version from the
// hosting platform's tag list.

type ResolveVersionUseCase struct {
	GithubRepo repository.GithubRepository
	TagPrefix  string
	TagSuffix  string
	Initial    *domain.Version
}

// Execute runs the use case.
func (uc *ResolveVersionUseCase) Execute(ctx context.Context) (*domain.Version, error) {
	tags, err := uc.GithubRepo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveVersion(tags, uc.TagPrefix, uc.TagSuffix, uc.Initial), nil
}
