package domain

import "strings"

// RawCommit is a commit as read from history: content hash plus message.
type RawCommit struct {
	SHA     string
	Message string
}

// ConventionalCommit is the structured form of a commit message following
// the `type(scope)!: description` grammar, with optional body and footer.
type ConventionalCommit struct {
	Type           string
	Scope          string
	Description    string
	Body           string
	Footer         string
	BreakingChange bool
}

// BumpType is the magnitude of version change a commit implies.
type BumpType int

const (
	BumpNone BumpType = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

func (b BumpType) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "none"
	}
}

// ParseConventionalCommit parses a commit message (or PR title) into its
// structured form. The first line is the header; remaining lines are split
// into body and footer.
//
// A '!' anywhere in the header marks a breaking change. This is deliberately
// more permissive than the canonical `type!:` / `type(scope)!:` marker
// positions and is kept as observed behavior.
func ParseConventionalCommit(message string) (*ConventionalCommit, error) {
	lines := strings.Split(message, "\n")
	header := lines[0]

	breaking := strings.Contains(header, "!")

	colon := strings.Index(header, ":")
	if colon < 0 {
		return nil, &ParseError{Kind: ParseMissingSeparator, Header: header}
	}
	description := strings.TrimSpace(header[colon+1:])

	typePart := strings.ReplaceAll(header[:colon], "!", "")
	var scope string
	if open := strings.Index(typePart, "("); open >= 0 {
		closing := strings.Index(typePart, ")")
		if closing < 0 {
			return nil, &ParseError{Kind: ParseUnclosedScope, Header: header}
		}
		scope = typePart[open+1 : closing]
		typePart = typePart[:open]
	}

	body, footer := splitBodyFooter(lines[1:])
	if strings.Contains(footer, "BREAKING CHANGE:") {
		breaking = true
	}

	return &ConventionalCommit{
		Type:           typePart,
		Scope:          scope,
		Description:    description,
		Body:           body,
		Footer:         footer,
		BreakingChange: breaking,
	}, nil
}

// splitBodyFooter separates the lines after the header into body and footer.
// A non-blank line containing "BREAKING CHANGE:" or starting with an
// alphabetic/dash token and containing ':' switches to footer mode for all
// subsequent non-blank lines. Body text that merely resembles a `Key: value`
// pair is misclassified by this heuristic; that ambiguity is accepted.
func splitBodyFooter(lines []string) (string, string) {
	var bodyLines, footerLines []string
	inFooter := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, "BREAKING CHANGE:") ||
			(strings.Contains(line, ":") && leadingTokenLen(line) > 0) {
			inFooter = true
		}
		if inFooter {
			footerLines = append(footerLines, line)
		} else {
			bodyLines = append(bodyLines, line)
		}
	}
	return strings.Join(bodyLines, "\n"), strings.Join(footerLines, "\n")
}

// leadingTokenLen counts the leading run of alphabetic or '-' characters.
func leadingTokenLen(line string) int {
	n := 0
	for _, r := range line {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' {
			n++
			continue
		}
		break
	}
	return n
}

// BumpType derives the change severity from the parsed commit: breaking
// changes are major, "feat" is minor, "fix"/"perf"/"security" are patch,
// every other type (known or unknown) requires no release.
func (c *ConventionalCommit) BumpType() BumpType {
	if c.BreakingChange {
		return BumpMajor
	}
	switch c.Type {
	case "feat":
		return BumpMinor
	case "fix", "perf", "security":
		return BumpPatch
	default:
		return BumpNone
	}
}
