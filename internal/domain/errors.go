package domain

import "fmt"

// ParseErrorKind identifies which grammar rule a commit message violated.
type ParseErrorKind int

const (
	// ParseMissingSeparator means the header has no ':' between type and description.
	ParseMissingSeparator ParseErrorKind = iota
	// ParseUnclosedScope means a '(' scope opener has no matching ')'.
	ParseUnclosedScope
)

// ParseError reports a commit message or PR title that does not follow the
// conventional commit grammar. Fatal for PR validation; callers decoding
// arbitrary text (tag names, non-conforming commits) may treat it as "not
// a conventional commit" instead.
type ParseError struct {
	Kind   ParseErrorKind
	Header string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseUnclosedScope:
		return fmt.Sprintf("invalid format: unclosed scope parenthesis in %q", e.Header)
	default:
		return fmt.Sprintf("invalid format: missing ':' separator in %q", e.Header)
	}
}

// ConfigError reports malformed configuration. Fatal at startup.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// GraphError reports a failure creating or looking up repository objects
// while building the release graph. Any GraphError aborts the run; no
// partial release state is considered published.
type GraphError struct {
	Op  string
	Err error
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("release graph: %s: %v", e.Op, e.Err)
}

func (e *GraphError) Unwrap() error { return e.Err }

// RemoteError reports a network or hosting-platform failure. Fatal, no
// automatic retry.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
