package domain

// TagRecord is a tag name and the commit it points at, as read from either
// the local repository or the hosting platform's tag list.
type TagRecord struct {
	Name string
	SHA  string
}

// ReleaseCommit is the durable result of one release run: a new commit
// chained to the previous release (when one exists) and the mainline tip,
// plus the tag and major-version branch created for it. Constructed at most
// once per run and never mutated.
type ReleaseCommit struct {
	SHA        string
	Parents    []string
	Version    *Version
	TagName    string
	BranchName string
}

// RepositoryInfo is the hosting platform's view of the repository.
type RepositoryInfo struct {
	Owner         string
	Name          string
	FullName      string
	DefaultBranch string
}

// ReleaseInfo is the platform-level release record created for a tag.
type ReleaseInfo struct {
	TagName string
	Name    string
	HTMLURL string
}

// ReleaseResult is the outcome of a run, whether or not a release was made.
type ReleaseResult struct {
	Released   bool   `json:"released"`
	Version    string `json:"version,omitempty"`
	Tag        string `json:"tag,omitempty"`
	ReleaseURL string `json:"release_url,omitempty"`
}
