package app

import "time"

// Repository entity
type Repository struct {
	Name        string
	Owner       string
	URL         string
	Description string
	IsFork      bool
}

// Key returns repository identifier in "owner/name" form.
// Contributions are deduplicated by this key.
func (r Repository) Key() string {
	return r.Owner + "/" + r.Name
}

// PullRequest entity
type PullRequest struct {
	Title    string
	URL      string
	MergedAt time.Time
}

// MergedPullRequest is a single merged pull request together with its target repository.
type MergedPullRequest struct {
	Repository  Repository
	PullRequest PullRequest
}

// CommitActivity describes direct commits made to a repository's default branch.
type CommitActivity struct {
	Repository Repository
	Commits    int
	LastCommit time.Time
}

// ContributionKind classifies how a repository was contributed to.
type ContributionKind string

// Contribution kinds. When a repository has both merged pull requests
// and direct commits, the kinds are joined with "PR" first.
const (
	KindPullRequest       ContributionKind = "PR"
	KindCommit            ContributionKind = "Commit"
	KindPullRequestCommit ContributionKind = "PR / Commit"
	KindUnknown           ContributionKind = "Unknown"
)

// Contribution is an aggregated record of all contributions to a single repository.
type Contribution struct {
	Repository Repository

	// PullRequests holds merged pull requests, most recently merged first.
	PullRequests []PullRequest

	// HasCommits is true when the user committed directly to the default branch.
	HasCommits bool

	// LastActivity is the latest merge or commit time. Zero when unknown.
	LastActivity time.Time
}

// Kind returns the contribution classification for the repository.
func (c Contribution) Kind() ContributionKind {
	switch {
	case len(c.PullRequests) > 0 && c.HasCommits:
		return KindPullRequestCommit
	case len(c.PullRequests) > 0:
		return KindPullRequest
	case c.HasCommits:
		return KindCommit
	default:
		return KindUnknown
	}
}
