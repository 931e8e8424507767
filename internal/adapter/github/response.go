package github

import (
	"encoding/json"
	"time"

	"contribgen/internal/app"
)

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type prSearchResponse struct {
	Search prSearchResult `json:"search"`
}

type prSearchResult struct {
	PageInfo pageInfo       `json:"pageInfo"`
	Nodes    []prSearchNode `json:"nodes"`
}

type prSearchNode struct {
	Title      string             `json:"title"`
	URL        string             `json:"url"`
	MergedAt   time.Time          `json:"mergedAt"`
	IsDraft    bool               `json:"isDraft"`
	Repository responseRepository `json:"repository"`
}

type responseRepository struct {
	Name             string        `json:"name"`
	URL              string        `json:"url"`
	Description      string        `json:"description"`
	IsFork           bool          `json:"isFork"`
	IsPrivate        bool          `json:"isPrivate"`
	DefaultBranchRef *responseRef  `json:"defaultBranchRef"`
	Owner            responseOwner `json:"owner"`
}

type responseRef struct {
	Name string `json:"name"`
}

type responseOwner struct {
	Login string `json:"login"`
}

func (r responseRepository) toRepository() app.Repository {
	return app.Repository{
		Name:        r.Name,
		Owner:       r.Owner.Login,
		URL:         r.URL,
		Description: r.Description,
		IsFork:      r.IsFork,
	}
}

// ToMergedPullRequests maps search result to app entities.
// Draft pull requests and non pull request nodes are skipped.
func (r prSearchResponse) ToMergedPullRequests() []app.MergedPullRequest {
	prs := make([]app.MergedPullRequest, 0, len(r.Search.Nodes))
	for _, n := range r.Search.Nodes {
		if n.URL == "" || n.IsDraft {
			continue
		}

		prs = append(prs, app.MergedPullRequest{
			Repository: n.Repository.toRepository(),
			PullRequest: app.PullRequest{
				Title:    n.Title,
				URL:      n.URL,
				MergedAt: n.MergedAt,
			},
		})
	}

	return prs
}

type commitActivityResponse struct {
	User commitActivityUser `json:"user"`
}

type commitActivityUser struct {
	ContributionsCollection commitContributionsCollection `json:"contributionsCollection"`
}

type commitContributionsCollection struct {
	ByRepository []commitRepositoryActivity `json:"commitContributionsByRepository"`
}

type commitRepositoryActivity struct {
	Repository    responseRepository  `json:"repository"`
	Contributions commitContributions `json:"contributions"`
}

type commitContributions struct {
	TotalCount int                      `json:"totalCount"`
	Nodes      []commitContributionNode `json:"nodes"`
}

type commitContributionNode struct {
	OccurredAt time.Time `json:"occurredAt"`
}

// ToCommitActivity maps contributions collection to app entities.
// Private repositories and repositories without a default branch are skipped.
func (r commitActivityResponse) ToCommitActivity() []app.CommitActivity {
	activity := make([]app.CommitActivity, 0, len(r.User.ContributionsCollection.ByRepository))
	for _, a := range r.User.ContributionsCollection.ByRepository {
		if a.Repository.IsPrivate {
			continue
		}
		if a.Repository.DefaultBranchRef == nil || a.Contributions.TotalCount == 0 {
			continue
		}

		var lastCommit time.Time
		if len(a.Contributions.Nodes) > 0 {
			lastCommit = a.Contributions.Nodes[0].OccurredAt
		}

		activity = append(activity, app.CommitActivity{
			Repository: a.Repository.toRepository(),
			Commits:    a.Contributions.TotalCount,
			LastCommit: lastCommit,
		})
	}

	return activity
}
