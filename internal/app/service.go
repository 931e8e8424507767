package app

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// GithubClient returns details about user's github activity.
//go:generate mockgen -destination mock/githubcli.go -package mock contribgen/internal/app GithubClient
type GithubClient interface {
	MergedPullRequests(ctx context.Context, login string) ([]MergedPullRequest, error)
	CommitActivity(ctx context.Context, login string) ([]CommitActivity, error)
}

// Service is main apps entry point. Provides all app functionality.
type Service struct {
	githubClient GithubClient
	timeout      time.Duration
}

// NewService creates new Service instance.
func NewService(githubClient GithubClient, timeout time.Duration) *Service {
	return &Service{
		githubClient: githubClient,
		timeout:      timeout,
	}
}

// ContributionsByLogin returns all open-source contributions made by given user.
// Merged pull requests and direct default-branch commits are grouped per repository.
// Repositories are sorted by the most recent activity, pull requests inside each
// repository by merge time, newest first. Fork repositories without any merged
// pull request are skipped.
func (s *Service) ContributionsByLogin(ctx context.Context, login string) ([]Contribution, error) {
	if login == "" {
		return nil, InvalidRequestError("login cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type prsResponse struct {
		prs []MergedPullRequest
		err error
	}
	type activityResponse struct {
		activity []CommitActivity
		err      error
	}

	prsCh := make(chan prsResponse, 1)
	activityCh := make(chan activityResponse, 1)
	go func() {
		prs, err := s.githubClient.MergedPullRequests(ctx, login)
		prsCh <- prsResponse{prs: prs, err: err}
	}()
	go func() {
		activity, err := s.githubClient.CommitActivity(ctx, login)
		activityCh <- activityResponse{activity: activity, err: err}
	}()

	prsResp := <-prsCh
	if prsResp.err != nil {
		return nil, fmt.Errorf("retrieving merged pull requests: %w", prsResp.err)
	}
	activityResp := <-activityCh
	if activityResp.err != nil {
		return nil, fmt.Errorf("retrieving commit activity: %w", activityResp.err)
	}

	return groupContributions(prsResp.prs, activityResp.activity), nil
}

// groupContributions merges pull request and commit data into per-repository records.
func groupContributions(prs []MergedPullRequest, activity []CommitActivity) []Contribution {
	byRepo := make(map[string]*Contribution)
	order := make([]string, 0, len(prs)+len(activity))

	for _, pr := range prs {
		key := pr.Repository.Key()
		c, ok := byRepo[key]
		if !ok {
			c = &Contribution{Repository: pr.Repository}
			byRepo[key] = c
			order = append(order, key)
		}
		c.PullRequests = append(c.PullRequests, pr.PullRequest)
		if pr.PullRequest.MergedAt.After(c.LastActivity) {
			c.LastActivity = pr.PullRequest.MergedAt
		}
	}

	for _, ca := range activity {
		key := ca.Repository.Key()
		c, ok := byRepo[key]
		if !ok {
			c = &Contribution{Repository: ca.Repository}
			byRepo[key] = c
			order = append(order, key)
		}
		c.HasCommits = true
		if ca.LastCommit.After(c.LastActivity) {
			c.LastActivity = ca.LastCommit
		}
	}

	result := make([]Contribution, 0, len(order))
	for _, key := range order {
		c := byRepo[key]
		if c.Repository.IsFork && len(c.PullRequests) == 0 {
			continue
		}

		sort.SliceStable(c.PullRequests, func(i, j int) bool {
			return c.PullRequests[i].MergedAt.After(c.PullRequests[j].MergedAt)
		})
		result = append(result, *c)
	}

	// Stable sort keeps the insertion order for repositories with equal activity time.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastActivity.After(result[j].LastActivity)
	})

	return result
}
