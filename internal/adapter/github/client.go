package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"sync"
	"time"

	"contribgen/internal/app"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches user contribution data from the github GraphQL API.
// This struct is an adapter for app.GithubClient.
//go:generate mockgen -destination mock/githubcli.go -package mock contribgen/internal/app GithubClient
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string

	responseMaxSize   int
	maxRequestRetries int
	retryWaitTime     time.Duration
	lowRateRemaining  int

	mu       sync.Mutex
	resumeAt time.Time

	now func() time.Time
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// address is the GraphQL endpoint url, authToken is required by the github API.
func NewClient(doer HTTPDoer, address string, authToken string) *Client {
	c := Client{
		doer:      doer,
		address:   address,
		authToken: authToken,

		responseMaxSize:   1024 * 1024 * 10,
		maxRequestRetries: 3,
		retryWaitTime:     time.Second,
		lowRateRemaining:  10,

		now: time.Now,
	}

	return &c
}

const mergedPullRequestsQuery = `query($query: String!, $after: String) {
  search(query: $query, type: ISSUE, first: 100, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ... on PullRequest {
        title
        url
        mergedAt
        isDraft
        repository {
          name
          url
          description
          isFork
          owner {
            login
          }
        }
      }
    }
  }
}`

const commitActivityQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      commitContributionsByRepository(maxRepositories: 100) {
        repository {
          name
          url
          description
          isFork
          isPrivate
          defaultBranchRef {
            name
          }
          owner {
            login
          }
        }
        contributions(first: 1, orderBy: {field: OCCURRED_AT, direction: DESC}) {
          totalCount
          nodes {
            occurredAt
          }
        }
      }
    }
  }
}`

// MergedPullRequests returns all public, non-draft pull requests authored
// by given user that were merged. Result pages are fetched until exhausted.
func (c *Client) MergedPullRequests(ctx context.Context, login string) ([]app.MergedPullRequest, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}

	searchQuery := fmt.Sprintf("is:pr is:merged is:public author:%s", login)

	prs := make([]app.MergedPullRequest, 0)
	var cursor string
	for {
		variables := map[string]interface{}{"query": searchQuery}
		if cursor != "" {
			variables["after"] = cursor
		}

		data, err := c.query(ctx, mergedPullRequestsQuery, variables)
		if err != nil {
			return nil, fmt.Errorf("querying merged pull requests: %w", err)
		}

		var resp prSearchResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("unmarshalling response: %w", err)
		}

		prs = append(prs, resp.ToMergedPullRequests()...)

		if !resp.Search.PageInfo.HasNextPage {
			break
		}
		cursor = resp.Search.PageInfo.EndCursor
	}

	return prs, nil
}

// CommitActivity returns public repositories with user's direct commits
// on the default branch.
//
// The github API limits this data to 100 most recent repositories and counts
// only default branch (or gh-pages) commits.
func (c *Client) CommitActivity(ctx context.Context, login string) ([]app.CommitActivity, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}

	data, err := c.query(ctx, commitActivityQuery, map[string]interface{}{"login": login})
	if err != nil {
		return nil, fmt.Errorf("querying commit activity: %w", err)
	}

	var resp commitActivityResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	return resp.ToCommitActivity(), nil
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// query executes single GraphQL request and returns the raw data payload.
// Requests rejected due to api rate limits are retried after the limit resets.
func (c *Client) query(ctx context.Context, query string, variables map[string]interface{}) ([]byte, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling graphql request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRequestRetries; attempt++ {
		if err := c.waitForRateLimit(ctx); err != nil {
			return nil, err
		}

		httpReq, err := http.NewRequest(http.MethodPost, c.address, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("creating http request: %w", err)
		}

		body, retry, err := c.makeRequest(ctx, httpReq, attempt)
		if err != nil {
			if !retry {
				return nil, err
			}
			lastErr = err
			continue
		}

		var resp graphQLResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("unmarshalling graphql envelope: %w", err)
		}
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("graphql error: %s", resp.Errors[0].Message)
		}

		return resp.Data, nil
	}

	return nil, fmt.Errorf("retries exceeded: %w", lastErr)
}

func (c *Client) makeRequest(ctx context.Context, req *http.Request, attempt int) ([]byte, bool, error) {
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "bearer "+c.authToken)
	}

	resp, err := c.doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, false, fmt.Errorf("doing http request: %w", err)
	}
	// Always drain body before close to allow connection reuse.
	// See: http://tleyden.github.io/blog/2016/11/21/tuning-the-go-http-client-library-for-load-testing/
	defer func() {
		_, _ = io.CopyN(ioutil.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	c.noteRateLimit(&resp.Header, attempt)

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		c.pauseUntilReset(&resp.Header, attempt)
		return nil, true, app.TooManyRequestsError(fmt.Sprintf("got http status code: %d", resp.StatusCode))
	}
	if resp.StatusCode/100 > 3 {
		return nil, false, fmt.Errorf("got invalid http status code: %d", resp.StatusCode)
	}

	b, err := ioutil.ReadAll(io.LimitReader(resp.Body, int64(c.responseMaxSize)))
	if err != nil {
		return nil, false, fmt.Errorf("reading http response body: %w", err)
	}

	return b, false, nil
}

// noteRateLimit postpones next requests until the limit reset when the
// remaining quota reported by the api is close to exhaustion.
func (c *Client) noteRateLimit(h *http.Header, attempt int) {
	remaining, ok := headerInt(h, "X-RateLimit-Remaining")
	if !ok || remaining >= c.lowRateRemaining {
		return
	}

	c.pauseUntilReset(h, attempt)
}

// pauseUntilReset schedules the earliest time the next request may be sent.
// Without the reset header the wait doubles with every attempt.
func (c *Client) pauseUntilReset(h *http.Header, attempt int) {
	var resume time.Time
	if reset, ok := headerInt(h, "X-RateLimit-Reset"); ok {
		resume = time.Unix(int64(reset), 0).Add(time.Second)
	} else {
		resume = c.now().Add(c.retryWaitTime << attempt)
	}

	c.mu.Lock()
	if resume.After(c.resumeAt) {
		c.resumeAt = resume
	}
	c.mu.Unlock()
}

func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	wait := c.resumeAt.Sub(c.now())
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for rate limit reset: %w", ctx.Err())
	}
}

func headerInt(h *http.Header, name string) (int, bool) {
	s := h.Get(name)
	if s == "" {
		return 0, false
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return v, true
}
