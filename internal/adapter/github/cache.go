package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"contribgen/internal/app"
)

// CachedClient wraps github client with caching layer.
type CachedClient struct {
	client        app.GithubClient
	prsCache      *lru.Cache
	activityCache *lru.Cache
	ttl           time.Duration
}

// NewCachedClient creates new CachedClient instance.
func NewCachedClient(client app.GithubClient, size int, ttl time.Duration) (*CachedClient, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	prsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for pull requests: %w", err)
	}
	activityCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for commit activity: %w", err)
	}

	return &CachedClient{
		client:        client,
		prsCache:      prsCache,
		activityCache: activityCache,
		ttl:           ttl,
	}, nil
}

// MergedPullRequests returns user's merged pull requests.
func (c *CachedClient) MergedPullRequests(ctx context.Context, login string) ([]app.MergedPullRequest, error) {
	val, ok := c.prsCache.Get(login)
	if ok {
		entry := val.(prsCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return entry.data, nil
		}
	}

	prs, err := c.client.MergedPullRequests(ctx, login)
	if err != nil {
		return prs, err
	}

	entry := prsCacheEntry{
		created: time.Now(),
		data:    prs,
	}
	c.prsCache.Add(login, entry)

	return prs, nil
}

// CommitActivity returns user's commit activity.
func (c *CachedClient) CommitActivity(ctx context.Context, login string) ([]app.CommitActivity, error) {
	val, ok := c.activityCache.Get(login)
	if ok {
		entry := val.(activityCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return entry.data, nil
		}
	}

	activity, err := c.client.CommitActivity(ctx, login)
	if err != nil {
		return activity, err
	}

	entry := activityCacheEntry{
		created: time.Now(),
		data:    activity,
	}
	c.activityCache.Add(login, entry)

	return activity, nil
}

type prsCacheEntry struct {
	created time.Time
	data    []app.MergedPullRequest
}

type activityCacheEntry struct {
	created time.Time
	data    []app.CommitActivity
}
