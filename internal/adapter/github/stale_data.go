package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"contribgen/internal/app"
)

// KVStore provides simple kv data storage
type KVStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
}

// ClientWithStaleData wraps GithubClient and returns data saved in db if possible.
//
// If data is not available (or datas ttl is exceeded), update is scheduled, and app.ScheduledForLaterError is returned with empty data.
// If data is available, ttl is ok, but refreshTTL is exceeded, additional job for update is scheduled. Exisiting data is returned immediately.
// If data is available and no ttl is exceeded, then data is returned immediately.
type ClientWithStaleData struct {
	client     app.GithubClient
	store      KVStore
	ttl        time.Duration
	refreshTTL time.Duration
	l          logrus.FieldLogger

	prUpdates       chan prsDBUpdateRequest
	activityUpdates chan activityDBUpdateRequest

	// Chan for controlling scheduler - only used for unit testing.
	schedulerPendingOps chan int

	// Func for canceling internal worker loop and initializing db cleanup
	stop func()
}

// NewClientWithStaleData creates new ClientWithStaleData instance.
func NewClientWithStaleData(
	client app.GithubClient,
	store KVStore,
	ttl time.Duration,
	refreshTTL time.Duration,
	l logrus.FieldLogger,
) (*ClientWithStaleData, error) {
	c := ClientWithStaleData{
		client:          client,
		store:           store,
		ttl:             ttl,
		refreshTTL:      refreshTTL,
		l:               l,
		prUpdates:       make(chan prsDBUpdateRequest, 1000),
		activityUpdates: make(chan activityDBUpdateRequest, 1000),
	}

	return &c, nil
}

// RunScheduler runs internal scheduling goroutine.
// Doesn't block.
func (c *ClientWithStaleData) RunScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	c.stop = cancel

	go func() {
		pendingPRUpdates := make(map[string]bool)
		pendingActivityUpdates := make(map[string]bool)

		donePRUpdates := make(chan string)
		doneActivityUpdates := make(chan string)

		for {
			// This is intended for blocking scheduler for unit testing.
			// In standard execution this is always nil.
			if c.schedulerPendingOps != nil {
				c.schedulerPendingOps <- len(pendingPRUpdates) + len(pendingActivityUpdates)
			}

			select {
			// Pull requests
			case req := <-c.prUpdates:
				if pendingPRUpdates[req.login] {
					continue
				}
				pendingPRUpdates[req.login] = true

				go func(req prsDBUpdateRequest) {
					c.l.Infof("ClientWithStaleData: scheduled pull requests update for %s...", req.login)
					if err := c.updatePullRequests(req); err != nil {
						c.l.Errorf("ClientWithStaleData scheduler: updating pull requests data: %v", err)
					} else {
						c.l.Infof("ClientWithStaleData: scheduled pull requests update for %s done", req.login)
					}
					donePRUpdates <- req.login
				}(req)
			case key := <-donePRUpdates:
				delete(pendingPRUpdates, key)

			// Commit activity
			case req := <-c.activityUpdates:
				if pendingActivityUpdates[req.login] {
					continue
				}
				pendingActivityUpdates[req.login] = true

				go func(req activityDBUpdateRequest) {
					c.l.Infof("ClientWithStaleData: scheduled commit activity update for %s...", req.login)
					if err := c.updateActivity(req); err != nil {
						c.l.Errorf("ClientWithStaleData scheduler: updating commit activity data: %v", err)
					} else {
						c.l.Infof("ClientWithStaleData: scheduled commit activity update for %s done", req.login)
					}
					doneActivityUpdates <- req.login
				}(req)
			case key := <-doneActivityUpdates:
				delete(pendingActivityUpdates, key)

			// Finish
			case <-ctx.Done():
				return
			}
		}
	}()
}

// MergedPullRequests returns user's merged pull requests.
//
// Returns data from db if available.
func (c *ClientWithStaleData) MergedPullRequests(ctx context.Context, login string) ([]app.MergedPullRequest, error) {
	key := c.prsDBKey(login)
	data, err := c.store.ReadKey(key)
	if err != nil {
		return nil, err
	}
	if data != nil {
		entry, err := c.unserializePullRequests(data)
		if err != nil {
			return nil, fmt.Errorf("unserializing pull requests data: %w", err)
		}
		entryCreated := time.Unix(entry.Created, 0)
		if entryCreated.Add(c.ttl).After(time.Now()) {
			if entryCreated.Add(c.refreshTTL).Before(time.Now()) {
				go func() {
					c.prUpdates <- prsDBUpdateRequest{
						login: login,
					}
				}()
			}

			return entry.Data, nil
		}
	}

	select {
	case c.prUpdates <- prsDBUpdateRequest{
		login: login,
	}:
		return nil, app.ScheduledForLaterError("scheduled")
	default:
		return nil, errors.New("stale data scheduler: no free slots left")
	}
}

// CommitActivity returns user's commit activity.
//
// Returns data from db if available.
func (c *ClientWithStaleData) CommitActivity(ctx context.Context, login string) ([]app.CommitActivity, error) {
	key := c.activityDBKey(login)
	data, err := c.store.ReadKey(key)
	if err != nil {
		return nil, err
	}
	if data != nil {
		entry, err := c.unserializeActivity(data)
		if err != nil {
			return nil, fmt.Errorf("unserializing commit activity data: %w", err)
		}
		entryCreated := time.Unix(entry.Created, 0)
		if entryCreated.Add(c.ttl).After(time.Now()) {
			if entryCreated.Add(c.refreshTTL).Before(time.Now()) {
				c.activityUpdates <- activityDBUpdateRequest{
					login: login,
				}
			}

			return entry.Data, nil
		}
	}

	select {
	case c.activityUpdates <- activityDBUpdateRequest{
		login: login,
	}:
		return nil, app.ScheduledForLaterError("scheduled")
	default:
		return nil, errors.New("stale data scheduler: no free slots left")
	}
}

// Close cleanups scheduler and closes underlying database.
func (c *ClientWithStaleData) Close() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

func (c *ClientWithStaleData) updatePullRequests(req prsDBUpdateRequest) error {
	prs, err := c.client.MergedPullRequests(context.Background(), req.login)
	if err != nil {
		return fmt.Errorf("calling client.MergedPullRequests: %w", err)
	}
	if err := c.savePullRequests(req.login, prs); err != nil {
		return fmt.Errorf("saving pull requests: %w", err)
	}

	return nil
}

func (c *ClientWithStaleData) updateActivity(req activityDBUpdateRequest) error {
	activity, err := c.client.CommitActivity(context.Background(), req.login)
	if err != nil {
		return fmt.Errorf("calling client.CommitActivity: %w", err)
	}
	if err := c.saveActivity(req.login, activity); err != nil {
		return fmt.Errorf("saving commit activity: %w", err)
	}

	return nil
}

func (c *ClientWithStaleData) savePullRequests(login string, prs []app.MergedPullRequest) error {
	dbdata, err := c.serializePullRequests(prsDBEntry{
		Created: time.Now().Unix(),
		Data:    prs,
	})
	if err != nil {
		return fmt.Errorf("serializing data for save: %w", err)
	}

	return c.store.UpdateKey(c.prsDBKey(login), dbdata)
}

func (c *ClientWithStaleData) saveActivity(login string, activity []app.CommitActivity) error {
	dbdata, err := c.serializeActivity(activityDBEntry{
		Created: time.Now().Unix(),
		Data:    activity,
	})
	if err != nil {
		return fmt.Errorf("serializing data for save: %w", err)
	}

	return c.store.UpdateKey(c.activityDBKey(login), dbdata)
}

func (c *ClientWithStaleData) prsDBKey(login string) []byte {
	return []byte("pr/" + login)
}

func (c *ClientWithStaleData) activityDBKey(login string) []byte {
	return []byte("ca/" + login)
}

func (c *ClientWithStaleData) serializePullRequests(entry prsDBEntry) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshalling json: %w", err)
	}

	return data, nil
}

func (c *ClientWithStaleData) unserializePullRequests(data []byte) (*prsDBEntry, error) {
	var entry prsDBEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshalling json: %w", err)
	}

	return &entry, nil
}

func (c *ClientWithStaleData) serializeActivity(entry activityDBEntry) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshalling json: %w", err)
	}

	return data, nil
}

func (c *ClientWithStaleData) unserializeActivity(data []byte) (*activityDBEntry, error) {
	var entry activityDBEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshalling json: %w", err)
	}

	return &entry, nil
}

type prsDBEntry struct {
	Created int64
	Data    []app.MergedPullRequest
}
type activityDBEntry struct {
	Created int64
	Data    []app.CommitActivity
}

type prsDBUpdateRequest struct {
	login string
}

type activityDBUpdateRequest struct {
	login string
}
