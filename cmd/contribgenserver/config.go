package main

import "time"

// Config is the container for app configuration
type Config struct {
	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:8080"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// ServiceResponseTimeout - timeout for service execution
	ServiceResponseTimeout time.Duration `default:"30s"`

	// GithubAPIAddress - address for graphql api with protocol
	GithubAPIAddress string `default:"https://api.github.com/graphql"`

	// GithubAPIToken - auth token for github graphql api (required, the graphql api rejects unauthenticated calls)
	GithubAPIToken string `default:""`

	// GithubAPIRateLimit - max frequency for github graphql api calls
	GithubAPIRateLimit float64 `default:"0.5"`

	// GithubClientCacheSize - maximum number of elements in cache for each github client method
	GithubClientCacheSize int `default:"10000"`

	// GithubClientCacheTTL - maximum lifetime for github client cache entries
	GithubClientCacheTTL time.Duration `default:"10m"`

	// GithubDBPath - filepath for bolt db data
	GithubDBPath string `default:"./contributions.data"`

	// GithubDBBucketName - bolt db bucket name
	GithubDBBucketName string `default:"contributions"`

	// GithubDBDataTTL - maximum lifetime for staled data in db
	GithubDBDataTTL time.Duration `default:"8h"`

	// GithubDBDataRefreshTTL - maximum lifetime for staled data to be queued for refresh
	GithubDBDataRefreshTTL time.Duration `default:"1h"`
}
