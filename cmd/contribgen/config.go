package main

import "time"

// Config is the container for app configuration
type Config struct {
	// GithubUsername - login to fetch contributions for
	GithubUsername string `envconfig:"GITHUB_USERNAME" default:""`

	// GithubAPIAddress - address for graphql api with protocol
	GithubAPIAddress string `default:"https://api.github.com/graphql"`

	// GithubToken - auth token for github graphql api (required, the graphql api rejects unauthenticated calls)
	GithubToken string `envconfig:"GITHUB_TOKEN" default:""`

	// GithubAPIRateLimit - max frequency for github graphql api calls
	GithubAPIRateLimit float64 `default:"2"`

	// ServiceResponseTimeout - timeout for fetching all contributions
	ServiceResponseTimeout time.Duration `default:"5m"`
}
