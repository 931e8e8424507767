// Package main regenerates the contributions section of a github profile README.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	netHttp "net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"contribgen/internal/adapter/github"
	"contribgen/internal/api/http/limiter"
	"contribgen/internal/app"
	"contribgen/internal/markdown"
)

var (
	readmePath = flag.String("f", "README.md", "Path to the readme file to update")
	login      = flag.String("u", "", "Github login, overrides GITHUB_USERNAME")
	dryRun     = flag.Bool("n", false, "Print the updated readme to stdout instead of writing the file")
)

func main() {
	flag.Parse()

	l := logrus.New()
	l.Level = logrus.InfoLevel

	// Variables already set in the environment take precedence over .env values.
	_ = godotenv.Load()

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("coludn't parse config: %v", err)
	}

	userLogin := conf.GithubUsername
	if *login != "" {
		userLogin = *login
	}
	if userLogin == "" {
		l.Fatal("github login is required: set GITHUB_USERNAME or use the -u flag")
	}
	if conf.GithubToken == "" {
		l.Fatal("github token is required: set GITHUB_TOKEN")
	}

	httpClient := &netHttp.Client{
		Timeout: 30 * time.Second,
	}
	limitedHTTPClient := limiter.NewHTTPDoer(
		httpClient,
		conf.GithubAPIRateLimit,
	)
	githubClient := github.NewClient(
		limitedHTTPClient,
		conf.GithubAPIAddress,
		conf.GithubToken,
	)
	service := app.NewService(
		githubClient,
		conf.ServiceResponseTimeout,
	)

	contributions, err := service.ContributionsByLogin(context.Background(), userLogin)
	if err != nil {
		l.Fatalf("couldn't fetch contributions: %v", err)
	}
	l.Infof("found %d repositories with contributions for %s", len(contributions), userLogin)

	current, err := ioutil.ReadFile(*readmePath)
	if err != nil && !os.IsNotExist(err) {
		l.Fatalf("couldn't read readme file: %v", err)
	}

	section := markdown.Render(contributions)
	updated := markdown.UpdateReadme(string(current), section)

	if *dryRun {
		fmt.Print(updated)
		return
	}

	if err := ioutil.WriteFile(*readmePath, []byte(updated), 0644); err != nil {
		l.Fatalf("couldn't write readme file: %v", err)
	}
	l.Infof("updated %s", *readmePath)
}
