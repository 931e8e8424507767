// Package main runs contributions http server.
package main

import (
	netHttp "net/http"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"contribgen/internal/adapter/github"
	"contribgen/internal/api/http"
	"contribgen/internal/api/http/limiter"
	"contribgen/internal/app"
	"contribgen/internal/database"
)

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	// Variables already set in the environment take precedence over .env values.
	_ = godotenv.Load()

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("coludn't parse config: %v", err)
	}

	httpClient := &netHttp.Client{
		Timeout: 30 * time.Second,
	}
	limitedHTTPClient := limiter.NewHTTPDoer(
		httpClient,
		conf.GithubAPIRateLimit,
	)

	kvStore, err := database.NewBoltKVStore(
		conf.GithubDBPath,
		conf.GithubDBBucketName,
	)
	if err != nil {
		l.Fatalf("coludn't create bolt kv store: %v", err)
	}
	defer kvStore.Close()

	githubClient := github.NewClient(
		limitedHTTPClient,
		conf.GithubAPIAddress,
		conf.GithubAPIToken,
	)
	githubStaleDataClient, err := github.NewClientWithStaleData(
		githubClient,
		kvStore,
		conf.GithubDBDataTTL,
		conf.GithubDBDataRefreshTTL,
		l.WithField("component", "githubStaleDataClient"),
	)
	if err != nil {
		l.Fatalf("coludn't create github db client: %v", err)
	}
	githubStaleDataClient.RunScheduler()
	defer githubStaleDataClient.Close()
	githubCachedClient, err := github.NewCachedClient(
		githubStaleDataClient,
		conf.GithubClientCacheSize,
		conf.GithubClientCacheTTL,
	)
	if err != nil {
		l.Fatalf("couldn't create github client cache: %v", err)
	}

	service := app.NewService(
		githubCachedClient,
		conf.ServiceResponseTimeout,
	)

	mux := http.NewMux(service, 60*time.Second, l.WithField("component", "mux"))
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l.WithField("component", "httpServer"),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		server.Run()
		wg.Done()
	}()
	wg.Wait()
}
