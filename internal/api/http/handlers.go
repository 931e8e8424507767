package http

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"contribgen/internal/app"
	"contribgen/internal/markdown"
)

type pullRequest struct {
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	MergedAt time.Time `json:"mergedAt"`
}

type repositoryContributions struct {
	Repository   string        `json:"repository"`
	URL          string        `json:"url"`
	Description  string        `json:"description"`
	Type         string        `json:"type"`
	LastActivity time.Time     `json:"lastActivity"`
	PullRequests []pullRequest `json:"pullRequests"`
}

type contributionsResponse struct {
	Login        string                    `json:"login"`
	Repositories []repositoryContributions `json:"repositories"`
}

func newContributionsResponse(login string, contributions []app.Contribution) contributionsResponse {
	repositories := make([]repositoryContributions, 0, len(contributions))
	for _, c := range contributions {
		prs := make([]pullRequest, 0, len(c.PullRequests))
		for _, pr := range c.PullRequests {
			prs = append(prs, pullRequest{
				Title:    pr.Title,
				URL:      pr.URL,
				MergedAt: pr.MergedAt,
			})
		}

		repositories = append(repositories, repositoryContributions{
			Repository:   c.Repository.Key(),
			URL:          c.Repository.URL,
			Description:  c.Repository.Description,
			Type:         string(c.Kind()),
			LastActivity: c.LastActivity,
			PullRequests: prs,
		})
	}

	return contributionsResponse{
		Login:        login,
		Repositories: repositories,
	}
}

// NewContributionsHandler creates handlerfunc returning user contributions as json.
func NewContributionsHandler(
	getLogin func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		login := getLogin(r)

		contributions, err := service.ContributionsByLogin(r.Context(), login)
		if err != nil {
			handleServiceError(w, err, l)
			return
		}

		response := newContributionsResponse(login, contributions)

		w.Header().Set("Content-type", "application/json; charset=utf-8")
		_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(response)
	}
}

// NewReadmeHandler creates handlerfunc returning the readme contributions
// section rendered as markdown.
func NewReadmeHandler(
	getLogin func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		login := getLogin(r)

		contributions, err := service.ContributionsByLogin(r.Context(), login)
		if err != nil {
			handleServiceError(w, err, l)
			return
		}

		w.Header().Set("Content-type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(markdown.Render(contributions) + "\n"))
	}
}

// badgeResponse is the shields.io endpoint badge contract.
// See: https://shields.io/endpoint
type badgeResponse struct {
	SchemaVersion int    `json:"schemaVersion"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Color         string `json:"color"`
}

// NewBadgeHandler creates handlerfunc returning shields.io badge data
// with the number of repositories contributed to.
func NewBadgeHandler(
	getLogin func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		login := getLogin(r)

		contributions, err := service.ContributionsByLogin(r.Context(), login)
		if err != nil {
			handleServiceError(w, err, l)
			return
		}

		color := "brightgreen"
		if len(contributions) == 0 {
			color = "lightgrey"
		}
		response := badgeResponse{
			SchemaVersion: 1,
			Label:         "contributions",
			Message:       fmt.Sprintf("%d repos", len(contributions)),
			Color:         color,
		}

		w.Header().Set("Content-type", "application/json; charset=utf-8")
		_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(response)
	}
}

func handleServiceError(w http.ResponseWriter, err error, l logrus.FieldLogger) {
	switch {
	case app.IsInvalidRequestError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case app.IsScheduledForLaterError(err):
		http.Error(w, "contributions are being prepared, try again in a moment", http.StatusAccepted)
	case app.IsTooManyRequestsError(err):
		http.Error(w, "github api limit reached, try again later", http.StatusTooManyRequests)
	default:
		l.Errorf("handling request: %v", err)
		http.Error(w, "", http.StatusInternalServerError)
	}
}
