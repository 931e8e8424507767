package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"contribgen/internal/app"
)

// Service can return user's open-source contributions.
//go:generate mockgen -destination mock/service.go -package mock contribgen/internal/api/http Service
type Service interface {
	ContributionsByLogin(ctx context.Context, login string) ([]app.Contribution, error)
}

// NewMux creates router for app's http server
func NewMux(service Service, timeout time.Duration, l logrus.FieldLogger) *http.ServeMux {
	timeoutMiddleware := NewTimeoutMiddleware(timeout)

	contributionsPath := "/contributions/"
	contributionsHandler := NewContributionsHandler(
		func(r *http.Request) string {
			return strings.TrimPrefix(r.URL.Path, contributionsPath)
		},
		service,
		l,
	)
	contributionsHandler = timeoutMiddleware(contributionsHandler)

	readmePath := "/readme/"
	readmeHandler := NewReadmeHandler(
		func(r *http.Request) string {
			return strings.TrimPrefix(r.URL.Path, readmePath)
		},
		service,
		l,
	)
	readmeHandler = timeoutMiddleware(readmeHandler)

	badgePath := "/badge/"
	badgeHandler := NewBadgeHandler(
		func(r *http.Request) string {
			return strings.TrimPrefix(r.URL.Path, badgePath)
		},
		service,
		l,
	)
	badgeHandler = timeoutMiddleware(badgeHandler)

	m := http.NewServeMux()
	m.HandleFunc(contributionsPath, contributionsHandler)
	m.HandleFunc(readmePath, readmeHandler)
	m.HandleFunc(badgePath, badgeHandler)

	return m
}
