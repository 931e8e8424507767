package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"contribgen/internal/api/http/mock"
	"contribgen/internal/app"
)

func TestNewContributionsHandler(t *testing.T) {
	t.Parallel()

	lastActivity := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	contributions := []app.Contribution{
		{
			Repository: app.Repository{
				Name:        "tools",
				Owner:       "golang",
				URL:         "https://github.com/golang/tools",
				Description: "Go Tools",
			},
			PullRequests: []app.PullRequest{
				{
					Title:    "Fix gopls hover crash",
					URL:      "https://github.com/golang/tools/pull/233",
					MergedAt: lastActivity,
				},
			},
			HasCommits:   true,
			LastActivity: lastActivity,
		},
	}

	tests := []struct {
		name            string
		login           string
		setupMock       func(*mock.MockService)
		wantStatus      int
		wantBody        string
		wantContentType string
	}{
		{
			name:  "no contributions",
			login: "octocat",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(nil, nil)
			},
			wantStatus:      http.StatusOK,
			wantBody:        `{"login":"octocat","repositories":[]}`,
			wantContentType: "application/json; charset=utf-8",
		},
		{
			name:  "valid response",
			login: "octocat",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(contributions, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: `{"login":"octocat","repositories":[` +
				`{"repository":"golang/tools","url":"https://github.com/golang/tools","description":"Go Tools","type":"PR / Commit","lastActivity":"2020-06-01T12:00:00Z",` +
				`"pullRequests":[{"title":"Fix gopls hover crash","url":"https://github.com/golang/tools/pull/233","mergedAt":"2020-06-01T12:00:00Z"}]}]}`,
			wantContentType: "application/json; charset=utf-8",
		},
		{
			name:  "bad request",
			login: "",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "").
					Return(nil, app.InvalidRequestError("login cannot be empty"))
			},
			wantStatus:      http.StatusBadRequest,
			wantBody:        `login cannot be empty`,
			wantContentType: "text/plain; charset=utf-8",
		},
		{
			name:  "data not ready yet",
			login: "octocat",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(nil, app.ScheduledForLaterError("scheduled"))
			},
			wantStatus:      http.StatusAccepted,
			wantBody:        `contributions are being prepared, try again in a moment`,
			wantContentType: "text/plain; charset=utf-8",
		},
		{
			name:  "github limits exceeded",
			login: "octocat",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(nil, app.TooManyRequestsError("limit reached"))
			},
			wantStatus:      http.StatusTooManyRequests,
			wantBody:        `github api limit reached, try again later`,
			wantContentType: "text/plain; charset=utf-8",
		},
		{
			name:  "service error",
			login: "octocat",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(nil, errors.New("error"))
			},
			wantStatus:      http.StatusInternalServerError,
			wantContentType: "text/plain; charset=utf-8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := mock.NewMockService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(s)
			}

			l := logrus.New()
			handler := NewContributionsHandler(
				func(*http.Request) string {
					return tt.login
				},
				s,
				l,
			)
			req, _ := http.NewRequest(http.MethodGet, "testurl", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantContentType, w.Header().Get("Content-type"))

			body := w.Body.String()
			body = strings.Trim(body, "\n")
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestNewReadmeHandler(t *testing.T) {
	t.Parallel()

	emptySection := strings.Join([]string{
		"## 🛠️ Open Source Contributions",
		"",
		"A collection of my contributions to the open-source community, including merged pull requests and direct commits to default branches.",
		"",
		"### 📑 Summary",
		"",
		"No contributions found.",
	}, "\n")
	commitsSection := strings.Join([]string{
		"## 🛠️ Open Source Contributions",
		"",
		"A collection of my contributions to the open-source community, including merged pull requests and direct commits to default branches.",
		"",
		"### 📑 Summary",
		"",
		"- **[dotfiles](https://github.com/octocat/dotfiles)**: Personal configuration",
		"",
		"### 🔍 Detailed Contributions",
		"",
		"| Repository | Description | Type | Contributions |",
		"|:-----------|:------------|:----:|:--------------|",
		"| **[dotfiles](https://github.com/octocat/dotfiles)** | Personal configuration | Commit | Direct commits |",
	}, "\n")

	tests := []struct {
		name            string
		setupMock       func(*mock.MockService)
		wantStatus      int
		wantBody        string
		wantContentType string
	}{
		{
			name: "no contributions",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(nil, nil)
			},
			wantStatus:      http.StatusOK,
			wantBody:        emptySection,
			wantContentType: "text/markdown; charset=utf-8",
		},
		{
			name: "valid response",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(
						[]app.Contribution{
							{
								Repository: app.Repository{
									Name:        "dotfiles",
									Owner:       "octocat",
									URL:         "https://github.com/octocat/dotfiles",
									Description: "Personal configuration",
								},
								HasCommits: true,
							},
						},
						nil,
					)
			},
			wantStatus:      http.StatusOK,
			wantBody:        commitsSection,
			wantContentType: "text/markdown; charset=utf-8",
		},
		{
			name: "service error",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(nil, errors.New("error"))
			},
			wantStatus:      http.StatusInternalServerError,
			wantContentType: "text/plain; charset=utf-8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := mock.NewMockService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(s)
			}

			l := logrus.New()
			handler := NewReadmeHandler(
				func(*http.Request) string {
					return "octocat"
				},
				s,
				l,
			)
			req, _ := http.NewRequest(http.MethodGet, "testurl", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantContentType, w.Header().Get("Content-type"))

			body := w.Body.String()
			body = strings.Trim(body, "\n")
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestNewBadgeHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		setupMock       func(*mock.MockService)
		wantStatus      int
		wantBody        string
		wantContentType string
	}{
		{
			name: "no contributions",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(nil, nil)
			},
			wantStatus:      http.StatusOK,
			wantBody:        `{"schemaVersion":1,"label":"contributions","message":"0 repos","color":"lightgrey"}`,
			wantContentType: "application/json; charset=utf-8",
		},
		{
			name: "some contributions",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(
						[]app.Contribution{
							{Repository: app.Repository{Name: "tools", Owner: "golang"}},
							{Repository: app.Repository{Name: "cli", Owner: "cli"}},
						},
						nil,
					)
			},
			wantStatus:      http.StatusOK,
			wantBody:        `{"schemaVersion":1,"label":"contributions","message":"2 repos","color":"brightgreen"}`,
			wantContentType: "application/json; charset=utf-8",
		},
		{
			name: "service error",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					ContributionsByLogin(gomock.Any(), "octocat").
					Return(nil, errors.New("error"))
			},
			wantStatus:      http.StatusInternalServerError,
			wantContentType: "text/plain; charset=utf-8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := mock.NewMockService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(s)
			}

			l := logrus.New()
			handler := NewBadgeHandler(
				func(*http.Request) string {
					return "octocat"
				},
				s,
				l,
			)
			req, _ := http.NewRequest(http.MethodGet, "testurl", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantContentType, w.Header().Get("Content-type"))

			body := w.Body.String()
			body = strings.Trim(body, "\n")
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
