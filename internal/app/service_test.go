package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"contribgen/internal/app"
	"contribgen/internal/app/mock"
)

func TestServiceContributionsByLogin(t *testing.T) {
	t.Parallel()

	t1 := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC)
	t3 := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	t4 := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)

	toolsRepo := app.Repository{
		Name:        "tools",
		Owner:       "acme",
		URL:         "https://github.com/acme/tools",
		Description: "Assorted developer tools",
	}
	parserRepo := app.Repository{
		Name:        "parser",
		Owner:       "oss",
		URL:         "https://github.com/oss/parser",
		Description: "Fast config parser",
		IsFork:      true,
	}
	infraRepo := app.Repository{
		Name:        "infra",
		Owner:       "acme",
		URL:         "https://github.com/acme/infra",
		Description: "Deployment manifests",
	}
	forkOnlyRepo := app.Repository{
		Name:   "forked",
		Owner:  "someone",
		URL:    "https://github.com/someone/forked",
		IsFork: true,
	}

	tests := []struct {
		name      string
		setupMock func(*mock.MockGithubClient)
		login     string
		want      []app.Contribution
		wantErr   bool
	}{
		{
			name:      "empty login",
			setupMock: func(m *mock.MockGithubClient) {},
			login:     "",
			want:      nil,
			wantErr:   true,
		},
		{
			name: "pull requests error from client",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					MergedPullRequests(gomock.Any(), "octocat").
					Return(nil, errors.New("error"))
				m.EXPECT().
					CommitActivity(gomock.Any(), "octocat").
					Return(nil, nil).
					AnyTimes()
			},
			login:   "octocat",
			want:    nil,
			wantErr: true,
		},
		{
			name: "commit activity error from client",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					MergedPullRequests(gomock.Any(), "octocat").
					Return(nil, nil)
				m.EXPECT().
					CommitActivity(gomock.Any(), "octocat").
					Return(nil, errors.New("error"))
			},
			login:   "octocat",
			want:    nil,
			wantErr: true,
		},
		{
			name: "no activity at all",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					MergedPullRequests(gomock.Any(), "octocat").
					Return(nil, nil)
				m.EXPECT().
					CommitActivity(gomock.Any(), "octocat").
					Return(nil, nil)
			},
			login:   "octocat",
			want:    []app.Contribution{},
			wantErr: false,
		},
		{
			name: "client ok, grouped, sorted and filtered response",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					MergedPullRequests(gomock.Any(), "octocat").
					Return(
						[]app.MergedPullRequest{
							{
								Repository: toolsRepo,
								PullRequest: app.PullRequest{
									Title:    "Fix flaky retry",
									URL:      "https://github.com/acme/tools/pull/12",
									MergedAt: t3,
								},
							},
							{
								Repository: parserRepo,
								PullRequest: app.PullRequest{
									Title:    "Support quoted atoms",
									URL:      "https://github.com/oss/parser/pull/7",
									MergedAt: t2,
								},
							},
							{
								Repository: toolsRepo,
								PullRequest: app.PullRequest{
									Title:    "Add timeout option",
									URL:      "https://github.com/acme/tools/pull/3",
									MergedAt: t1,
								},
							},
						},
						nil,
					)
				m.EXPECT().
					CommitActivity(gomock.Any(), "octocat").
					Return(
						[]app.CommitActivity{
							{
								Repository: infraRepo,
								Commits:    4,
								LastCommit: t4,
							},
							{
								Repository: toolsRepo,
								Commits:    2,
								LastCommit: t2,
							},
							{
								Repository: forkOnlyRepo,
								Commits:    1,
								LastCommit: t1,
							},
						},
						nil,
					)
			},
			login: "octocat",
			want: []app.Contribution{
				{
					Repository:   infraRepo,
					HasCommits:   true,
					LastActivity: t4,
				},
				{
					Repository: toolsRepo,
					PullRequests: []app.PullRequest{
						{
							Title:    "Fix flaky retry",
							URL:      "https://github.com/acme/tools/pull/12",
							MergedAt: t3,
						},
						{
							Title:    "Add timeout option",
							URL:      "https://github.com/acme/tools/pull/3",
							MergedAt: t1,
						},
					},
					HasCommits:   true,
					LastActivity: t3,
				},
				{
					Repository: parserRepo,
					PullRequests: []app.PullRequest{
						{
							Title:    "Support quoted atoms",
							URL:      "https://github.com/oss/parser/pull/7",
							MergedAt: t2,
						},
					},
					LastActivity: t2,
				},
			},
			wantErr: false,
		},
		{
			name: "equal activity times keep first-seen order",
			setupMock: func(m *mock.MockGithubClient) {
				m.EXPECT().
					MergedPullRequests(gomock.Any(), "octocat").
					Return(
						[]app.MergedPullRequest{
							{
								Repository: toolsRepo,
								PullRequest: app.PullRequest{
									Title:    "Fix flaky retry",
									URL:      "https://github.com/acme/tools/pull/12",
									MergedAt: t2,
								},
							},
							{
								Repository: toolsRepo,
								PullRequest: app.PullRequest{
									Title:    "Add timeout option",
									URL:      "https://github.com/acme/tools/pull/3",
									MergedAt: t2,
								},
							},
							{
								Repository: parserRepo,
								PullRequest: app.PullRequest{
									Title:    "Support quoted atoms",
									URL:      "https://github.com/oss/parser/pull/7",
									MergedAt: t2,
								},
							},
						},
						nil,
					)
				m.EXPECT().
					CommitActivity(gomock.Any(), "octocat").
					Return(
						[]app.CommitActivity{
							// Commit activity with no known time sorts last.
							{
								Repository: infraRepo,
								Commits:    2,
							},
						},
						nil,
					)
			},
			login: "octocat",
			want: []app.Contribution{
				{
					Repository: toolsRepo,
					PullRequests: []app.PullRequest{
						{
							Title:    "Fix flaky retry",
							URL:      "https://github.com/acme/tools/pull/12",
							MergedAt: t2,
						},
						{
							Title:    "Add timeout option",
							URL:      "https://github.com/acme/tools/pull/3",
							MergedAt: t2,
						},
					},
					LastActivity: t2,
				},
				{
					Repository: parserRepo,
					PullRequests: []app.PullRequest{
						{
							Title:    "Support quoted atoms",
							URL:      "https://github.com/oss/parser/pull/7",
							MergedAt: t2,
						},
					},
					LastActivity: t2,
				},
				{
					Repository: infraRepo,
					HasCommits: true,
				},
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			githubCli := mock.NewMockGithubClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(githubCli)
			}

			s := app.NewService(githubCli, time.Minute)
			got, err := s.ContributionsByLogin(context.Background(), tt.login)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContributionKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		contribution app.Contribution
		want         app.ContributionKind
	}{
		{
			name: "pull requests only",
			contribution: app.Contribution{
				PullRequests: []app.PullRequest{{Title: "x"}},
			},
			want: app.KindPullRequest,
		},
		{
			name: "commits only",
			contribution: app.Contribution{
				HasCommits: true,
			},
			want: app.KindCommit,
		},
		{
			name: "pull requests and commits",
			contribution: app.Contribution{
				PullRequests: []app.PullRequest{{Title: "x"}},
				HasCommits:   true,
			},
			want: app.KindPullRequestCommit,
		},
		{
			name:         "no activity",
			contribution: app.Contribution{},
			want:         app.KindUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.contribution.Kind())
		})
	}
}
