package scm

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v37/github"

	"github.com/octodash/octodash/pkg/dashboard/model"
)

// Github rejects requests without a client identifying User-Agent
const userAgent = "octodash"

const httpTimeout = 30 * time.Second

// ListOptions controls the repository listing. Values are handed to the
// provider as-is, its own validation governs out-of-range input.
type ListOptions struct {
	Sort    string
	PerPage int
}

// GitService is the outbound surface towards the git provider.
type GitService interface {
	FetchAuthenticatedUser(ctx context.Context, token string) (*model.User, error)
	FetchUserRepos(ctx context.Context, token string, opts ListOptions) ([]*model.Repo, error)
}

// GithubClient implements GitService against the Github REST API.
type GithubClient struct {
	// ApiURL overrides the api.github.com base URL
	ApiURL string
}

func NewGithubClient() *GithubClient {
	return &GithubClient{}
}

func (c *GithubClient) FetchAuthenticatedUser(ctx context.Context, token string) (*model.User, error) {
	user, _, err := c.client(token).Users.Get(ctx, "")
	if err != nil {
		return nil, normalizeError(err)
	}

	return &model.User{
		ID:          user.GetID(),
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Bio:         user.GetBio(),
		AvatarURL:   user.GetAvatarURL(),
		HTMLURL:     user.GetHTMLURL(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
	}, nil
}

func (c *GithubClient) FetchUserRepos(ctx context.Context, token string, opts ListOptions) ([]*model.Repo, error) {
	repos, _, err := c.client(token).Repositories.List(ctx, "", &github.RepositoryListOptions{
		Sort: opts.Sort,
		Type: "all",
		ListOptions: github.ListOptions{
			PerPage: opts.PerPage,
		},
	})
	if err != nil {
		return nil, normalizeError(err)
	}

	summaries := []*model.Repo{}
	for _, repo := range repos {
		summaries = append(summaries, asRepoSummary(repo))
	}
	return summaries, nil
}

func (c *GithubClient) client(token string) *github.Client {
	client := github.NewClient(&http.Client{
		Timeout: httpTimeout,
		Transport: &transport{
			underlyingTransport: http.DefaultTransport,
			token:               token,
		},
	})
	client.UserAgent = userAgent
	if c.ApiURL != "" {
		baseURL := c.ApiURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		client.BaseURL, _ = url.Parse(baseURL)
	}
	return client
}

func asRepoSummary(repo *github.Repository) *model.Repo {
	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}

	return &model.Repo{
		ID:            repo.GetID(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		HTMLURL:       repo.GetHTMLURL(),
		CloneURL:      repo.GetCloneURL(),
		Language:      repo.GetLanguage(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		Watchers:      repo.GetWatchersCount(),
		Size:          repo.GetSize(),
		DefaultBranch: repo.GetDefaultBranch(),
		CreatedAt:     repo.GetCreatedAt().Time,
		UpdatedAt:     repo.GetUpdatedAt().Time,
		PushedAt:      repo.GetPushedAt().Time,
		Private:       repo.GetPrivate(),
		Fork:          repo.GetFork(),
		Archived:      repo.GetArchived(),
		Disabled:      repo.GetDisabled(),
		Topics:        topics,
	}
}

func normalizeError(err error) error {
	switch e := err.(type) {
	case *github.ErrorResponse:
		return &UpstreamError{Status: e.Response.StatusCode, Message: e.Message}
	case *github.RateLimitError:
		return &UpstreamError{Status: e.Response.StatusCode, Message: e.Message}
	default:
		return &UpstreamError{Message: err.Error()}
	}
}

type transport struct {
	underlyingTransport http.RoundTripper
	token               string
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Add("Authorization", "token "+t.token)
	return t.underlyingTransport.RoundTrip(req)
}
