package scm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FetchAuthenticatedUser(t *testing.T) {
	var gotAuth, gotUserAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")

		assert.Equal(t, "/user", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 42,
			"login": "laszlo",
			"name": "Laszlo Fogas",
			"bio": "building dashboards",
			"avatar_url": "https://avatars.example.com/42",
			"html_url": "https://github.com/laszlo",
			"followers": 10,
			"following": 3,
			"public_repos": 6
		}`))
	}))
	defer ts.Close()

	client := NewGithubClient()
	client.ApiURL = ts.URL

	user, err := client.FetchAuthenticatedUser(context.Background(), "token-value")
	assert.Nil(t, err)
	assert.Equal(t, "token token-value", gotAuth)
	assert.Contains(t, gotUserAgent, "octodash")
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "laszlo", user.Login)
	assert.Equal(t, "Laszlo Fogas", user.Name)
	assert.Equal(t, 10, user.Followers)
	assert.Equal(t, 6, user.PublicRepos)
}

func Test_FetchUserRepos(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "all", r.URL.Query().Get("type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": 1,
				"name": "octodash",
				"full_name": "laszlo/octodash",
				"language": "Go",
				"stargazers_count": 7,
				"forks_count": 2,
				"topics": ["dashboard", "github"]
			},
			{
				"id": 2,
				"name": "notes",
				"full_name": "laszlo/notes",
				"language": null
			}
		]`))
	}))
	defer ts.Close()

	client := NewGithubClient()
	client.ApiURL = ts.URL

	repos, err := client.FetchUserRepos(context.Background(), "token-value", ListOptions{Sort: "updated", PerPage: 100})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(repos))
	assert.Equal(t, "laszlo/octodash", repos[0].FullName)
	assert.Equal(t, "Go", repos[0].Language)
	assert.Equal(t, 7, repos[0].Stars)
	assert.Equal(t, []string{"dashboard", "github"}, repos[0].Topics)
	assert.Equal(t, "", repos[1].Language)
	assert.Equal(t, []string{}, repos[1].Topics)
}

func Test_NormalizesProviderErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Bad credentials"}`))
	}))
	defer ts.Close()

	client := NewGithubClient()
	client.ApiURL = ts.URL

	_, err := client.FetchAuthenticatedUser(context.Background(), "expired")
	assert.NotNil(t, err)

	upstreamErr, ok := err.(*UpstreamError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.Status)
	assert.Equal(t, "Bad credentials", upstreamErr.Message)
}

func Test_NormalizesNetworkErrors(t *testing.T) {
	client := NewGithubClient()
	client.ApiURL = "http://127.0.0.1:1"

	_, err := client.FetchAuthenticatedUser(context.Background(), "token-value")
	assert.NotNil(t, err)

	upstreamErr, ok := err.(*UpstreamError)
	assert.True(t, ok)
	assert.Equal(t, 0, upstreamErr.Status)
}
