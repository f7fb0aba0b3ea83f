package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"

	"github.com/octodash/octodash/cmd/dashboard/config"
	"github.com/octodash/octodash/pkg/dashboard/model"
	"github.com/octodash/octodash/pkg/dashboard/scm"
	"github.com/octodash/octodash/pkg/dashboard/server/session"
	"github.com/octodash/octodash/pkg/dashboard/store"
)

const testSessionSecret = "test-secret"

type fakeGitService struct {
	user     *model.User
	repos    []*model.Repo
	userErr  error
	reposErr error

	lastOpts scm.ListOptions
}

func (f *fakeGitService) FetchAuthenticatedUser(ctx context.Context, token string) (*model.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakeGitService) FetchUserRepos(ctx context.Context, token string, opts scm.ListOptions) ([]*model.Repo, error) {
	f.lastOpts = opts
	if f.reposErr != nil {
		return nil, f.reposErr
	}
	return f.repos, nil
}

func testConfig() *config.Config {
	return &config.Config{
		FrontendURL:   "http://localhost:3000",
		SessionSecret: testSessionSecret,
		WebPath:       ".",
		Github: config.Github{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			CallbackURL:  "http://localhost:3000/auth/callback",
		},
	}
}

func testStore() *store.Store {
	return store.New(24 * time.Hour)
}

func sessionCookie(t *testing.T, s *model.Session) *http.Cookie {
	codec := securecookie.New([]byte(testSessionSecret), nil)
	encoded, err := codec.Encode(session.CookieName, s.ID)
	assert.Nil(t, err)

	return &http.Cookie{Name: session.CookieName, Value: encoded}
}
