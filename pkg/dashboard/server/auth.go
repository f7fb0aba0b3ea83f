package server

import (
	"encoding/base32"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/octodash/octodash/cmd/dashboard/config"
	"github.com/octodash/octodash/pkg/dashboard/scm"
	"github.com/octodash/octodash/pkg/dashboard/server/httputil"
	"github.com/octodash/octodash/pkg/dashboard/server/session"
	"github.com/octodash/octodash/pkg/dashboard/store"
)

// stateCookie holds the anti-forgery nonce between the authorize redirect
// and the provider callback
const stateCookie = "oauth_state"

const stateCookieTTL = 10 * time.Minute

func oauthConfig(c *config.Config) *oauth2.Config {
	endpoint := githuboauth.Endpoint
	if c.Github.AuthURL != "" {
		endpoint = oauth2.Endpoint{
			AuthURL:  c.Github.AuthURL,
			TokenURL: c.Github.TokenURL,
		}
	}

	return &oauth2.Config{
		ClientID:     c.Github.ClientID,
		ClientSecret: c.Github.ClientSecret,
		RedirectURL:  c.Github.CallbackURL,
		Scopes:       []string{"user:email", "public_repo"},
		Endpoint:     endpoint,
	}
}

func login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conf := ctx.Value("config").(*config.Config)

	state := base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(16))
	httputil.SetCookie(w, r, stateCookie, state, stateCookieTTL)

	http.Redirect(w, r, oauthConfig(conf).AuthCodeURL(state), http.StatusFound)
}

func callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conf := ctx.Value("config").(*config.Config)
	sessionStore := ctx.Value("store").(store.SessionStore)
	gitService := ctx.Value("gitService").(scm.GitService)
	codec := ctx.Value("sessionCodec").(*securecookie.SecureCookie)

	if errParam := r.FormValue("error"); errParam != "" {
		log.Warnf("provider rejected the authorization: %s", errParam)
		authFailure(w)
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || r.FormValue("state") != cookie.Value {
		log.Warnf("oauth state mismatch")
		authFailure(w)
		return
	}
	httputil.DelCookie(w, r, stateCookie)

	token, err := oauthConfig(conf).Exchange(ctx, r.FormValue("code"))
	if err != nil {
		log.Errorf("cannot exchange authorization code: %s", err)
		authFailure(w)
		return
	}

	user, err := gitService.FetchAuthenticatedUser(ctx, token.AccessToken)
	if err != nil {
		log.Errorf("cannot fetch git user: %s", err)
		authFailure(w)
		return
	}
	user.AccessToken = token.AccessToken

	s := sessionStore.Create(user)
	encoded, err := codec.Encode(session.CookieName, s.ID)
	if err != nil {
		log.Errorf("cannot encode session cookie: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	httputil.SetCookie(w, r, session.CookieName, encoded, s.ExpiresAt.Sub(s.CreatedAt))

	http.Redirect(w, r, conf.FrontendURL+"/dashboard.html", http.StatusFound)
}

// authFailure leaves no session behind, the browser can retry the login
func authFailure(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Authentication failed"})
}

func logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionStore := ctx.Value("store").(store.SessionStore)
	codec := ctx.Value("sessionCodec").(*securecookie.SecureCookie)

	if cookie, err := r.Cookie(session.CookieName); err == nil {
		var id string
		if err := codec.Decode(session.CookieName, cookie.Value, &id); err == nil {
			sessionStore.Destroy(id)
		}
	}
	httputil.DelCookie(w, r, session.CookieName)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully"})
}
