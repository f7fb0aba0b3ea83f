package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/octodash/octodash/pkg/dashboard/model"
	"github.com/octodash/octodash/pkg/dashboard/scm"
)

const (
	defaultRepoSort    = "updated"
	defaultRepoPerPage = 100
	topLanguages       = 5
)

// SessionStatus is the ungated authentication probe payload
type SessionStatus struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
}

// SessionUser is the passport-shaped user the browser UI reads,
// photos[0].value carries the avatar
type SessionUser struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	ProfileURL  string  `json:"profileUrl"`
	Photos      []Photo `json:"photos"`
}

type Photo struct {
	Value string `json:"value"`
}

func health(w http.ResponseWriter, r *http.Request) {
	_, authenticated := r.Context().Value("session").(*model.Session)

	writeJSON(w, map[string]interface{}{
		"message":       "octodash backend is running",
		"authenticated": authenticated,
	})
}

func sessionStatus(w http.ResponseWriter, r *http.Request) {
	status := SessionStatus{}

	if s, ok := r.Context().Value("session").(*model.Session); ok {
		status.Authenticated = true
		status.User = &SessionUser{
			ID:          s.User.ID,
			Username:    s.User.Login,
			DisplayName: s.User.Name,
			ProfileURL:  s.User.HTMLURL,
			Photos:      []Photo{{Value: s.User.AvatarURL}},
		}
	}

	writeJSON(w, status)
}

func profile(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value("session").(*model.Session)

	// the access token is excluded from serialization on the model
	writeJSON(w, s.User)
}

func repositories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := ctx.Value("session").(*model.Session)
	gitService := ctx.Value("gitService").(scm.GitService)

	opts := scm.ListOptions{Sort: defaultRepoSort, PerPage: defaultRepoPerPage}
	if sortParam := r.URL.Query().Get("sort"); sortParam != "" {
		opts.Sort = sortParam
	}
	if perPageParam := r.URL.Query().Get("per_page"); perPageParam != "" {
		perPage, err := strconv.Atoi(perPageParam)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		opts.PerPage = perPage
	}

	repos, err := gitService.FetchUserRepos(ctx, s.User.AccessToken, opts)
	if err != nil {
		upstreamFailure(w, err, "Failed to fetch repositories")
		return
	}

	writeJSON(w, repos)
}

func statistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := ctx.Value("session").(*model.Session)
	gitService := ctx.Value("gitService").(scm.GitService)

	var user *model.User
	var repos []*model.Repo

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = gitService.FetchAuthenticatedUser(gctx, s.User.AccessToken)
		return err
	})
	g.Go(func() error {
		var err error
		repos, err = gitService.FetchUserRepos(gctx, s.User.AccessToken, scm.ListOptions{PerPage: defaultRepoPerPage})
		return err
	})
	if err := g.Wait(); err != nil {
		upstreamFailure(w, err, "Failed to fetch statistics")
		return
	}

	writeJSON(w, computeStats(user, repos))
}

// computeStats derives the aggregate from a single snapshot of the repository
// list. Repositories without a language are excluded from the language counts.
// Languages with equal counts are ordered alphabetically to keep the top five
// deterministic.
func computeStats(user *model.User, repos []*model.Repo) *model.Stats {
	stats := &model.Stats{
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
		Languages:   []model.LanguageCount{},
	}

	counts := map[string]int{}
	for _, repo := range repos {
		stats.TotalStars += repo.Stars
		stats.TotalForks += repo.Forks
		if repo.Language != "" {
			counts[repo.Language]++
		}
	}

	for language, count := range counts {
		stats.Languages = append(stats.Languages, model.LanguageCount{Language: language, Count: count})
	}
	sort.Slice(stats.Languages, func(i, j int) bool {
		if stats.Languages[i].Count != stats.Languages[j].Count {
			return stats.Languages[i].Count > stats.Languages[j].Count
		}
		return stats.Languages[i].Language < stats.Languages[j].Language
	})
	if len(stats.Languages) > topLanguages {
		stats.Languages = stats.Languages[:topLanguages]
	}

	return stats
}

// upstreamFailure logs the provider's error and answers with a generic
// message, the detailed body is not exposed to the browser
func upstreamFailure(w http.ResponseWriter, err error, message string) {
	log.Errorf("%s: %s", message, err)

	status := http.StatusInternalServerError
	var upstreamErr *scm.UpstreamError
	if errors.As(err, &upstreamErr) {
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("cannot serialize response: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
