package model

// User is the authenticated git provider identity bound to a session.
// It is created once per login and never mutated afterwards.
type User struct {
	// ID is the provider-side user id
	ID int64 `json:"id"`

	// Login is the username for this user
	Login string `json:"login"`

	// Name is the full name for this user
	Name string `json:"name"`

	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`

	Followers   int `json:"followers"`
	Following   int `json:"following"`
	PublicRepos int `json:"public_repos"`

	// AccessToken is the Github oauth token. It is held server-side only,
	// it must never appear in a response body.
	AccessToken string `json:"-"`
}
