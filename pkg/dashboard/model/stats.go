package model

// LanguageCount is the number of repositories written primarily in a language.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Stats is the aggregate derived from a snapshot of the repository list.
type Stats struct {
	PublicRepos int             `json:"public_repos"`
	Followers   int             `json:"followers"`
	Following   int             `json:"following"`
	TotalStars  int             `json:"total_stars"`
	TotalForks  int             `json:"total_forks"`
	Languages   []LanguageCount `json:"languages"`
}
