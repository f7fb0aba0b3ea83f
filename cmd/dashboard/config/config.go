package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Environ returns the settings from the environment.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	defaults(&cfg)

	return &cfg, err
}

func defaults(c *Config) {
	if c.Port == 0 {
		c.Port = 3000
	}
	if c.Host == "" {
		c.Host = fmt.Sprintf("http://localhost:%d", c.Port)
	}
	if c.FrontendURL == "" {
		c.FrontendURL = c.Host
	}
	if c.Github.CallbackURL == "" {
		c.Github.CallbackURL = c.Host + "/auth/callback"
	}
	if c.SessionTTLHours == 0 {
		c.SessionTTLHours = 24
	}
	if c.WebPath == "" {
		c.WebPath = "./web"
	}
}

// String returns the configuration in string format.
func (c *Config) String() string {
	out, _ := yaml.Marshal(c)
	return string(out)
}

type Config struct {
	Logging Logging
	Github  Github

	Port int `envconfig:"PORT"`
	// Host is the publicly reachable URL of this backend
	Host string `envconfig:"HOST"`
	// FrontendURL is the origin the browser UI is served from,
	// it is allowed to make credentialed cross-origin calls
	FrontendURL     string `envconfig:"FRONTEND_URL"`
	SessionSecret   string `envconfig:"SESSION_SECRET"`
	SessionTTLHours int    `envconfig:"SESSION_TTL_HOURS"`
	WebPath         string `envconfig:"WEB_PATH"`
}

// Logging provides the logging configuration.
type Logging struct {
	Debug bool `envconfig:"DEBUG"`
	Trace bool `envconfig:"TRACE"`
}

type Github struct {
	ClientID     string `envconfig:"GITHUB_CLIENT_ID"`
	ClientSecret string `envconfig:"GITHUB_CLIENT_SECRET"`
	CallbackURL  string `envconfig:"OAUTH_CALLBACK_URL"`

	// AuthURL, TokenURL and ApiURL override the github.com endpoints
	// for Github Enterprise installations
	AuthURL  string `envconfig:"GITHUB_AUTH_URL"`
	TokenURL string `envconfig:"GITHUB_TOKEN_URL"`
	ApiURL   string `envconfig:"GITHUB_API_URL"`
}
