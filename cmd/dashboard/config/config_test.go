package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_defaults(t *testing.T) {
	c := &Config{}
	defaults(c)

	assert.Equal(t, 3000, c.Port)
	assert.Equal(t, "http://localhost:3000", c.Host)
	assert.Equal(t, c.Host, c.FrontendURL)
	assert.Equal(t, "http://localhost:3000/auth/callback", c.Github.CallbackURL)
	assert.Equal(t, 24, c.SessionTTLHours)
}

func Test_defaultsKeepExplicitValues(t *testing.T) {
	c := &Config{
		Host:        "https://dashboard.example.com",
		FrontendURL: "https://app.example.com",
	}
	defaults(c)

	assert.Equal(t, "https://app.example.com", c.FrontendURL)
	assert.Equal(t, "https://dashboard.example.com/auth/callback", c.Github.CallbackURL)
}
