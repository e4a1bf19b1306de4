package config

import "os"

type Environment struct {
	IsDevelopment bool
	Auth0Domain   string
	Auth0Audience string
}

var Env Environment

// LoadEnv populates Env from process environment. Called from main after
// godotenv has had a chance to load a .env file.
func LoadEnv() {
	domain := os.Getenv("AUTH0_DOMAIN")

	// No Auth0 domain means local development: HS256 dev tokens are
	// accepted instead of RS256 tokens from the identity provider.
	Env = Environment{
		IsDevelopment: domain == "",
		Auth0Domain:   domain,
		Auth0Audience: os.Getenv("AUTH0_AUDIENCE"),
	}
}
