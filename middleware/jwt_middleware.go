package middleware

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/studybuddyhq/studybuddy-api/auth"
	"github.com/studybuddyhq/studybuddy-api/config"
)

// CustomClaims holds the profile claims the identity provider attaches to
// its tokens.
type CustomClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// EnsureValidToken validates the bearer token on every request. Credentials
// are optional at this layer; routes that need identity enforce it via
// SyncUserMiddleware. In development (no AUTH0_DOMAIN) HS256 dev tokens
// minted by the auth package are accepted instead.
func EnsureValidToken() func(next http.Handler) http.Handler {
	if config.Env.IsDevelopment {
		return devTokenMiddleware
	}

	issuerURL, err := url.Parse("https://" + config.Env.Auth0Domain + "/")
	if err != nil {
		log.Fatalf("Failed to parse the issuer url: %v", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{config.Env.Auth0Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		log.Fatalf("Failed to set up the jwt validator: %v", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Encountered error while validating JWT: %v", err)
		http.Error(w, "Failed to validate JWT", http.StatusUnauthorized)
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(true),
	)

	return func(next http.Handler) http.Handler {
		return middleware.CheckJWT(next)
	}
}

// devTokenMiddleware verifies HS256 dev tokens and injects claims in the
// same context shape the Auth0 middleware uses, so downstream code does not
// care which mode the server runs in.
func devTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Printf("Encountered error while validating dev token: %v", err)
			http.Error(w, "Failed to validate JWT", http.StatusUnauthorized)
			return
		}

		sub, _ := claims["sub"].(string)
		name, _ := claims["name"].(string)
		email, _ := claims["email"].(string)

		validated := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: sub},
			CustomClaims:     &CustomClaims{Name: name, Email: email},
		}

		ctx := context.WithValue(r.Context(), jwtmiddleware.ContextKey{}, validated)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
