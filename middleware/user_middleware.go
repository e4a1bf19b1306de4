package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/studybuddyhq/studybuddy-api/config"
	"github.com/studybuddyhq/studybuddy-api/models"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

type contextKey string

// UserContextKey is where SyncUserMiddleware stores the resolved user.
const UserContextKey = contextKey("user")

// SyncUserMiddleware ensures the identity provider's user exists in the DB
// and attaches it to context
func SyncUserMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
		if !ok || claims.RegisteredClaims.Subject == "" {
			http.Error(w, "No identity subject found", http.StatusUnauthorized)
			return
		}

		auth0ID := claims.RegisteredClaims.Subject
		name := ""
		email := ""
		avatarURL := ""
		if customClaims, ok := claims.CustomClaims.(*CustomClaims); ok && customClaims != nil {
			name = customClaims.Name
			email = customClaims.Email
			avatarURL = customClaims.Picture
		}

		var user models.User
		result := config.Database.Where("auth0_id = ?", auth0ID).First(&user)

		if result.Error != nil {
			// User does not exist, create a new one
			user = models.User{
				Auth0ID:   auth0ID,
				Name:      name,
				Email:     email,
				AvatarURL: avatarURL,
			}
			createResult := config.Database.Create(&user)
			if createResult.Error != nil {
				http.Error(w, "Failed to create user", http.StatusInternalServerError)
				log.Println("Database creation error:", createResult.Error)
				return
			}
			log.Printf("Created new user: %s\n", user.Auth0ID)
		} else {
			// User exists, refresh profile fields only if non-empty and changed
			updated := false
			if name != "" && user.Name != name {
				user.Name = name
				updated = true
			}
			if email != "" && user.Email != email {
				user.Email = email
				updated = true
			}
			if avatarURL != "" && user.AvatarURL != avatarURL {
				user.AvatarURL = avatarURL
				updated = true
			}
			if updated {
				saveResult := config.Database.Save(&user)
				if saveResult.Error != nil {
					http.Error(w, "Failed to update user", http.StatusInternalServerError)
					log.Println("Database update error:", saveResult.Error)
					return
				}
				log.Printf("Updated user profile: %s\n", user.Auth0ID)
			}
		}

		// Add user to context for downstream handlers
		ctx := context.WithValue(r.Context(), UserContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
