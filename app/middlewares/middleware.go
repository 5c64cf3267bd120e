package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/aveline-studio/go-storefront/app/configs"
	"github.com/aveline-studio/go-storefront/app/helpers"
	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/aveline-studio/go-storefront/app/utils/sessions"
)

// UserContextMiddleware resolves the session's user id into a *models.User on
// the request context. The env-credential admin resolves to a pseudo user
// that has no row in the users table.
func UserContextMiddleware(sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			var user *models.User
			if userID == models.AdminUserID {
				user = &models.User{
					ID:    models.AdminUserID,
					Email: configs.LoadENV.AdminEmail,
					Name:  "Admin",
					Role:  models.RoleAdmin,
				}
			} else {
				found, err := userRepo.FindByID(r.Context(), userID)
				if err != nil {
					log.Printf("UserContextMiddleware: error finding user %s: %v", userID, err)
					next.ServeHTTP(w, r)
					return
				}
				user = found
			}

			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil for guests.
func UserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(helpers.ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}
