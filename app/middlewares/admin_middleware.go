package middlewares

import (
	"log"
	"net/http"

	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/unrolled/render"
)

// AdminOnlyMiddleware guards the back-office endpoints: product writes,
// reorder and the all-orders listing.
func AdminOnlyMiddleware(renderer *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				renderer.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}

			if user.Role != models.RoleAdmin {
				log.Printf("AdminOnlyMiddleware: user %s (%s) attempted an admin action", user.ID, user.Email)
				renderer.JSON(w, http.StatusForbidden, map[string]string{"error": "Forbidden"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
