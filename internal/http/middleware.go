package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "psv_session"

// SessionMiddleware gives every browsing session a stable owner id via a
// cookie. The owner id scopes the durable cart the same way localStorage is
// scoped to a browser profile.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ownerID string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			ownerID = c.Value
		}
		if ownerID == "" {
			ownerID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    ownerID,
				Path:     "/",
				HttpOnly: true,
			})
		}

		ctx := context.WithValue(r.Context(), "owner_id", ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getOwnerID(ctx context.Context) string {
	if ownerID, ok := ctx.Value("owner_id").(string); ok {
		return ownerID
	}
	return ""
}
