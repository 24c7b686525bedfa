package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fkhayef/bloghub/internal/policy"
	"github.com/fkhayef/bloghub/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ActorKey is the context key for the authenticated actor
	ActorKey ContextKey = "actor"
)

// TokenVerifier validates a bearer token and yields the user ID it carries.
type TokenVerifier interface {
	VerifyToken(token string) (int64, error)
}

// ActorLoader resolves a user ID to the actor behind the request.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID int64) (policy.Actor, error)
}

// RequireAuth returns middleware that validates the Authorization header,
// loads the actor, and rejects missing/invalid tokens and inactive users
// with 401. On success the actor is stored in the request context.
func RequireAuth(verifier TokenVerifier, loader ActorLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			userID, err := verifier.VerifyToken(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			actor, err := loader.LoadActor(r.Context(), userID)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}
			if !actor.Active {
				response.Unauthorized(w, "Inactive user")
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActor extracts the authenticated actor from the request context
func GetActor(ctx context.Context) (policy.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(policy.Actor)
	return actor, ok
}
