package auth

import (
	"baro-server/domain"
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const identityKey contextKey = "identity"

// Middleware authenticates requests with the Authorization header and
// injects the verified identity into the request context for downstream
// handlers. Verifier failures propagate unchanged as 401 + detail.
func Middleware(verifier IIdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				unauthorized(w, err)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the identity stored by Middleware.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": err.Error()})
}
