package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rhyn0/anime-rest-api/internal/http/response"
	"github.com/rhyn0/anime-rest-api/internal/observability"
	"github.com/rhyn0/anime-rest-api/internal/security"
)

type contextKey string

const principalKey contextKey = "principal"

func PrincipalFromContext(ctx context.Context) (*security.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*security.Principal)
	return p, ok
}

// ContextWithPrincipal attaches an authenticated principal. RequireAuth uses
// it after token verification; tests use it to authenticate requests
// directly.
func ContextWithPrincipal(ctx context.Context, p *security.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// BearerToken returns the credentials portion of a Bearer Authorization
// header, or "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	scheme, token, ok := splitAuthorization(r)
	if !ok || scheme != "Bearer" {
		return ""
	}
	return token
}

func splitAuthorization(r *http.Request) (scheme, token string, ok bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], strings.TrimSpace(parts[1]), true
}

// RequireAuth authenticates the request: the scheme must be the literal
// "Bearer" (400 otherwise) and the token must verify with expiry enforced
// (401 otherwise). The derived principal is stored in the request context.
func RequireAuth(jwtMgr *security.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := splitAuthorization(r)
			if !ok {
				observability.RecordAuthEvent(r.Context(), "authenticate", "missing_credentials")
				response.Detail(w, r, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if scheme != "Bearer" {
				observability.RecordAuthEvent(r.Context(), "authenticate", "bad_scheme")
				response.Detail(w, r, http.StatusBadRequest, "Invalid authorization header")
				return
			}

			claims, err := jwtMgr.ParseAccessToken(token)
			if err != nil {
				observability.RecordAuthEvent(r.Context(), "authenticate", "invalid_token")
				response.Detail(w, r, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			principal, err := security.NewPrincipal(claims)
			if err != nil {
				observability.RecordAuthEvent(r.Context(), "authenticate", "invalid_subject")
				response.Detail(w, r, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			observability.RecordAuthEvent(r.Context(), "authenticate", "success")
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin gates a route on the admin role. Runs after RequireAuth;
// denial is 403, distinct from the 401 authentication failures.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			response.Detail(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if !principal.IsAdmin() {
			slog.WarnContext(r.Context(), "permission denied",
				"path", r.URL.Path,
				"user_id", principal.UserID,
				"role", principal.Role,
			)
			observability.RecordAuthEvent(r.Context(), "authorize", "forbidden")
			response.Detail(w, r, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}
