package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/lorehall/packdex/internal/domain"
)

type viewerCtxKey struct{}

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/healthz": {},
	"/metrics": {},
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens and
// resolves the viewer's privilege level. Tokens from the privileged list
// yield a privileged viewer. If both lists are empty, authentication is
// disabled and every request gets the unprivileged viewer.
func BearerAuthMiddleware(tokens, privilegedTokens []string) func(http.Handler) http.Handler {
	plain := tokenSet(tokens)
	privileged := tokenSet(privilegedTokens)

	return func(next http.Handler) http.Handler {
		// Auth disabled: pass everything through as unprivileged
		if len(plain) == 0 && len(privileged) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			viewer, ok := resolveViewer(token, plain, privileged)
			if !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithViewer(r.Context(), viewer)))
		})
	}
}

func resolveViewer(token string, plain, privileged map[string]struct{}) (domain.Viewer, bool) {
	if _, ok := privileged[token]; ok {
		return domain.Viewer{Privileged: true}, true
	}
	if _, ok := plain[token]; ok {
		return domain.Viewer{}, true
	}
	return domain.Viewer{}, false
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

func contextWithViewer(ctx context.Context, v domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerCtxKey{}, v)
}

// viewerFromContext returns the resolved viewer, unprivileged by default.
func viewerFromContext(ctx context.Context) domain.Viewer {
	if v, ok := ctx.Value(viewerCtxKey{}).(domain.Viewer); ok {
		return v
	}
	return domain.Viewer{}
}
