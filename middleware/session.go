package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	niceAuth "github.com/MrEthical07/niceAuth"
)

type accountIDContextKey struct{}

// AccountIDFromContext returns the account ID injected by [Session], if any.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDContextKey{}).(string)
	return id, ok
}

// Session guards a route behind a valid session cookie. Requests without a
// valid token receive the JSON failure envelope and never reach next.
func Session(engine *niceAuth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				writeEnvelope(w, false, "Not authorized, login again")
				return
			}

			token := sessionToken(r, engine.CookieName())
			res := engine.IsAuthenticated(r.Context(), token)
			if !res.OK {
				writeEnvelope(w, false, res.Message)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDContextKey{}, res.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func writeEnvelope(w http.ResponseWriter, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
	})
}
