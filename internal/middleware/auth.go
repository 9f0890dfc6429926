package middleware

import (
	"net/http"

	"stockstores-be/internal/auth"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/utils"

	"go.uber.org/zap"
)

// TokenParser verifies an access token.
type TokenParser interface {
	Parse(tokenStr string) (*auth.CustomClaims, error)
}

// Auth attaches the caller's identity to the request context when a token
// is present. Requests without a token pass through anonymously; a token
// that fails verification is rejected with 401.
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parser.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("rejected access token", zap.Error(err))
				utils.WriteJSONError(w, "Invalid Token", http.StatusUnauthorized)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.Identity.ID, claims.Email)
			ctx = logger.WithUserID(ctx, claims.Identity.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
