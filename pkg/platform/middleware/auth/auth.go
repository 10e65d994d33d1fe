package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "propaudit/pkg/domain"
	request "propaudit/pkg/platform/middleware/request"
	"propaudit/pkg/requestcontext"
)

// JWTValidator defines the interface for validating access tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims are the claims the middleware needs from a validated token.
type JWTClaims struct {
	UserID string
	Email  string
	Role   string
}

// writeJSONError writes a JSON error response with the given status code.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q}`, msg))
}

// RequireAuth validates the bearer token and stores the caller in the
// request context for handlers and services.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			caller, err := principalFrom(claims)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed claims",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithCaller(ctx, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func principalFrom(claims *JWTClaims) (requestcontext.Principal, error) {
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return requestcontext.Principal{}, err
	}
	role := requestcontext.Role(claims.Role)
	if role == "" {
		role = requestcontext.RoleUser
	}
	if !role.IsValid() {
		return requestcontext.Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	var email id.Email
	if claims.Email != "" {
		email, err = id.ParseEmail(claims.Email)
		if err != nil {
			return requestcontext.Principal{}, err
		}
	}
	return requestcontext.Principal{UserID: userID, Email: email, Role: role}, nil
}
