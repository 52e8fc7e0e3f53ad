package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payslip-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireGroup allows the request only when the acting user belongs to group.
func RequireGroup(checker user.PrivilegeChecker, group user.Group) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrUserIDMissing)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, user.ErrUserIDMissing)
				return
			}

			member, err := checker.HasGroup(r.Context(), userID, group)
			if err != nil {
				slog.Error("Failed to check user group", "user_id", userID, "group", group, "error", err)
				response.HandleError(w, err)
				return
			}
			if !member {
				response.HandleError(w, user.ErrGroupAccessRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
