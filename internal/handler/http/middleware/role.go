package middleware

import (
	"net/http"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/auth"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/user"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func roleFromContext(r *http.Request) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok {
		return "", auth.ErrInvalidToken
	}

	return user.Role(role), nil
}

// AdminOnly gates the edit-request review and the admin record listing.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromContext(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !role.CanApproveEdits() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ReporterOnly gates the aggregate hour reports.
func ReporterOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromContext(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !role.CanViewReports() {
			response.HandleError(w, user.ErrReporterPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
