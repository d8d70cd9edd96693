package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/auth"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
)

// AdminOnly admits admin and super-admin accounts.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, _ := claims["role"].(string)
		u := user.User{Role: user.Role(role)}
		if !u.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
