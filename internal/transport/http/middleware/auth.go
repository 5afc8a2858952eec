package middleware

import (
	"context"
	"net/http"
	"strings"

	"payrollhq/internal/auth"
	"payrollhq/internal/domain/employee"
)

// UserContext is the authenticated caller attached to the request context.
type UserContext struct {
	EmployeeID int64
	Email      string
	Role       employee.Role
}

// Auth attaches the caller's identity when a valid bearer token is present.
// Requests without a token pass through anonymous; route guards decide what
// needs authentication.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, UserContext{
				EmployeeID: claims.EmployeeID,
				Email:      claims.Email,
				Role:       employee.Role(claims.Role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(UserContext)
	return user, ok
}
