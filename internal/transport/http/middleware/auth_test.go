package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payrollhq/internal/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthAttachesUser(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{EmployeeID: 7, Email: "a@b.co", Role: "ADMIN"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	var got UserContext
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUser(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	Auth(secret)(inner).ServeHTTP(httptest.NewRecorder(), req)

	if got.EmployeeID != 7 || got.Role != "ADMIN" {
		t.Fatalf("unexpected user context: %+v", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	secret := "test-secret"

	cases := []struct {
		name   string
		role   string
		status int
	}{
		{"admin allowed", "ADMIN", http.StatusOK},
		{"user forbidden", "USER", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := auth.GenerateToken(secret, auth.Claims{EmployeeID: 1, Role: tc.role}, time.Hour)
			if err != nil {
				t.Fatalf("token error: %v", err)
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			Auth(secret)(RequireAdmin(okHandler())).ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAuth(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
