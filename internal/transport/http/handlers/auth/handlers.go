package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"payrollhq/internal/auth"
	"payrollhq/internal/domain/employee"
	"payrollhq/internal/transport/http/api"
	"payrollhq/internal/transport/http/middleware"
)

type Handler struct {
	Store    *employee.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store *employee.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", reqID)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "bad_request", "email and password are required", reqID)
		return
	}

	emp, err := h.Store.FindByEmail(r.Context(), payload.Email)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "login failed", reqID)
		return
	}

	if err := auth.CheckPassword(emp.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		Role:       string(emp.Role),
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "token generation failed", reqID)
		return
	}

	api.Success(w, loginResponse{Token: token, Role: string(emp.Role)}, reqID)
}
