package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"payrollhq/internal/domain/audit"
	"payrollhq/internal/transport/http/api"
	"payrollhq/internal/transport/http/middleware"
)

type Handler struct {
	Store *audit.Store
}

func NewHandler(store *audit.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAdmin).Get("/audit/changes", h.handleListChanges)
}

func (h *Handler) handleListChanges(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	changes, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list changes", reqID)
		return
	}
	api.Success(w, changes, reqID)
}
