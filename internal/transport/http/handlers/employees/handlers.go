package employeeshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"payrollhq/internal/auth"
	"payrollhq/internal/domain/audit"
	"payrollhq/internal/domain/employee"
	"payrollhq/internal/transport/http/api"
	"payrollhq/internal/transport/http/middleware"
)

type Handler struct {
	Store *employee.Store
	Audit *audit.Store
}

func NewHandler(store *employee.Store, auditStore *audit.Store) *Handler {
	return &Handler{Store: store, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireAdmin).Delete("/{employeeID}", h.handleDelete)
	})
}

type employeePayload struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
	ContractID  int64  `json:"contractId"`
}

type employeeResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
	ContractID  int64  `json:"contractId"`
	GrossSalary string `json:"grossSalary"`
	NetSalary   string `json:"netSalary"`
}

func toResponse(e employee.Employee) employeeResponse {
	return employeeResponse{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		DateOfBirth: e.DateOfBirth.Format("2006-01-02"),
		Gender:      string(e.Gender),
		Role:        string(e.Role),
		ContractID:  e.Contract.ContractID(),
		GrossSalary: e.GrossSalary().String(),
		NetSalary:   e.NetSalary().String(),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list employees", reqID)
		return
	}
	responses := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toResponse(e))
	}
	api.Success(w, responses, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid employee id", reqID)
		return
	}
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load employee", reqID)
		return
	}
	api.Success(w, toResponse(emp), reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", reqID)
		return
	}
	if payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "validation", "password is required", reqID)
		return
	}
	if err := employee.ValidatePassword(payload.Password); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return
	}

	emp, err := h.buildEmployee(r, payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return
	}

	taken, err := h.Store.EmailTaken(r.Context(), emp.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create employee", reqID)
		return
	}
	if taken {
		api.Fail(w, http.StatusConflict, "conflict", employee.ErrEmailTaken.Error(), reqID)
		return
	}

	if emp.PasswordHash, err = auth.HashPassword(payload.Password); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create employee", reqID)
		return
	}

	id, err := h.Store.CreateEmployee(r.Context(), emp)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create employee", reqID)
		return
	}
	emp.ID = id
	api.Created(w, toResponse(emp), reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid employee id", reqID)
		return
	}

	existing, err := h.Store.GetEmployee(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load employee", reqID)
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", reqID)
		return
	}

	updated, err := h.buildEmployee(r, payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return
	}
	updated.ID = existing.ID
	updated.PasswordHash = existing.PasswordHash
	if payload.Password != "" {
		if err := employee.ValidatePassword(payload.Password); err != nil {
			api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
			return
		}
		if updated.PasswordHash, err = auth.HashPassword(payload.Password); err != nil {
			api.Fail(w, http.StatusInternalServerError, "internal", "failed to update employee", reqID)
			return
		}
	}

	if updated.Email != existing.Email {
		taken, err := h.Store.EmailTaken(r.Context(), updated.Email)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "internal", "failed to update employee", reqID)
			return
		}
		if taken {
			api.Fail(w, http.StatusConflict, "conflict", employee.ErrEmailTaken.Error(), reqID)
			return
		}
	}

	if err := h.Store.UpdateEmployee(r.Context(), updated); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update employee", reqID)
		return
	}

	h.recordEdits(r, existing, updated)
	api.Success(w, toResponse(updated), reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid employee id", reqID)
		return
	}
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete employee", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) buildEmployee(r *http.Request, payload employeePayload) (employee.Employee, error) {
	if err := employee.ValidateName(payload.FirstName); err != nil {
		return employee.Employee{}, err
	}
	if err := employee.ValidateName(payload.LastName); err != nil {
		return employee.Employee{}, err
	}
	if err := employee.ValidateEmail(payload.Email, nil); err != nil {
		return employee.Employee{}, err
	}
	dateOfBirth, err := time.Parse("2006-01-02", payload.DateOfBirth)
	if err != nil {
		return employee.Employee{}, errors.New("dateOfBirth must be YYYY-MM-DD")
	}
	if err := employee.ValidateDateOfBirth(dateOfBirth, time.Now()); err != nil {
		return employee.Employee{}, err
	}
	gender, err := employee.ParseGender(payload.Gender)
	if err != nil {
		return employee.Employee{}, err
	}
	role, err := employee.ParseRole(payload.Role)
	if err != nil {
		return employee.Employee{}, err
	}
	contract, err := h.Store.GetContract(r.Context(), payload.ContractID)
	if err != nil {
		return employee.Employee{}, errors.New("contract not found")
	}

	return employee.Employee{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		DateOfBirth: dateOfBirth,
		Gender:      gender,
		Role:        role,
		Contract:    contract,
	}, nil
}

// recordEdits writes one change-log entry per changed field, attributed to
// the acting user's role.
func (h *Handler) recordEdits(r *http.Request, before, after employee.Employee) {
	actor, _ := middleware.GetUser(r.Context())
	role := string(actor.Role)

	edits := []struct{ field, oldValue, newValue string }{
		{"employee.firstName", before.FirstName, after.FirstName},
		{"employee.lastName", before.LastName, after.LastName},
		{"employee.email", before.Email, after.Email},
		{"employee.dateOfBirth", before.DateOfBirth.Format("2006-01-02"), after.DateOfBirth.Format("2006-01-02")},
		{"employee.gender", string(before.Gender), string(after.Gender)},
		{"employee.role", string(before.Role), string(after.Role)},
		{"employee.contract", strconv.FormatInt(before.Contract.ContractID(), 10), strconv.FormatInt(after.Contract.ContractID(), 10)},
	}
	for _, edit := range edits {
		if err := h.Audit.Record(r.Context(), role, edit.field, edit.oldValue, edit.newValue); err != nil {
			slog.Warn("change log write failed", "field", edit.field, "err", err)
		}
	}
}
