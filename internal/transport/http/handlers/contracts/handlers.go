package contractshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"payrollhq/internal/domain/audit"
	"payrollhq/internal/domain/employee"
	"payrollhq/internal/domain/payroll"
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
	r.Route("/contracts", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{contractID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/salaried", h.handleCreateSalaried)
		r.With(middleware.RequireAdmin).Put("/salaried/{contractID}", h.handleUpdateSalaried)
		r.With(middleware.RequireAdmin).Post("/hourly", h.handleCreateHourly)
		r.With(middleware.RequireAdmin).Put("/hourly/{contractID}", h.handleUpdateHourly)
		r.With(middleware.RequireAdmin).Delete("/{contractID}", h.handleDelete)
	})
}

type salariedPayload struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	BaseSalary string `json:"baseSalary"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Bonus      string `json:"bonus"`
}

type hourlyPayload struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	HoursWorked string `json:"hoursWorked"`
	HourlyRate  string `json:"hourlyRate"`
}

type contractResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	BaseSalary  string `json:"baseSalary"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Bonus       string `json:"bonus,omitempty"`
	HoursWorked string `json:"hoursWorked,omitempty"`
	HourlyRate  string `json:"hourlyRate,omitempty"`
	GrossSalary string `json:"grossSalary"`
	NetSalary   string `json:"netSalary"`
}

func toResponse(c payroll.Contract) contractResponse {
	details := c.Details()
	resp := contractResponse{
		ID:          details.ID,
		Type:        string(c.Type()),
		Name:        details.Name,
		Position:    string(details.Position),
		BaseSalary:  details.BaseSalary.String(),
		StartDate:   details.StartDate.Format("2006-01-02"),
		EndDate:     details.EndDate.Format("2006-01-02"),
		GrossSalary: c.GrossSalary().String(),
		NetSalary:   c.NetSalary().String(),
	}
	switch v := c.(type) {
	case *payroll.SalariedContract:
		resp.Bonus = v.Bonus().String()
	case *payroll.HourlyContract:
		resp.HoursWorked = v.HoursWorked().String()
		resp.HourlyRate = v.HourlyRate().String()
	}
	return resp
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	contracts, err := h.Store.ListContracts(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list contracts", reqID)
		return
	}
	responses := make([]contractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, toResponse(c))
	}
	api.Success(w, responses, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "contractID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid contract id", reqID)
		return
	}
	contract, err := h.Store.GetContract(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "contract not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load contract", reqID)
		return
	}
	api.Success(w, toResponse(contract), reqID)
}

func (h *Handler) handleCreateSalaried(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	contract, ok := h.decodeSalaried(w, r, 0, reqID)
	if !ok {
		return
	}
	h.create(w, r, contract, reqID)
}

func (h *Handler) handleUpdateSalaried(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "contractID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid contract id", reqID)
		return
	}
	contract, ok := h.decodeSalaried(w, r, id, reqID)
	if !ok {
		return
	}
	h.update(w, r, contract, reqID)
}

func (h *Handler) handleCreateHourly(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	contract, ok := h.decodeHourly(w, r, 0, reqID)
	if !ok {
		return
	}
	h.create(w, r, contract, reqID)
}

func (h *Handler) handleUpdateHourly(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "contractID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid contract id", reqID)
		return
	}
	contract, ok := h.decodeHourly(w, r, id, reqID)
	if !ok {
		return
	}
	h.update(w, r, contract, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "contractID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid contract id", reqID)
		return
	}
	if err := h.Store.DeleteContract(r.Context(), id); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "contract not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete contract", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, contract payroll.Contract, reqID string) {
	id, err := h.Store.CreateContract(r.Context(), contract)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create contract", reqID)
		return
	}
	created, err := h.Store.GetContract(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load contract", reqID)
		return
	}
	api.Created(w, toResponse(created), reqID)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, contract payroll.Contract, reqID string) {
	before, err := h.Store.GetContract(r.Context(), contract.ContractID())
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "contract not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load contract", reqID)
		return
	}
	if err := h.Store.UpdateContract(r.Context(), contract); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update contract", reqID)
		return
	}
	h.recordEdits(r, before, contract)
	api.Success(w, toResponse(contract), reqID)
}

func (h *Handler) decodeSalaried(w http.ResponseWriter, r *http.Request, id int64, reqID string) (payroll.Contract, bool) {
	var payload salariedPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", reqID)
		return nil, false
	}
	baseSalary, err := parseMoney(payload.BaseSalary, "baseSalary")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return nil, false
	}
	bonus, err := parseMoney(payload.Bonus, "bonus")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return nil, false
	}
	startDate, endDate, err := parseDates(payload.StartDate, payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return nil, false
	}
	contract, err := payroll.NewSalariedContract(payroll.SalariedContractParams{
		ID:         id,
		Name:       payload.Name,
		Position:   payroll.Position(payload.Position),
		BaseSalary: baseSalary,
		StartDate:  startDate,
		EndDate:    endDate,
		Bonus:      bonus,
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return nil, false
	}
	return contract, true
}

func (h *Handler) decodeHourly(w http.ResponseWriter, r *http.Request, id int64, reqID string) (payroll.Contract, bool) {
	var payload hourlyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid json body", reqID)
		return nil, false
	}
	hoursWorked, err := parseMoney(payload.HoursWorked, "hoursWorked")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return nil, false
	}
	hourlyRate, err := parseMoney(payload.HourlyRate, "hourlyRate")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return nil, false
	}
	startDate, endDate, err := parseDates(payload.StartDate, payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return nil, false
	}
	contract, err := payroll.NewHourlyContract(payroll.HourlyContractParams{
		ID:          id,
		Name:        payload.Name,
		Position:    payroll.Position(payload.Position),
		StartDate:   startDate,
		EndDate:     endDate,
		HoursWorked: hoursWorked,
		HourlyRate:  hourlyRate,
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation", err.Error(), reqID)
		return nil, false
	}
	return contract, true
}

func parseMoney(raw, field string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New(field + " must be a number")
	}
	return value, nil
}

func parseDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("startDate must be YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("endDate must be YYYY-MM-DD")
	}
	return startDate, endDate, nil
}

func (h *Handler) recordEdits(r *http.Request, before, after payroll.Contract) {
	actor, _ := middleware.GetUser(r.Context())
	role := string(actor.Role)

	beforeDetails, afterDetails := before.Details(), after.Details()
	edits := []struct{ field, oldValue, newValue string }{
		{"contract.name", beforeDetails.Name, afterDetails.Name},
		{"contract.position", string(beforeDetails.Position), string(afterDetails.Position)},
		{"contract.baseSalary", beforeDetails.BaseSalary.String(), afterDetails.BaseSalary.String()},
		{"contract.startDate", beforeDetails.StartDate.Format("2006-01-02"), afterDetails.StartDate.Format("2006-01-02")},
		{"contract.endDate", beforeDetails.EndDate.Format("2006-01-02"), afterDetails.EndDate.Format("2006-01-02")},
	}
	for _, edit := range edits {
		if err := h.Audit.Record(r.Context(), role, edit.field, edit.oldValue, edit.newValue); err != nil {
			slog.Warn("change log write failed", "field", edit.field, "err", err)
		}
	}
}
