package payrollhandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"

	"payrollhq/internal/domain/payroll"
	"payrollhq/internal/transport/http/api"
	"payrollhq/internal/transport/http/middleware"
)

type Handler struct {
	Coordinator *payroll.Coordinator
	History     *payroll.HistoryStore
}

func NewHandler(coordinator *payroll.Coordinator, history *payroll.HistoryStore) *Handler {
	return &Handler{Coordinator: coordinator, History: history}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequireAdmin).Post("/run", h.handleRun)
		r.With(middleware.RequireAuth).Get("/history", h.handleHistory)
		r.With(middleware.RequireAuth).Get("/history/count", h.handleHistoryCount)
		r.With(middleware.RequireAuth).Get("/payslips/{payslipID}/download", h.handleDownload)
	})
}

// handleRun triggers the three-stage pipeline and acknowledges immediately.
// The workers outlive the request, so they get a context detached from the
// request's cancellation.
func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	_, err := h.Coordinator.Trigger(context.WithoutCancel(r.Context()))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to start payroll run", reqID)
		return
	}

	api.Accepted(w, map[string]string{"status": "started"}, reqID)
}

type payslipResponse struct {
	ID            int64  `json:"id"`
	EmployeeID    int64  `json:"employeeId"`
	GrossSalary   string `json:"grossSalary"`
	NetSalary     string `json:"netSalary"`
	Bonus         string `json:"bonus"`
	HoursWorked   string `json:"hoursWorked"`
	PayrollPeriod string `json:"payrollPeriod"`
	PaymentDate   string `json:"paymentDate"`
}

func toResponse(p payroll.Payslip) payslipResponse {
	return payslipResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		GrossSalary:   p.GrossSalary.String(),
		NetSalary:     p.NetSalary.String(),
		Bonus:         p.Bonus.String(),
		HoursWorked:   p.HoursWorked.String(),
		PayrollPeriod: p.PayrollPeriod.String(),
		PaymentDate:   p.PaymentDate.Format("2006-01-02"),
	}
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payslips, err := h.History.ListHistory(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load payroll history", reqID)
		return
	}
	responses := make([]payslipResponse, 0, len(payslips))
	for _, p := range payslips {
		responses = append(responses, toResponse(p))
	}
	api.Success(w, responses, reqID)
}

func (h *Handler) handleHistoryCount(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	count, err := h.History.CountHistory(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to count payslips", reqID)
		return
	}
	api.Success(w, map[string]int{"count": count}, reqID)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "payslipID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid payslip id", reqID)
		return
	}

	payslip, err := h.History.GetPayslip(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load payslip", reqID)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Payslip #%d", payslip.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %d", payslip.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", payslip.PayrollPeriod.Label()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Payment date: %s", payslip.PaymentDate.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross salary: %s", payslip.GrossSalary.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %s", payslip.NetSalary.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonus: %s", payslip.Bonus.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Hours worked: %s", payslip.HoursWorked.String()))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%d.pdf", payslip.ID))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to render payslip", reqID)
	}
}
