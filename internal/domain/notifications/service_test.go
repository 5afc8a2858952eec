package notifications

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"payrollhq/internal/domain/payroll"

	"github.com/shopspring/decimal"
)

type recordingMailer struct {
	relayHost string
	from      string
	to        string
	subject   string
	body      string
	err       error
}

func (m *recordingMailer) Send(ctx context.Context, relayHost, from, to, subject, body string) error {
	m.relayHost = relayHost
	m.from = from
	m.to = to
	m.subject = subject
	m.body = body
	return m.err
}

func testRelays() map[string]string {
	return map[string]string{
		"gmail.com":     "smtp.gmail.com",
		"yahoo.com":     "smtp.mail.yahoo.com",
		"office365.com": "smtp.office365.com",
		"tvz.hr":        "smtp.office365.com",
	}
}

func testService(mailer *recordingMailer) *Service {
	return New(mailer, testRelays(), "payroll@example.com", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testPayslip() payroll.Payslip {
	return payroll.Payslip{
		ID:            1,
		EmployeeID:    11,
		GrossSalary:   decimal.NewFromInt(4200),
		NetSalary:     decimal.NewFromInt(3360),
		Bonus:         decimal.NewFromInt(200),
		HoursWorked:   decimal.NewFromInt(140),
		PayrollPeriod: payroll.Period{Year: 2026, Month: time.July},
		PaymentDate:   time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestSendPayslip(t *testing.T) {
	mailer := &recordingMailer{}
	svc := testService(mailer)

	if err := svc.SendPayslip(context.Background(), "ana@gmail.com", testPayslip()); err != nil {
		t.Fatalf("SendPayslip: %v", err)
	}
	if mailer.relayHost != "smtp.gmail.com" {
		t.Fatalf("relay host = %q, want %q", mailer.relayHost, "smtp.gmail.com")
	}
	if mailer.to != "ana@gmail.com" || mailer.from != "payroll@example.com" {
		t.Fatalf("addressing = %q -> %q", mailer.from, mailer.to)
	}
	if mailer.subject != "Payslip for JUL-2026" {
		t.Fatalf("subject = %q", mailer.subject)
	}
	if !strings.Contains(mailer.body, "Gross Salary: 4200") || !strings.Contains(mailer.body, "Net Salary: 3360") {
		t.Fatalf("body missing salary lines:\n%s", mailer.body)
	}
}

func TestRelayFor(t *testing.T) {
	svc := testService(&recordingMailer{})

	tests := []struct {
		recipient string
		want      string
	}{
		{"ana@gmail.com", "smtp.gmail.com"},
		{"ivan@yahoo.com", "smtp.mail.yahoo.com"},
		{"mia@office365.com", "smtp.office365.com"},
		{"student@tvz.hr", "smtp.office365.com"},
	}
	for _, tc := range tests {
		got, err := svc.RelayFor(tc.recipient)
		if err != nil {
			t.Fatalf("RelayFor(%q): %v", tc.recipient, err)
		}
		if got != tc.want {
			t.Fatalf("RelayFor(%q) = %q, want %q", tc.recipient, got, tc.want)
		}
	}
}

func TestSendPayslipSkipsUnknownDomain(t *testing.T) {
	mailer := &recordingMailer{}
	svc := testService(mailer)

	err := svc.SendPayslip(context.Background(), "ana@unknown.test", testPayslip())
	if !errors.Is(err, payroll.ErrNotifySkipped) {
		t.Fatalf("err = %v, want wrapped ErrNotifySkipped", err)
	}
	if mailer.to != "" {
		t.Fatal("mailer was called for a recipient without a relay")
	}
}

func TestSendPayslipSkipsMalformedRecipient(t *testing.T) {
	svc := testService(&recordingMailer{})

	for _, recipient := range []string{"no-at-sign", "trailing@"} {
		if err := svc.SendPayslip(context.Background(), recipient, testPayslip()); !errors.Is(err, payroll.ErrNotifySkipped) {
			t.Fatalf("SendPayslip(%q) err = %v, want wrapped ErrNotifySkipped", recipient, err)
		}
	}
}

func TestSendPayslipWrapsMailerError(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("connection refused")}
	svc := testService(mailer)

	err := svc.SendPayslip(context.Background(), "ana@gmail.com", testPayslip())
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, payroll.ErrNotifySkipped) {
		t.Fatal("a transport failure must not count as a skip")
	}
}
