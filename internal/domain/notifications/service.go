package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"payrollhq/internal/domain/payroll"
	"payrollhq/internal/platform/email"
)

// Service mails payslips to employees. The outbound relay is picked per
// recipient from a static domain to relay table; recipients on domains
// without a configured relay are skipped, logged, and never retried.
type Service struct {
	Mailer email.Mailer
	Relays map[string]string
	From   string
	Logger *slog.Logger
}

func New(mailer email.Mailer, relays map[string]string, from string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Mailer: mailer, Relays: relays, From: from, Logger: logger}
}

var _ payroll.PayslipNotifier = (*Service)(nil)

// SendPayslip formats and delivers one payslip message. Returns an error
// wrapping payroll.ErrNotifySkipped when the recipient's domain has no
// relay.
func (s *Service) SendPayslip(ctx context.Context, recipient string, payslip payroll.Payslip) error {
	relayHost, err := s.RelayFor(recipient)
	if err != nil {
		return err
	}

	subject := "Payslip for " + payslip.PayrollPeriod.Label()
	if err := s.Mailer.Send(ctx, relayHost, s.From, recipient, subject, payslip.Body()); err != nil {
		return fmt.Errorf("send payslip to %s: %w", recipient, err)
	}
	s.Logger.Info("payslip sent", "recipient", recipient, "period", payslip.PayrollPeriod.String())
	return nil
}

// RelayFor resolves the outbound relay host for a recipient address.
func (s *Service) RelayFor(recipient string) (string, error) {
	at := strings.LastIndex(recipient, "@")
	if at < 0 || at == len(recipient)-1 {
		return "", fmt.Errorf("%w: malformed recipient %q", payroll.ErrNotifySkipped, recipient)
	}
	domain := recipient[at+1:]
	relayHost, ok := s.Relays[domain]
	if !ok {
		return "", fmt.Errorf("%w: no smtp relay for domain %q", payroll.ErrNotifySkipped, domain)
	}
	return relayHost, nil
}
