package payroll

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// PopulationSource loads the employee population a payroll run is computed
// over. The returned snapshot is taken once per run; later edits to
// employees or contracts are not visible to an in-flight run.
type PopulationSource interface {
	PayrollPopulation(ctx context.Context) ([]Member, error)
}

// PayslipSaver persists one payslip. Repeated runs for the same period
// create duplicate records; the pipeline does not deduplicate.
type PayslipSaver interface {
	SavePayslip(ctx context.Context, payslip Payslip) error
}

// PayslipNotifier delivers one payslip to its recipient. A return of
// ErrNotifySkipped means the notification was intentionally dropped and must
// not be retried.
type PayslipNotifier interface {
	SendPayslip(ctx context.Context, recipient string, payslip Payslip) error
}

// Coordinator runs the three-stage payroll pipeline: generate payslips,
// persist them, and mail them out. Persisting and notifying run
// concurrently, gated on generation having produced the full list.
type Coordinator struct {
	Source   PopulationSource
	Saver    PayslipSaver
	Notifier PayslipNotifier
	Logger   *slog.Logger

	// Now is the clock used for the payment date; nil means time.Now.
	Now func() time.Time
}

// RunSummary reports what a finished run did. Valid only after Run.Done is
// closed.
type RunSummary struct {
	Generated int
	Saved     int
	Notified  int
	Skipped   int
}

// Run is a handle on one in-flight payroll batch. Trigger returns it
// immediately; waiting on Done is optional.
type Run struct {
	done chan struct{}

	generated int
	saved     int
	notified  int
	skipped   int
}

// Done is closed once every stage has finished.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

func (r *Run) Summary() RunSummary {
	<-r.done
	return RunSummary{Generated: r.generated, Saved: r.saved, Notified: r.notified, Skipped: r.skipped}
}

// Trigger snapshots the population and launches the three workers, returning
// as soon as they are started. Downstream failures are per-item: a payslip
// that fails to save or send is logged and skipped, never aborting the rest
// of the batch. A cancelled context aborts workers still blocked on the
// generation gate.
func (c *Coordinator) Trigger(ctx context.Context) (*Run, error) {
	members, err := c.Source.PayrollPopulation(ctx)
	if err != nil {
		return nil, err
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	run := &Run{done: make(chan struct{})}
	asOf := now()

	// One-shot gate: closed exactly once, after the full payslip list
	// exists. Both consumers wait on it; neither touches payslips before.
	gate := make(chan struct{})
	var payslips []Payslip

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		payslips = GeneratePayslips(members, asOf)
		run.generated = len(payslips)
		logger.Info("payslip generation finished", "count", len(payslips), "period", PreviousPeriod(asOf).String())
		close(gate)
	}()

	go func() {
		defer wg.Done()
		select {
		case <-gate:
		case <-ctx.Done():
			logger.Error("persist worker aborted while waiting for generation", "err", ctx.Err())
			return
		}
		for _, payslip := range payslips {
			if err := c.Saver.SavePayslip(ctx, payslip); err != nil {
				logger.Error("payslip save failed", "employeeId", payslip.EmployeeID, "period", payslip.PayrollPeriod.String(), "err", err)
				continue
			}
			run.saved++
		}
	}()

	go func() {
		defer wg.Done()
		select {
		case <-gate:
		case <-ctx.Done():
			logger.Error("notify worker aborted while waiting for generation", "err", ctx.Err())
			return
		}
		byID := make(map[int64]Member, len(members))
		for _, m := range members {
			byID[m.EmployeeID] = m
		}
		for _, payslip := range payslips {
			member, ok := byID[payslip.EmployeeID]
			if !ok {
				// Cannot happen for payslips built from this snapshot.
				logger.Error("payslip refers to employee missing from snapshot", "employeeId", payslip.EmployeeID)
				run.skipped++
				continue
			}
			err := c.Notifier.SendPayslip(ctx, member.Email, payslip)
			switch {
			case errors.Is(err, ErrNotifySkipped):
				logger.Warn("payslip notification skipped", "recipient", member.Email, "err", err)
				run.skipped++
			case err != nil:
				logger.Error("payslip notification failed", "recipient", member.Email, "err", err)
				run.skipped++
			default:
				run.notified++
			}
		}
	}()

	go func() {
		wg.Wait()
		close(run.done)
	}()

	return run, nil
}
