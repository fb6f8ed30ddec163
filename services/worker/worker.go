package worker

import (
	"context"
	"time"

	"watchtracker/internal/monitor"
	"watchtracker/internal/report"
	"watchtracker/logger"
	"watchtracker/services/notifier"
)

// Sweeper is the slice of the monitor the worker drives
type Sweeper interface {
	RunSweep() []monitor.DealRecord
	BestDeals() []monitor.DealRecord
}

// ReportWriter persists a dated report artifact
type ReportWriter interface {
	Write(date, content string) (string, error)
}

// Worker runs the check-report-notify cycle on an interval
type Worker struct {
	ctx           context.Context
	monitor       Sweeper
	notifiers     []notifier.Notifier
	reportWriter  ReportWriter
	recipient     string
	checkInterval time.Duration
	now           func() time.Time
	log           *logger.Logger
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	sweeper Sweeper,
	notifiers []notifier.Notifier,
	reportWriter ReportWriter,
	recipient string,
	checkInterval time.Duration,
) *Worker {
	return &Worker{
		ctx:           ctx,
		monitor:       sweeper,
		notifiers:     notifiers,
		reportWriter:  reportWriter,
		recipient:     recipient,
		checkInterval: checkInterval,
		now:           time.Now,
		log:           logger.ForWorker(),
	}
}

// Start runs the cycle until the context is cancelled. Cancellation is
// checked between sweeps; a sweep in progress runs to completion.
func (w *Worker) Start() error {
	for {
		start := w.now()
		w.RunOnce()
		w.log.Info().
			Dur("elapsed", time.Since(start)).
			Dur("next_check_in", w.checkInterval).
			Msg("Sweep complete")

		select {
		case <-w.ctx.Done():
			return nil
		case <-time.After(w.checkInterval):
		}
	}
}

// RunOnce performs a single sweep, writes the daily report, and sends
// alerts when deals were found. Report and notification failures are
// logged and never abort the cycle.
func (w *Worker) RunOnce() []monitor.DealRecord {
	date := w.now().Format("2006-01-02")

	deals := w.monitor.RunSweep()
	w.log.Info().Int("deal_count", len(deals)).Msg("Sweep finished")

	bestDeals := w.monitor.BestDeals()
	content := report.BuildReport(date, bestDeals)
	if path, err := w.reportWriter.Write(date, content); err != nil {
		w.log.Error().Err(err).Msg("Could not write price report")
	} else {
		w.log.Info().Str("path", path).Msg("Price report generated")
	}

	if len(deals) > 0 {
		subject := "Samsung Watch Deal Alert - " + date
		body := report.BuildAlertMessage(deals)
		for _, n := range w.notifiers {
			if err := n.Notify(subject, body, w.recipient); err != nil {
				w.log.Error().Err(err).Msg("Could not deliver deal alert")
			}
		}
	}

	return deals
}
