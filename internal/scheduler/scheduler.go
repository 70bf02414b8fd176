package scheduler

import (
	"fmt"
	"os"
	"sync"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"rentalmanager/internal/metrics"
	"rentalmanager/internal/models"
	"rentalmanager/internal/notify"
)

// OverdueMarker moves invoices past their period end to the overdue status.
type OverdueMarker interface {
	MarkOverdueInvoices(now time.Time) (int64, error)
}

// Scheduler runs the periodic maintenance jobs of the server
type Scheduler struct {
	cron     *cron.Cron
	invoices OverdueMarker
	notifier notify.Notifier
	logger   *logrus.Logger
	jobMutex sync.Mutex // Ensures sequential job execution
	now      func() time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(invoices OverdueMarker, notifier notify.Notifier, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}
	if notifier == nil {
		notifier = notify.NewLogger(logger)
	}

	return &Scheduler{
		cron:     cron.New(),
		invoices: invoices,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the overdue check under the given cron spec, runs it once
// immediately and starts the cron loop.
func (s *Scheduler) Start(overdueSpec string) error {
	if _, err := s.cron.AddFunc(overdueSpec, s.RunOverdueCheck); err != nil {
		return fmt.Errorf("invalid overdue check schedule %q: %w", overdueSpec, err)
	}

	go s.RunOverdueCheck()
	s.cron.Start()
	s.logger.WithField("schedule", overdueSpec).Info("Scheduler started")
	return nil
}

// Stop stops the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()
	s.logger.Info("Scheduler stopped")
}

// RunOverdueCheck marks overdue invoices and raises a warning when any
// invoice changed.
func (s *Scheduler) RunOverdueCheck() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	start := s.now()
	marked, err := s.invoices.MarkOverdueInvoices(start)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled overdue check failed")
		s.notifier.Notify(models.NotifyError, notify.TitleError, "Failed to check overdue invoices")
		return
	}

	metrics.RecordOverdue(int(marked))
	s.logger.WithFields(logrus.Fields{
		"marked":   marked,
		"duration": time.Since(start).String(),
	}).Info("Overdue check completed")

	if marked > 0 {
		s.notifier.Notify(models.NotifyWarning, "Overdue invoices", fmt.Sprintf("%d invoice(s) are now overdue", marked))
	}
}
