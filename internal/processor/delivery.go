package processor

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rentalmanager/config"
	"rentalmanager/internal/metrics"
	"rentalmanager/internal/models"
	"rentalmanager/internal/queue"
)

// Sender delivers one notification to an external channel.
type Sender interface {
	Send(ctx context.Context, notification models.Notification) error
}

// DeliveryProcessor drains the notification queue and hands every
// notification to a sender, retrying failed deliveries.
type DeliveryProcessor struct {
	sender    Sender
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.NotificationQueue
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	once      sync.Once
}

// NewDeliveryProcessor creates a new delivery processor instance
func NewDeliveryProcessor(sender Sender, queue *queue.NotificationQueue, config *config.Config, logger *logrus.Logger) *DeliveryProcessor {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DeliveryProcessor{
		sender: sender,
		queue:  queue,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes to the queue and launches the delivery workers
func (p *DeliveryProcessor) Start() {
	p.once.Do(func() {
		p.queue.Subscribe(func(batch []models.Notification) error {
			p.waitGroup.Add(1)
			defer p.waitGroup.Done()
			return p.processBatch(batch)
		})
		p.queue.Start(p.config.Notifications.WorkerCount)
	})
}

// drainTimeout bounds how long Stop waits for buffered notifications before
// aborting the deliveries still running.
var drainTimeout = 10 * time.Second

// Stop delivers the notifications still queued, then aborts pending retries
// and waits for in-flight deliveries
func (p *DeliveryProcessor) Stop() {
	drained := make(chan struct{})
	go func() {
		p.queue.Close()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(drainTimeout):
		p.logger.Warn("Timed out draining notifications, cancelling deliveries")
	}
	p.cancel()
	<-drained
	p.waitGroup.Wait()
}

// processBatch delivers every notification of the batch and reports the
// last failure, if any
func (p *DeliveryProcessor) processBatch(batch []models.Notification) error {
	var failed error
	for _, n := range batch {
		if err := p.deliver(n); err != nil {
			failed = err
		}
	}
	return failed
}

func (p *DeliveryProcessor) deliver(n models.Notification) (err error) {
	defer func() { metrics.RecordDelivery(err) }()

	maxRetries := p.config.Notifications.MaxRetries
	delay := time.Duration(p.config.Notifications.RetryDelay) * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying notification delivery, attempt %d of %d", attempt, maxRetries)
			select {
			case <-p.ctx.Done():
				return fmt.Errorf("delivery cancelled: %w", p.ctx.Err())
			case <-time.After(delay):
			}
		}

		err = p.sender.Send(p.ctx, n)
		if err == nil {
			p.logger.WithFields(logrus.Fields{
				"kind":  n.Kind,
				"title": n.Title,
			}).Debug("Delivered notification")
			return nil
		}

		p.logger.Errorf("Notification delivery failed: %v", err)
	}

	return fmt.Errorf("failed to deliver notification after %d attempts: %w", maxRetries, err)
}
