package queue

import (
	"errors"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"rentalmanager/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// NotificationQueue is an in-memory queue of notification batches waiting
// for delivery.
type NotificationQueue struct {
	items    chan []models.Notification
	wg       sync.WaitGroup
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]models.Notification) error
}

// NewNotificationQueue creates a queue holding at most bufferSize batches
func NewNotificationQueue(bufferSize int, logger *logrus.Logger) *NotificationQueue {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &NotificationQueue{
		items:    make(chan []models.Notification, bufferSize),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]models.Notification) error, 0),
	}
}

// Push adds a batch of notifications to the queue without blocking
func (q *NotificationQueue) Push(notifications []models.Notification) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- notifications:
		q.logger.WithField("batch_size", len(notifications)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *NotificationQueue) Subscribe(handler func([]models.Notification) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start launches the given number of workers draining the queue
func (q *NotificationQueue) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.process()
	}
}

func (q *NotificationQueue) process() {
	defer q.wg.Done()
	for batch := range q.items {
		q.processBatch(batch)
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *NotificationQueue) processBatch(batch []models.Notification) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close rejects new batches and waits for the workers to drain the ones
// already buffered. Without started workers the buffered batches are dropped.
func (q *NotificationQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	q.mu.Unlock()

	q.wg.Wait()
	if dropped := len(q.items); dropped > 0 {
		q.logger.WithField("dropped", dropped).Warn("Notification queue closed with pending batches")
	}
	return nil
}

// Len returns the current number of batches in the queue
func (q *NotificationQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *NotificationQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
