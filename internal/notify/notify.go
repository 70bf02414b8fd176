// Package notify delivers user facing notifications.
package notify

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rentalmanager/internal/models"
)

// Titles used for container notifications.
const (
	TitleSuccess = "Success"
	TitleError   = "Error"
)

// Notifier receives notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(kind models.NotificationKind, title, message string)
}

// Func adapts a function to the Notifier interface.
type Func func(kind models.NotificationKind, title, message string)

func (f Func) Notify(kind models.NotificationKind, title, message string) {
	f(kind, title, message)
}

// Logger writes notifications to a logrus logger.
type Logger struct {
	logger *logrus.Logger
}

func NewLogger(logger *logrus.Logger) *Logger {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Logger{logger: logger}
}

func (l *Logger) Notify(kind models.NotificationKind, title, message string) {
	entry := l.logger.WithFields(logrus.Fields{
		"kind":  kind,
		"title": title,
	})
	switch kind {
	case models.NotifyError:
		entry.Error(message)
	case models.NotifyWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu            sync.RWMutex
	notifications []models.Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(kind models.NotificationKind, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, models.Notification{
		Kind:    kind,
		Title:   title,
		Message: message,
		At:      time.Now(),
	})
}

// All returns a copy of the recorded notifications in arrival order.
func (r *Recorder) All() []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Count returns the number of recorded notifications of the given kind.
func (r *Recorder) Count(kind models.NotificationKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, notification := range r.notifications {
		if notification.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(kind models.NotificationKind, title, message string) {
	for _, n := range m {
		n.Notify(kind, title, message)
	}
}

// Publisher accepts notifications for asynchronous delivery.
type Publisher interface {
	Push(notifications []models.Notification) error
}

// Async hands notifications to a publisher, typically a delivery queue. Only
// kinds listed in the filter are forwarded; an empty filter forwards all.
type Async struct {
	publisher Publisher
	kinds     map[models.NotificationKind]bool
	logger    *logrus.Logger
}

func NewAsync(publisher Publisher, logger *logrus.Logger, kinds ...models.NotificationKind) *Async {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	a := &Async{publisher: publisher, logger: logger}
	if len(kinds) > 0 {
		a.kinds = make(map[models.NotificationKind]bool, len(kinds))
		for _, kind := range kinds {
			a.kinds[kind] = true
		}
	}
	return a
}

func (a *Async) Notify(kind models.NotificationKind, title, message string) {
	if a.kinds != nil && !a.kinds[kind] {
		return
	}
	n := models.Notification{Kind: kind, Title: title, Message: message, At: time.Now()}
	if err := a.publisher.Push([]models.Notification{n}); err != nil {
		a.logger.WithError(err).WithField("title", title).Warn("Failed to queue notification")
	}
}
