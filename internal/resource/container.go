// Package resource implements the state container shared by every rental
// entity: a collection, a current record and uniform loading, error and
// notification handling around list, detail and mutation requests.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rentalmanager/internal/client"
	"rentalmanager/internal/models"
	"rentalmanager/internal/notify"
)

var (
	// ErrNotFoundLocal reports that an updated or deleted id was not in the
	// local collection. The container tolerates it.
	ErrNotFoundLocal = errors.New("record not found in local collection")

	// ErrClosed is returned by mutations on a closed container.
	ErrClosed = errors.New("container is closed")
)

// Record is implemented by every entity record.
type Record interface {
	GetID() int64
}

// Observer is called when an operation finishes.
type Observer func(entity, operation string, duration time.Duration, err error)

// State is a consistent copy of a container's state.
type State[E any] struct {
	Collection []E
	Current    *E
	Loading    bool
	LastError  string
	Page       client.Page
}

// Option configures a container.
type Option func(*options)

type options struct {
	logger     *logrus.Logger
	observer   Observer
	staleGuard bool
}

// WithLogger sets the logger; the default writes JSON to stdout.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver registers a callback timing every operation.
func WithObserver(observer Observer) Option {
	return func(o *options) { o.observer = observer }
}

// WithStaleGuard discards fetch responses that resolve after a newer fetch
// of the same kind has already been committed. A discarded failure sets no
// error and sends no notification. Without it concurrent fetches commit in
// the order they resolve.
func WithStaleGuard() Option {
	return func(o *options) { o.staleGuard = true }
}

// Container owns the collection and current record of one entity type.
type Container[E Record, C, U any] struct {
	endpoint Endpoint[E, C, U]
	notifier notify.Notifier
	logger   *logrus.Logger
	observer Observer
	guard    bool

	mu          sync.RWMutex
	collection  []E
	current     *E
	inflight    int
	lastError   string
	page        client.Page
	closed      bool
	listSeq     uint64
	listCommit  uint64
	itemSeq     uint64
	itemCommit  uint64
	subscribers []func(State[E])
}

func New[E Record, C, U any](endpoint Endpoint[E, C, U], notifier notify.Notifier, opts ...Option) *Container[E, C, U] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.New()
		o.logger.SetFormatter(&logrus.JSONFormatter{})
		o.logger.SetOutput(os.Stdout)
	}
	if notifier == nil {
		notifier = notify.NewLogger(o.logger)
	}
	return &Container[E, C, U]{
		endpoint:   endpoint,
		notifier:   notifier,
		logger:     o.logger,
		observer:   o.observer,
		guard:      o.staleGuard,
		collection: []E{},
	}
}

// FetchAll replaces the collection with the records of a list request.
// Failures are recorded and notified but not returned.
func (c *Container[E, C, U]) FetchAll(ctx context.Context, scope client.Scope, filter url.Values) {
	seq, ok := c.begin(&c.listSeq)
	if !ok {
		return
	}
	start := time.Now()
	records, page, err := c.endpoint.List(ctx, scope, filter)
	c.observe("fetch_all", start, err)

	c.mu.Lock()
	stale := c.guard && seq < c.listCommit
	commit := !c.closed && !stale
	if commit {
		c.listCommit = seq
		if err == nil {
			c.collection = records
			c.page = page
		}
	}
	c.mu.Unlock()

	if stale {
		c.logger.WithFields(logrus.Fields{"entity": c.endpoint.Name(), "seq": seq}).Debug("Discarded stale list response")
	}
	if !commit {
		c.end()
		return
	}
	if err != nil {
		c.fail(err, "Failed to fetch "+c.endpoint.Plural())
	}
	c.end()
}

// FetchOne loads one record into the current slot. Failures are recorded
// and notified but not returned.
func (c *Container[E, C, U]) FetchOne(ctx context.Context, scope client.Scope, id int64) {
	seq, ok := c.begin(&c.itemSeq)
	if !ok {
		return
	}
	start := time.Now()
	record, err := c.endpoint.Get(ctx, scope, id)
	c.observe("fetch_one", start, err)

	c.mu.Lock()
	stale := c.guard && seq < c.itemCommit
	commit := !c.closed && !stale
	if commit {
		c.itemCommit = seq
		if err == nil {
			c.current = &record
		}
	}
	c.mu.Unlock()

	if stale {
		c.logger.WithFields(logrus.Fields{"entity": c.endpoint.Name(), "id": id, "seq": seq}).Debug("Discarded stale detail response")
	}
	if !commit {
		c.end()
		return
	}
	if err != nil {
		c.fail(err, "Failed to fetch "+c.endpoint.Name())
	}
	c.end()
}

// Create sends a create request and appends the created record.
func (c *Container[E, C, U]) Create(ctx context.Context, scope client.Scope, input C) (E, error) {
	var zero E
	if _, ok := c.begin(nil); !ok {
		return zero, ErrClosed
	}
	defer c.end()

	start := time.Now()
	record, err := c.endpoint.Create(ctx, scope, input)
	c.observe("create", start, err)
	if err != nil {
		c.fail(err, "Failed to create "+c.endpoint.Name())
		return zero, fmt.Errorf("failed to create %s: %w", c.endpoint.Name(), err)
	}

	if c.commit(func() {
		c.collection = append(c.collection, record)
	}) {
		c.succeed("created")
	}
	return record, nil
}

// Update sends a partial update and replaces the record in the collection
// and in the current slot when they hold it.
func (c *Container[E, C, U]) Update(ctx context.Context, scope client.Scope, id int64, input U) (E, error) {
	var zero E
	if _, ok := c.begin(nil); !ok {
		return zero, ErrClosed
	}
	defer c.end()

	start := time.Now()
	record, err := c.endpoint.Update(ctx, scope, id, input)
	c.observe("update", start, err)
	if err != nil {
		c.fail(err, "Failed to update "+c.endpoint.Name())
		return zero, fmt.Errorf("failed to update %s %d: %w", c.endpoint.Name(), id, err)
	}

	found := false
	if c.commit(func() {
		for i := range c.collection {
			if c.collection[i].GetID() == id {
				c.collection[i] = record
				found = true
				break
			}
		}
		if c.current != nil && (*c.current).GetID() == id {
			c.current = &record
		}
	}) {
		if !found {
			c.logger.WithError(ErrNotFoundLocal).WithFields(logrus.Fields{"entity": c.endpoint.Name(), "id": id}).Debug("Updated record not in collection")
		}
		c.succeed("updated")
	}
	return record, nil
}

// Delete sends a delete request and removes the record locally. An id that
// is not in the collection leaves the local state unchanged.
func (c *Container[E, C, U]) Delete(ctx context.Context, scope client.Scope, id int64) error {
	if _, ok := c.begin(nil); !ok {
		return ErrClosed
	}
	defer c.end()

	start := time.Now()
	err := c.endpoint.Delete(ctx, scope, id)
	c.observe("delete", start, err)
	if err != nil {
		c.fail(err, "Failed to delete "+c.endpoint.Name())
		return fmt.Errorf("failed to delete %s %d: %w", c.endpoint.Name(), id, err)
	}

	removed := false
	if c.commit(func() {
		kept := make([]E, 0, len(c.collection))
		for _, r := range c.collection {
			if r.GetID() == id {
				removed = true
				continue
			}
			kept = append(kept, r)
		}
		c.collection = kept
		if c.current != nil && (*c.current).GetID() == id {
			c.current = nil
		}
	}) {
		if !removed {
			c.logger.WithError(ErrNotFoundLocal).WithFields(logrus.Fields{"entity": c.endpoint.Name(), "id": id}).Debug("Deleted record not in collection")
		}
		c.succeed("deleted")
	}
	return nil
}

// Collection returns a copy of the records in fetch and creation order.
func (c *Container[E, C, U]) Collection() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]E, len(c.collection))
	copy(out, c.collection)
	return out
}

// Current returns the current record, if any.
func (c *Container[E, C, U]) Current() (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		var zero E
		return zero, false
	}
	return *c.current, true
}

// Loading reports whether any operation is in flight.
func (c *Container[E, C, U]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// LastError returns the message of the last failure; each operation clears it.
func (c *Container[E, C, U]) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Page returns the pagination metadata of the last committed list response.
func (c *Container[E, C, U]) Page() client.Page {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// IsEmpty is true once loading has finished with an empty collection.
func (c *Container[E, C, U]) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight == 0 && len(c.collection) == 0
}

func (c *Container[E, C, U]) Snapshot() State[E] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that changed the state and must not block.
func (c *Container[E, C, U]) Subscribe(fn func(State[E])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Close tears the container down. Responses arriving afterwards are not
// committed and new operations fail with ErrClosed.
func (c *Container[E, C, U]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.subscribers = nil
}

func (c *Container[E, C, U]) snapshot() State[E] {
	s := State[E]{
		Collection: make([]E, len(c.collection)),
		Loading:    c.inflight > 0,
		LastError:  c.lastError,
		Page:       c.page,
	}
	copy(s.Collection, c.collection)
	if c.current != nil {
		current := *c.current
		s.Current = &current
	}
	return s
}

// begin marks an operation in flight and clears the last error. When seq is
// non-nil it also issues the next fetch sequence number.
func (c *Container[E, C, U]) begin(seq *uint64) (uint64, bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, false
	}
	c.inflight++
	c.lastError = ""
	var n uint64
	if seq != nil {
		*seq++
		n = *seq
	}
	c.mu.Unlock()
	c.publish()
	return n, true
}

func (c *Container[E, C, U]) end() {
	c.mu.Lock()
	c.inflight--
	c.mu.Unlock()
	c.publish()
}

// commit applies fn under the lock unless the container was closed.
func (c *Container[E, C, U]) commit(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	fn()
	return true
}

func (c *Container[E, C, U]) fail(err error, fallback string) {
	message := fallback
	if msg, ok := client.ServerMessage(err); ok {
		message = msg
	}

	closed := false
	c.mu.Lock()
	if c.closed {
		closed = true
	} else {
		c.lastError = message
	}
	c.mu.Unlock()

	c.logger.WithError(err).WithField("entity", c.endpoint.Name()).Error(fallback)
	if !closed {
		c.notifier.Notify(models.NotifyError, notify.TitleError, message)
	}
}

func (c *Container[E, C, U]) succeed(verb string) {
	name := c.endpoint.Name()
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	c.notifier.Notify(models.NotifySuccess, notify.TitleSuccess, fmt.Sprintf("%s %s successfully", name, verb))
}

func (c *Container[E, C, U]) observe(operation string, start time.Time, err error) {
	if c.observer != nil {
		c.observer(c.endpoint.Name(), operation, time.Since(start), err)
	}
	c.logger.WithFields(logrus.Fields{
		"entity":    c.endpoint.Name(),
		"operation": operation,
		"duration":  time.Since(start).String(),
	}).Debug("Operation finished")
}

func (c *Container[E, C, U]) publish() {
	c.mu.RLock()
	if len(c.subscribers) == 0 {
		c.mu.RUnlock()
		return
	}
	subscribers := make([]func(State[E]), len(c.subscribers))
	copy(subscribers, c.subscribers)
	state := c.snapshot()
	c.mu.RUnlock()

	for _, fn := range subscribers {
		fn(state)
	}
}
