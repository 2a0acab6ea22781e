package table

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	admin "github.com/paulvitic/members-admin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
)

const publishTimeout = 5 * time.Second

// Source provides the records the table is loaded with.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

type Option func(*Controller)

func WithPageSize(size int) Option {
	return func(c *Controller) {
		c.pageSize = size
	}
}

func WithLocale(tag language.Tag) Option {
	return func(c *Controller) {
		c.locale = tag
	}
}

func WithPublisher(publisher admin.EventPublisher) Option {
	return func(c *Controller) {
		c.publisher = publisher
	}
}

func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(c *Controller) {
		c.registerer = registerer
	}
}

// WithLoadTimeout bounds a whole load, retries included.
func WithLoadTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		c.loadTimeout = timeout
	}
}

// WithRetries retries a failed fetch, waiting attempt*delay between attempts.
func WithRetries(retries int, delay time.Duration) Option {
	return func(c *Controller) {
		c.retries = retries
		c.retryDelay = delay
	}
}

// Controller owns the table state and applies operations to it one at a time.
type Controller struct {
	mu     sync.Mutex
	state  State
	status Status

	source      Source
	logger      *admin.Logger
	events      admin.EventProducer
	publisher   admin.EventPublisher
	registerer  prometheus.Registerer
	metrics     *tableMetrics
	pageSize    int
	locale      language.Tag
	loadTimeout time.Duration
	retries     int
	retryDelay  time.Duration
	now         func() time.Time
}

func NewController(source Source, logger *admin.Logger, opts ...Option) *Controller {
	c := &Controller{
		source:     source,
		logger:     logger.Named("TableController"),
		events:     admin.NewEventProducer(),
		metrics:    newTableMetrics(),
		pageSize:   DefaultPageSize,
		locale:     language.English,
		retryDelay: time.Second,
		now:        time.Now,
		status:     Status{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = NewState(c.pageSize, c.locale)

	if c.registerer != nil {
		for _, collector := range c.metrics.collectors() {
			if err := c.registerer.Register(collector); err != nil {
				c.logger.Warn("metric not registered: %v", err)
			}
		}
	}
	c.metrics.observe(c.state)
	return c
}

// Load fetches the records from the source and replaces the table with them.
// On failure the table keeps what it had and the status records the error.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	previous := c.status
	c.status = Status{Phase: PhaseLoading, Records: c.state.Len(), LoadedAt: previous.LoadedAt}
	c.mu.Unlock()

	fetchCtx := ctx
	if c.loadTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.loadTimeout)
		defer cancel()
	}
	records, attempts, err := c.fetch(fetchCtx)

	c.mu.Lock()
	if err == nil {
		var next State
		if next, err = c.state.Load(records); err == nil {
			c.state = next
		}
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrLoadFailed, err)
		c.status = Status{
			Phase:    PhaseFailed,
			Error:    err.Error(),
			LoadedAt: previous.LoadedAt,
			Records:  c.state.Len(),
			Attempts: attempts,
		}
		c.metrics.loadFailures.Inc()
		c.events.RegisterEvent(AggregateType, admin.NewID(AggregateType), LoadFailed{Reason: err.Error()})
		c.logger.Error("%v", err)
	} else {
		loadedAt := c.now()
		c.status = Status{Phase: PhaseReady, LoadedAt: loadedAt, Records: c.state.Len(), Attempts: attempts}
		c.events.RegisterEvent(AggregateType, admin.NewID(AggregateType), RecordsLoaded{Count: c.state.Len(), LoadedAt: loadedAt})
		c.logger.Info("loaded %d records", c.state.Len())
	}
	c.metrics.observe(c.state)
	events := c.events.Events()
	c.mu.Unlock()

	c.publish(ctx, events)
	return err
}

func (c *Controller) fetch(ctx context.Context) ([]Record, int, error) {
	if c.source == nil {
		return nil, 0, ErrNoSource
	}
	for attempt := 1; ; attempt++ {
		records, err := c.fetchOnce(ctx)
		if err == nil {
			return records, attempt, nil
		}
		if attempt > c.retries || ctx.Err() != nil {
			return nil, attempt, err
		}
		c.logger.Warn("load attempt %d failed, retrying: %v", attempt, err)
		select {
		case <-ctx.Done():
			return nil, attempt, err
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}
}

// fetchOnce turns a panicking source into a failed attempt.
func (c *Controller) fetchOnce(ctx context.Context) (records []Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("source panicked: %v", r)
		}
	}()
	return c.source.Fetch(ctx)
}

// update runs op against the current state and commits whatever it returns.
func (c *Controller) update(ctx context.Context, op func(State) (State, error)) error {
	c.mu.Lock()
	next, err := op(c.state)
	c.state = next
	c.metrics.observe(next)
	events := c.events.Events()
	c.mu.Unlock()

	c.publish(ctx, events)
	return err
}

func (c *Controller) publish(ctx context.Context, events []admin.Event) {
	if c.publisher == nil || len(events) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	for _, event := range events {
		if err := c.publisher.Publish(ctx, event); err != nil {
			c.logger.Warn("could not publish %s: %v", event.Type(), err)
		}
	}
}

func (c *Controller) Search(ctx context.Context, text string) error {
	return c.update(ctx, func(s State) (State, error) {
		return s.Search(text), nil
	})
}

func (c *Controller) SortBy(ctx context.Context, key SortKey) error {
	return c.update(ctx, func(s State) (State, error) {
		return s.SortBy(key)
	})
}

// GoToPage reports whether the page existed; other pages leave the cursor where it was.
func (c *Controller) GoToPage(ctx context.Context, page int) (bool, error) {
	var applied bool
	err := c.update(ctx, func(s State) (State, error) {
		var next State
		next, applied = s.SetPage(page)
		return next, nil
	})
	if !applied {
		c.logger.Debug("page %d is out of range", page)
	}
	return applied, err
}

func (c *Controller) NextPage(ctx context.Context) (bool, error) {
	var applied bool
	err := c.update(ctx, func(s State) (State, error) {
		var next State
		next, applied = s.NextPage()
		return next, nil
	})
	return applied, err
}

func (c *Controller) PrevPage(ctx context.Context) (bool, error) {
	var applied bool
	err := c.update(ctx, func(s State) (State, error) {
		var next State
		next, applied = s.PrevPage()
		return next, nil
	})
	return applied, err
}

func (c *Controller) ToggleRow(ctx context.Context, id admin.ID) error {
	return c.update(ctx, func(s State) (State, error) {
		return s.Toggle(id)
	})
}

func (c *Controller) ToggleAllOnPage(ctx context.Context) error {
	return c.update(ctx, func(s State) (State, error) {
		return s.ToggleAllOnPage(), nil
	})
}

// DeleteRows deletes the listed rows and returns the ids that were present.
func (c *Controller) DeleteRows(ctx context.Context, ids []admin.ID) ([]admin.ID, error) {
	var removed []admin.ID
	err := c.update(ctx, func(s State) (State, error) {
		var next State
		next, removed = s.DeleteByIDs(ids)
		c.deleted(removed)
		return next, nil
	})
	return removed, err
}

func (c *Controller) DeleteSelected(ctx context.Context) ([]admin.ID, error) {
	var removed []admin.ID
	err := c.update(ctx, func(s State) (State, error) {
		var next State
		next, removed = s.DeleteByIDs(s.SelectedIDs())
		c.deleted(removed)
		return next, nil
	})
	return removed, err
}

func (c *Controller) deleted(ids []admin.ID) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	c.metrics.deleted.Add(float64(len(ids)))
	c.events.RegisterEvent(AggregateType, admin.NewID(AggregateType), RecordsDeleted{IDs: keys})
}

func (c *Controller) BeginEdit(ctx context.Context, id admin.ID) error {
	return c.update(ctx, func(s State) (State, error) {
		return s.BeginEdit(id)
	})
}

func (c *Controller) UpdateField(ctx context.Context, field Field, value string) error {
	return c.update(ctx, func(s State) (State, error) {
		return s.UpdateField(field, value)
	})
}

func (c *Controller) CommitEdit(ctx context.Context) (Record, error) {
	var committed Record
	err := c.update(ctx, func(s State) (State, error) {
		next, record, err := s.CommitEdit()
		if errors.Is(err, ErrRecordNotFound) {
			c.logger.Warn("edited record %s is no longer in the table", record.Key())
		}
		if err != nil {
			return next, err
		}
		committed = record
		c.metrics.edits.Inc()
		c.events.RegisterEvent(AggregateType, record.ID, RecordUpdated{Record: record})
		return next, nil
	})
	return committed, err
}

func (c *Controller) CancelEdit(ctx context.Context) error {
	return c.update(ctx, func(s State) (State, error) {
		return s.CancelEdit(), nil
	})
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewView(c.state, c.status)
}
