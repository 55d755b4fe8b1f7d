// Package crud is the list controller shared by every simple admin
// collection: categories, discounts, shipping rates and care texts.
package crud

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"sirajadmin/internal/backend"
)

var (
	ErrBusy         = errors.New("another change is still in progress")
	ErrNotConfirmed = errors.New("delete not confirmed")
	ErrNotFound     = errors.New("record not found")
)

// Entity is anything the backend identifies by a string id.
type Entity interface {
	Key() string
}

// Resource is the backend collection a List manages.
type Resource[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, v T) error
	Update(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
}

type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "idle"
}

type Options[T Entity] struct {
	Name     string
	Messages Messages
	// Sort orders a freshly fetched list in place.
	Sort func([]T)
	// Validate runs before create and update; a failure never reaches
	// the backend.
	Validate func(T) error
}

// List holds one collection and the edit selection for it. The mutex is
// never held across a backend call; inFlight makes a second mutation
// fail with ErrBusy instead of queuing.
type List[T Entity] struct {
	res    Resource[T]
	opts   Options[T]
	logger *zap.SugaredLogger

	mu       sync.Mutex
	state    State
	items    []T
	editing  string
	message  string
	inFlight bool
}

func New[T Entity](res Resource[T], opts Options[T], logger *zap.SugaredLogger) *List[T] {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &List[T]{res: res, opts: opts, logger: logger}
}

// View is a copy of the list state for rendering.
type View[T Entity] struct {
	State   State
	Items   []T
	Editing string
	Message string
	Busy    bool
}

func (l *List[T]) View() View[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]T, len(l.items))
	copy(items, l.items)
	return View[T]{State: l.state, Items: items, Editing: l.editing, Message: l.message, Busy: l.inFlight}
}

func (l *List[T]) Items() []T { return l.View().Items }

func (l *List[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *List[T]) Message() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.message
}

func (l *List[T]) SetMessage(msg string) {
	l.mu.Lock()
	l.message = msg
	l.mu.Unlock()
}

// Load replaces the list with a full fetch. A failure empties the list.
func (l *List[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	l.state = Loading
	l.mu.Unlock()

	items, err := l.res.List(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.logger.Errorw("load failed", "list", l.opts.Name, "error", err)
		l.state = Failed
		l.items = nil
		l.message = l.opts.Messages.LoadFailed
		return err
	}
	if l.opts.Sort != nil {
		l.opts.Sort(items)
	}
	l.items = items
	l.state = Loaded
	return nil
}

// Find looks an entity up in the loaded list.
func (l *List[T]) Find(id string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.find(id)
}

func (l *List[T]) find(id string) (T, bool) {
	for _, it := range l.items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (l *List[T]) StartEdit(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.find(id); !ok {
		return ErrNotFound
	}
	l.editing = id
	return nil
}

func (l *List[T]) CancelEdit() {
	l.mu.Lock()
	l.editing = ""
	l.mu.Unlock()
}

// Editing returns the entity selected for editing, if any.
func (l *List[T]) Editing() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.editing == "" {
		var zero T
		return zero, false
	}
	return l.find(l.editing)
}

func (l *List[T]) Create(ctx context.Context, v T) error {
	if err := l.check(v); err != nil {
		return err
	}
	return l.Mutate(ctx, l.opts.Messages.Created, l.opts.Messages.CreateFailed, func(ctx context.Context) error {
		return l.res.Create(ctx, v)
	})
}

func (l *List[T]) Update(ctx context.Context, id string, v T) error {
	if err := l.check(v); err != nil {
		return err
	}
	return l.Mutate(ctx, l.opts.Messages.Updated, l.opts.Messages.UpdateFailed, func(ctx context.Context) error {
		return l.res.Update(ctx, id, v)
	})
}

func (l *List[T]) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return l.Mutate(ctx, l.opts.Messages.Deleted, l.opts.Messages.DeleteFailed, func(ctx context.Context) error {
		return l.res.Delete(ctx, id)
	})
}

func (l *List[T]) check(v T) error {
	if l.opts.Validate == nil {
		return nil
	}
	err := l.opts.Validate(v)
	if err == nil {
		return nil
	}
	l.Reject(err)
	return err
}

// Reject shows the invalid-input message for err without calling the
// backend. Forms use it when a value cannot even be parsed.
func (l *List[T]) Reject(err error) {
	msg := l.opts.Messages.Invalid
	if msg == "" {
		msg = describeInvalid(err)
	}
	l.SetMessage(msg)
}

// Mutate runs fn under the in-flight guard. On success the edit selection
// is cleared, the page shows ok and the list is fetched again. On failure
// the page shows the server's message, or failed when it sent none.
func (l *List[T]) Mutate(ctx context.Context, ok, failed string, fn func(context.Context) error) error {
	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		return ErrBusy
	}
	l.inFlight = true
	l.mu.Unlock()

	err := fn(ctx)

	l.mu.Lock()
	l.inFlight = false
	if err != nil {
		l.message = failureMessage(err, failed)
		l.mu.Unlock()
		l.logger.Warnw("change rejected", "list", l.opts.Name, "error", err)
		return err
	}
	l.message = ok
	l.editing = ""
	l.mu.Unlock()

	if err := l.Load(ctx); err != nil {
		// the change went through; only the refresh failed
		l.SetMessage(ok)
	}
	return nil
}

func failureMessage(err error, fallback string) string {
	if backend.IsNetwork(err) {
		return "Network error: " + err.Error()
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
