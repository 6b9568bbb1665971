// Package resource implements the generalized list-page contract shared
// by every collection view: load a list plus aggregate stats, filter
// client-side, and mediate create/update/delete against the backend,
// patching local state only after a confirmed server round-trip.
//
// The local item list is a cache, never a source of truth. It is trusted
// only immediately after a full load or a patch following a successful
// mutation; any divergence is resolved by refetching.
package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmorales/shopdesk/internal/api"
	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/session"
)

// Entity is the contract every listed resource type satisfies.
type Entity interface {
	// EntityID returns the server-assigned identifier.
	EntityID() string

	// SearchFields returns the text fields matched by client-side search.
	SearchFields() []string

	// FilterValue returns the entity's value on an enum filter dimension,
	// or "" when the dimension does not apply.
	FilterValue(dim string) string
}

// Client is the backend endpoint set a page operates against.
// *api.Resource[T] satisfies it.
type Client[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Stats(ctx context.Context) (*model.Stats, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, draft T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Snapshots persists last-known-good list payloads so a restart shows
// stale-but-present data while the first load runs.
type Snapshots interface {
	SaveSnapshot(ctx context.Context, kind string, payload []byte, fetchedAt time.Time) error
	LoadSnapshot(ctx context.Context, kind string) (*model.Snapshot, error)
}

// ErrSubmitInFlight is returned when a mutation is attempted while a
// previous one has not completed, preventing double submission.
var ErrSubmitInFlight = errors.New("a request is already in flight")

// Config wires a page to its collaborators.
type Config[T Entity] struct {
	// Name is the resource name ("customers", "jobs", ...), used in
	// toasts, permission checks, and as the snapshot kind.
	Name string

	Client   Client[T]
	Sessions session.Provider

	// Validate runs the client-side required-field checks before a
	// create/update submission. It returns the first failing field, or
	// nil. A failing check never reaches the network.
	Validate func(T) *api.FieldError

	// Snapshots is optional; nil disables snapshot persistence.
	Snapshots Snapshots

	Log zerolog.Logger
}

// Page holds the state of one resource list view. All methods are safe
// for concurrent use; operations run inside tea.Cmd goroutines.
type Page[T Entity] struct {
	cfg Config[T]

	mu          sync.Mutex
	items       []T
	stats       *model.Stats
	loading     bool
	errMsg      string
	searchTerm  string
	filters     map[string]string
	fieldErrs   map[string]string
	lastUpdated time.Time
	gen         uint64
	submitting  bool

	toastCh chan Toast
}

// NewPage creates a page controller. If a snapshot store is configured,
// the last-known-good list is hydrated immediately so the view is never
// blank while the first load runs.
func NewPage[T Entity](cfg Config[T]) *Page[T] {
	p := &Page[T]{
		cfg:     cfg,
		filters: make(map[string]string),
		toastCh: make(chan Toast, 16),
	}
	p.hydrate()
	return p
}

// hydrate restores the cached list snapshot, if any.
func (p *Page[T]) hydrate() {
	if p.cfg.Snapshots == nil {
		return
	}

	snap, err := p.cfg.Snapshots.LoadSnapshot(context.Background(), p.cfg.Name)
	if err != nil || snap == nil {
		return
	}

	var items []T
	if err := json.Unmarshal(snap.Payload, &items); err != nil {
		p.cfg.Log.Warn().Err(err).Str("kind", p.cfg.Name).Msg("discarding unreadable snapshot")
		return
	}

	p.mu.Lock()
	p.items = items
	p.lastUpdated = snap.FetchedAt
	p.mu.Unlock()
}

// Load fetches the list and the aggregate stats concurrently and
// replaces local state wholesale. Without a session it fails fast and
// performs zero network calls. The two fetches are independent: a stats
// failure degrades to nil stats with the list intact, and a list failure
// preserves the last-known-good items behind an error message.
func (p *Page[T]) Load(ctx context.Context) error {
	if p.cfg.Sessions.Current() == nil {
		p.mu.Lock()
		p.errMsg = session.ErrNoSession.Error()
		p.mu.Unlock()
		return session.ErrNoSession
	}

	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.loading = true
	p.mu.Unlock()

	var (
		wg       sync.WaitGroup
		items    []T
		stats    *model.Stats
		listErr  error
		statsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		items, listErr = p.cfg.Client.List(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = p.cfg.Client.Stats(ctx)
	}()
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	// A newer load superseded this one; discard the stale response.
	if gen != p.gen {
		return nil
	}
	p.loading = false

	if statsErr != nil {
		p.cfg.Log.Warn().Err(statsErr).Str("resource", p.cfg.Name).Msg("stats fetch failed")
		p.stats = nil
	} else {
		p.stats = stats
	}

	if listErr != nil {
		// Keep last-known-good items; never blank a populated view.
		p.errMsg = api.Message(listErr)
		p.sendToast(Toast{Level: ToastError, Message: p.errMsg})
		return listErr
	}

	p.items = items
	p.errMsg = ""
	p.lastUpdated = time.Now()
	p.saveSnapshotLocked(ctx)

	return nil
}

// saveSnapshotLocked persists the current items as the last-known-good
// snapshot. Callers hold p.mu.
func (p *Page[T]) saveSnapshotLocked(ctx context.Context) {
	if p.cfg.Snapshots == nil {
		return
	}

	payload, err := json.Marshal(p.items)
	if err != nil {
		return
	}
	if err := p.cfg.Snapshots.SaveSnapshot(ctx, p.cfg.Name, payload, p.lastUpdated); err != nil {
		p.cfg.Log.Warn().Err(err).Str("kind", p.cfg.Name).Msg("saving snapshot failed")
	}
}

// Create validates and submits a new entity. Client-detectable
// validation failures set exactly one field error, raise one toast, and
// never reach the network. On success the server's canonical object is
// prepended to the list and stats are refetched.
func (p *Page[T]) Create(ctx context.Context, draft T) error {
	release, err := p.acquireSubmit()
	if err != nil {
		return err
	}
	defer release()

	if err := p.runValidation(draft); err != nil {
		return err
	}

	created, err := p.cfg.Client.Create(ctx, draft)
	if err != nil {
		return p.mutationFailed(ctx, err)
	}

	p.mu.Lock()
	p.items = append([]T{created}, p.items...)
	p.fieldErrs = nil
	p.mu.Unlock()

	p.sendToast(Toast{Level: ToastSuccess, Message: p.cfg.Name + " created"})
	p.refreshStats(ctx)
	return nil
}

// Update validates and submits changes to an existing entity. On success
// the matching local item is replaced wholesale with the server's
// returned object. When the target no longer exists server-side the list
// is refetched so no dangling reference remains.
func (p *Page[T]) Update(ctx context.Context, id string, draft T) error {
	release, err := p.acquireSubmit()
	if err != nil {
		return err
	}
	defer release()

	if err := p.runValidation(draft); err != nil {
		return err
	}

	updated, err := p.cfg.Client.Update(ctx, id, draft)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			p.sendToast(Toast{
				Level:   ToastError,
				Message: "item no longer exists, refreshing",
			})
			release()
			return errors.Join(err, p.Load(ctx))
		}
		return p.mutationFailed(ctx, err)
	}

	p.mu.Lock()
	for i := range p.items {
		if p.items[i].EntityID() == id {
			p.items[i] = updated
			break
		}
	}
	p.fieldErrs = nil
	p.mu.Unlock()

	p.sendToast(Toast{Level: ToastSuccess, Message: p.cfg.Name + " updated"})
	p.refreshStats(ctx)
	return nil
}

// Delete removes an entity. The explicit user confirmation happens in
// the UI before this is called. On success the item is removed from
// local state by id and stats are refetched.
func (p *Page[T]) Delete(ctx context.Context, id string) error {
	release, err := p.acquireSubmit()
	if err != nil {
		return err
	}
	defer release()

	if err := p.cfg.Client.Delete(ctx, id); err != nil {
		return p.mutationFailed(ctx, err)
	}

	p.mu.Lock()
	kept := p.items[:0:0]
	for _, it := range p.items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	p.items = kept
	p.mu.Unlock()

	p.sendToast(Toast{Level: ToastSuccess, Message: p.cfg.Name + " deleted"})
	p.refreshStats(ctx)
	return nil
}

// acquireSubmit takes the submit latch, rejecting concurrent mutations.
// The returned release function is idempotent.
func (p *Page[T]) acquireSubmit() (func(), error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cfg.Sessions.Current() == nil {
		p.errMsg = session.ErrNoSession.Error()
		return nil, session.ErrNoSession
	}
	if p.submitting {
		return nil, ErrSubmitInFlight
	}
	p.submitting = true

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			p.submitting = false
			p.mu.Unlock()
		})
	}, nil
}

// runValidation applies the client-side checks, recording the first
// failing field and raising a toast naming it.
func (p *Page[T]) runValidation(draft T) error {
	if p.cfg.Validate == nil {
		return nil
	}

	fieldErr := p.cfg.Validate(draft)
	if fieldErr == nil {
		p.mu.Lock()
		p.fieldErrs = nil
		p.mu.Unlock()
		return nil
	}

	p.mu.Lock()
	p.fieldErrs = map[string]string{fieldErr.Field: fieldErr.Message}
	p.mu.Unlock()

	p.sendToast(Toast{
		Level:   ToastError,
		Message: fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Message),
	})
	return &api.ValidationError{Fields: []api.FieldError{*fieldErr}}
}

// mutationFailed converts a mutation error into UI-visible state.
// Structured server validation maps into the same field-error display
// used by client-side checks.
func (p *Page[T]) mutationFailed(ctx context.Context, err error) error {
	if ve, ok := api.AsValidationError(err); ok {
		fields := make(map[string]string, len(ve.Fields))
		for _, f := range ve.Fields {
			fields[f.Field] = f.Message
		}
		p.mu.Lock()
		p.fieldErrs = fields
		p.mu.Unlock()
	}

	p.sendToast(Toast{Level: ToastError, Message: api.Message(err)})
	return err
}

// refreshStats refetches the aggregate counters after a mutation. The
// counters are server-computed; they are never adjusted locally.
func (p *Page[T]) refreshStats(ctx context.Context) {
	stats, err := p.cfg.Client.Stats(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.cfg.Log.Warn().Err(err).Str("resource", p.cfg.Name).Msg("stats refresh failed")
		return
	}
	p.stats = stats
}

// Items returns a copy of the loaded items.
func (p *Page[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// VisibleItems applies the current search term and filters.
func (p *Page[T]) VisibleItems() []T {
	p.mu.Lock()
	items := p.items
	term := p.searchTerm
	filters := make(map[string]string, len(p.filters))
	for k, v := range p.filters {
		filters[k] = v
	}
	p.mu.Unlock()

	return Filter(items, term, filters)
}

// Stats returns the current aggregate counters, nil when unavailable.
func (p *Page[T]) Stats() *model.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Err returns the current error message, "" when none.
func (p *Page[T]) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// Loading reports whether a load is in flight.
func (p *Page[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// LastUpdated returns when the list was last confirmed against the server.
func (p *Page[T]) LastUpdated() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastUpdated
}

// FieldErrors returns the current field-level validation errors.
func (p *Page[T]) FieldErrors() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.fieldErrs))
	for k, v := range p.fieldErrs {
		out[k] = v
	}
	return out
}

// SearchTerm returns the current client-side search term.
func (p *Page[T]) SearchTerm() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searchTerm
}

// SetSearchTerm updates the client-side search term.
func (p *Page[T]) SetSearchTerm(term string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchTerm = term
}

// SetFilter sets an enum filter dimension. "all" (or "") clears it.
func (p *Page[T]) SetFilter(dim, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters[dim] = value
}

// Name returns the resource name.
func (p *Page[T]) Name() string { return p.cfg.Name }

// CanMutate reports whether the session may render mutating affordances
// for this resource. Display gate only; the server enforces.
func (p *Page[T]) CanMutate() bool {
	return p.cfg.Sessions.Current().CanMutate(p.cfg.Name)
}

// Can reports whether a specific action is granted for this resource.
func (p *Page[T]) Can(action string) bool {
	return p.cfg.Sessions.Current().HasPermission(p.cfg.Name + ":" + action)
}
