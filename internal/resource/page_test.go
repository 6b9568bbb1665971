package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/shopdesk/internal/api"
	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/session"
)

type fakeSessions struct {
	sess *session.Session
}

func (f fakeSessions) Current() *session.Session { return f.sess }

func allowAll() fakeSessions {
	return fakeSessions{sess: &session.Session{
		Claims: session.Claims{
			UserID:      "user-1",
			OrgID:       "org-1",
			Permissions: []string{"*:*"},
		},
	}}
}

// fakeClient is a scriptable backend for customer pages.
type fakeClient struct {
	listCalls  atomic.Int32
	statsCalls atomic.Int32

	items    []model.Customer
	stats    *model.Stats
	listErr  error
	statsErr error

	createErr error
	updateErr error
	deleteErr error

	// blockCreate, when non-nil, holds Create until closed.
	blockCreate chan struct{}
	// entered is closed once Create has been entered.
	entered chan struct{}

	// blockFirstList, when non-nil, holds the first List call until
	// closed and makes it return staleItems instead of items.
	blockFirstList   chan struct{}
	firstListEntered chan struct{}
	staleItems       []model.Customer
}

func (f *fakeClient) List(ctx context.Context) ([]model.Customer, error) {
	call := f.listCalls.Add(1)
	if call == 1 && f.blockFirstList != nil {
		close(f.firstListEntered)
		<-f.blockFirstList
		return f.staleItems, nil
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeClient) Stats(ctx context.Context) (*model.Stats, error) {
	f.statsCalls.Add(1)
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeClient) Create(ctx context.Context, draft model.Customer) (model.Customer, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.blockCreate != nil {
		<-f.blockCreate
	}
	if f.createErr != nil {
		return model.Customer{}, f.createErr
	}
	draft.ID = "server-id"
	return draft, nil
}

func (f *fakeClient) Update(ctx context.Context, id string, draft model.Customer) (model.Customer, error) {
	if f.updateErr != nil {
		return model.Customer{}, f.updateErr
	}
	draft.ID = id
	return draft, nil
}

func (f *fakeClient) Delete(ctx context.Context, id string) error {
	return f.deleteErr
}

func newTestPage(client *fakeClient, sessions fakeSessions) *Page[model.Customer] {
	return NewPage(Config[model.Customer]{
		Name:     "customers",
		Client:   client,
		Sessions: sessions,
		Validate: ValidateCustomer,
		Log:      zerolog.Nop(),
	})
}

func TestLoadWithoutSessionMakesNoCalls(t *testing.T) {
	client := &fakeClient{}
	p := newTestPage(client, fakeSessions{})

	err := p.Load(context.Background())
	require.ErrorIs(t, err, session.ErrNoSession)
	require.Zero(t, client.listCalls.Load())
	require.Zero(t, client.statsCalls.Load())
	require.Equal(t, session.ErrNoSession.Error(), p.Err())
}

func TestLoadReplacesItemsAndStats(t *testing.T) {
	client := &fakeClient{
		items: []model.Customer{{ID: "1", Name: "Alice"}},
		stats: &model.Stats{Total: 1, Active: 1},
	}
	p := newTestPage(client, allowAll())

	require.NoError(t, p.Load(context.Background()))
	require.Len(t, p.Items(), 1)
	require.Equal(t, 1, p.Stats().Total)
	require.Empty(t, p.Err())
	require.False(t, p.LastUpdated().IsZero())
}

func TestLoadListFailurePreservesItems(t *testing.T) {
	client := &fakeClient{
		items: []model.Customer{{ID: "1", Name: "Alice"}},
		stats: &model.Stats{Total: 1},
	}
	p := newTestPage(client, allowAll())
	require.NoError(t, p.Load(context.Background()))

	client.listErr = errors.New("backend down")
	require.Error(t, p.Load(context.Background()))

	// Last-known-good items survive a failed reload.
	require.Len(t, p.Items(), 1)
	require.NotEmpty(t, p.Err())
}

func TestLoadStatsFailureKeepsList(t *testing.T) {
	client := &fakeClient{
		items:    []model.Customer{{ID: "1", Name: "Alice"}},
		statsErr: errors.New("stats down"),
	}
	p := newTestPage(client, allowAll())

	require.NoError(t, p.Load(context.Background()))
	require.Len(t, p.Items(), 1)
	require.Nil(t, p.Stats())
	require.Empty(t, p.Err())
}

func TestLoadIdempotent(t *testing.T) {
	client := &fakeClient{
		items: []model.Customer{{ID: "1"}, {ID: "2"}},
	}
	p := newTestPage(client, allowAll())

	require.NoError(t, p.Load(context.Background()))
	require.NoError(t, p.Load(context.Background()))
	require.Len(t, p.Items(), 2)
}

func TestStaleLoadResponseDiscarded(t *testing.T) {
	client := &fakeClient{
		items:            []model.Customer{{ID: "fresh", Name: "Fresh"}},
		stats:            &model.Stats{Total: 1},
		staleItems:       []model.Customer{{ID: "stale", Name: "Stale"}},
		blockFirstList:   make(chan struct{}),
		firstListEntered: make(chan struct{}),
	}
	p := newTestPage(client, allowAll())

	// Start a load and hold its list fetch mid-flight.
	done := make(chan error, 1)
	go func() {
		done <- p.Load(context.Background())
	}()
	<-client.firstListEntered

	// A newer load completes while the first is still blocked.
	require.NoError(t, p.Load(context.Background()))
	require.Equal(t, "fresh", p.Items()[0].ID)

	// Releasing the superseded load must not overwrite the newer state.
	close(client.blockFirstList)
	require.NoError(t, <-done)

	items := p.Items()
	require.Len(t, items, 1)
	require.Equal(t, "fresh", items[0].ID)
	require.Equal(t, 1, p.Stats().Total)
}

func TestCreateValidationShortCircuits(t *testing.T) {
	client := &fakeClient{entered: make(chan struct{})}
	p := newTestPage(client, allowAll())

	err := p.Create(context.Background(), model.Customer{Name: "", Email: ""})

	ve, ok := api.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 1)
	require.Equal(t, "name", ve.Fields[0].Field)
	require.Equal(t, map[string]string{"name": "is required"}, p.FieldErrors())

	// The draft never reached the network.
	select {
	case <-client.entered:
		t.Fatal("create reached the backend despite failing validation")
	default:
	}

	// Exactly one toast was raised.
	msg := p.WaitForToast()()
	toast, ok := msg.(ToastMsg)
	require.True(t, ok)
	require.Equal(t, ToastError, toast.Toast.Level)
}

func TestCreatePrependsServerObject(t *testing.T) {
	client := &fakeClient{
		items: []model.Customer{{ID: "1", Name: "Old"}},
		stats: &model.Stats{Total: 2},
	}
	p := newTestPage(client, allowAll())
	require.NoError(t, p.Load(context.Background()))

	err := p.Create(context.Background(), model.Customer{Name: "New", Email: "new@shop.test"})
	require.NoError(t, err)

	items := p.Items()
	require.Len(t, items, 2)
	require.Equal(t, "server-id", items[0].ID)
	require.Equal(t, "New", items[0].Name)
	require.Empty(t, p.FieldErrors())
}

func TestUpdateReplacesById(t *testing.T) {
	client := &fakeClient{
		items: []model.Customer{
			{ID: "1", Name: "Alice"},
			{ID: "2", Name: "Bob"},
		},
	}
	p := newTestPage(client, allowAll())
	require.NoError(t, p.Load(context.Background()))

	err := p.Update(context.Background(), "2", model.Customer{Name: "Bobby", Email: "b@shop.test"})
	require.NoError(t, err)

	items := p.Items()
	require.Equal(t, "Alice", items[0].Name)
	require.Equal(t, "Bobby", items[1].Name)
	require.Equal(t, "2", items[1].ID)
}

func TestUpdateMissingTriggersReload(t *testing.T) {
	client := &fakeClient{
		items:     []model.Customer{{ID: "1", Name: "Alice"}},
		updateErr: api.ErrNotFound,
	}
	p := newTestPage(client, allowAll())
	require.NoError(t, p.Load(context.Background()))
	before := client.listCalls.Load()

	err := p.Update(context.Background(), "gone", model.Customer{Name: "X", Email: "x@shop.test"})
	require.ErrorIs(t, err, api.ErrNotFound)
	require.Greater(t, client.listCalls.Load(), before)
}

func TestDeleteRemovesById(t *testing.T) {
	client := &fakeClient{
		items: []model.Customer{{ID: "1"}, {ID: "2"}, {ID: "3"}},
	}
	p := newTestPage(client, allowAll())
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.Delete(context.Background(), "2"))

	items := p.Items()
	require.Len(t, items, 2)
	require.Equal(t, "1", items[0].ID)
	require.Equal(t, "3", items[1].ID)
}

func TestSubmitLatchRejectsConcurrentMutations(t *testing.T) {
	client := &fakeClient{
		blockCreate: make(chan struct{}),
		entered:     make(chan struct{}),
	}
	p := newTestPage(client, allowAll())

	done := make(chan error, 1)
	go func() {
		done <- p.Create(context.Background(), model.Customer{Name: "A", Email: "a@shop.test"})
	}()

	<-client.entered

	err := p.Delete(context.Background(), "1")
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(client.blockCreate)
	require.NoError(t, <-done)
}

func TestMutationWithoutSession(t *testing.T) {
	client := &fakeClient{}
	p := newTestPage(client, fakeSessions{})

	err := p.Create(context.Background(), model.Customer{Name: "A", Email: "a@shop.test"})
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestServerValidationMapsToFieldErrors(t *testing.T) {
	client := &fakeClient{
		createErr: &api.ValidationError{Fields: []api.FieldError{
			{Field: "email", Message: "already in use"},
		}},
	}
	p := newTestPage(client, allowAll())

	err := p.Create(context.Background(), model.Customer{Name: "A", Email: "a@shop.test"})
	require.Error(t, err)
	require.Equal(t, map[string]string{"email": "already in use"}, p.FieldErrors())
}

func TestVisibleItemsAppliesSearchAndFilter(t *testing.T) {
	client := &fakeClient{
		items: []model.Customer{
			{ID: "1", Name: "Alice", Status: model.CustomerStatusActive},
			{ID: "2", Name: "Bob", Status: model.CustomerStatusActive},
			{ID: "3", Name: "Alice Cooper", Status: model.CustomerStatusInactive},
		},
	}
	p := newTestPage(client, allowAll())
	require.NoError(t, p.Load(context.Background()))

	p.SetSearchTerm("alice")
	require.Equal(t, "alice", p.SearchTerm())
	p.SetFilter("status", model.CustomerStatusActive)

	got := p.VisibleItems()
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0].ID)

	p.SetFilter("status", "all")
	require.Len(t, p.VisibleItems(), 2)
}

func TestPermissionGates(t *testing.T) {
	client := &fakeClient{}

	readOnly := fakeSessions{sess: &session.Session{
		Claims: session.Claims{Permissions: []string{"customers:read"}},
	}}
	p := newTestPage(client, readOnly)
	require.False(t, p.Can("create"))
	require.False(t, p.CanMutate())
	require.True(t, p.Can("read"))

	p = newTestPage(client, allowAll())
	require.True(t, p.Can("create"))
	require.True(t, p.CanMutate())

	// No session at all renders nothing mutable.
	p = newTestPage(client, fakeSessions{})
	require.False(t, p.Can("create"))
}
