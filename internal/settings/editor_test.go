package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/session"
)

type fakeSessions struct {
	sess *session.Session
}

func (f fakeSessions) Current() *session.Session { return f.sess }

func loggedIn() fakeSessions {
	return fakeSessions{sess: &session.Session{
		Claims: session.Claims{UserID: "user-1", OrgID: "org-1"},
	}}
}

type fakeAPI struct {
	fetched  model.NotificationSettings
	fetchErr error

	saved    []model.NotificationSettings
	saveErr  error
	blockSav chan struct{}
	entered  chan struct{}
}

func (f *fakeAPI) Settings(ctx context.Context) (model.NotificationSettings, error) {
	return f.fetched, f.fetchErr
}

func (f *fakeAPI) SaveSettings(ctx context.Context, s model.NotificationSettings) error {
	if f.entered != nil {
		close(f.entered)
	}
	if f.blockSav != nil {
		<-f.blockSav
	}
	f.saved = append(f.saved, s)
	return f.saveErr
}

func TestLoadFillsDefaults(t *testing.T) {
	// The server record carries only a frequency; everything else is
	// absent or falsy and takes its default.
	api := &fakeAPI{fetched: model.NotificationSettings{
		Frequency: model.FrequencyWeekly,
	}}
	e := NewEditor(api, loggedIn())

	require.NoError(t, e.Load(context.Background()))

	d := e.Draft()
	require.Equal(t, model.FrequencyWeekly, d.Frequency)
	require.True(t, d.EmailEnabled)
	require.True(t, d.PushEnabled)
	require.True(t, d.SystemAlerts)
	require.Equal(t, "22:00", d.QuietHoursStart)
	require.Equal(t, "08:00", d.QuietHoursEnd)
	require.Equal(t, "UTC", d.Timezone)
	require.Equal(t, model.ChannelList{"email"}, d.Channels)
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	api := &fakeAPI{fetched: model.NotificationSettings{
		QuietHoursStart: "23:30",
		QuietHoursEnd:   "06:00",
		Timezone:        "Europe/Berlin",
		Frequency:       model.FrequencyHourly,
		Channels:        model.ChannelList{"sms"},
	}}
	e := NewEditor(api, loggedIn())

	require.NoError(t, e.Load(context.Background()))

	d := e.Draft()
	require.Equal(t, "23:30", d.QuietHoursStart)
	require.Equal(t, "Europe/Berlin", d.Timezone)
	require.Equal(t, model.ChannelList{"sms"}, d.Channels)
}

func TestLoadWithoutSession(t *testing.T) {
	e := NewEditor(&fakeAPI{}, fakeSessions{})
	require.ErrorIs(t, e.Load(context.Background()), session.ErrNoSession)
}

func TestDraftBeforeLoadReturnsDefaults(t *testing.T) {
	e := NewEditor(&fakeAPI{}, loggedIn())
	require.Equal(t, model.DefaultNotificationSettings(), e.Draft())
}

func TestSaveSendsWholeRecord(t *testing.T) {
	api := &fakeAPI{fetched: model.DefaultNotificationSettings()}
	e := NewEditor(api, loggedIn())
	require.NoError(t, e.Load(context.Background()))

	draft := e.Draft()
	draft.SMSEnabled = true
	draft.Frequency = model.FrequencyDaily
	e.SetDraft(draft)

	require.NoError(t, e.Save(context.Background()))
	require.Len(t, api.saved, 1)
	require.True(t, api.saved[0].SMSEnabled)
	require.Equal(t, model.FrequencyDaily, api.saved[0].Frequency)
	// Untouched fields travel too; there are no partial updates.
	require.True(t, api.saved[0].EmailEnabled)
	require.Equal(t, "22:00", api.saved[0].QuietHoursStart)
}

func TestSaveWithoutSession(t *testing.T) {
	e := NewEditor(&fakeAPI{}, fakeSessions{})
	require.ErrorIs(t, e.Save(context.Background()), session.ErrNoSession)
}

func TestSaveLatchRejectsConcurrentSave(t *testing.T) {
	api := &fakeAPI{
		blockSav: make(chan struct{}),
		entered:  make(chan struct{}),
	}
	e := NewEditor(api, loggedIn())

	done := make(chan error, 1)
	go func() {
		done <- e.Save(context.Background())
	}()

	<-api.entered
	require.ErrorIs(t, e.Save(context.Background()), ErrSaveInFlight)

	close(api.blockSav)
	require.NoError(t, <-done)

	// After the first save settles, saving works again.
	api.blockSav = nil
	api.entered = nil
	require.NoError(t, e.Save(context.Background()))
	require.Len(t, api.saved, 2)
}

func TestSaveSurfacesAPIError(t *testing.T) {
	api := &fakeAPI{saveErr: errors.New("backend down")}
	e := NewEditor(api, loggedIn())
	require.Error(t, e.Save(context.Background()))
}
