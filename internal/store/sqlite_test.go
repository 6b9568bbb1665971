package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmorales/shopdesk/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func notif(id string, read bool) model.Notification {
	return model.Notification{
		ID:        id,
		Title:     "title " + id,
		Message:   "message",
		Type:      model.NotificationInfo,
		Category:  model.CategorySystem,
		Priority:  model.PriorityLow,
		Read:      read,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestSeenIDsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen, err := s.SeenIDs(ctx)
	require.NoError(t, err)
	require.Empty(t, seen)

	require.NoError(t, s.MarkSeen(ctx, []string{"a", "b"}))

	seen, err = s.SeenIDs(ctx)
	require.NoError(t, err)
	require.Len(t, seen, 2)
	require.Contains(t, seen, "a")
	require.Contains(t, seen, "b")
}

func TestMarkSeenIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkSeen(ctx, []string{"a"}))
	require.NoError(t, s.MarkSeen(ctx, []string{"a", "b"}))

	seen, err := s.SeenIDs(ctx)
	require.NoError(t, err)
	require.Len(t, seen, 2)
}

func TestMarkSeenPrunesToCap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids := make([]string, 0, SeenCap+100)
	for i := 0; i < SeenCap+100; i++ {
		ids = append(ids, fmt.Sprintf("id-%04d", i))
	}
	require.NoError(t, s.MarkSeen(ctx, ids))

	seen, err := s.SeenIDs(ctx)
	require.NoError(t, err)
	require.Len(t, seen, SeenCap)

	// The oldest entries were pruned; the newest survive.
	require.NotContains(t, seen, "id-0000")
	require.Contains(t, seen, fmt.Sprintf("id-%04d", SeenCap+99))
}

func TestInsertNotificationsIgnoresDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertNotifications(ctx, []model.Notification{
		notif("n1", false),
		notif("n2", false),
	}))
	require.NoError(t, s.InsertNotifications(ctx, []model.Notification{
		notif("n1", false),
	}))

	got, err := s.GetNotifications(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestGetNotificationsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := notif("old", false)
	older.CreatedAt = time.Now().Add(-time.Hour).UTC()
	newer := notif("new", false)

	require.NoError(t, s.InsertNotifications(ctx, []model.Notification{older, newer}))

	got, err := s.GetNotifications(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "new", got[0].ID)
	require.Equal(t, "old", got[1].ID)
}

func TestGetNotificationsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ns []model.Notification
	for i := 0; i < 5; i++ {
		n := notif(fmt.Sprintf("n%d", i), false)
		n.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute).UTC()
		ns = append(ns, n)
	}
	require.NoError(t, s.InsertNotifications(ctx, ns))

	got, err := s.GetNotifications(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertNotifications(ctx, []model.Notification{
		notif("n1", false),
		notif("n2", false),
		notif("n3", true),
	}))

	count, err := s.UnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, s.MarkNotificationRead(ctx, "n1"))
	count, err = s.UnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, s.MarkAllNotificationsRead(ctx))
	count, err = s.UnreadCount(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestNotificationFieldsSurvive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n := notif("n1", false)
	n.ActionURL = "/jobs/42"
	n.ActionText = "View job"
	n.Type = model.NotificationWarning
	n.Priority = model.PriorityHigh

	require.NoError(t, s.InsertNotifications(ctx, []model.Notification{n}))

	got, err := s.GetNotifications(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, n.Title, got[0].Title)
	require.Equal(t, "/jobs/42", got[0].ActionURL)
	require.Equal(t, "View job", got[0].ActionText)
	require.Equal(t, model.NotificationWarning, got[0].Type)
	require.Equal(t, model.PriorityHigh, got[0].Priority)
	require.False(t, got[0].Read)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	missing, err := s.LoadSnapshot(ctx, "customers")
	require.NoError(t, err)
	require.Nil(t, missing)

	fetchedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.SaveSnapshot(ctx, "customers", []byte(`[{"id":"1"}]`), fetchedAt))

	snap, err := s.LoadSnapshot(ctx, "customers")
	require.NoError(t, err)
	require.Equal(t, "customers", snap.Kind)
	require.JSONEq(t, `[{"id":"1"}]`, string(snap.Payload))
	require.True(t, snap.FetchedAt.Equal(fetchedAt))
}

func TestSnapshotOverwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, "jobs", []byte(`[]`), time.Now()))
	require.NoError(t, s.SaveSnapshot(ctx, "jobs", []byte(`[{"id":"j1"}]`), time.Now()))

	snap, err := s.LoadSnapshot(ctx, "jobs")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"j1"}]`, string(snap.Payload))
}
