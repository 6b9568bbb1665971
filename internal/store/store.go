package store

import (
	"context"
	"time"

	"github.com/jmorales/shopdesk/internal/model"
)

// SeenCap bounds the persisted seen-notification-id set. Only the most
// recently marked ids are retained, so the set cannot grow without
// bound over long-lived profiles.
const SeenCap = 500

// Store defines the local persistence interface: the seen-notification
// id set, the session's notification history, and last-known-good list
// snapshots per resource kind.
type Store interface {
	// === Seen notification ids ===

	// SeenIDs returns the persisted set of already-surfaced ids.
	SeenIDs(ctx context.Context) (map[string]struct{}, error)

	// MarkSeen adds ids to the seen set. Re-marking an already-seen id
	// is a no-op. The set is pruned to the most recent SeenCap entries.
	MarkSeen(ctx context.Context, ids []string) error

	// === Notification history ===

	InsertNotifications(ctx context.Context, ns []model.Notification) error
	GetNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error

	// === Resource list snapshots ===

	SaveSnapshot(ctx context.Context, kind string, payload []byte, fetchedAt time.Time) error
	LoadSnapshot(ctx context.Context, kind string) (*model.Snapshot, error)

	Close() error
}
