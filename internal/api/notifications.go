package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jmorales/shopdesk/internal/model"
)

// Notifications wraps the notification endpoints.
type Notifications struct {
	c *Client
}

// NewNotifications creates the notification endpoint set.
func NewNotifications(c *Client) *Notifications {
	return &Notifications{c: c}
}

// Recent fetches the most recent limit notifications for the user and
// organization, newest first in server order.
func (n *Notifications) Recent(
	ctx context.Context,
	userID string,
	orgID string,
	limit int,
) ([]model.Notification, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("orgId", orgID)
	q.Set("limit", fmt.Sprintf("%d", limit))

	var out []model.Notification
	if err := n.c.Get(ctx, "/api/notifications/recent?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Settings retrieves the current notification settings record.
func (n *Notifications) Settings(ctx context.Context) (model.NotificationSettings, error) {
	var out model.NotificationSettings
	if err := n.c.Get(ctx, "/api/notifications/settings", &out); err != nil {
		return model.NotificationSettings{}, err
	}
	return out, nil
}

// SaveSettings replaces the whole settings record. There are no partial
// updates; the complete record is sent every time.
func (n *Notifications) SaveSettings(ctx context.Context, s model.NotificationSettings) error {
	return n.c.Put(ctx, "/api/notifications/settings", s, nil)
}
