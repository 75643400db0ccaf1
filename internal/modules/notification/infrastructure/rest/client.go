// Package rest implements the notification service client over its REST
// resource at /api/notifications.
package rest

import (
	"context"
	"strconv"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/notification/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/apiclient"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/validation"
)

const basePath = "/api/notifications"

type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// ListAll returns every notification in the system. Admin-scoped; the
// server enforces authorization, not this client.
func (c *Client) ListAll(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.api.Get(ctx, basePath+"/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMine returns all notifications addressed to the caller.
func (c *Client) ListMine(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.api.Get(ctx, basePath+"/me", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMineUnread returns the caller's notifications with is_read false.
func (c *Client) ListMineUnread(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.api.Get(ctx, basePath+"/me/unread", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create sends a privileged creation request. The dto is validated locally
// first; the server remains authoritative.
func (c *Client) Create(ctx context.Context, dto domain.CreateNotificationDTO) (domain.Notification, error) {
	if err := validation.Struct(dto); err != nil {
		return domain.Notification{}, apiclient.NewValidationError(err.Error())
	}
	var out domain.Notification
	if err := c.api.Post(ctx, basePath, dto, &out); err != nil {
		return domain.Notification{}, err
	}
	return out, nil
}

// MarkRead marks one notification read. Idempotent server-side; marking an
// already-read notification again is not an error.
func (c *Client) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidNotificationID
	}
	return c.api.Patch(ctx, basePath+"/"+strconv.FormatInt(id, 10)+"/read", nil, nil)
}

// MarkAllRead marks every unread notification owned by the caller read in
// one request.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.api.Patch(ctx, basePath+"/me/read-all", nil, nil)
}

// Delete permanently removes one notification.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidNotificationID
	}
	return c.api.Delete(ctx, basePath+"/"+strconv.FormatInt(id, 10))
}

// UnreadCount is a badge convenience: the length of the unread list, or 0
// on any failure. Callers cannot distinguish an error from genuinely zero
// unread; do not use it for correctness-critical logic.
func (c *Client) UnreadCount(ctx context.Context) int {
	unread, err := c.ListMineUnread(ctx)
	if err != nil {
		return 0
	}
	return len(unread)
}
