package application

import (
	"context"
	"sync"

	authdomain "github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/notification/domain"
)

// NotificationAPI is the slice of the notification client the inbox and
// watcher depend on.
type NotificationAPI interface {
	ListMine(ctx context.Context) ([]domain.Notification, error)
	ListMineUnread(ctx context.Context) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
}

// Inbox is the full-page notification listing: the fetched list in server
// order, an unread-only filter, a loading flag and a display error.
// Mutations reload the currently-filtered list instead of patching it.
type Inbox struct {
	client NotificationAPI
	view   authdomain.View

	mu            sync.Mutex
	notifications []domain.Notification
	unreadOnly    bool
	loading       bool
	err           string
}

// NewInbox builds an inbox for the given view. The view only selects the
// heading; the fetch scope is always "my notifications".
func NewInbox(client NotificationAPI, view authdomain.View) *Inbox {
	return &Inbox{client: client, view: view}
}

func (i *Inbox) Heading() string {
	return i.view.Heading()
}

// Load fetches the list for the current filter. A failure keeps the
// previous list and stores the error message for display.
func (i *Inbox) Load(ctx context.Context) error {
	i.mu.Lock()
	i.loading = true
	i.err = ""
	unreadOnly := i.unreadOnly
	i.mu.Unlock()

	var (
		notifications []domain.Notification
		err           error
	)
	if unreadOnly {
		notifications, err = i.client.ListMineUnread(ctx)
	} else {
		notifications, err = i.client.ListMine(ctx)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.loading = false
	if err != nil {
		i.err = err.Error()
		return err
	}
	i.notifications = notifications
	return nil
}

// SetUnreadOnly switches the filter and re-fetches. Toggling is a network
// round trip, never a projection of an already-loaded superset.
func (i *Inbox) SetUnreadOnly(ctx context.Context, unreadOnly bool) error {
	i.mu.Lock()
	i.unreadOnly = unreadOnly
	i.mu.Unlock()
	return i.Load(ctx)
}

// MarkRead marks one notification read, then reloads the filtered list.
func (i *Inbox) MarkRead(ctx context.Context, id int64) error {
	return i.mutate(ctx, func(ctx context.Context) error {
		return i.client.MarkRead(ctx, id)
	})
}

// MarkAllRead marks everything read, then reloads.
func (i *Inbox) MarkAllRead(ctx context.Context) error {
	return i.mutate(ctx, i.client.MarkAllRead)
}

// Delete removes one notification, then reloads.
func (i *Inbox) Delete(ctx context.Context, id int64) error {
	return i.mutate(ctx, func(ctx context.Context) error {
		return i.client.Delete(ctx, id)
	})
}

func (i *Inbox) mutate(ctx context.Context, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		i.mu.Lock()
		i.err = err.Error()
		i.mu.Unlock()
		return err
	}
	return i.Load(ctx)
}

// Notifications returns a copy of the current list in server order.
func (i *Inbox) Notifications() []domain.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]domain.Notification, len(i.notifications))
	copy(out, i.notifications)
	return out
}

func (i *Inbox) UnreadOnly() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.unreadOnly
}

func (i *Inbox) Loading() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.loading
}

// Error returns the display error, "" when none.
func (i *Inbox) Error() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}
