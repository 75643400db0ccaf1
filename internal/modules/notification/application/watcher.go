package application

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/notification/domain"
	"github.com/fatimazahra-12/schoolmanage-client/pkg/schedule"
)

// recentLimit caps the snapshot kept for display; the unread total is
// tracked separately.
const recentLimit = 5

// Watcher is the dropdown's poll loop without the dropdown: it refreshes
// the unread list on a fixed interval and keeps the 5 most recent entries
// plus the total count. Fetch failures are logged and swallowed; the
// previous snapshot stays visible. Concurrent refreshes are
// last-write-wins.
type Watcher struct {
	client   NotificationAPI
	interval time.Duration

	mu     sync.Mutex
	recent []domain.Notification
	unread int

	// OnUpdate, when set before Start, is called after every successful
	// refresh with the recent snapshot and total unread count.
	OnUpdate func(recent []domain.Notification, unread int)
}

func NewWatcher(client NotificationAPI, interval time.Duration) *Watcher {
	return &Watcher{client: client, interval: interval}
}

// Start refreshes immediately, then on every interval tick until the
// returned handle is stopped.
func (w *Watcher) Start(ctx context.Context) *schedule.Handle {
	return schedule.Repeat(ctx, w.interval, w.Refresh)
}

// Refresh fetches the unread list once.
func (w *Watcher) Refresh(ctx context.Context) {
	unread, err := w.client.ListMineUnread(ctx)
	if err != nil {
		log.Printf("failed to load notifications: %v", err)
		return
	}

	recent := unread
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	w.mu.Lock()
	w.recent = append([]domain.Notification(nil), recent...)
	w.unread = len(unread)
	onUpdate := w.OnUpdate
	w.mu.Unlock()

	if onUpdate != nil {
		onUpdate(w.Recent(), len(unread))
	}
}

// MarkRead marks one entry read and reloads the unread set. Errors are
// logged and swallowed, like every other widget failure.
func (w *Watcher) MarkRead(ctx context.Context, id int64) {
	if err := w.client.MarkRead(ctx, id); err != nil {
		log.Printf("failed to mark as read: %v", err)
		return
	}
	w.Refresh(ctx)
}

// MarkAllRead marks everything read and reloads.
func (w *Watcher) MarkAllRead(ctx context.Context) {
	if err := w.client.MarkAllRead(ctx); err != nil {
		log.Printf("failed to mark all as read: %v", err)
		return
	}
	w.Refresh(ctx)
}

// Recent returns the displayed subset, at most 5 entries.
func (w *Watcher) Recent() []domain.Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.Notification, len(w.recent))
	copy(out, w.recent)
	return out
}

// UnreadCount returns the total unread count, not just the displayed
// subset.
func (w *Watcher) UnreadCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.unread
}

// Badge renders the unread badge: "" for zero, the count up to 9, "9+"
// beyond.
func (w *Watcher) Badge() string {
	count := w.UnreadCount()
	switch {
	case count == 0:
		return ""
	case count > 9:
		return "9+"
	default:
		return strconv.Itoa(count)
	}
}
