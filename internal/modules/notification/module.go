package notification

import (
	"time"

	authdomain "github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/notification/application"
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/notification/infrastructure/rest"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/apiclient"
)

type Module struct {
	client       *rest.Client
	pollInterval time.Duration
}

func NewModule(api *apiclient.Client, pollInterval time.Duration) *Module {
	return &Module{
		client:       rest.NewClient(api),
		pollInterval: pollInterval,
	}
}

func (m *Module) Client() *rest.Client {
	return m.client
}

// Inbox builds the full-page listing for the given view.
func (m *Module) Inbox(view authdomain.View) *application.Inbox {
	return application.NewInbox(m.client, view)
}

// Watcher builds the badge poll loop.
func (m *Module) Watcher() *application.Watcher {
	return application.NewWatcher(m.client, m.pollInterval)
}
