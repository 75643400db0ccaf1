package room

import (
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/room/application"
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/room/infrastructure/rest"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/apiclient"
)

type Module struct {
	client *rest.Client
	store  *application.Store
}

func NewModule(api *apiclient.Client) *Module {
	client := rest.NewClient(api)
	return &Module{
		client: client,
		store:  application.NewStore(client),
	}
}

func (m *Module) Client() *rest.Client {
	return m.client
}

func (m *Module) Store() *application.Store {
	return m.store
}
