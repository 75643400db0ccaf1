package auth

import (
	"time"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/application"
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/infrastructure/identity"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/localstore"
)

type Module struct {
	resolver *application.RoleResolver
	sessions *application.SessionManager
}

func NewModule(identityBaseURL, apiKey string, timeout time.Duration, tokens localstore.Store) *Module {
	identityClient := identity.NewClient(identityBaseURL, apiKey, timeout)

	return &Module{
		resolver: application.NewRoleResolver(tokens),
		sessions: application.NewSessionManager(identityClient, tokens),
	}
}

func (m *Module) Resolver() *application.RoleResolver {
	return m.resolver
}

func (m *Module) Sessions() *application.SessionManager {
	return m.sessions
}
