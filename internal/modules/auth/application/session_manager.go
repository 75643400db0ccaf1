package application

import (
	"context"
	"sync"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/infrastructure/identity"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/localstore"
)

// SessionManager owns the current session. It persists the bearer token
// through the local store and notifies registered observers whenever the
// session changes.
type SessionManager struct {
	identity *identity.Client
	tokens   localstore.Store

	mu        sync.Mutex
	current   *domain.Session
	observers []func(*domain.Session)
}

func NewSessionManager(identityClient *identity.Client, tokens localstore.Store) *SessionManager {
	return &SessionManager{identity: identityClient, tokens: tokens}
}

// Current returns the active session, or nil when signed out.
func (m *SessionManager) Current() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// OnChange registers an observer called with the new session (nil on sign
// out). Observers are invoked synchronously from the mutating call.
func (m *SessionManager) OnChange(fn func(*domain.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// SignUp registers a new account and establishes its session. The account
// may exist even when an error is returned (verification dispatch failure);
// in that case the returned session is still valid.
func (m *SessionManager) SignUp(ctx context.Context, nom, email, password string) (*domain.Session, error) {
	result, err := m.identity.SignUp(ctx, nom, email, password)
	if result.Token == "" {
		return nil, err
	}
	session := m.establish(result)
	return session, err
}

// SignIn authenticates and stores the session token.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	result, err := m.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(result), nil
}

// SignOut drops the stored token and clears the session.
func (m *SessionManager) SignOut() error {
	err := m.tokens.Delete(localstore.KeyToken)

	m.mu.Lock()
	m.current = nil
	observers := append([]func(*domain.Session){}, m.observers...)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(nil)
	}
	return err
}

// RequestPasswordReset emails the user a reset link carrying an oobCode.
func (m *SessionManager) RequestPasswordReset(ctx context.Context, email string) error {
	return m.identity.SendPasswordReset(ctx, email)
}

// VerifyResetCode validates the oobCode and returns the targeted email.
func (m *SessionManager) VerifyResetCode(ctx context.Context, oobCode string) (string, error) {
	return m.identity.VerifyResetCode(ctx, oobCode)
}

// ConfirmPasswordReset consumes the oobCode and sets the new password.
func (m *SessionManager) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error {
	return m.identity.ConfirmPasswordReset(ctx, oobCode, newPassword)
}

// ResendVerification re-sends the verification email for the current
// session.
func (m *SessionManager) ResendVerification(ctx context.Context) error {
	token, ok := m.tokens.Get(localstore.KeyToken)
	if !ok {
		return domain.ErrNotSignedIn
	}
	return m.identity.SendVerification(ctx, token)
}

func (m *SessionManager) establish(result identity.SignInResult) *domain.Session {
	session := result.Session
	_ = m.tokens.Set(localstore.KeyToken, result.Token)

	m.mu.Lock()
	m.current = &session
	observers := append([]func(*domain.Session){}, m.observers...)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(&session)
	}
	return &session
}
