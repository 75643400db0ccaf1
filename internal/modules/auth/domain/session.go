package domain

import "errors"

// Session describes the currently signed-in user as reported by the
// identity provider. The client never inspects provider credentials beyond
// this.
type Session struct {
	UID      string
	Nom      string
	Email    string
	Verified bool
}

var (
	ErrNotSignedIn = errors.New("utilisateur non connecté")
)
