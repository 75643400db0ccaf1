package application

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/localstore"
)

// RoleResolver derives the caller's role from the locally stored bearer
// token. The token signature is the backend's concern; the resolver only
// reads the payload and therefore never verifies it. No network I/O.
type RoleResolver struct {
	tokens localstore.Store
	now    func() time.Time
}

func NewRoleResolver(tokens localstore.Store) *RoleResolver {
	return &RoleResolver{tokens: tokens, now: time.Now}
}

// Role returns the sanitized role claim, or "" when no usable token is
// stored. Malformed tokens fail closed; an expired token is additionally
// deleted from the store so later calls do not retry a dead credential.
func (r *RoleResolver) Role() string {
	raw, ok := r.tokens.Get(localstore.KeyToken)
	if !ok {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return ""
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return ""
	}
	if exp != nil && exp.Before(r.now()) {
		_ = r.tokens.Delete(localstore.KeyToken)
		return ""
	}

	if role, ok := claims["role"].(string); ok && role != "" {
		return sanitizeRole(role)
	}
	if roles, ok := claims["roles"].([]any); ok && len(roles) > 0 {
		if first, ok := roles[0].(string); ok {
			return sanitizeRole(first)
		}
	}
	return ""
}

// View resolves the role and maps it onto a notification view.
func (r *RoleResolver) View() domain.View {
	return domain.MapRoleToView(r.Role())
}

// sanitizeRole lowercases, trims and strips everything outside a-z, so the
// downstream view mapping only ever sees a plain alphabetic string.
func sanitizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	var b strings.Builder
	for _, c := range role {
		if c >= 'a' && c <= 'z' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
