// Package identity wraps the external identity provider's REST API. The
// provider owns registration, credentials and token issuance; this client
// only forwards requests and translates provider error codes into
// human-readable messages.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/auth/domain"
)

// SignInResult carries the established session plus the bearer token the
// rest of the client attaches to API calls.
type SignInResult struct {
	Session domain.Session
	Token   string
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// SignUp registers a new account, stores the display name on the provider
// profile and dispatches a verification email. A created account whose
// verification email could not be sent is still returned, together with the
// dispatch error.
func (c *Client) SignUp(ctx context.Context, nom, email, password string) (SignInResult, error) {
	var signUp struct {
		IDToken string `json:"idToken"`
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	err := c.post(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &signUp)
	if err != nil {
		return SignInResult{}, err
	}

	if err := c.post(ctx, "accounts:update", map[string]any{
		"idToken":     signUp.IDToken,
		"displayName": nom,
	}, nil); err != nil {
		return SignInResult{}, err
	}

	result := SignInResult{
		Session: domain.Session{
			UID:      signUp.LocalID,
			Nom:      nom,
			Email:    email,
			Verified: false,
		},
		Token: signUp.IDToken,
	}

	if err := c.SendVerification(ctx, signUp.IDToken); err != nil {
		return result, errors.New("Compte créé, mais l'email de vérification n'a pas pu être envoyé: " + err.Error())
	}
	return result, nil
}

// SignIn authenticates with email and password.
func (c *Client) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	var signIn struct {
		IDToken     string `json:"idToken"`
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}
	err := c.post(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &signIn)
	if err != nil {
		return SignInResult{}, err
	}

	verified := false
	var lookup struct {
		Users []struct {
			EmailVerified bool `json:"emailVerified"`
		} `json:"users"`
	}
	if err := c.post(ctx, "accounts:lookup", map[string]any{"idToken": signIn.IDToken}, &lookup); err == nil && len(lookup.Users) > 0 {
		verified = lookup.Users[0].EmailVerified
	}

	return SignInResult{
		Session: domain.Session{
			UID:      signIn.LocalID,
			Nom:      signIn.DisplayName,
			Email:    signIn.Email,
			Verified: verified,
		},
		Token: signIn.IDToken,
	}, nil
}

// SendVerification re-sends the verification email for the given session
// token.
func (c *Client) SendVerification(ctx context.Context, token string) error {
	return c.post(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "VERIFY_EMAIL",
		"idToken":     token,
	}, nil)
}

// SendPasswordReset asks the provider to email a reset link carrying an
// opaque oobCode.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}

// VerifyResetCode checks an oobCode without consuming it and returns the
// email the reset targets.
func (c *Client) VerifyResetCode(ctx context.Context, oobCode string) (string, error) {
	var out struct {
		Email string `json:"email"`
	}
	if err := c.post(ctx, "accounts:resetPassword", map[string]any{"oobCode": oobCode}, &out); err != nil {
		return "", err
	}
	return out.Email, nil
}

// ConfirmPasswordReset consumes the oobCode and sets the new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error {
	return c.post(ctx, "accounts:resetPassword", map[string]any{
		"oobCode":     oobCode,
		"newPassword": newPassword,
	}, nil)
}

func (c *Client) post(ctx context.Context, action string, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := c.baseURL + "/v1/" + action + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errors.New(translateProviderError(resp.Body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// translateProviderError maps provider error codes onto the fixed messages
// shown to users. Unknown codes pass through as-is.
func translateProviderError(body io.Reader) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil || json.Unmarshal(data, &payload) != nil || payload.Error.Message == "" {
		return "Une erreur est survenue"
	}

	// Codes may carry a detail suffix, e.g. "WEAK_PASSWORD : ...".
	code, _, _ := strings.Cut(payload.Error.Message, " ")
	switch code {
	case "EMAIL_EXISTS":
		return "Cet email est déjà utilisé"
	case "WEAK_PASSWORD":
		return "Le mot de passe est trop faible (minimum 6 caractères)"
	case "INVALID_EMAIL":
		return "Adresse email invalide"
	case "EMAIL_NOT_FOUND":
		return "Aucun compte associé à cet email"
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return "Mot de passe invalide"
	case "EXPIRED_OOB_CODE", "INVALID_OOB_CODE":
		return "Lien invalide ou expiré"
	default:
		return payload.Error.Message
	}
}
