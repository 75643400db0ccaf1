package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider answers identity toolkit actions from canned responses and
// records every request body by action.
type fakeProvider struct {
	t         *testing.T
	responses map[string]any
	failWith  map[string]string
	requests  map[string][]map[string]any
}

func newFakeProvider(t *testing.T) *fakeProvider {
	return &fakeProvider{
		t:         t,
		responses: map[string]any{},
		failWith:  map[string]string{},
		requests:  map[string][]map[string]any{},
	}
}

func (f *fakeProvider) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := r.URL.Path[len("/v1/"):]

		var body map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		f.requests[action] = append(f.requests[action], body)

		if code, ok := f.failWith[action]; ok {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"error":{"message":%q}}`, code)
			return
		}
		resp, ok := f.responses[action]
		if !ok {
			resp = map[string]any{}
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func newTestClient(t *testing.T, provider *fakeProvider) *Client {
	server := httptest.NewServer(provider.handler())
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", 5*time.Second)
}

func TestClient_SignUpFlow(t *testing.T) {
	provider := newFakeProvider(t)
	provider.responses["accounts:signUp"] = map[string]any{
		"idToken": "tok-1", "localId": "uid-1", "email": "fatima@example.com",
	}
	client := newTestClient(t, provider)

	result, err := client.SignUp(context.Background(), "Fatima", "fatima@example.com", "Password1")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, "uid-1", result.Session.UID)
	assert.Equal(t, "Fatima", result.Session.Nom)
	assert.False(t, result.Session.Verified)

	// Display name update and verification email both dispatched.
	require.Len(t, provider.requests["accounts:update"], 1)
	assert.Equal(t, "Fatima", provider.requests["accounts:update"][0]["displayName"])
	require.Len(t, provider.requests["accounts:sendOobCode"], 1)
	assert.Equal(t, "VERIFY_EMAIL", provider.requests["accounts:sendOobCode"][0]["requestType"])
}

func TestClient_SignUpEmailExists(t *testing.T) {
	provider := newFakeProvider(t)
	provider.failWith["accounts:signUp"] = "EMAIL_EXISTS"
	client := newTestClient(t, provider)

	_, err := client.SignUp(context.Background(), "Fatima", "taken@example.com", "Password1")
	require.EqualError(t, err, "Cet email est déjà utilisé")
}

func TestClient_SignUpVerificationDispatchFailure(t *testing.T) {
	provider := newFakeProvider(t)
	provider.responses["accounts:signUp"] = map[string]any{"idToken": "tok-1", "localId": "uid-1"}
	provider.failWith["accounts:sendOobCode"] = "QUOTA_EXCEEDED"
	client := newTestClient(t, provider)

	result, err := client.SignUp(context.Background(), "Fatima", "fatima@example.com", "Password1")

	// Account exists; caller still gets the session plus the dispatch error.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Compte créé")
	assert.Equal(t, "tok-1", result.Token)
}

func TestClient_SignIn(t *testing.T) {
	provider := newFakeProvider(t)
	provider.responses["accounts:signInWithPassword"] = map[string]any{
		"idToken": "tok-2", "localId": "uid-2",
		"email": "fatima@example.com", "displayName": "Fatima",
	}
	provider.responses["accounts:lookup"] = map[string]any{
		"users": []map[string]any{{"emailVerified": true}},
	}
	client := newTestClient(t, provider)

	result, err := client.SignIn(context.Background(), "fatima@example.com", "Password1")
	require.NoError(t, err)

	assert.Equal(t, "tok-2", result.Token)
	assert.Equal(t, "Fatima", result.Session.Nom)
	assert.True(t, result.Session.Verified)
}

func TestClient_SignInErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"EMAIL_NOT_FOUND", "Aucun compte associé à cet email"},
		{"INVALID_PASSWORD", "Mot de passe invalide"},
		{"INVALID_LOGIN_CREDENTIALS", "Mot de passe invalide"},
		{"INVALID_EMAIL", "Adresse email invalide"},
		{"WEAK_PASSWORD : Password should be at least 6 characters", "Le mot de passe est trop faible (minimum 6 caractères)"},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			provider := newFakeProvider(t)
			provider.failWith["accounts:signInWithPassword"] = tt.code
			client := newTestClient(t, provider)

			_, err := client.SignIn(context.Background(), "x@example.com", "pw")
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestClient_PasswordResetFlow(t *testing.T) {
	provider := newFakeProvider(t)
	provider.responses["accounts:resetPassword"] = map[string]any{"email": "fatima@example.com"}
	client := newTestClient(t, provider)

	require.NoError(t, client.SendPasswordReset(context.Background(), "fatima@example.com"))
	require.Len(t, provider.requests["accounts:sendOobCode"], 1)
	assert.Equal(t, "PASSWORD_RESET", provider.requests["accounts:sendOobCode"][0]["requestType"])

	email, err := client.VerifyResetCode(context.Background(), "oob-123")
	require.NoError(t, err)
	assert.Equal(t, "fatima@example.com", email)

	require.NoError(t, client.ConfirmPasswordReset(context.Background(), "oob-123", "NewPassword1"))
	confirm := provider.requests["accounts:resetPassword"][1]
	assert.Equal(t, "oob-123", confirm["oobCode"])
	assert.Equal(t, "NewPassword1", confirm["newPassword"])
}

func TestClient_ExpiredResetCode(t *testing.T) {
	provider := newFakeProvider(t)
	provider.failWith["accounts:resetPassword"] = "EXPIRED_OOB_CODE"
	client := newTestClient(t, provider)

	_, err := client.VerifyResetCode(context.Background(), "stale")
	require.EqualError(t, err, "Lien invalide ou expiré")
}
