package auth

import (
	"context"
	"testing"
	"time"

	"event-signup/data/models"
	"event-signup/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-session-secret")

func TestIssueAndResolveToken(t *testing.T) {
	token, err := IssueToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	username, err := TokenUsername(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestTokenUsername_Invalid(t *testing.T) {
	valid, err := IssueToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	expired, err := IssueToken("alice", testSecret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{name: "Garbage", token: "not.a.token", secret: testSecret},
		{name: "Empty", token: "", secret: testSecret},
		{name: "Wrong Secret", token: valid, secret: []byte("other-secret")},
		{name: "Expired", token: expired, secret: testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TokenUsername(tt.token, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSessionsResolve(t *testing.T) {
	repo, err := repository.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	acct := &models.Account{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.PutAccount(context.Background(), acct))

	sessions := NewSessions(repo, testSecret, time.Hour)

	token, err := sessions.Issue("alice")
	require.NoError(t, err)

	resolved, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "alice", resolved.Username)
}

func TestSessionsResolve_Absent(t *testing.T) {
	repo, err := repository.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	sessions := NewSessions(repo, testSecret, time.Hour)

	// token for an account that was never stored
	token, err := sessions.Issue("ghost")
	require.NoError(t, err)

	resolved, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// malformed token is absent, not an error
	resolved, err = sessions.Resolve(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
