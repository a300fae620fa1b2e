package auth

import (
	"context"
	"time"

	"event-signup/data/models"
	"event-signup/data/repository"
)

// Sessions maps opaque identity tokens to live accounts. There is no session
// registry: a token either resolves to a stored account or it does not.
type Sessions struct {
	repo     repository.Repo
	secret   []byte
	validity time.Duration
}

func NewSessions(repo repository.Repo, secret []byte, validity time.Duration) *Sessions {
	return &Sessions{repo: repo, secret: secret, validity: validity}
}

// Issue returns a fresh identity token for the given username.
func (s *Sessions) Issue(username string) (string, error) {
	return IssueToken(username, s.secret, s.validity)
}

// Resolve maps a previously issued token back to a full account. Invalid or
// expired tokens and tokens for accounts that no longer resolve are all
// simply absent (nil account, nil error); the error is reserved for storage
// faults.
func (s *Sessions) Resolve(ctx context.Context, token string) (*models.Account, error) {
	username, err := TokenUsername(token, s.secret)
	if err != nil {
		return nil, nil
	}
	return s.repo.GetAccount(ctx, username)
}
