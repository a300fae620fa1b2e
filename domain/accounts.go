// Package domain holds the account and event operations behind the request
// handlers. Services are constructed over the storage contract and return
// sentinel errors that the HTTP layer maps to user-visible notices.
package domain

import (
	"context"

	"event-signup/auth"
	"event-signup/data/models"
	"event-signup/data/repository"
)

type AccountService struct {
	repo repository.Repo
}

func NewAccountService(repo repository.Repo) *AccountService {
	return &AccountService{repo: repo}
}

type CreateAccountInput struct {
	Username    string
	Password    string
	IsOrganizer bool
}

// Create registers a new account with a hashed password. A taken username is
// ErrDuplicateUsername and leaves storage unchanged.
func (s *AccountService) Create(ctx context.Context, in CreateAccountInput) (*models.Account, error) {
	if in.Username == "" || in.Password == "" {
		return nil, validationErr("username and password are required")
	}

	existing, err := s.repo.GetAccount(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	acct := &models.Account{
		Username:     in.Username,
		PasswordHash: hash,
		IsOrganizer:  in.IsOrganizer,
	}

	if err := s.repo.PutAccount(ctx, acct); err != nil {
		return nil, putErr(err)
	}
	return acct, nil
}

// Authenticate checks a username/password pair. An unknown username and a
// wrong password both come back as the same ErrAuthFailure, so callers
// cannot probe which usernames exist.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	acct, err := s.repo.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	if acct == nil || !auth.CheckPassword(password, acct.PasswordHash) {
		return nil, ErrAuthFailure
	}
	return acct, nil
}

type UpdateProfileInput struct {
	FirstName       string
	LastName        string
	Desc            string
	Hobbies         string
	Age             string
	Username        string
	Password        string
	ConfirmPassword string
}

// UpdateProfile applies the recognized profile fields to the account and
// persists it. The username is an immutable storage key: a differing
// username in the input is rejected rather than applied. A non-empty
// password must match its confirmation and replaces the stored hash.
// The organizer flag and event attendance never change through this path.
func (s *AccountService) UpdateProfile(ctx context.Context, acct *models.Account, in UpdateProfileInput) (*models.Account, error) {
	if in.Username != "" && in.Username != acct.Username {
		return nil, ErrPermissionDenied
	}

	acct.FirstName = in.FirstName
	acct.LastName = in.LastName
	acct.Desc = in.Desc
	acct.Hobbies = in.Hobbies
	acct.Age = in.Age

	if in.Password != "" {
		if in.Password != in.ConfirmPassword {
			return nil, validationErr("passwords do not match")
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		acct.PasswordHash = hash
	}

	if err := s.repo.PutAccount(ctx, acct); err != nil {
		return nil, putErr(err)
	}
	return acct, nil
}
