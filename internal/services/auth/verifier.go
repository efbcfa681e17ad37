package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/storage"
)

// StoreVerifier verifies credentials against the local user store using
// bcrypt comparison.
type StoreVerifier struct {
	storage storage.Storage
}

// Ensure StoreVerifier implements CredentialVerifier
var _ CredentialVerifier = (*StoreVerifier)(nil)

// NewStoreVerifier creates a verifier backed by the given storage
func NewStoreVerifier(storage storage.Storage) *StoreVerifier {
	return &StoreVerifier{storage: storage}
}

// Authenticate checks the plaintext password against the stored hash.
// A missing user or a hash mismatch both report ErrAuthenticationFailed.
func (v *StoreVerifier) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	user, err := v.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}

	return &Principal{User: user}, nil
}
