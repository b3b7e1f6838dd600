package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/weightkeeper/internal/client/storage"
	"github.com/iudanet/weightkeeper/internal/crypto"
)

var (
	// ErrPassphraseRequired indicates that the stored token is encrypted and
	// no passphrase was given.
	ErrPassphraseRequired = errors.New("stored token is encrypted: passphrase required")

	// ErrWrongPassphrase indicates that the stored token cannot be decrypted.
	ErrWrongPassphrase = errors.New("wrong passphrase")
)

// CredentialStore is the encryption layer between the CLI and storage.
// Токен шифруется только если задана passphrase; иначе хранится как есть.
type CredentialStore struct {
	storage storage.CredentialStorage
	now     func() time.Time
}

// StoreOption configures a CredentialStore
type StoreOption func(*CredentialStore)

// WithClock overrides the clock used for SavedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *CredentialStore) {
		s.now = now
	}
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(storage storage.CredentialStorage, opts ...StoreOption) *CredentialStore {
	s := &CredentialStore{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores the token, encrypted when passphrase is not empty
func (s *CredentialStore) Save(ctx context.Context, token, passphrase string) error {
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	cred := &storage.Credential{
		Token:   token,
		SavedAt: s.now().Unix(),
	}

	if passphrase != "" {
		salt, err := crypto.GenerateSaltBase64()
		if err != nil {
			return err
		}
		key, err := crypto.DeriveKeyFromBase64Salt(passphrase, salt)
		if err != nil {
			return fmt.Errorf("failed to derive key: %w", err)
		}
		encrypted, err := crypto.EncryptString(token, key)
		if err != nil {
			return fmt.Errorf("failed to encrypt token: %w", err)
		}
		cred.Token = encrypted
		cred.Salt = salt
		cred.Encrypted = true
	}

	return s.storage.SaveCredential(ctx, cred)
}

// Load returns the stored plaintext token.
// Returns storage.ErrCredentialNotFound if nothing is stored.
func (s *CredentialStore) Load(ctx context.Context, passphrase string) (string, error) {
	cred, err := s.storage.GetCredential(ctx)
	if err != nil {
		return "", err
	}

	if !cred.Encrypted {
		return cred.Token, nil
	}
	if passphrase == "" {
		return "", ErrPassphraseRequired
	}

	key, err := crypto.DeriveKeyFromBase64Salt(passphrase, cred.Salt)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	token, err := crypto.DecryptString(cred.Token, key)
	if err != nil {
		if errors.Is(err, crypto.ErrDecrypt) {
			return "", ErrWrongPassphrase
		}
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}

	return token, nil
}

// Info returns the stored credential as-is, without decrypting (для status).
func (s *CredentialStore) Info(ctx context.Context) (*storage.Credential, error) {
	return s.storage.GetCredential(ctx)
}

// Delete removes the stored token. Missing credential is not an error.
func (s *CredentialStore) Delete(ctx context.Context) error {
	err := s.storage.DeleteCredential(ctx)
	if errors.Is(err, storage.ErrCredentialNotFound) {
		return nil
	}
	return err
}
