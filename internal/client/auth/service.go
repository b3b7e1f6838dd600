package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/weightkeeper/internal/client/storage"
	"github.com/iudanet/weightkeeper/internal/validation"
)

// Source tells where the token came from
type Source int

const (
	SourceNone Source = iota
	SourceFlag
	SourceEnv
	SourceStored
	SourcePrompt
)

// String returns the source name
func (s Source) String() string {
	switch s {
	case SourceFlag:
		return "flag"
	case SourceEnv:
		return "environment"
	case SourceStored:
		return "stored"
	case SourcePrompt:
		return "prompt"
	default:
		return "none"
	}
}

// SecretReader reads a secret value without echo
type SecretReader interface {
	ReadPassword(prompt string) (string, error)
}

// Service предоставляет функции работы с токеном доступа
type Service struct {
	store  *CredentialStore
	reader SecretReader
	logger *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(store *CredentialStore, reader SecretReader, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		reader: reader,
		logger: logger,
	}
}

// Login validates and stores the token and returns it.
// Если token пустой, он запрашивается интерактивно.
func (s *Service) Login(ctx context.Context, token, passphrase string) (string, error) {
	if token == "" {
		var err error
		token, err = s.reader.ReadPassword("Token: ")
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
	}

	if err := validation.ValidateToken(token); err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	if err := s.store.Save(ctx, token, passphrase); err != nil {
		return "", fmt.Errorf("failed to save token: %w", err)
	}

	s.logger.Info("Token saved", "encrypted", passphrase != "")
	return token, nil
}

// Logout removes the stored token
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	s.logger.Info("Token removed")
	return nil
}

// Resolve returns the token to use, by priority: flag, environment, stored.
// A stored encrypted token asks for the passphrase via the SecretReader.
// No token at all is not an error: SourceNone and "" are returned.
func (s *Service) Resolve(ctx context.Context, flagToken, envToken string) (string, Source, error) {
	if flagToken != "" {
		return flagToken, SourceFlag, nil
	}
	if envToken != "" {
		return envToken, SourceEnv, nil
	}

	token, err := s.store.Load(ctx, "")
	switch {
	case err == nil:
		return token, SourceStored, nil
	case errors.Is(err, storage.ErrCredentialNotFound):
		return "", SourceNone, nil
	case !errors.Is(err, ErrPassphraseRequired):
		return "", SourceNone, err
	}

	passphrase, err := s.reader.ReadPassword("Passphrase: ")
	if err != nil {
		return "", SourceNone, fmt.Errorf("failed to read passphrase: %w", err)
	}
	token, err = s.store.Load(ctx, passphrase)
	if err != nil {
		return "", SourceNone, err
	}
	return token, SourcePrompt, nil
}

// Stored returns the stored credential without decrypting it
func (s *Service) Stored(ctx context.Context) (*storage.Credential, error) {
	cred, err := s.store.Info(ctx)
	if errors.Is(err, storage.ErrCredentialNotFound) {
		return nil, nil
	}
	return cred, err
}
