package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/weightkeeper/internal/client/storage"
)

var credentialKey = []byte("credential")

// SaveCredential stores the credential
func (s *Storage) SaveCredential(ctx context.Context, cred *storage.Credential) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		data, err := json.Marshal(cred)
		if err != nil {
			return fmt.Errorf("failed to marshal credential: %w", err)
		}

		if err := bucket.Put(credentialKey, data); err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}

		return nil
	})
}

// GetCredential retrieves the stored credential
func (s *Storage) GetCredential(ctx context.Context) (*storage.Credential, error) {
	var cred *storage.Credential

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		data := bucket.Get(credentialKey)
		if data == nil {
			return storage.ErrCredentialNotFound
		}

		cred = &storage.Credential{}
		if err := json.Unmarshal(data, cred); err != nil {
			return fmt.Errorf("failed to unmarshal credential: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cred, nil
}

// DeleteCredential removes the stored credential (logout)
func (s *Storage) DeleteCredential(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		if bucket.Get(credentialKey) == nil {
			return storage.ErrCredentialNotFound
		}

		if err := bucket.Delete(credentialKey); err != nil {
			return fmt.Errorf("failed to delete credential: %w", err)
		}

		// Сведения о синхронизации относятся к старому токену
		if mb := tx.Bucket(bucketMetadata); mb != nil {
			if err := mb.Delete(syncInfoKey); err != nil {
				return fmt.Errorf("failed to clear sync info: %w", err)
			}
		}

		return nil
	})
}
