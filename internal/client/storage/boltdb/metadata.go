package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/weightkeeper/internal/client/storage"
)

var syncInfoKey = []byte("last_sync")

// SaveSyncInfo saves information about the last successful sync
func (s *Storage) SaveSyncInfo(ctx context.Context, info *storage.SyncInfo) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data, err := json.Marshal(info)
		if err != nil {
			return fmt.Errorf("failed to marshal sync info: %w", err)
		}

		if err := bucket.Put(syncInfoKey, data); err != nil {
			return fmt.Errorf("failed to save sync info: %w", err)
		}

		return nil
	})
}

// GetSyncInfo retrieves information about the last successful sync
// Returns a zero value if no sync has been performed yet
func (s *Storage) GetSyncInfo(ctx context.Context) (*storage.SyncInfo, error) {
	info := &storage.SyncInfo{}

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get(syncInfoKey)
		if data == nil {
			return nil
		}

		return json.Unmarshal(data, info)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get sync info: %w", err)
	}

	return info, nil
}
