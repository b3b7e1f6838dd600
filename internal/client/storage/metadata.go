package storage

import "context"

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveSyncInfo saves information about the last successful sync
	SaveSyncInfo(ctx context.Context, info *SyncInfo) error

	// GetSyncInfo returns a zero SyncInfo if no sync has been performed yet
	GetSyncInfo(ctx context.Context) (*SyncInfo, error)
}

// SyncInfo describes the last successful read or write.
// Informational only: the revision here is never sent as a write token.
type SyncInfo struct {
	Revision string `json:"revision"`
	Records  int    `json:"records"`
	SyncedAt int64  `json:"synced_at"`
}
