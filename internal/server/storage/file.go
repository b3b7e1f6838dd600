package storage

import (
	"context"
	"time"
)

// FileStorage defines interface for versioned file persistence.
// Каждая запись проверяет базовую ревизию и создает коммит.
type FileStorage interface {
	// GetFile returns ErrFileNotFound if the file doesn't exist
	GetFile(ctx context.Context, key FileKey) (*File, error)

	// PutFile writes the file if req.BaseSHA equals its current revision.
	// An empty BaseSHA means the file must not exist yet.
	// Returns ErrRevisionMismatch otherwise; nothing is written in that case.
	PutFile(ctx context.Context, req *PutFileRequest) (*PutFileResult, error)

	// ListCommits returns the newest commits of a file first
	ListCommits(ctx context.Context, key FileKey, limit int) ([]*Commit, error)
}

// FileKey identifies a file in a repository
type FileKey struct {
	Owner string
	Repo  string
	Path  string
}

// File is the stored content of one path
type File struct {
	UpdatedAt time.Time
	Content   []byte
	FileKey
	SHA  string
	Size int64
}

// Commit records one successful write
type Commit struct {
	CreatedAt time.Time
	FileKey
	ID      string
	SHA     string
	Message string
	Author  string
}

// PutFileRequest contains a conditional write
type PutFileRequest struct {
	Content []byte
	FileKey
	BaseSHA string
	Message string
	Author  string
}

// PutFileResult contains the written file and its commit
type PutFileResult struct {
	File    *File
	Commit  *Commit
	Created bool
}
