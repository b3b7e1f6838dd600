package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/weightkeeper/internal/crypto"
	"github.com/iudanet/weightkeeper/internal/server/storage"
)

// GetFile retrieves the current content of a file
// Returns ErrFileNotFound if file doesn't exist
func (s *Storage) GetFile(ctx context.Context, key storage.FileKey) (*storage.File, error) {
	query := `
		SELECT sha, content, size, updated_at
		FROM files
		WHERE owner = ? AND repo = ? AND path = ?
	`

	file := &storage.File{FileKey: key}
	var updatedAt int64

	err := s.db.QueryRowContext(ctx, query, key.Owner, key.Repo, key.Path).Scan(
		&file.SHA,
		&file.Content,
		&file.Size,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	file.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return file, nil
}

// PutFile creates or updates a file if the base revision matches.
// Запись и коммит выполняются в одной транзакции; UPDATE с условием по sha
// не дает двум писателям с одной базой оба пройти.
func (s *Storage) PutFile(ctx context.Context, req *storage.PutFileRequest) (*storage.PutFileResult, error) {
	now := s.now().UTC()
	sha := crypto.BlobSHA(req.Content)
	created := req.BaseSHA == ""

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var res sql.Result
	if created {
		res, err = tx.ExecContext(ctx, `
			INSERT INTO files (owner, repo, path, sha, content, size, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (owner, repo, path) DO NOTHING
		`, req.Owner, req.Repo, req.Path, sha, req.Content, len(req.Content), now.Unix())
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE files
			SET sha = ?, content = ?, size = ?, updated_at = ?
			WHERE owner = ? AND repo = ? AND path = ? AND sha = ?
		`, sha, req.Content, len(req.Content), now.Unix(), req.Owner, req.Repo, req.Path, req.BaseSHA)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check write: %w", err)
	}
	if affected == 0 {
		return nil, storage.ErrRevisionMismatch
	}

	commit := &storage.Commit{
		FileKey:   req.FileKey,
		ID:        uuid.NewString(),
		SHA:       sha,
		Message:   req.Message,
		Author:    req.Author,
		CreatedAt: now,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO commits (id, owner, repo, path, sha, message, author, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, commit.ID, req.Owner, req.Repo, req.Path, commit.SHA, commit.Message, commit.Author, now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to insert commit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &storage.PutFileResult{
		File: &storage.File{
			FileKey:   req.FileKey,
			SHA:       sha,
			Content:   req.Content,
			Size:      int64(len(req.Content)),
			UpdatedAt: time.Unix(now.Unix(), 0).UTC(),
		},
		Commit:  commit,
		Created: created,
	}, nil
}

// ListCommits returns up to limit commits of a file, newest first
func (s *Storage) ListCommits(ctx context.Context, key storage.FileKey, limit int) ([]*storage.Commit, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sha, message, author, created_at
		FROM commits
		WHERE owner = ? AND repo = ? AND path = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, key.Owner, key.Repo, key.Path, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits: %w", err)
	}
	defer rows.Close()

	var commits []*storage.Commit
	for rows.Next() {
		commit := &storage.Commit{FileKey: key}
		var createdAt int64
		if err := rows.Scan(&commit.ID, &commit.SHA, &commit.Message, &commit.Author, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan commit: %w", err)
		}
		commit.CreatedAt = time.Unix(0, createdAt).UTC()
		commits = append(commits, commit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commits: %w", err)
	}

	return commits, nil
}
