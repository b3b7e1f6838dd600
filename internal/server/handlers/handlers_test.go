package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/weightkeeper/internal/server/storage/sqlite"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestStorage создает sqlite хранилище во временной директории
func setupTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	s, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "contentd.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

// asUser подставляет аутентифицированного пользователя вместо auth middleware
func asUser(username string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username != "" {
				r = r.WithContext(WithUsername(r.Context(), username))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// newContentsRouter собирает роутер с ContentsHandler для пользователя username
func newContentsRouter(t *testing.T, username string) http.Handler {
	t.Helper()

	h := NewContentsHandler(setupTestLogger(), setupTestStorage(t))

	r := chi.NewRouter()
	r.Use(asUser(username))
	r.Get("/repos/{owner}/{repo}/contents/*", h.GetContents)
	r.Put("/repos/{owner}/{repo}/contents/*", h.PutContents)
	r.Get("/repos/{owner}/{repo}/commits", h.ListCommits)
	return r
}
