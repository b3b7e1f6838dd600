package sync_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/weightkeeper/internal/client/api"
	"github.com/iudanet/weightkeeper/internal/client/reconcile"
	"github.com/iudanet/weightkeeper/internal/client/records"
	"github.com/iudanet/weightkeeper/internal/client/sync"
	"github.com/iudanet/weightkeeper/internal/models"
	"github.com/iudanet/weightkeeper/internal/server"
	"github.com/iudanet/weightkeeper/internal/server/handlers"
	"github.com/iudanet/weightkeeper/internal/server/storage/sqlite"
	pkgapi "github.com/iudanet/weightkeeper/pkg/api"
)

var location = sync.Location{Owner: "octocat", Repo: "health", Path: "weight_log.csv"}

// interceptingAPI пропускает вызовы к настоящему клиенту и дает вмешаться перед PUT
type interceptingAPI struct {
	*api.Client
	beforePut func()
}

func (a *interceptingAPI) PutContents(ctx context.Context, token, path string, req pkgapi.PutContentRequest) (*pkgapi.PutContentResponse, error) {
	if a.beforePut != nil {
		hook := a.beforePut
		a.beforePut = nil
		hook()
	}
	return a.Client.PutContents(ctx, token, path, req)
}

func startServer(t *testing.T) (string, string) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "contentd.db"))
	require.NoError(t, err)

	jwtCfg := handlers.JWTConfig{Secret: []byte("integration-secret-0123"), TokenTTL: time.Hour}
	srv := server.New(server.Config{JWT: jwtCfg, Version: "test"}, store, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
		_ = store.Close()
	})

	token, _, err := handlers.GenerateAccessToken(jwtCfg, location.Owner)
	require.NoError(t, err)
	return ts.URL, token
}

func newClientService(baseURL, token string, apiClient sync.ContentAPI) *sync.Service {
	if apiClient == nil {
		apiClient = api.NewClient(baseURL)
	}
	s := sync.NewService(apiClient, location, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.SetCredential(token)
	return s
}

func TestIntegration_CreateThenReadBack(t *testing.T) {
	baseURL, token := startServer(t)
	ctx := context.Background()

	alice := newClientService(baseURL, token, nil)
	require.NoError(t, alice.Start(ctx))
	assert.Empty(t, alice.Revision())

	result, err := alice.Save(ctx, reconcile.Edit{Date: "2026-01-05", Identity: "Alice", Raw: "72.4"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Retries())
	assert.NotEmpty(t, result.Revision)

	bob := newClientService(baseURL, token, nil)
	require.NoError(t, bob.Refresh(ctx))

	assert.Equal(t, result.Revision, bob.Revision())
	assert.Equal(t, []models.Record{{Date: "2026-01-05", Identity: "Alice", Value: 72.4}}, bob.Records())
}

func TestIntegration_ForeignWriteIsMerged(t *testing.T) {
	baseURL, token := startServer(t)
	ctx := context.Background()
	january := models.Period{Year: 2026, Month: time.January}

	bob := newClientService(baseURL, token, nil)
	intercepting := &interceptingAPI{Client: api.NewClient(baseURL)}
	alice := newClientService(baseURL, token, intercepting)

	require.NoError(t, alice.Refresh(ctx))
	require.NoError(t, bob.Refresh(ctx))

	// Bob пишет между чтением и записью Alice
	intercepting.beforePut = func() {
		_, err := bob.Save(ctx, reconcile.Edit{Date: "2026-01-05", Identity: "Bob", Raw: "81"})
		require.NoError(t, err)
	}

	result, err := alice.Save(ctx, reconcile.Edit{Date: "2026-01-05", Identity: "Alice", Raw: "72.4"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Retries())

	checker := newClientService(baseURL, token, nil)
	require.NoError(t, checker.Refresh(ctx))

	assert.Equal(t, result.Revision, checker.Revision())
	assert.Equal(t, records.View{5: 72.4}, checker.View("Alice", january))
	assert.Equal(t, records.View{5: 81}, checker.View("Bob", january))
}

func TestIntegration_WrongOwnerIsUnauthorized(t *testing.T) {
	baseURL, _ := startServer(t)

	other := newClientService(baseURL, "not-a-token", nil)
	err := other.Refresh(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}
