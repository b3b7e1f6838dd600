package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/weightkeeper/internal/client/api"
	"github.com/iudanet/weightkeeper/internal/client/reconcile"
	"github.com/iudanet/weightkeeper/internal/client/records"
	"github.com/iudanet/weightkeeper/internal/csvcodec"
	"github.com/iudanet/weightkeeper/internal/models"
	pkgapi "github.com/iudanet/weightkeeper/pkg/api"
)

// DefaultMaxRetries количество повторов записи после конфликта версий
const DefaultMaxRetries = 2

//go:generate moq -out contentapi_mock_test.go . ContentAPI

// ContentAPI is the versioned read/write surface of the remote repository.
type ContentAPI interface {
	GetContents(ctx context.Context, token, path string) (*pkgapi.ContentFile, error)
	PutContents(ctx context.Context, token, path string, req pkgapi.PutContentRequest) (*pkgapi.PutContentResponse, error)
}

// Location identifies the data file in the remote repository.
type Location struct {
	Owner string
	Repo  string
	Path  string
}

// State is the phase of the synchronization cycle.
type State int

const (
	StateIdle State = iota
	StateReading
	StateWriting
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateWriting:
		return "writing"
	default:
		return "idle"
	}
}

// SaveResult contains save operation results
type SaveResult struct {
	Revision string // новая ревизия файла после записи
	Commit   string // идентификатор коммита, если сервер его вернул
	Attempts int    // количество попыток PUT (1 + число повторов)
}

// Retries returns the number of conflict retries performed.
func (r *SaveResult) Retries() int {
	return r.Attempts - 1
}

// Option configures a Service
type Option func(*Service)

// WithMaxRetries sets the conflict retry budget.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithClock overrides the clock used for commit messages.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service owns the local record set and the revision token and keeps them in
// step with the remote file. At most one read or write cycle runs at a time;
// a conflict retry (re-read, replay, re-write) runs inside the same cycle.
type Service struct {
	apiClient  ContentAPI
	store      *records.Store
	reconciler *reconcile.Reconciler
	logger     *slog.Logger
	now        func() time.Time
	loc        Location
	path       string
	token      string
	revision   string
	maxRetries int
	state      State
	cycle      sync.Mutex
	mu         sync.RWMutex
}

// NewService creates a new sync service with an empty record set
func NewService(apiClient ContentAPI, loc Location, logger *slog.Logger, opts ...Option) *Service {
	store := records.NewStore()
	s := &Service{
		apiClient:  apiClient,
		store:      store,
		reconciler: reconcile.New(store),
		logger:     logger,
		now:        time.Now,
		loc:        loc,
		path:       api.ContentsPath(loc.Owner, loc.Repo, loc.Path),
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCredential sets the bearer token and resets the record set and the
// revision token. An empty token logs out.
func (s *Service) SetCredential(token string) {
	s.cycle.Lock()
	defer s.cycle.Unlock()

	s.mu.Lock()
	s.token = token
	s.revision = ""
	s.mu.Unlock()

	s.store.Reset()
}

// HasCredential reports whether a token is set.
func (s *Service) HasCredential() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Revision returns the last known revision token ("" if none).
func (s *Service) Revision() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// State returns the current cycle phase.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Location returns the remote file location.
func (s *Service) Location() Location {
	return s.loc
}

// Records returns a copy of the local record set.
func (s *Service) Records() []models.Record {
	return s.store.All()
}

// View returns the filtered view for identity and period.
func (s *Service) View(identity string, period models.Period) records.View {
	return s.store.FilterFor(identity, period)
}

// Start performs the initial read when a credential is present.
func (s *Service) Start(ctx context.Context) error {
	if !s.HasCredential() {
		s.logger.Info("No token configured, skipping initial sync")
		return nil
	}
	return s.Refresh(ctx)
}

// Refresh reads the remote file and replaces the local record set.
// A missing file is an empty record set, not an error. On failure the
// local state is left untouched.
func (s *Service) Refresh(ctx context.Context) error {
	s.cycle.Lock()
	defer s.cycle.Unlock()

	token, ok := s.credential()
	if !ok {
		return ErrUnauthenticated
	}

	return s.read(ctx, token)
}

// Save applies the pending edit and writes the whole record set back.
// On a version conflict the remote file is re-read, the same edit is
// replayed on top of it and the write is retried, at most maxRetries times.
func (s *Service) Save(ctx context.Context, edit reconcile.Edit) (*SaveResult, error) {
	s.cycle.Lock()
	defer s.cycle.Unlock()

	token, ok := s.credential()
	if !ok {
		return nil, ErrUnauthenticated
	}

	if err := s.reconciler.Apply(edit); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		resp, err := s.write(ctx, token, edit.Identity)
		if err == nil {
			s.logger.Info("File saved",
				"path", s.loc.Path,
				"revision", resp.Content.SHA,
				"attempts", attempt)
			return &SaveResult{
				Revision: resp.Content.SHA,
				Commit:   resp.Commit.SHA,
				Attempts: attempt,
			}, nil
		}

		if !errors.Is(err, api.ErrConflict) {
			return nil, &TransportError{Op: "write", Err: err}
		}

		if attempt > s.maxRetries {
			s.logger.Warn("Version conflict, retry budget exhausted",
				"path", s.loc.Path,
				"attempts", attempt)
			return nil, fmt.Errorf("%w (after %d attempts)", ErrVersionConflict, attempt)
		}

		s.logger.Warn("Version conflict detected, retrying",
			"path", s.loc.Path,
			"retry", attempt)

		// Перечитываем файл и повторно применяем ту же правку поверх свежих данных
		if err := s.read(ctx, token); err != nil {
			return nil, fmt.Errorf("re-read after conflict: %w", err)
		}
		if err := s.reconciler.Apply(edit); err != nil {
			return nil, err
		}
	}
}

func (s *Service) credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// read выполняет фазу Reading. Вызывается только под s.cycle.
func (s *Service) read(ctx context.Context, token string) error {
	s.setState(StateReading)
	defer s.setState(StateIdle)

	file, err := s.apiClient.GetContents(ctx, token, s.path)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			s.logger.Info("No data file found, starting fresh", "path", s.loc.Path)
			s.store.Reset()
			s.mu.Lock()
			s.revision = ""
			s.mu.Unlock()
			return nil
		}
		return &TransportError{Op: "read", Err: err}
	}

	content, err := pkgapi.DecodeContent(file.Content)
	if err != nil {
		return &TransportError{Op: "read", Err: err}
	}

	recs := csvcodec.Decode(string(content))
	s.store.ReplaceAll(recs)
	s.mu.Lock()
	s.revision = file.SHA
	s.mu.Unlock()

	s.logger.Info("File loaded",
		"path", s.loc.Path,
		"revision", file.SHA,
		"records", len(recs))

	return nil
}

// write выполняет фазу Writing. Вызывается только под s.cycle.
func (s *Service) write(ctx context.Context, token, identity string) (*pkgapi.PutContentResponse, error) {
	s.setState(StateWriting)
	defer s.setState(StateIdle)

	content := csvcodec.Encode(s.store.All())
	req := pkgapi.PutContentRequest{
		Message: fmt.Sprintf("Update %s - %s", identity, s.now().UTC().Format(time.RFC3339)),
		Content: pkgapi.EncodeContent([]byte(content)),
		SHA:     s.Revision(),
	}

	resp, err := s.apiClient.PutContents(ctx, token, s.path, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.revision = resp.Content.SHA
	s.mu.Unlock()

	return resp, nil
}
