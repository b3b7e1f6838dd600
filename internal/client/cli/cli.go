// Package cli implements the weightkeeper command line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/weightkeeper/internal/client/api"
	"github.com/iudanet/weightkeeper/internal/client/auth"
	"github.com/iudanet/weightkeeper/internal/client/iocli"
	"github.com/iudanet/weightkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/weightkeeper/internal/client/sync"
	"github.com/iudanet/weightkeeper/internal/config"
	"github.com/iudanet/weightkeeper/internal/logging"
)

// skipSetup помечает команды, которым не нужна локальная БД
const skipSetup = "skip-setup"

// Cli wires configuration, local storage and the sync service behind
// the cobra command tree.
type Cli struct {
	cfg         *config.Client
	io          iocli.IO
	logger      *slog.Logger
	logOutput   io.Writer
	now         func() time.Time
	store       *boltdb.Storage
	authService *auth.Service
	version     string
	buildDate   string
	flagToken   string
}

// Option configures a Cli
type Option func(*Cli)

// WithLogger sets the logger instead of building one from the config.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cli) {
		c.logger = logger
	}
}

// WithClock overrides the clock used for default dates and commit messages.
func WithClock(now func() time.Time) Option {
	return func(c *Cli) {
		c.now = now
	}
}

// WithVersion sets the build information printed by `version`.
func WithVersion(version, buildDate string) Option {
	return func(c *Cli) {
		c.version = version
		c.buildDate = buildDate
	}
}

// New creates the CLI. cfg holds environment values; flags override them.
func New(cfg *config.Client, io iocli.IO, opts ...Option) *Cli {
	c := &Cli{
		cfg:       cfg,
		io:        io,
		logOutput: os.Stderr,
		now:       time.Now,
		version:   "dev",
		buildDate: "unknown",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs the command line given by args.
func (c *Cli) Execute(ctx context.Context, args []string) error {
	defer c.close()

	cmd := c.Command()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Command builds the root command.
func (c *Cli) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "weightkeeper",
		Short:         "Daily weight log synced to a file in a GitHub repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return c.setup(cmd.Context())
		},
	}
	root.SetOut(c.io)
	root.SetErr(c.io)

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfg.APIURL, "api-url", c.cfg.APIURL, "contents API base URL")
	flags.StringVar(&c.cfg.Owner, "owner", c.cfg.Owner, "repository owner")
	flags.StringVar(&c.cfg.Repo, "repo", c.cfg.Repo, "repository name")
	flags.StringVar(&c.cfg.Path, "path", c.cfg.Path, "data file path inside the repository")
	flags.StringVar(&c.cfg.Identity, "identity", c.cfg.Identity, "name the values are recorded under")
	flags.StringVar(&c.cfg.DBPath, "db", c.cfg.DBPath, "path to local settings database")
	flags.StringVar(&c.flagToken, "token", "", "access token (overrides WEIGHTKEEPER_TOKEN and the stored token)")
	flags.IntVar(&c.cfg.MaxRetries, "max-retries", c.cfg.MaxRetries, "retries after a version conflict")
	flags.DurationVar(&c.cfg.Timeout, "timeout", c.cfg.Timeout, "HTTP request timeout")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newStatusCmd(),
		c.newPullCmd(),
		c.newLogCmd(),
		c.newShowCmd(),
		c.newVersionCmd(),
	)

	return root
}

// setup проверяет конфигурацию и открывает локальную БД
func (c *Cli) setup(ctx context.Context) error {
	if c.logger == nil {
		c.logger = logging.New(c.cfg.LogLevel, c.cfg.LogFormat, c.logOutput)
	}

	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := boltdb.New(ctx, c.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open local storage: %w", err)
	}
	c.store = store
	c.authService = auth.NewService(auth.NewCredentialStore(store, auth.WithClock(c.now)), c.io, c.logger)

	c.logger.Debug("Local storage opened", "path", c.cfg.DBPath)
	return nil
}

func (c *Cli) close() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil && c.logger != nil {
		c.logger.Warn("Failed to close local storage", "error", err)
	}
	c.store = nil
}

// connect resolves the token and returns a sync service bound to it.
func (c *Cli) connect(ctx context.Context) (*sync.Service, error) {
	if err := c.cfg.ValidateLocation(); err != nil {
		return nil, err
	}

	token, source, err := c.authService.Resolve(ctx, c.flagToken, c.cfg.Token)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("%w: run 'weightkeeper login' or set WEIGHTKEEPER_TOKEN", sync.ErrUnauthenticated)
	}
	c.logger.Debug("Token resolved", "source", source.String())

	return c.newSyncService(token), nil
}

func (c *Cli) newSyncService(token string) *sync.Service {
	apiClient := api.NewClientWithTimeout(c.cfg.APIURL, c.cfg.Timeout)
	loc := sync.Location{Owner: c.cfg.Owner, Repo: c.cfg.Repo, Path: c.cfg.Path}

	service := sync.NewService(apiClient, loc, c.logger,
		sync.WithMaxRetries(c.cfg.MaxRetries),
		sync.WithClock(c.now))
	service.SetCredential(token)
	return service
}
