package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/weightkeeper/internal/config"
	"github.com/iudanet/weightkeeper/internal/logging"
	"github.com/iudanet/weightkeeper/internal/server"
	"github.com/iudanet/weightkeeper/internal/server/handlers"
	"github.com/iudanet/weightkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/weightkeeper/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if _, err := config.LoadEnv(config.DefaultEnvFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "contentd",
		Short:         "Self-hosted repository content API for weightkeeper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCommand(), tokenCommand(), versionCommand())
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Server, error) {
	cfg, err := config.LoadServer(nil)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("addr") {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("ttl") {
		cfg.TokenTTL, _ = cmd.Flags().GetDuration("ttl")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func jwtConfig(cfg *config.Server) handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.TokenTTL,
	}
}

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the content API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
			logger.Info("Starting contentd",
				"version", Version,
				"build_date", BuildDate,
				"git_commit", GitCommit,
				"db", cfg.DBPath,
			)

			store, err := sqlite.New(cmd.Context(), cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Error("Failed to close storage", "error", err)
				}
			}()

			srv := server.New(server.Config{
				JWT:            jwtConfig(cfg),
				Version:        Version,
				RateLimitRPS:   cfg.RateLimitRPS,
				RateLimitBurst: cfg.RateLimitBurst,
			}, store, logger)

			return srv.Run(cmd.Context(), cfg.Addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides CONTENTD_ADDR)")
	cmd.Flags().String("db", "", "SQLite database path (overrides CONTENTD_DB_PATH)")
	return cmd
}

func tokenCommand() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a repository owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !validation.OwnerPattern.MatchString(user) {
				return fmt.Errorf("invalid user %q: letters, numbers, '-' and '_' only", user)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			token, expiresAt, err := handlers.GenerateAccessToken(jwtConfig(cfg), user)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "Token for %s expires at %s\n", user, expiresAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "repository owner the token grants access to")
	cmd.Flags().Duration("ttl", 0, "token lifetime (overrides CONTENTD_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "contentd\n")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}
