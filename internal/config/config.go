// Package config loads client and server settings from the environment
// and optional .env files.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/iudanet/weightkeeper/internal/validation"
)

// DefaultEnvFiles are loaded, if present, before parsing the environment
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnv loads existing files from envFiles into the process environment.
// Already set variables are not overridden. Returns the number of files loaded.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}

	return len(existing), godotenv.Load(existing...)
}

// Client holds the client settings
type Client struct {
	APIURL     string        `env:"API_URL" envDefault:"https://api.github.com"`
	Owner      string        `env:"OWNER"`
	Repo       string        `env:"REPO"`
	Path       string        `env:"PATH" envDefault:"weight_log.csv"`
	Identity   string        `env:"IDENTITY" envDefault:"User"`
	DBPath     string        `env:"DB_PATH"`
	Token      string        `env:"TOKEN"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat  string        `env:"LOG_FORMAT" envDefault:"text"`
	MaxValue   float64       `env:"MAX_VALUE" envDefault:"300"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxRetries int           `env:"MAX_RETRIES" envDefault:"2"`
}

// Server holds the content server settings
type Server struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	DBPath         string        `env:"DB_PATH" envDefault:"contentd.db"`
	JWTSecret      string        `env:"JWT_SECRET"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"text"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

const (
	clientPrefix = "WEIGHTKEEPER_"
	serverPrefix = "CONTENTD_"

	minSecretLen = 16
)

// ErrSecretRequired indicates that the JWT secret is missing or too short
var ErrSecretRequired = fmt.Errorf("CONTENTD_JWT_SECRET must be at least %d characters", minSecretLen)

// LoadClient parses WEIGHTKEEPER_* variables.
// A nil environ means the process environment.
func LoadClient(environ map[string]string) (*Client, error) {
	c := &Client{}
	if err := env.ParseWithOptions(c, env.Options{Prefix: clientPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath()
	}
	return c, nil
}

// LoadServer parses CONTENTD_* variables.
// A nil environ means the process environment.
func LoadServer(environ map[string]string) (*Server, error) {
	c := &Server{}
	if err := env.ParseWithOptions(c, env.Options{Prefix: serverPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	return c, nil
}

// DefaultDBPath returns ~/.weightkeeper/weightkeeper.db, or a relative
// path if the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weightkeeper.db"
	}
	return filepath.Join(home, ".weightkeeper", "weightkeeper.db")
}

// Validate checks the settings that do not depend on the command.
func (c *Client) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API URL: %q", c.APIURL)
	}
	if err := validation.ValidateIdentity(c.Identity); err != nil {
		return err
	}
	if c.MaxValue <= 0 {
		return fmt.Errorf("max value must be positive, got %g", c.MaxValue)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", c.MaxRetries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// ValidateLocation checks that the remote file location is fully set.
func (c *Client) ValidateLocation() error {
	var errs []error
	if c.Owner == "" {
		errs = append(errs, errors.New("owner is not set (--owner or WEIGHTKEEPER_OWNER)"))
	}
	if c.Repo == "" {
		errs = append(errs, errors.New("repository is not set (--repo or WEIGHTKEEPER_REPO)"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return validation.ValidateLocation(c.Owner, c.Repo, c.Path)
}

// Validate checks the server settings needed to serve requests.
func (c *Server) Validate() error {
	if len(c.JWTSecret) < minSecretLen {
		return ErrSecretRequired
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive, got %s", c.TokenTTL)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}
	return nil
}
