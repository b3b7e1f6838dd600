package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) newLoginCmd() *cobra.Command {
	var encrypt bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save the access token and load the data file",
		Long: `Save the access token in the local settings database.

The token is taken from --token, then WEIGHTKEEPER_TOKEN, otherwise it is
read from the terminal without echo. With --encrypt the stored token is
encrypted with a passphrase asked for on every later run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context(), encrypt)
		},
	}
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "encrypt the stored token with a passphrase")

	return cmd
}

func (c *Cli) runLogin(ctx context.Context, encrypt bool) error {
	token := c.flagToken
	if token == "" {
		token = c.cfg.Token
	}

	var passphrase string
	if encrypt {
		var err error
		if passphrase, err = c.readNewPassphrase(); err != nil {
			return err
		}
	}

	token, err := c.authService.Login(ctx, token, passphrase)
	if err != nil {
		return err
	}
	c.io.Println("Token saved.")

	if err := c.cfg.ValidateLocation(); err != nil {
		c.io.Println("Set --owner and --repo (or WEIGHTKEEPER_OWNER, WEIGHTKEEPER_REPO) to sync.")
		return nil
	}

	service := c.newSyncService(token)
	if err := service.Refresh(ctx); err != nil {
		return fmt.Errorf("token saved, but loading the data file failed: %w", err)
	}
	c.recordSync(ctx, service)

	c.io.Printf("Loaded %d records from %s.\n", len(service.Records()), c.locationString())
	return nil
}

func (c *Cli) readNewPassphrase() (string, error) {
	first, err := c.io.ReadPassword("Passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	if first == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}
	second, err := c.io.ReadPassword("Repeat passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	if first != second {
		return "", fmt.Errorf("passphrases do not match")
	}
	return first, nil
}
