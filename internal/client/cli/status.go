package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, token and last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Printf("API:       %s\n", c.cfg.APIURL)
	if err := c.cfg.ValidateLocation(); err != nil {
		c.io.Println("Location:  not configured")
	} else {
		c.io.Printf("Location:  %s\n", c.locationString())
	}
	c.io.Printf("Identity:  %s\n", c.cfg.Identity)

	token, err := c.tokenStatus(ctx)
	if err != nil {
		return err
	}
	c.io.Printf("Token:     %s\n", token)

	info, err := c.store.GetSyncInfo(ctx)
	if err != nil {
		return err
	}
	if info.SyncedAt == 0 {
		c.io.Println("Last sync: never")
		return nil
	}
	c.io.Printf("Last sync: %s, revision %s, %d records\n",
		time.Unix(info.SyncedAt, 0).UTC().Format(time.RFC3339), shortSHA(info.Revision), info.Records)

	return nil
}

// tokenStatus describes where the token would come from, without
// decrypting anything.
func (c *Cli) tokenStatus(ctx context.Context) (string, error) {
	switch {
	case c.flagToken != "":
		return "from --token flag", nil
	case c.cfg.Token != "":
		return "from WEIGHTKEEPER_TOKEN", nil
	}

	cred, err := c.authService.Stored(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read stored token: %w", err)
	}
	if cred == nil {
		return "not set (run 'weightkeeper login')", nil
	}

	savedAt := time.Unix(cred.SavedAt, 0).UTC().Format(time.RFC3339)
	if cred.Encrypted {
		return "stored, encrypted (saved " + savedAt + ")", nil
	}
	return "stored (saved " + savedAt + ")", nil
}
