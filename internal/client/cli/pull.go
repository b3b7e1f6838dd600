package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/weightkeeper/internal/client/storage"
	"github.com/iudanet/weightkeeper/internal/client/sync"
)

func (c *Cli) newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Load the data file from the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			service, err := c.connect(ctx)
			if err != nil {
				return err
			}
			if err := service.Refresh(ctx); err != nil {
				return err
			}
			c.recordSync(ctx, service)

			if service.Revision() == "" {
				c.io.Printf("%s does not exist yet, it will be created on the first save.\n", c.locationString())
				return nil
			}
			c.io.Printf("Loaded %d records (revision %s).\n", len(service.Records()), shortSHA(service.Revision()))
			return nil
		},
	}
}

// recordSync сохраняет сведения о последней синхронизации; ошибка только логируется
func (c *Cli) recordSync(ctx context.Context, service *sync.Service) {
	info := &storage.SyncInfo{
		Revision: service.Revision(),
		Records:  len(service.Records()),
		SyncedAt: c.now().Unix(),
	}
	if err := c.store.SaveSyncInfo(ctx, info); err != nil {
		c.logger.Warn("Failed to save sync info", "error", err)
	}
}

func (c *Cli) locationString() string {
	return c.cfg.Owner + "/" + c.cfg.Repo + "/" + c.cfg.Path
}

func shortSHA(sha string) string {
	if sha == "" {
		return "-"
	}
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
