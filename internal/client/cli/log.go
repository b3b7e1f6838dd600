package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/weightkeeper/internal/client/reconcile"
	"github.com/iudanet/weightkeeper/internal/csvcodec"
	"github.com/iudanet/weightkeeper/internal/models"
	"github.com/iudanet/weightkeeper/internal/validation"
)

func (c *Cli) newLogCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log <value>",
		Short: "Record a value for a day and save it to the repository",
		Example: `  weightkeeper log 72.4
  weightkeeper log 71.9 --date 2026-01-03`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLog(cmd.Context(), args[0], date)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day in YYYY-MM-DD format (default today)")

	return cmd
}

func (c *Cli) runLog(ctx context.Context, raw, date string) error {
	raw = strings.TrimSpace(raw)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", raw, reconcile.ErrRejected)
	}
	if err := validation.ValidateValue(value, c.cfg.MaxValue); err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	if date == "" {
		date = c.now().Format(models.DateFormat)
	}
	if err := validation.ValidateDate(date); err != nil {
		return err
	}

	service, err := c.connect(ctx)
	if err != nil {
		return err
	}
	if err := service.Refresh(ctx); err != nil {
		return err
	}

	result, err := service.Save(ctx, reconcile.Edit{
		Date:     date,
		Identity: c.cfg.Identity,
		Raw:      raw,
	})
	if err != nil {
		return err
	}
	c.recordSync(ctx, service)

	c.io.Printf("Saved %s for %s on %s (revision %s).\n",
		csvcodec.FormatValue(value), c.cfg.Identity, date, shortSHA(result.Revision))
	if result.Retries() > 0 {
		c.io.Printf("The file changed remotely; merged after %d retries.\n", result.Retries())
	}
	return nil
}
