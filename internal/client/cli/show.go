package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/iudanet/weightkeeper/internal/client/records"
	"github.com/iudanet/weightkeeper/internal/models"
)

func (c *Cli) newShowCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a month calendar with the recorded values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), month)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month in YYYY-MM format (default current month)")

	return cmd
}

func (c *Cli) runShow(ctx context.Context, month string) error {
	period := models.PeriodOf(c.now())
	if month != "" {
		var err error
		if period, err = models.ParsePeriod(month); err != nil {
			return err
		}
	}

	service, err := c.connect(ctx)
	if err != nil {
		return err
	}
	if err := service.Refresh(ctx); err != nil {
		return err
	}
	c.recordSync(ctx, service)

	view := service.View(c.cfg.Identity, period)

	c.io.Printf("%s, %s\n", c.cfg.Identity, period)
	if err := renderCalendar(c.io, period, view); err != nil {
		return fmt.Errorf("failed to render calendar: %w", err)
	}
	c.io.Println(formatSummary(view))
	return nil
}

var weekdayHeader = []any{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// calendarRows раскладывает дни месяца по неделям, начиная с воскресенья.
// Ячейка: "5" или "5: 72.4" если есть значение.
func calendarRows(period models.Period, view records.View) [][]string {
	var rows [][]string
	week := make([]string, 7)
	col := int(period.FirstWeekday())

	for day := 1; day <= period.Days(); day++ {
		cell := strconv.Itoa(day)
		if v, ok := view[day]; ok {
			cell += ": " + strconv.FormatFloat(v, 'f', 1, 64)
		}
		week[col] = cell

		col++
		if col == 7 {
			rows = append(rows, week)
			week = make([]string, 7)
			col = 0
		}
	}
	if col > 0 {
		rows = append(rows, week)
	}

	return rows
}

func renderCalendar(w io.Writer, period models.Period, view records.View) error {
	table := tablewriter.NewWriter(w)
	table.Header(weekdayHeader...)
	for _, row := range calendarRows(period, view) {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// formatSummary returns the start, current and change line for the view.
func formatSummary(view records.View) string {
	summary, ok := view.Summary()
	if !ok {
		return "Start: --  Current: --  Change: --"
	}

	sign := ""
	if summary.Change > 0 {
		sign = "+"
	}
	return fmt.Sprintf("Start: %.1f  Current: %.1f  Change: %s%.1f kg (%s)",
		summary.Start, summary.Current, sign, summary.Change, summary.Trend)
}
