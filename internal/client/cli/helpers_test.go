package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/weightkeeper/internal/client/records"
	"github.com/iudanet/weightkeeper/internal/models"
)

func calendarRowsFor(t *testing.T, month string, view records.View) [][]string {
	t.Helper()
	period, err := models.ParsePeriod(month)
	require.NoError(t, err)
	return calendarRows(period, view)
}
