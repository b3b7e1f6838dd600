package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Period
		wantErr bool
	}{
		{name: "january", input: "2026-01", want: Period{Year: 2026, Month: time.January}},
		{name: "december", input: "2025-12", want: Period{Year: 2025, Month: time.December}},
		{name: "full date rejected", input: "2026-01-05", wantErr: true},
		{name: "month out of range", input: "2026-13", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestPeriod_Calendar(t *testing.T) {
	jan := Period{Year: 2026, Month: time.January}
	assert.Equal(t, 31, jan.Days())
	assert.Equal(t, time.Thursday, jan.FirstWeekday())
	assert.Equal(t, "2026-01-05", jan.Date(5))

	feb := Period{Year: 2028, Month: time.February}
	assert.Equal(t, 29, feb.Days())
}

func TestRecord_KeyAndValue(t *testing.T) {
	r := Record{Date: "2026-01-05", Identity: "User", Value: 70.2}
	assert.Equal(t, RecordKey{Date: "2026-01-05", Identity: "User"}, r.Key())
	assert.True(t, r.HasValue())

	r.Value = math.NaN()
	assert.False(t, r.HasValue())
}
