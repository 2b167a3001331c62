package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundvault/soundvault/internal/lib/period"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       period.Period
		wantPrice  int
		wantMonths int
		wantErr    bool
	}{
		{name: "month", input: "month", want: period.Month, wantPrice: 7, wantMonths: 1},
		{name: "quarter", input: "quarter", want: period.Quarter, wantPrice: 21, wantMonths: 3},
		{name: "semester", input: "semester", want: period.Semester, wantPrice: 42, wantMonths: 6},
		{name: "unknown period", input: "year", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "case sensitive", input: "Month", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := period.Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, period.ErrUnknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPrice, got.Price())
			assert.Equal(t, tt.wantMonths, got.Months())
		})
	}
}

func TestPeriod_End(t *testing.T) {
	start := time.Date(2024, 11, 30, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC), period.Month.End(start))
	assert.Equal(t, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), period.Quarter.End(start))
	assert.Equal(t, time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC), period.Semester.End(start))
}
