package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goto/intake/domain"
)

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)

	tests := []struct {
		raw    string
		want   time.Time
		wantOK bool
	}{
		{raw: "2024-01-08T09:00:00.000Z", want: time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), wantOK: true},
		{raw: "2024-01-08T09:00:00-06:00", want: time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC), wantOK: true},
		{raw: "2024-01-08T09:00", want: time.Date(2024, 1, 8, 9, 0, 0, 0, loc), wantOK: true},
		{raw: "2024-01-08 09:30:00", want: time.Date(2024, 1, 8, 9, 30, 0, 0, loc), wantOK: true},
		{raw: " 2024-01-08 ", want: time.Date(2024, 1, 8, 0, 0, 0, 0, loc), wantOK: true},
		{raw: ""},
		{raw: "08/01/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := domain.ParseTimestamp(tt.raw, loc)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	assert.Equal(t, "2024-01-08T15:00:00Z", domain.FormatTimestamp(time.Date(2024, 1, 8, 9, 0, 0, 0, loc)))
}

func TestFormatDeadline(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	assert.Equal(t, "2024-03-01", domain.FormatDeadline(time.Date(2024, time.March, 1, 0, 0, 0, 0, zone)))
	assert.Equal(t, "2024-03-01T05:00:01Z", domain.FormatDeadline(time.Date(2024, time.March, 1, 0, 0, 1, 0, zone)))
	assert.Equal(t, "2024-03-01", domain.FormatDate(time.Date(2024, time.March, 1, 23, 0, 0, 0, zone)))
}
