package itemid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOSDateTime_RoundTrip(t *testing.T) {
	stamps := []time.Time{
		time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, time.February, 29, 12, 34, 56, 0, time.UTC),
		time.Date(2107, time.December, 31, 23, 59, 58, 0, time.UTC),
	}

	for _, ts := range stamps {
		d, c := toDOSDateTime(ts)

		got, ok := fromDOSDateTime(d, c)
		require.True(t, ok, ts.String())
		assert.Equal(t, ts, got)
	}
}

func TestDOSDateTime_ConvertsToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2020, time.May, 1, 10, 0, 0, 0, zone)

	d, c := toDOSDateTime(local)
	got, ok := fromDOSDateTime(d, c)
	require.True(t, ok)
	assert.True(t, local.Equal(got))
	assert.Equal(t, 8, got.Hour())
}

func TestToDOSDateTime_OutOfRange(t *testing.T) {
	for _, ts := range []time.Time{
		{},
		time.Date(1979, time.December, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2108, time.January, 1, 0, 0, 0, 0, time.UTC),
	} {
		d, c := toDOSDateTime(ts)
		assert.Zero(t, d)
		assert.Zero(t, c)
	}
}

func TestFromDOSDateTime_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		date, clock uint16
	}{
		{"zero stamp", 0, 0},
		{"month 13", 13<<5 | 1, 0},
		{"day zero", 1 << 5, 0},
		{"february 30", 2<<5 | 30, 0},
		{"hour 24", 1<<5 | 1, 24 << 11},
		{"minute 60", 1<<5 | 1, 60 << 5},
		{"second 60", 1<<5 | 1, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := fromDOSDateTime(tt.date, tt.clock)
			assert.False(t, ok)
		})
	}
}
