package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestISOTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2026, 9, 10, 14, 30, 0, 0, loc)
	assert.Equal(t, "2026-09-10T09:30:00Z", ISOTimestamp(ts))
}

func TestNowISO(t *testing.T) {
	out := NowISO()
	parsed, err := time.Parse(time.RFC3339, out)
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-09-10")
	assert.NoError(t, err)
	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.September, day.Month())
	assert.Equal(t, 10, day.Day())

	_, err = ParseDay("10/09/2026")
	assert.Error(t, err)
}

func TestIsValidDay(t *testing.T) {
	assert.True(t, IsValidDay("2026-09-10"))
	assert.False(t, IsValidDay("soon"))
	assert.False(t, IsValidDay("2026-13-01"))
}
