package reltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{5 * time.Minute, "5 min ago"},
		{2 * time.Hour, "2 hr ago"},
		{26 * time.Hour, "1 day ago"},
		{3 * 24 * time.Hour, "3 days ago"},
		{8 * 24 * time.Hour, "1 week ago"},
		{21 * 24 * time.Hour, "3 weeks ago"},
		{45 * 24 * time.Hour, "1 month ago"},
		{70 * 24 * time.Hour, "2 months ago"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Format(now.Add(-c.age), now), "age %v", c.age)
	}
}

func TestInCurrentMonth(t *testing.T) {
	// sortDate wins over the display string
	assert.True(t, InCurrentMonth("3 months ago", now.Add(-24*time.Hour), now))
	assert.False(t, InCurrentMonth("2 hr ago", now.AddDate(0, -2, 0), now))

	// "Just now" always counts
	assert.True(t, InCurrentMonth("Just now", time.Time{}, now))

	// parsed relative strings
	assert.True(t, InCurrentMonth("2 hr ago", time.Time{}, now))
	assert.True(t, InCurrentMonth("3 days ago", time.Time{}, now))
	assert.False(t, InCurrentMonth("3 weeks ago", time.Time{}, now))
	assert.False(t, InCurrentMonth("2 months ago", time.Time{}, now))

	// absolute dates
	assert.True(t, InCurrentMonth("2025-06-02", time.Time{}, now))
	assert.False(t, InCurrentMonth("2025-05-30", time.Time{}, now))

	// unparseable strings are excluded from the monthly count
	assert.False(t, InCurrentMonth("a while back", time.Time{}, now))
	assert.False(t, InCurrentMonth("", time.Time{}, now))
}

func TestWithinDays(t *testing.T) {
	// sortDate wins
	assert.True(t, WithinDays("99 weeks ago", now.Add(-24*time.Hour), now, 42))
	assert.False(t, WithinDays("Just now", now.AddDate(0, 0, -60), now, 42))

	// parsed relative strings
	assert.True(t, WithinDays("2 hr ago", time.Time{}, now, 42))
	assert.True(t, WithinDays("5 weeks ago", time.Time{}, now, 42))
	assert.False(t, WithinDays("7 weeks ago", time.Time{}, now, 42))

	// month strings are not in the window grammar, so they fall through
	// to the include-by-default branch
	assert.True(t, WithinDays("2 months ago", time.Time{}, now, 42))

	// unparseable strings are included in the feed
	assert.True(t, WithinDays("a while back", time.Time{}, now, 42))
}
