package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestParseSystem(t *testing.T) {
	tests := []struct {
		input string
		want  System
	}{
		{"persian", Persian},
		{"Shamsi", Persian},
		{" jalali ", Persian},
		{"arabic", Arabic},
		{"HIJRI", Arabic},
		{"gregorian", Gregorian},
		{"miladi", Gregorian},
	}
	for _, tt := range tests {
		got, err := ParseSystem(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSystem("julian")
	assert.ErrorIs(t, err, ErrUnknownSystem)
	_, err = ParseSystem("")
	assert.ErrorIs(t, err, ErrUnknownSystem)
}

func TestSystem_String(t *testing.T) {
	for _, s := range Systems() {
		parsed, err := ParseSystem(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "System(9)", System(9).String())
	assert.False(t, System(9).Valid())
	assert.Equal(t, []System{Persian, Arabic, Gregorian}, Systems())
}

func TestToday(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2024, 6, 15, 23, 30, 0, 0, time.Local)}

	tests := []struct {
		system System
		want   Date
	}{
		{Gregorian, greg(2024, 6, 15)},
		{Persian, persian(1403, 3, 26)},
		{Arabic, hijri(1445, 12, 8)},
	}
	for _, tt := range tests {
		got, err := Today(clock, tt.system)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := Today(nil, Gregorian)
	assert.ErrorIs(t, err, ErrClockUnavailable)

	_, err = Today(MockClock{}, Gregorian)
	assert.ErrorIs(t, err, ErrClockUnavailable)

	_, err = Today(clock, System(8))
	assert.ErrorIs(t, err, ErrClockUnavailable)
	assert.ErrorIs(t, err, ErrUnknownSystem)
}

func TestRealClock(t *testing.T) {
	_, err := Today(RealClock{}, Persian)
	assert.NoError(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1403-01-01", Format(persian(1403, 1, 1), ""))
	assert.Equal(t, "0622-07-19", Format(greg(622, 7, 19), ""))
	assert.Equal(t, "1403/01/01", Format(persian(1403, 1, 1), "YYYY/MM/DD"))
	assert.Equal(t, "01 حمل 1403", Format(persian(1403, 1, 1), "DD MMMM YYYY"))
	assert.Equal(t, "10 رمضان 1445", Format(hijri(1445, 9, 10), "DD MMMM YYYY"))
	assert.Equal(t, "March 20, 2024", Format(greg(2024, 3, 20), "MMMM DD, YYYY"))
	assert.Equal(t, "2024-03-20", greg(2024, 3, 20).String())
}

func TestMonthNames(t *testing.T) {
	for _, s := range Systems() {
		names := MonthNames(s)
		for i, n := range names {
			assert.NotEmpty(t, n, "%s month %d", s, i+1)
		}
	}
	assert.Equal(t, "حمل", MonthNames(Persian)[0])
	assert.Equal(t, "حوت", MonthNames(Persian)[11])
	assert.Equal(t, "محرم", MonthNames(Arabic)[0])
	assert.Equal(t, "December", MonthNames(Gregorian)[11])
	assert.Equal(t, [12]string{}, MonthNames(System(6)))

	// Returned tables are copies.
	names := MonthNames(Gregorian)
	names[0] = "changed"
	assert.Equal(t, "January", MonthNames(Gregorian)[0])

	assert.Equal(t, "", MonthName(Persian, 0))
	assert.Equal(t, "", MonthName(Persian, 13))
	assert.Equal(t, "ثور", MonthName(Persian, 2))
}
