package calendar

import (
	"fmt"

	"cloudeng.io/datetime"
)

// Date is a day in one of the supported calendar systems. Month and Day are
// 1-based. Date is a value type; conversions return new values.
type Date struct {
	Year   int
	Month  int
	Day    int
	System System
}

// NewDate returns a validated Date.
func NewDate(system System, year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day, System: system}
	if !system.Valid() {
		return Date{}, fmt.Errorf("%w: %d", ErrUnknownSystem, int(system))
	}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %s %04d-%02d-%02d", ErrInvalidDate, system, year, month, day)
	}
	return d, nil
}

// Valid reports whether the month and day exist in the date's calendar year.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysInMonth(d.System, d.Year, d.Month)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return Format(d, "")
}

// DaysInMonth returns the length of month in the given calendar year,
// or 0 for an unknown system or month.
func DaysInMonth(system System, year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	switch system {
	case Gregorian:
		return int(datetime.DaysInMonth(year, datetime.Month(month)))
	case Persian:
		return persianDaysInMonth(year, month)
	case Arabic:
		return arabicDaysInMonth(year, month)
	default:
		return 0
	}
}

// IsLeap reports whether year is a leap year in the given calendar.
func IsLeap(system System, year int) bool {
	switch system {
	case Gregorian:
		return datetime.IsLeap(year)
	case Persian:
		return persianDaysInMonth(year, 12) == 30
	case Arabic:
		return arabicIsLeap(year)
	default:
		return false
	}
}
