package calendar

import (
	"fmt"
)

// ToJulianDay returns the Julian Day Number of d.
func ToJulianDay(d Date) (int, error) {
	if !d.System.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSystem, int(d.System))
	}
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %s %04d-%02d-%02d", ErrInvalidDate, d.System, d.Year, d.Month, d.Day)
	}
	switch d.System {
	case Persian:
		return persianToJDN(d.Year, d.Month, d.Day), nil
	case Arabic:
		return arabicToJDN(d.Year, d.Month, d.Day), nil
	default:
		return gregorianToJDN(d.Year, d.Month, d.Day), nil
	}
}

// FromJulianDay returns the date of jdn in the given system. An unknown
// system yields the zero Date.
func FromJulianDay(system System, jdn int) Date {
	var y, m, d int
	switch system {
	case Persian:
		y, m, d = jdnToPersian(jdn)
	case Arabic:
		y, m, d = jdnToArabic(jdn)
	case Gregorian:
		y, m, d = jdnToGregorian(jdn)
	default:
		return Date{}
	}
	return Date{Year: y, Month: m, Day: d, System: system}
}

// Convert re-expresses d in another calendar system.
func Convert(d Date, to System) (Date, error) {
	if !to.Valid() {
		return Date{}, fmt.Errorf("%w: %d", ErrUnknownSystem, int(to))
	}
	jdn, err := ToJulianDay(d)
	if err != nil {
		return Date{}, err
	}
	if d.System == to {
		return d, nil
	}
	return FromJulianDay(to, jdn), nil
}

// ToGregorian converts d to the Gregorian calendar.
func ToGregorian(d Date) (Date, error) {
	return Convert(d, Gregorian)
}

// Canonical returns d as a canonical Gregorian YYYY-MM-DD string.
func Canonical(d Date) (string, error) {
	g, err := ToGregorian(d)
	if err != nil {
		return "", err
	}
	return Format(g, ""), nil
}

// Weekday returns the day of the week of d, 0 for Sunday through 6 for Saturday.
func Weekday(d Date) (int, error) {
	jdn, err := ToJulianDay(d)
	if err != nil {
		return 0, err
	}
	return weekday(jdn), nil
}

// FromGregorian converts a Gregorian date into the given system.
func FromGregorian(d Date, to System) (Date, error) {
	if d.System != Gregorian {
		return Date{}, fmt.Errorf("%w: %s is not gregorian", ErrInvalidDate, d.System)
	}
	return Convert(d, to)
}
