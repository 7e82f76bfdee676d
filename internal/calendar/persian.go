package calendar

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Solar Hijri arithmetic is delegated to ptime. Dates are handled at midnight
// UTC so no time zone can shift the day.

func persianFromGregorian(year, month, day int) (int, int, int) {
	pt := ptime.New(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
	return pt.Year(), int(pt.Month()), pt.Day()
}

func persianToGregorian(year, month, day int) (int, int, int) {
	t := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, time.UTC).Time()
	return t.Year(), int(t.Month()), t.Day()
}

// persianExists reports whether ptime maps the date onto itself. ptime
// normalizes out-of-range days, so a non-existent day comes back different.
func persianExists(year, month, day int) bool {
	gy, gm, gd := persianToGregorian(year, month, day)
	py, pm, pd := persianFromGregorian(gy, gm, gd)
	return py == year && pm == month && pd == day
}

// persianDaysInMonth: the first six months have 31 days, the next five 30,
// and Esfand has 30 days in leap years, 29 otherwise.
func persianDaysInMonth(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	case persianExists(year, 12, 30):
		return 30
	default:
		return 29
	}
}

func persianToJDN(year, month, day int) int {
	return gregorianToJDN(persianToGregorian(year, month, day))
}

func jdnToPersian(jdn int) (int, int, int) {
	return persianFromGregorian(jdnToGregorian(jdn))
}
