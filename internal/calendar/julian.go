package calendar

// Julian Day Number arithmetic for the Gregorian and tabular Hijri calendars.
// JDNs are integers counted at noon, so JDN 2451545 is 2000-01-01.

// arabicEpoch is the JDN of 1 Muharram 1 AH in the civil (Friday) epoch,
// 16 July 622 Julian.
const arabicEpoch = 1948440

// gregorianToJDN uses the Fliegel–Van Flandern formula.
func gregorianToJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

func jdnToGregorian(jdn int) (year, month, day int) {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153

	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = 100*b + d - 4800 + m/10
	return year, month, day
}

// arabicIsLeap follows the 30-year cycle with leap years
// 2, 5, 7, 10, 13, 16, 18, 21, 24, 26 and 29.
func arabicIsLeap(year int) bool {
	return (14+11*year)%30 < 11
}

// arabicDaysInMonth: odd months have 30 days, even months 29, and
// Dhu al-Hijjah gains a day in leap years.
func arabicDaysInMonth(year, month int) int {
	switch {
	case month%2 == 1:
		return 30
	case month == 12 && arabicIsLeap(year):
		return 30
	default:
		return 29
	}
}

func arabicToJDN(year, month, day int) int {
	return day +
		(59*(month-1)+1)/2 + // ceil(29.5 * (month-1))
		(year-1)*354 +
		(3+11*year)/30 +
		arabicEpoch - 1
}

func jdnToArabic(jdn int) (year, month, day int) {
	year = (30*(jdn-arabicEpoch) + 10646) / 10631
	month = ceilDiv(2*(jdn-29-arabicToJDN(year, 1, 1)), 59) + 1
	if month > 12 {
		month = 12
	}
	day = jdn - arabicToJDN(year, month, 1) + 1
	return year, month, day
}

// ceilDiv divides rounding towards positive infinity; b must be positive.
func ceilDiv(a, b int) int {
	if a > 0 {
		return (a + b - 1) / b
	}
	return a / b
}

// weekday returns 0 for Sunday through 6 for Saturday.
func weekday(jdn int) int {
	return (jdn + 1) % 7
}
