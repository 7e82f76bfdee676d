package calendar

import (
	"strings"
)

// GregorianToShamsi renders a stored Gregorian date (optionally an ISO
// timestamp) as a Solar Hijri YYYY-MM-DD string for tables and reports.
// Anything that does not name a real Gregorian day yields "".
func GregorianToShamsi(s string) string {
	return renderStored(s, Persian)
}

// GregorianToHijri is the Lunar Hijri counterpart of GregorianToShamsi and
// accepts the same input.
func GregorianToHijri(s string) string {
	return renderStored(s, Arabic)
}

func renderStored(s string, system System) string {
	if s == "" {
		return ""
	}
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	ymd, err := splitDate(s)
	if err != nil {
		return ""
	}
	g := Date{Year: ymd[0], Month: ymd[1], Day: ymd[2], System: Gregorian}
	d, err := FromGregorian(g, system)
	if err != nil {
		return ""
	}
	return Format(d, "")
}
