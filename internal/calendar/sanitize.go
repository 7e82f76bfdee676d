package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
)

var canonicalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// digitMapper folds Extended Arabic-Indic (Persian) and Arabic-Indic digits
// to ASCII.
var digitMapper = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// NormalizeDigits rewrites Persian and Arabic-Indic digits as ASCII digits.
func NormalizeDigits(s string) string {
	return digitMapper.Replace(s)
}

// SanitizeGregorian turns any value meant to hold a Gregorian date into a
// canonical YYYY-MM-DD string, or "" when it does not look like one.
//
// The check is syntactic: "2024-13-40" passes. Use ParseCanonical when the
// date must exist.
func SanitizeGregorian(v any) string {
	if v == nil {
		return ""
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case *string:
		if x == nil {
			return ""
		}
		s = *x
	default:
		s = fmt.Sprint(v)
	}

	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > config.CanonicalDateLength {
		s = string(r[:config.CanonicalDateLength])
	}
	s = strings.ReplaceAll(s, config.DateSeparatorSlash, config.DateSeparator)

	if !canonicalPattern.MatchString(s) {
		return ""
	}
	return s
}

// ParseCanonical parses a sanitized canonical string into a valid Gregorian Date.
func ParseCanonical(s string) (Date, error) {
	if !canonicalPattern.MatchString(s) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return ParseDate(Gregorian, s)
}

// ParseDate reads a year-month-day value typed or picked in the given
// system. Native digits are accepted, "/" and "." may separate the parts and
// a trailing time component is ignored.
func ParseDate(system System, raw string) (Date, error) {
	s := strings.TrimSpace(NormalizeDigits(raw))
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	s = strings.NewReplacer(
		config.DateSeparatorSlash, config.DateSeparator,
		config.DateSeparatorDot, config.DateSeparator,
	).Replace(s)

	ymd, err := splitDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return NewDate(system, ymd[0], ymd[1], ymd[2])
}

// splitDate splits "y-m-d" into three positive integers.
func splitDate(s string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(s, config.DateSeparator)
	if len(parts) != len(out) {
		return out, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return out, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		out[i] = n
	}
	return out, nil
}
