// Package calendar converts dates between the Solar Hijri (Persian), Lunar
// Hijri (Arabic) and Gregorian calendars and normalizes loosely formatted
// Gregorian input into the canonical YYYY-MM-DD storage form.
//
// Every conversion pivots on the Julian Day Number: a date is first mapped to
// its JDN and then read back in the target calendar, so A→B→A is exact for all
// valid dates.
package calendar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
)

// System identifies a calendar system.
type System int

const (
	// Persian is the Solar Hijri (Shamsi/Jalaali) calendar. It is the default
	// calendar of the picker.
	Persian System = iota
	// Arabic is the tabular Lunar Hijri calendar.
	Arabic
	// Gregorian is the proleptic Gregorian calendar used for storage.
	Gregorian
)

var (
	// ErrUnknownSystem is returned when a calendar name cannot be resolved.
	ErrUnknownSystem = errors.New(config.ErrUnknownSystem)
	// ErrInvalidDate is returned for dates outside their calendar's month/day ranges.
	ErrInvalidDate = errors.New(config.ErrInvalidDate)
	// ErrClockUnavailable is returned when "today" cannot be read from the clock.
	ErrClockUnavailable = errors.New(config.ErrClockUnavailable)
)

var systemNames = [...]string{
	Persian:   config.SystemPersian,
	Arabic:    config.SystemArabic,
	Gregorian: config.SystemGregorian,
}

// systemAliases maps common alternative spellings to a system.
var systemAliases = map[string]System{
	config.SystemPersian:   Persian,
	"shamsi":               Persian,
	"jalali":               Persian,
	"jalaali":              Persian,
	"solar":                Persian,
	config.SystemArabic:    Arabic,
	"hijri":                Arabic,
	"lunar":                Arabic,
	"islamic":              Arabic,
	config.SystemGregorian: Gregorian,
	"miladi":               Gregorian,
}

// Valid reports whether s is one of the supported systems.
func (s System) Valid() bool {
	return s >= Persian && s <= Gregorian
}

func (s System) String() string {
	if !s.Valid() {
		return fmt.Sprintf("System(%d)", int(s))
	}
	return systemNames[s]
}

// ParseSystem resolves a calendar name (case insensitive, aliases accepted).
func ParseSystem(name string) (System, error) {
	if s, ok := systemAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
}

// Systems lists the supported calendars in the order they are offered to users.
func Systems() []System {
	return []System{Persian, Arabic, Gregorian}
}
