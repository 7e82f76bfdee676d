package feed

// Entry is one record prepared for display: the canonical Gregorian date
// plus its Solar and Lunar Hijri renderings. Undated records have empty
// date strings.
type Entry struct {
	// UID is a stable hash used for calendar events and list identity.
	UID string

	ID    string
	Kind  string
	Title string

	// Canonical is the Gregorian YYYY-MM-DD storage date.
	Canonical string

	// Shamsi and Hijri are YYYY-MM-DD renderings in the Solar and Lunar
	// Hijri calendars.
	Shamsi string
	Hijri  string

	// Today is set when the record is dated on the generator's current day.
	Today bool
}

// Dated reports whether the entry carries a date.
func (e Entry) Dated() bool {
	return e.Canonical != ""
}
