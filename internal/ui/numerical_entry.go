package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
)

// NumericalEntry is a custom Entry widget that only accepts numeric input.
// Persian and Arabic-Indic digits are accepted and stored as ASCII digits.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune filters keystrokes down to digits.
// Pasted text bypasses this filter; field validators handle that case.
func (e *NumericalEntry) TypedRune(r rune) {
	ascii := []rune(calendar.NormalizeDigits(string(r)))
	if len(ascii) == 1 && ascii[0] >= '0' && ascii[0] <= '9' {
		e.Entry.TypedRune(ascii[0])
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
