// Package picker implements the multi-calendar date picker as a state machine
// independent of any UI toolkit.
//
// The host owns a canonical Gregorian YYYY-MM-DD string. The picker shows it
// in the active calendar (Persian, Arabic or Gregorian) and reports every
// confirmed selection back to the host as a canonical string. Switching the
// calendar re-derives the display from the canonical value, so it never moves
// the underlying date.
package picker

import (
	"log/slog"
	"sync"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
)

// Overlay is the open/closed state of the picker popup.
type Overlay int

const (
	Closed Overlay = iota
	Open
)

// Options configures a Picker.
type Options struct {
	// Value is the host's initial canonical date ("" for none).
	Value string

	// OnChange receives the canonical value after each confirmed selection.
	OnChange func(string)

	// DefaultToToday selects today at Mount when Value is empty. Defaults to true.
	DefaultToToday *bool

	// CloseOnSelect closes the overlay after a selection. Defaults to true.
	CloseOnSelect *bool

	Disabled bool

	// Calendar is the initially active calendar. The zero value is Persian.
	Calendar calendar.System

	// Clock supplies "today". Defaults to calendar.RealClock.
	Clock calendar.Clock

	// Catalog supplies toolbar labels. Defaults to DefaultCatalog().
	Catalog *Catalog
}

// Bool returns a pointer to v, for the optional Options flags.
func Bool(v bool) *bool {
	return &v
}

// Picker binds a canonical Gregorian date to a multi-calendar view.
// All methods are safe for concurrent use; OnChange runs outside the lock.
type Picker struct {
	mu sync.Mutex

	value      string
	active     calendar.System
	display    calendar.Date
	hasDisplay bool
	overlay    Overlay
	mounted    bool
	disabled   bool

	onChange      func(string)
	defaultToday  bool
	closeOnSelect bool
	clock         calendar.Clock
	catalog       *Catalog
}

// New creates a picker. Call Mount once the host is ready to receive the
// default-to-today notification.
func New(opts Options) *Picker {
	p := &Picker{
		active:        calendar.Persian,
		onChange:      opts.OnChange,
		defaultToday:  opts.DefaultToToday == nil || *opts.DefaultToToday,
		closeOnSelect: opts.CloseOnSelect == nil || *opts.CloseOnSelect,
		disabled:      opts.Disabled,
		clock:         opts.Clock,
		catalog:       opts.Catalog,
	}
	if opts.Calendar.Valid() {
		p.active = opts.Calendar
	}
	if p.clock == nil {
		p.clock = calendar.RealClock{}
	}
	if p.catalog == nil {
		p.catalog = DefaultCatalog()
	}
	p.syncLocked(opts.Value)
	return p
}

// Mount runs the one-time default-to-today resolution. When the initial value
// is empty and defaulting is enabled, today's canonical date is stored and
// reported through OnChange exactly once. Subsequent calls do nothing.
func (p *Picker) Mount() {
	p.mu.Lock()
	if p.mounted {
		p.mu.Unlock()
		return
	}
	p.mounted = true
	if p.value != "" || !p.defaultToday {
		p.mu.Unlock()
		return
	}

	today, err := calendar.Today(p.clock, calendar.Gregorian)
	if err != nil {
		p.mu.Unlock()
		slog.Warn(config.MsgPickerNoClock,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyError, err,
		)
		return
	}
	canonical := calendar.Format(today, "")
	p.syncLocked(canonical)
	cb := p.onChange
	p.mu.Unlock()

	slog.Debug(config.MsgPickerMounted,
		config.LogKeyComponent, config.CompPicker,
		config.LogKeyValue, canonical,
	)
	notify(cb, canonical)
}

// SyncFromHost adopts a new host value. It never calls OnChange, and calling
// it repeatedly with the same value leaves the state unchanged.
func (p *Picker) SyncFromHost(value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.syncLocked(value)
}

// syncLocked stores the sanitized value and re-derives the display date.
// p.mu must be held (or p not yet shared).
func (p *Picker) syncLocked(value any) {
	p.value = calendar.SanitizeGregorian(value)
	p.refreshLocked()
}

func (p *Picker) refreshLocked() {
	p.display, p.hasDisplay = calendar.Date{}, false
	if p.value == "" {
		return
	}
	g, err := calendar.ParseCanonical(p.value)
	if err != nil {
		return
	}
	d, err := calendar.Convert(g, p.active)
	if err != nil {
		return
	}
	p.display, p.hasDisplay = d, true
}

// UserSelect handles a raw value picked or typed in the active calendar
// ("1403/01/01", "۱۴۰۳-۰۱-۰۱", ...). It reports whether the selection was
// accepted; a malformed or impossible date changes nothing.
func (p *Picker) UserSelect(raw string) bool {
	p.mu.Lock()
	if p.disabled {
		p.mu.Unlock()
		logDisabled(raw)
		return false
	}
	d, err := calendar.ParseDate(p.active, raw)
	if err != nil {
		p.mu.Unlock()
		slog.Debug(config.MsgPickerIgnored,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyRaw, raw,
			config.LogKeyError, err,
		)
		return false
	}
	return p.commitLocked(d)
}

// SelectDate selects a date given in any calendar system.
func (p *Picker) SelectDate(d calendar.Date) bool {
	p.mu.Lock()
	if p.disabled {
		p.mu.Unlock()
		logDisabled(d.String())
		return false
	}
	return p.commitLocked(d)
}

// SelectToday selects the clock's current day (toolbar "Today").
func (p *Picker) SelectToday() bool {
	p.mu.Lock()
	if p.disabled {
		p.mu.Unlock()
		logDisabled("")
		return false
	}
	today, err := calendar.Today(p.clock, p.active)
	if err != nil {
		p.mu.Unlock()
		slog.Warn(config.MsgPickerNoClock,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyError, err,
		)
		return false
	}
	return p.commitLocked(today)
}

// commitLocked stores d as the new selection and notifies the host.
// It is entered with p.mu held and always releases it.
func (p *Picker) commitLocked(d calendar.Date) bool {
	canonical, err := calendar.Canonical(d)
	if err != nil {
		p.mu.Unlock()
		slog.Debug(config.MsgPickerIgnored,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyValue, d.String(),
			config.LogKeyError, err,
		)
		return false
	}
	p.value = canonical
	p.refreshLocked()
	if p.closeOnSelect {
		p.overlay = Closed
	}
	cb := p.onChange
	p.mu.Unlock()

	notify(cb, canonical)
	return true
}

// Clear empties the selection (toolbar "Clear") and reports "" to the host.
func (p *Picker) Clear() bool {
	p.mu.Lock()
	if p.disabled {
		p.mu.Unlock()
		logDisabled("")
		return false
	}
	p.value = ""
	p.refreshLocked()
	if p.closeOnSelect {
		p.overlay = Closed
	}
	cb := p.onChange
	p.mu.Unlock()

	notify(cb, "")
	return true
}

// SwitchCalendar changes the active calendar. The display is recomputed from
// the current canonical value. An unknown system leaves the picker unchanged.
func (p *Picker) SwitchCalendar(system calendar.System) bool {
	if !system.Valid() {
		slog.Warn(config.MsgPickerBadSystem,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyCalendar, system.String(),
		)
		return false
	}

	p.mu.Lock()
	if p.disabled {
		p.mu.Unlock()
		logDisabled(system.String())
		return false
	}
	old := p.active
	p.active = system
	p.refreshLocked()
	p.mu.Unlock()

	slog.Debug(config.MsgPickerSwitched,
		config.LogKeyComponent, config.CompPicker,
		config.LogKeyOld, old.String(),
		config.LogKeyNew, system.String(),
	)
	return true
}

// SwitchCalendarByName is SwitchCalendar for a calendar name such as
// "persian", "hijri" or "gregorian".
func (p *Picker) SwitchCalendarByName(name string) bool {
	system, err := calendar.ParseSystem(name)
	if err != nil {
		slog.Warn(config.MsgPickerBadSystem,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyCalendar, name,
			config.LogKeyError, err,
		)
		return false
	}
	return p.SwitchCalendar(system)
}

// Open shows the overlay. Disabled pickers stay closed.
func (p *Picker) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disabled {
		return false
	}
	p.overlay = Open
	return true
}

// Close hides the overlay.
func (p *Picker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overlay = Closed
}

// Toggle flips the overlay and returns whether it is now open.
func (p *Picker) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.overlay == Open || p.disabled {
		p.overlay = Closed
		return false
	}
	p.overlay = Open
	return true
}

// SetDisabled enables or disables user interaction.
func (p *Picker) SetDisabled(disabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disabled = disabled
	if disabled {
		p.overlay = Closed
	}
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Value returns the canonical Gregorian value ("" when nothing is selected).
func (p *Picker) Value() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Active returns the calendar the picker currently displays.
func (p *Picker) Active() calendar.System {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Display returns the selection in the active calendar. ok is false when
// there is no selection or the host value is not a real date.
func (p *Picker) Display() (d calendar.Date, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.display, p.hasDisplay
}

// DisplayString formats the selection in the active calendar with "/"
// separators, or returns "" when nothing is displayed.
func (p *Picker) DisplayString() string {
	d, ok := p.Display()
	if !ok {
		return ""
	}
	return calendar.Format(d, config.DatePatternDisplay)
}

// Anchor returns the date the overlay should open on: the selection when
// present, otherwise today in the active calendar.
func (p *Picker) Anchor() calendar.Date {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hasDisplay {
		return p.display
	}
	if today, err := calendar.Today(p.clock, p.active); err == nil {
		return today
	}
	return calendar.Date{Year: 1, Month: 1, Day: 1, System: p.active}
}

// IsOpen reports whether the overlay is open.
func (p *Picker) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.overlay == Open
}

// Disabled reports whether user interaction is suppressed.
func (p *Picker) Disabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disabled
}

// MonthNames returns the month name table of the active calendar.
func (p *Picker) MonthNames() [12]string {
	return calendar.MonthNames(p.Active())
}

// Labels returns the toolbar captions localized for the active calendar.
func (p *Picker) Labels() Labels {
	return p.catalog.Labels(p.Active())
}

func notify(cb func(string), value string) {
	if cb != nil {
		cb(value)
	}
}

func logDisabled(input string) {
	slog.Debug(config.MsgPickerDisabled,
		config.LogKeyComponent, config.CompPicker,
		config.LogKeyRaw, input,
	)
}
