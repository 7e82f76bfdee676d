package picker

import (
	"sync"
	"testing"
	"time"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Test doubles
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// recorder collects every value passed to OnChange.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) OnChange(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

var june15 = MockClock{CurrentTime: time.Date(2024, 6, 15, 9, 0, 0, 0, time.Local)}

func newPicker(value string, rec *recorder, mod func(*Options)) *Picker {
	opts := Options{
		Value:    value,
		OnChange: rec.OnChange,
		Clock:    june15,
	}
	if mod != nil {
		mod(&opts)
	}
	return New(opts)
}

// -----------------------------------------------------------------------------
// Mount / default to today
// -----------------------------------------------------------------------------

func TestMount_DefaultsToTodayOnce(t *testing.T) {
	rec := &recorder{}
	p := newPicker("", rec, nil)

	assert.Empty(t, rec.Calls(), "New must not notify")

	p.Mount()
	p.Mount()
	p.SyncFromHost("")
	p.Mount()

	assert.Equal(t, []string{"2024-06-15"}, rec.Calls())
	assert.Equal(t, "", p.Value(), "host echo of empty value is adopted without re-defaulting")
}

func TestMount_DisplayAfterDefault(t *testing.T) {
	rec := &recorder{}
	p := newPicker("", rec, nil)
	p.Mount()

	d, ok := p.Display()
	require.True(t, ok)
	assert.Equal(t, calendar.Date{Year: 1403, Month: 3, Day: 26, System: calendar.Persian}, d)
	assert.Equal(t, "1403/03/26", p.DisplayString())
	assert.Equal(t, "2024-06-15", p.Value())
}

func TestMount_NoDefault(t *testing.T) {
	tests := []struct {
		name  string
		value string
		mod   func(*Options)
		want  string
	}{
		{"Value present", "2024-03-20", nil, "2024-03-20"},
		{"ISO value present", "2024/03/20T10:00:00Z", nil, "2024-03-20"},
		{"Defaulting disabled", "", func(o *Options) { o.DefaultToToday = Bool(false) }, ""},
		{"Clock unavailable", "", func(o *Options) { o.Clock = MockClock{} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			p := newPicker(tt.value, rec, tt.mod)
			p.Mount()
			assert.Empty(t, rec.Calls())
			assert.Equal(t, tt.want, p.Value())
		})
	}
}

func TestMount_GarbageValueDefaults(t *testing.T) {
	rec := &recorder{}
	p := newPicker("not-a-date", rec, nil)
	p.Mount()
	assert.Equal(t, []string{"2024-06-15"}, rec.Calls())
}

// -----------------------------------------------------------------------------
// Calendar switching
// -----------------------------------------------------------------------------

func TestSwitchCalendar_KeepsCanonicalValue(t *testing.T) {
	rec := &recorder{}
	p := newPicker("2024-03-20", rec, nil)
	p.Mount()

	steps := []struct {
		system  calendar.System
		display string
		months  string
	}{
		{calendar.Persian, "1403/01/01", "حمل"},
		{calendar.Arabic, "1445/09/10", "محرم"},
		{calendar.Gregorian, "2024/03/20", "January"},
		{calendar.Persian, "1403/01/01", "حمل"},
	}
	for _, s := range steps {
		require.True(t, p.SwitchCalendar(s.system))
		assert.Equal(t, s.system, p.Active())
		assert.Equal(t, s.display, p.DisplayString())
		assert.Equal(t, s.months, p.MonthNames()[0])
		assert.Equal(t, "2024-03-20", p.Value())
	}
	assert.Empty(t, rec.Calls(), "switching never notifies the host")
}

func TestSwitchCalendar_Unknown(t *testing.T) {
	p := newPicker("2024-03-20", &recorder{}, nil)
	require.True(t, p.SwitchCalendar(calendar.Arabic))

	assert.False(t, p.SwitchCalendar(calendar.System(42)))
	assert.False(t, p.SwitchCalendarByName("julian"))
	assert.Equal(t, calendar.Arabic, p.Active())
	assert.Equal(t, "1445/09/10", p.DisplayString())

	assert.True(t, p.SwitchCalendarByName("Shamsi"))
	assert.Equal(t, calendar.Persian, p.Active())
}

func TestSwitchCalendar_Labels(t *testing.T) {
	p := newPicker("", &recorder{}, nil)

	assert.Equal(t, Labels{Today: "امروز", Clear: "پاک کردن", OK: "تایید"}, p.Labels())

	p.SwitchCalendar(calendar.Arabic)
	assert.Equal(t, Labels{Today: "اليوم", Clear: "مسح", OK: "موافق"}, p.Labels())

	p.SwitchCalendar(calendar.Gregorian)
	assert.Equal(t, Labels{Today: "Today", Clear: "Clear", OK: "OK"}, p.Labels())
}

// -----------------------------------------------------------------------------
// User selection
// -----------------------------------------------------------------------------

func TestUserSelect_ArabicThenHostEcho(t *testing.T) {
	rec := &recorder{}
	p := newPicker("2024-01-01", rec, func(o *Options) { o.Calendar = calendar.Arabic })
	p.Mount()

	require.True(t, p.UserSelect("1445/09/10"))
	require.Equal(t, []string{"2024-03-20"}, rec.Calls())

	// The host stores the value and feeds it back.
	p.SyncFromHost(rec.Calls()[0])

	d, ok := p.Display()
	require.True(t, ok)
	assert.Equal(t, calendar.Date{Year: 1445, Month: 9, Day: 10, System: calendar.Arabic}, d)
	assert.Len(t, rec.Calls(), 1, "echo must not loop back into OnChange")
}

func TestUserSelect_Inputs(t *testing.T) {
	tests := []struct {
		name   string
		system calendar.System
		raw    string
		want   string
		ok     bool
	}{
		{"Persian slashes", calendar.Persian, "1403/01/01", "2024-03-20", true},
		{"Persian native digits", calendar.Persian, "۱۴۰۳/۱۲/۳۰", "2025-03-20", true},
		{"Arabic-Indic digits", calendar.Arabic, "١٤٤٦-٠١-٠١", "2024-07-08", true},
		{"Gregorian", calendar.Gregorian, "2024-02-29", "2024-02-29", true},
		{"Impossible Esfand", calendar.Persian, "1404/12/30", "2024-01-01", false},
		{"Impossible February", calendar.Gregorian, "2023-02-29", "2024-01-01", false},
		{"Garbage", calendar.Arabic, "tomorrow", "2024-01-01", false},
		{"Empty", calendar.Persian, "", "2024-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			p := newPicker("2024-01-01", rec, func(o *Options) { o.Calendar = tt.system })
			before, _ := p.Display()

			assert.Equal(t, tt.ok, p.UserSelect(tt.raw))
			assert.Equal(t, tt.want, p.Value())

			if tt.ok {
				assert.Equal(t, []string{tt.want}, rec.Calls())
				return
			}
			assert.Empty(t, rec.Calls())
			after, _ := p.Display()
			assert.Equal(t, before, after, "failed select must not touch the display")
		})
	}
}

func TestUserSelect_CloseOnSelect(t *testing.T) {
	p := newPicker("", &recorder{}, nil)
	require.True(t, p.Open())
	require.True(t, p.UserSelect("1403/01/01"))
	assert.False(t, p.IsOpen())

	keep := newPicker("", &recorder{}, func(o *Options) { o.CloseOnSelect = Bool(false) })
	require.True(t, keep.Open())
	require.True(t, keep.UserSelect("1403/01/01"))
	assert.True(t, keep.IsOpen())

	// A rejected selection leaves the overlay open.
	require.True(t, p.Open())
	assert.False(t, p.UserSelect("1403/13/01"))
	assert.True(t, p.IsOpen())
}

func TestSelectDate_AnySystem(t *testing.T) {
	rec := &recorder{}
	p := newPicker("", rec, nil)

	require.True(t, p.SelectDate(calendar.Date{Year: 1446, Month: 1, Day: 1, System: calendar.Arabic}))
	assert.Equal(t, "2024-07-08", p.Value())
	assert.Equal(t, "1403/04/18", p.DisplayString())

	assert.False(t, p.SelectDate(calendar.Date{Year: 2024, Month: 2, Day: 30, System: calendar.Gregorian}))
	assert.Equal(t, []string{"2024-07-08"}, rec.Calls())
}

func TestSelectToday_And_Clear(t *testing.T) {
	rec := &recorder{}
	p := newPicker("2024-01-01", rec, nil)

	require.True(t, p.SelectToday())
	assert.Equal(t, "2024-06-15", p.Value())

	require.True(t, p.Clear())
	assert.Equal(t, "", p.Value())
	assert.Equal(t, "", p.DisplayString())
	_, ok := p.Display()
	assert.False(t, ok)

	assert.Equal(t, []string{"2024-06-15", ""}, rec.Calls())

	broken := newPicker("", &recorder{}, func(o *Options) { o.Clock = MockClock{} })
	assert.False(t, broken.SelectToday())
}

// -----------------------------------------------------------------------------
// Disabled & overlay
// -----------------------------------------------------------------------------

func TestDisabled_IgnoresUserTransitions(t *testing.T) {
	rec := &recorder{}
	p := newPicker("2024-03-20", rec, func(o *Options) { o.Disabled = true })

	assert.False(t, p.Open())
	assert.False(t, p.Toggle())
	assert.False(t, p.UserSelect("1403/02/01"))
	assert.False(t, p.SelectToday())
	assert.False(t, p.Clear())
	assert.False(t, p.SwitchCalendar(calendar.Gregorian))

	assert.False(t, p.IsOpen())
	assert.Equal(t, calendar.Persian, p.Active())
	assert.Equal(t, "2024-03-20", p.Value())
	assert.Empty(t, rec.Calls())

	// Host sync still applies.
	p.SyncFromHost("2024-03-21")
	assert.Equal(t, "1403/01/02", p.DisplayString())

	p.SetDisabled(false)
	assert.True(t, p.UserSelect("1403/02/01"))
	assert.False(t, p.Disabled())
}

func TestOverlayTransitions(t *testing.T) {
	p := newPicker("", &recorder{}, nil)
	assert.False(t, p.IsOpen())
	assert.True(t, p.Toggle())
	assert.True(t, p.IsOpen())
	assert.False(t, p.Toggle())
	assert.True(t, p.Open())
	p.Close()
	assert.False(t, p.IsOpen())

	p.Open()
	p.SetDisabled(true)
	assert.False(t, p.IsOpen(), "disabling closes the overlay")
}

// -----------------------------------------------------------------------------
// Host sync
// -----------------------------------------------------------------------------

func TestSyncFromHost_Idempotent(t *testing.T) {
	rec := &recorder{}
	p := newPicker("", rec, func(o *Options) { o.DefaultToToday = Bool(false) })

	inputs := []any{"2024-03-20", "2024/03/20T00:00:00Z", nil, "garbage", "2024-13-40"}
	for _, in := range inputs {
		p.SyncFromHost(in)
		v1, s1 := p.Value(), p.DisplayString()
		d1, ok1 := p.Display()

		p.SyncFromHost(in)
		d2, ok2 := p.Display()
		assert.Equal(t, v1, p.Value())
		assert.Equal(t, s1, p.DisplayString())
		assert.Equal(t, d1, d2)
		assert.Equal(t, ok1, ok2)
	}
	assert.Empty(t, rec.Calls())
}

func TestSyncFromHost_SyntacticOnlyValue(t *testing.T) {
	p := newPicker("2024-13-40", &recorder{}, nil)
	assert.Equal(t, "2024-13-40", p.Value())
	_, ok := p.Display()
	assert.False(t, ok)
	assert.Equal(t, "", p.DisplayString())
}

func TestAnchor(t *testing.T) {
	p := newPicker("2024-03-20", &recorder{}, nil)
	assert.Equal(t, calendar.Date{Year: 1403, Month: 1, Day: 1, System: calendar.Persian}, p.Anchor())

	empty := newPicker("", &recorder{}, func(o *Options) {
		o.DefaultToToday = Bool(false)
		o.Calendar = calendar.Gregorian
	})
	assert.Equal(t, calendar.Date{Year: 2024, Month: 6, Day: 15, System: calendar.Gregorian}, empty.Anchor())
}

// TestConcurrentUse exercises the lock; run with -race.
func TestConcurrentUse(t *testing.T) {
	rec := &recorder{}
	p := newPicker("2024-03-20", rec, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p.SwitchCalendar(calendar.Systems()[(i+j)%3])
				p.SyncFromHost("2024-03-20")
				_ = p.DisplayString()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "2024-03-20", p.Value())
	assert.Empty(t, rec.Calls())
}
