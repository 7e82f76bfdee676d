package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/picker"
)

// DatePicker renders a picker.Picker as an entry-like button. Tapping it
// opens a popup with a calendar select, a month grid and the Today, Clear
// and OK toolbar.
type DatePicker struct {
	widget.BaseWidget

	Picker *picker.Picker

	calendarName func(calendar.System) string
	button       *widget.Button
	popup        *widget.PopUp
	body         *fyne.Container

	// Month shown by the grid, in the active calendar.
	viewYear  int
	viewMonth int
}

// NewDatePicker creates the widget and mounts its picker, so a default of
// today is reported through opts.OnChange before the function returns.
// calendarName localizes the calendar select; nil uses the system identifiers.
func NewDatePicker(opts picker.Options, calendarName func(calendar.System) string) *DatePicker {
	d := &DatePicker{
		Picker:       picker.New(opts),
		calendarName: calendarName,
	}
	if d.calendarName == nil {
		d.calendarName = calendar.System.String
	}
	d.button = widget.NewButtonWithIcon(config.PickerPlaceholder, theme.MenuDropDownIcon(), d.ShowPopup)
	d.button.Alignment = widget.ButtonAlignLeading
	d.ExtendBaseWidget(d)

	d.Picker.Mount()
	d.refreshButton()
	if d.Picker.Disabled() {
		d.button.Disable()
	}
	return d
}

// CreateRenderer implements fyne.Widget.
func (d *DatePicker) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.button)
}

// Text returns what the button currently shows.
func (d *DatePicker) Text() string {
	return d.button.Text
}

// Value returns the canonical Gregorian value held by the picker.
func (d *DatePicker) Value() string {
	return d.Picker.Value()
}

// SetValue adopts a host value without notifying OnChange.
func (d *DatePicker) SetValue(value string) {
	d.Picker.SyncFromHost(value)
	d.afterAction()
}

// SetDisabled toggles user interaction.
func (d *DatePicker) SetDisabled(disabled bool) {
	d.Picker.SetDisabled(disabled)
	if disabled {
		d.button.Disable()
		d.hidePopup()
		return
	}
	d.button.Enable()
}

// PopupVisible reports whether the month grid is on screen.
func (d *DatePicker) PopupVisible() bool {
	d.syncOverlay()
	return d.popup != nil
}

// ViewMonth returns the year and month shown by the grid.
func (d *DatePicker) ViewMonth() (year, month int) {
	return d.viewYear, d.viewMonth
}

// ShowPopup opens the month grid on the selection, or on today.
func (d *DatePicker) ShowPopup() {
	d.syncOverlay()
	if d.popup != nil {
		return
	}
	if !d.Picker.Open() {
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(d)
	if c == nil {
		d.Picker.Close()
		return
	}

	d.resetView()
	d.body = container.NewStack(d.buildPanel())
	d.popup = widget.NewPopUp(d.body, c)

	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(d)
	d.popup.ShowAtPosition(pos.Add(fyne.NewPos(0, d.Size().Height)))
	d.popup.Resize(fyne.NewSize(config.PickerPopupWidth, config.PickerPopupHeight))
}

// NextMonth and PrevMonth move the grid without touching the selection.
func (d *DatePicker) NextMonth() { d.stepMonth(1) }

func (d *DatePicker) PrevMonth() { d.stepMonth(-1) }

// SelectDay picks a day of the month shown by the grid.
func (d *DatePicker) SelectDay(day int) bool {
	ok := d.Picker.SelectDate(calendar.Date{
		Year:   d.viewYear,
		Month:  d.viewMonth,
		Day:    day,
		System: d.Picker.Active(),
	})
	d.afterAction()
	return ok
}

// SwitchCalendar changes the active calendar and re-anchors the grid.
func (d *DatePicker) SwitchCalendar(system calendar.System) bool {
	if !d.Picker.SwitchCalendar(system) {
		return false
	}
	d.resetView()
	d.afterAction()
	return true
}

func (d *DatePicker) selectToday() {
	if d.Picker.SelectToday() {
		d.resetView()
	}
	d.afterAction()
}

func (d *DatePicker) clear() {
	d.Picker.Clear()
	d.afterAction()
}

func (d *DatePicker) confirm() {
	d.Picker.Close()
	d.hidePopup()
}

func (d *DatePicker) resetView() {
	anchor := d.Picker.Anchor()
	d.viewYear, d.viewMonth = anchor.Year, anchor.Month
}

func (d *DatePicker) stepMonth(delta int) {
	y, m := d.viewYear, d.viewMonth+delta
	switch {
	case m < 1:
		y, m = y-1, 12
	case m > 12:
		y, m = y+1, 1
	}
	if y < 1 {
		return
	}
	d.viewYear, d.viewMonth = y, m
	d.rebuild()
}

// afterAction syncs the button and the popup with the picker state.
func (d *DatePicker) afterAction() {
	d.syncOverlay()
	d.refreshButton()
	if !d.Picker.IsOpen() {
		d.hidePopup()
		return
	}
	d.rebuild()
}

func (d *DatePicker) refreshButton() {
	text := d.Picker.DisplayString()
	if text == "" {
		text = config.PickerPlaceholder
	}
	d.button.SetText(text)
}

// syncOverlay closes the picker once Fyne has hidden the popup itself,
// which happens on a tap outside of it.
func (d *DatePicker) syncOverlay() {
	if d.popup == nil || d.popup.Visible() {
		return
	}
	d.popup = nil
	d.body = nil
	d.Picker.Close()
}

func (d *DatePicker) hidePopup() {
	if d.popup == nil {
		return
	}
	d.popup.Hide()
	d.popup = nil
	d.body = nil
}

func (d *DatePicker) rebuild() {
	if d.body == nil {
		return
	}
	d.body.Objects = []fyne.CanvasObject{d.buildPanel()}
	d.body.Refresh()
}

func (d *DatePicker) buildPanel() fyne.CanvasObject {
	system := d.Picker.Active()

	systems := calendar.Systems()
	names := make([]string, len(systems))
	lookup := make(map[string]calendar.System, len(systems))
	for i, s := range systems {
		names[i] = d.calendarName(s)
		lookup[names[i]] = s
	}
	calSelect := widget.NewSelect(names, nil)
	calSelect.SetSelected(d.calendarName(system))
	calSelect.OnChanged = func(name string) {
		if s, ok := lookup[name]; ok && s != d.Picker.Active() {
			d.SwitchCalendar(s)
		}
	}

	first := calendar.Date{Year: d.viewYear, Month: d.viewMonth, Day: 1, System: system}
	title := widget.NewLabel(calendar.Format(first, config.TokenMonthName+" "+config.TokenYear))
	title.Alignment = fyne.TextAlignCenter
	header := container.NewBorder(nil, nil,
		widget.NewButton(config.PickerPrevMonth, d.PrevMonth),
		widget.NewButton(config.PickerNextMonth, d.NextMonth),
		title,
	)

	labels := d.Picker.Labels()
	toolbar := container.NewGridWithColumns(3,
		widget.NewButton(labels.Today, d.selectToday),
		widget.NewButton(labels.Clear, d.clear),
		widget.NewButton(labels.OK, d.confirm),
	)

	return container.NewVBox(calSelect, header, d.buildGrid(first), toolbar)
}

// buildGrid lays the month out in weeks starting on Saturday.
func (d *DatePicker) buildGrid(first calendar.Date) fyne.CanvasObject {
	var cells []fyne.CanvasObject

	if wd, err := calendar.Weekday(first); err == nil {
		for i := 0; i < (wd+1)%config.PickerGridColumns; i++ {
			cells = append(cells, widget.NewLabel(""))
		}
	}

	selected, hasSelection := d.Picker.Display()
	days := calendar.DaysInMonth(first.System, first.Year, first.Month)
	for day := 1; day <= days; day++ {
		btn := widget.NewButton(strconv.Itoa(day), func() { d.SelectDay(day) })
		if hasSelection && selected.Year == first.Year && selected.Month == first.Month && selected.Day == day {
			btn.Importance = widget.HighImportance
		}
		cells = append(cells, btn)
	}

	return container.NewGridWithColumns(config.PickerGridColumns, cells...)
}
