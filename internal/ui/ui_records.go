package ui

import (
	"log/slog"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/feed"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/picker"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var columnKeys = map[int]string{
	config.ColIDTitle:     config.TKeyColTitle,
	config.ColIDKind:      config.TKeyColKind,
	config.ColIDGregorian: config.TKeyColGregorian,
	config.ColIDShamsi:    config.TKeyColShamsi,
	config.ColIDHijri:     config.TKeyColHijri,
}

// ShowRecordsWindow displays every synced record with its Gregorian, Shamsi
// and Hijri dates. It implements a singleton pattern: if the window is already
// open, it requests focus. Headers sort the table; the "from date" picker
// hides records dated before the chosen day.
func (app *DatesApp) ShowRecordsWindow() {
	if app.recordsWindow != nil {
		app.recordsWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinRecords))
	app.recordsWindow = w
	w.Resize(fyne.NewSize(config.RecordsWinWidth, config.RecordsWinHeight))

	// Local copy to avoid racing with the sync worker.
	app.EntriesMut.RLock()
	all := make([]feed.Entry, len(app.Entries))
	copy(all, app.Entries)
	app.EntriesMut.RUnlock()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(all))

	collator := newTitleCollator(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// Newest first by default.
	currentSortCol := config.ColIDGregorian
	sortAsc := false
	fromDate := ""
	display := sortRecords(filterRecords(all, fromDate), currentSortCol, sortAsc, collator)

	var table *widget.Table

	refreshTable := func() {
		display = sortRecords(filterRecords(all, fromDate), currentSortCol, sortAsc, collator)
		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
		if table != nil {
			table.Refresh()
		}
	}

	table = widget.NewTable(
		func() (int, int) {
			return len(display), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(display) {
				return
			}
			label.TextStyle.Bold = display[id.Row].Today
			label.SetText(cellText(display[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		text := app.GetMsg(columnKeys[id.Col])
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.SetColumnWidth(config.ColIDTitle, config.ColWidthTitle)
	table.SetColumnWidth(config.ColIDKind, config.ColWidthKind)
	table.SetColumnWidth(config.ColIDGregorian, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDShamsi, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDHijri, config.ColWidthDate)

	from := NewDatePicker(picker.Options{
		DefaultToToday: picker.Bool(false),
		Calendar:       app.defaultCalendar(),
		Clock:          app.Clock,
		OnChange: func(canonical string) {
			fromDate = canonical
			slog.Debug(config.LogMsgFiltered,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyValue, canonical)
			refreshTable()
		},
	}, app.CalendarName)

	filterRow := container.NewBorder(nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblFromDate)), nil, from)
	w.SetContent(container.NewBorder(filterRow, nil, nil, nil, table))

	w.SetOnClosed(func() {
		app.recordsWindow = nil
	})

	w.Show()
}

// cellText renders one table cell. Undated records show N/A in date columns.
func cellText(e feed.Entry, col int) string {
	switch col {
	case config.ColIDTitle:
		return e.Title
	case config.ColIDKind:
		return e.Kind
	case config.ColIDGregorian:
		return orNotAvailable(e.Canonical)
	case config.ColIDShamsi:
		return orNotAvailable(e.Shamsi)
	case config.ColIDHijri:
		return orNotAvailable(e.Hijri)
	default:
		return ""
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return config.DisplayNotAvailable
	}
	return s
}

// filterRecords keeps records dated on or after from. An empty from keeps
// everything, undated records included.
func filterRecords(entries []feed.Entry, from string) []feed.Entry {
	if from == "" {
		return slices.Clone(entries)
	}
	out := make([]feed.Entry, 0, len(entries))
	for _, e := range entries {
		// Canonical dates compare correctly as strings.
		if e.Dated() && e.Canonical >= from {
			out = append(out, e)
		}
	}
	return out
}

// sortRecords sorts entries in place by a table column and returns them.
// The three date columns share one order since they describe the same day.
func sortRecords(entries []feed.Entry, col int, asc bool, collator *collate.Collator) []feed.Entry {
	slices.SortStableFunc(entries, func(a, b feed.Entry) int {
		c := compareRecords(a, b, col, collator)
		if !asc {
			return -c
		}
		return c
	})
	return entries
}

func compareRecords(a, b feed.Entry, col int, collator *collate.Collator) int {
	switch col {
	case config.ColIDTitle:
		return collator.CompareString(a.Title, b.Title)
	case config.ColIDKind:
		return strings.Compare(a.Kind, b.Kind)
	default:
		// Undated records sort after dated ones in ascending order.
		switch {
		case a.Dated() && !b.Dated():
			return -1
		case !a.Dated() && b.Dated():
			return 1
		}
		if c := strings.Compare(a.Canonical, b.Canonical); c != 0 {
			return c
		}
		return collator.CompareString(a.Title, b.Title)
	}
}

// newTitleCollator orders titles for the UI language, ignoring case.
func newTitleCollator(lang string) *collate.Collator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase)
}
