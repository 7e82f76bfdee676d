package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect     *widget.Select
	calendarSelect *widget.Select
	calendarLookup map[string]calendar.System
	urlEntry       *widget.Entry
	userEntry      *widget.Entry
	passEntry      *widget.Entry
	kindsEntry     *widget.Entry
	entryInterval  *NumericalEntry
	entryPort      *NumericalEntry
	checkReminder  *widget.Check
	entryRemDays   *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *DatesApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	sourceCard := app.buildSourceCard(sw)
	generalCard := app.buildGeneralCard(sw)
	notifCard := app.buildNotifCard(sw, onLayoutChange)

	saveAction := func() {
		for _, v := range []fyne.Validatable{sw.urlEntry, sw.entryPort} {
			if err := v.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		sourceCard,
		generalCard,
		notifCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the form widgets pre-filled from preferences.
func (app *DatesApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	var names []string
	names, sw.calendarLookup = app.calendarChoices()
	sw.calendarSelect = widget.NewSelect(names, nil)
	sw.calendarSelect.SetSelected(app.CalendarName(app.defaultCalendar()))

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefAPIURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL
	sw.urlEntry.Validator = validateAPIURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.kindsEntry = widget.NewEntry()
	sw.kindsEntry.SetText(strings.Join(splitKinds(app.Preferences.String(config.PrefRecordKinds)), config.KindSeparator))
	sw.kindsEntry.PlaceHolder = config.PlaceholderKinds

	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.checkReminder = widget.NewCheck(app.GetMsg(config.TKeyLblEnableRem), nil)
	sw.checkReminder.Checked = app.Preferences.Bool(config.PrefReminderEnabled)

	sw.entryRemDays = NewNumericalEntry()
	sw.entryRemDays.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefReminderDays, config.DefaultReminderDays)))

	return sw
}

// validatePort checks the feed server port, with localized messages.
func (app *DatesApp) validatePort(s string) error {
	s = calendar.NormalizeDigits(s)
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// validateAPIURL accepts an empty value (sync stays off) or an absolute
// http(s) URL.
func validateAPIURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return errors.New(config.ErrInvalidURL)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return errors.New(config.ErrProtocol)
	}
	return nil
}

// buildSourceCard constructs the HSMIS API connection form.
func (app *DatesApp) buildSourceCard(sw *settingsWidgets) *widget.Card {
	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)

	itemKinds := widget.NewFormItem(app.GetMsg(config.TKeyLblKinds), sw.kindsEntry)
	itemKinds.HintText = app.GetMsg(config.TKeyHelpKinds)

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", widget.NewForm(itemURL, itemUser, itemPass, itemKinds))
}

// buildGeneralCard constructs language, calendar, interval and port settings.
func (app *DatesApp) buildGeneralCard(sw *settingsWidgets) *widget.Card {
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemCal := widget.NewFormItem(app.GetMsg(config.TKeyLblCalendar), sw.calendarSelect)
	itemCal.HintText = app.GetMsg(config.TKeyHelpCalendar)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	return widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemCal, itemInterval, itemPort))
}

// buildNotifCard constructs the reminder UI.
func (app *DatesApp) buildNotifCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	row := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblDaysBefore)), sw.entryRemDays)

	sw.checkReminder.OnChanged = func(b bool) {
		if b {
			row.Show()
		} else {
			row.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if !sw.checkReminder.Checked {
		row.Hide()
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblNotif), "", container.NewVBox(sw.checkReminder, row))
}

// saveSettings persists the data and triggers a sync.
// Empty numeric fields disable the matching feature.
func (app *DatesApp) saveSettings(sw *settingsWidgets) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	if s, ok := sw.calendarLookup[sw.calendarSelect.Selected]; ok {
		app.Preferences.SetString(config.PrefCalendar, s.String())
	}

	app.Preferences.SetString(config.PrefAPIURL, strings.TrimSpace(sw.urlEntry.Text))
	app.Preferences.SetString(config.PrefUsername, strings.TrimSpace(sw.userEntry.Text))
	app.Preferences.SetString(config.PrefRecordKinds, strings.Join(splitKinds(sw.kindsEntry.Text), config.KindSeparator))

	if user := strings.TrimSpace(sw.userEntry.Text); user != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, user, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	intervalText := calendar.NormalizeDigits(sw.entryInterval.Text)
	if intervalText == "" || intervalText == "0" {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
		slog.Info("Auto-refresh disabled via settings", config.LogKeyComponent, config.CompUISet)
	} else if i, err := strconv.Atoi(intervalText); err == nil {
		app.Preferences.SetInt(config.PrefInterval, i)
	}

	if port := calendar.NormalizeDigits(sw.entryPort.Text); port != "" {
		app.Preferences.SetString(config.PrefServerPort, port)
	}

	// An empty or zero day count forces reminders off, whatever the checkbox says.
	days, err := strconv.Atoi(calendar.NormalizeDigits(sw.entryRemDays.Text))
	if err != nil || days <= 0 {
		app.Preferences.SetBool(config.PrefReminderEnabled, false)
		slog.Info("Reminders disabled via settings (value is empty)", config.LogKeyComponent, config.CompUISet)
	} else {
		app.Preferences.SetBool(config.PrefReminderEnabled, sw.checkReminder.Checked)
		app.Preferences.SetInt(config.PrefReminderDays, days)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.performSync(true)
}
