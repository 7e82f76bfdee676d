package ui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/feed"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/records"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/server"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/zalando/go-keyring"
)

// DatesApp encapsulates the UI state, preferences, and background logic.
type DatesApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.FeedServer
	Fetcher records.RecordFetcher
	Clock   calendar.Clock

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Records State
	EntriesMut    sync.RWMutex
	Entries       []feed.Entry
	recordsWindow fyne.Window
}

// NewDatesApp constructs the application and wires dependencies.
func NewDatesApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher records.RecordFetcher) *DatesApp {
	return &DatesApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              calendar.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		Entries:            make([]feed.Entry, 0),
	}
}

// Run launches the application services and the main UI loop.
func (app *DatesApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences wakes the worker whenever a setting changes.
func (app *DatesApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *DatesApp) setupTrayMenu() {
	// The status line doubles as the entry point to the records window.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowRecordsWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *DatesApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// syncInterval reads the refresh interval. Zero means automatic sync is off.
func (app *DatesApp) syncInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val < 0 {
		val = config.DefaultRefreshMin
	}
	return time.Duration(val) * time.Minute
}

// backgroundWorker manages the periodic synchronization schedule.
func (app *DatesApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)

	currentDuration := app.syncInterval()
	ticker := time.NewTicker(tickerPeriod(currentDuration))
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := app.syncInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(tickerPeriod(currentDuration))
			}

		case <-ticker.C:
			if currentDuration > 0 {
				app.performSync(false)
			}
		}
	}
}

// tickerPeriod keeps the ticker valid while automatic sync is disabled.
func tickerPeriod(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Duration(config.DefaultRefreshMin) * time.Minute
	}
	return d
}

// performSync executes the pipeline (Fetch -> Decode -> Feed -> Report).
func (app *DatesApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	cfg := app.loadSyncConfig()

	gen := &feed.Generator{
		Clock:         app.Clock,
		Fetcher:       app.Fetcher,
		FormatSummary: app.buildSummaryFormatter(),
	}

	icsData, entries, countToday, err := gen.RunSync(app.Ctx, cfg)
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(-1)
		return
	}

	app.EntriesMut.Lock()
	app.Entries = entries
	app.EntriesMut.Unlock()

	app.Server.Update(icsData)
	app.publishReport(entries)
	app.updateTrayStatus(countToday)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// publishReport renders the XLSX report with localized headers and hands it
// to the server. A failed export keeps the previous report.
func (app *DatesApp) publishReport(entries []feed.Entry) {
	var buf bytes.Buffer
	if err := feed.ExportXLSX(&buf, entries, app.columnTitles()); err != nil {
		slog.Error(config.ErrReportEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.Server.UpdateReport(buf.Bytes())
}

// columnTitles returns the localized record column titles in column order.
func (app *DatesApp) columnTitles() []string {
	return []string{
		app.GetMsg(config.TKeyColTitle),
		app.GetMsg(config.TKeyColKind),
		app.GetMsg(config.TKeyColGregorian),
		app.GetMsg(config.TKeyColShamsi),
		app.GetMsg(config.TKeyColHijri),
	}
}

// updateTrayStatus updates the top menu item to show how many records are dated today.
func (app *DatesApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	if count < 0 {
		label = config.FallbackTrayError
	} else if count == 0 {
		label = app.GetMsg(config.TKeyTrayStatusZero)
		if label == config.TKeyTrayStatusZero {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	} else {
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// loadSyncConfig assembles the feed configuration from UI preferences and Keyring.
func (app *DatesApp) loadSyncConfig() feed.SyncConfig {
	cfg := feed.SyncConfig{
		APIURL: app.Preferences.String(config.PrefAPIURL),
		User:   app.Preferences.String(config.PrefUsername),
		Kinds:  splitKinds(app.Preferences.String(config.PrefRecordKinds)),
	}

	if cfg.User != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.User); err == nil {
			cfg.Pass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.User,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	if app.Preferences.Bool(config.PrefReminderEnabled) {
		days := app.Preferences.IntWithFallback(config.PrefReminderDays, config.DefaultReminderDays)
		cfg.ReminderTrigger = feed.ReminderTrigger(days)
	}

	return cfg
}

// splitKinds parses the comma separated kinds preference. An empty
// preference yields the default kinds.
func splitKinds(raw string) []string {
	var kinds []string
	for _, k := range strings.Split(raw, config.KindSeparator) {
		if k = strings.TrimSpace(k); k != "" {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return append([]string(nil), config.DefaultRecordKinds...)
	}
	return kinds
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *DatesApp) buildSummaryFormatter() func(title, shamsi string) string {
	return func(title, shamsi string) string {
		var msg string
		var err error

		if app.Localizer != nil {
			msg, err = app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyEvtSummary,
				TemplateData: map[string]interface{}{"Title": title, "Shamsi": shamsi},
			})
		} else {
			err = fmt.Errorf(config.ErrLocNotInit)
		}

		if err != nil || msg == "" {
			return fmt.Sprintf(config.FallbackSummary, title, shamsi)
		}
		return msg
	}
}

// defaultCalendar returns the calendar system chosen in settings.
func (app *DatesApp) defaultCalendar() calendar.System {
	name := app.Preferences.StringWithFallback(config.PrefCalendar, config.DefaultCalendar)
	system, err := calendar.ParseSystem(name)
	if err != nil {
		return calendar.Persian
	}
	return system
}
