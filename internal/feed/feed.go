// Package feed turns HSMIS records into an iCalendar feed, display rows
// carrying Gregorian, Shamsi and Hijri dates, and an XLSX report.
package feed

import (
	"bytes"
	"cmp"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/records"
	"github.com/emersion/go-ical"
	"github.com/go-playground/validator/v10"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	APIURL string `validate:"required,url"`

	// HTTP Basic Auth credentials.
	User string
	Pass string

	Kinds []string `validate:"required,min=1,dive,required"`

	// ReminderTrigger is an ISO8601 duration such as "-P1D", or "" for no alarm.
	ReminderTrigger string `validate:"omitempty,startswith=-P"`
}

// Generator is the core service responsible for fetching and converting records.
type Generator struct {
	Clock   calendar.Clock
	Fetcher records.RecordFetcher

	// FormatSummary lets the UI inject a localized event title built from the
	// record title and its Shamsi date.
	FormatSummary func(title, shamsi string) string
}

var validate = validator.New()

// ReminderTrigger returns the ISO8601 alarm offset for a reminder the given
// number of days before the record date, or "" when days is not positive.
func ReminderTrigger(days int) string {
	if days <= 0 {
		return ""
	}
	return config.ISONegativePrefix + strconv.Itoa(days) + config.ISODay
}

// RunSync fetches every configured record kind and builds the feed.
// It returns the ICS data, the display entries, the count of records dated
// today, and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []Entry, int, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompFeed)
	log.InfoContext(ctx, config.MsgSyncStarted, slog.Int(config.LogKeyCount, len(cfg.Kinds)))

	if cfg.APIURL == "" {
		return nil, nil, 0, errors.New(config.ErrAPIURLEmpty)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrSyncConfig, err)
	}
	if g.Fetcher == nil {
		return nil, nil, 0, errors.New(config.ErrFetcherMissing)
	}

	var all []records.Record
	for _, kind := range cfg.Kinds {
		recs, err := g.fetchKind(ctx, cfg, kind)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, 0, ctx.Err()
			}
			return nil, nil, 0, fmt.Errorf("%s: %s: %w", config.ErrRecordsFetch, kind, err)
		}
		all = append(all, recs...)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	ics, entries, count, err := g.generateCalendar(ctx, all, cfg.ReminderTrigger)
	if err == nil {
		log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return ics, entries, count, err
}

func (g *Generator) fetchKind(ctx context.Context, cfg SyncConfig, kind string) ([]records.Record, error) {
	target, err := records.KindURL(cfg.APIURL, kind)
	if err != nil {
		return nil, err
	}
	rc, err := g.Fetcher.Fetch(ctx, target, cfg.User, cfg.Pass)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return records.Decode(rc, kind)
}

// generateCalendar converts records into display entries and all-day events.
func (g *Generator) generateCalendar(ctx context.Context, recs []records.Record, reminderTrigger string) ([]byte, []Entry, int, error) {
	today, err := calendar.Today(g.Clock, calendar.Gregorian)
	if err != nil {
		return nil, nil, 0, err
	}
	todayCanonical := calendar.Format(today, "")
	now := g.Clock.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ total, dated, today int }{}
	entries := make([]Entry, 0, len(recs))

	for _, rec := range recs {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}
		stats.total++

		entry := newEntry(rec)
		if !entry.Dated() {
			entries = append(entries, entry)
			continue
		}
		stats.dated++

		if entry.Canonical == todayCanonical {
			entry.Today = true
			stats.today++
			slog.Info(config.MsgRecordToday,
				config.LogKeyComponent, config.CompFeed,
				config.LogKeyKind, rec.Kind,
				config.LogKeyID, rec.ID,
				config.LogKeyTitle, rec.Title,
			)
		}
		entries = append(entries, entry)

		event, err := g.createEvent(entry, reminderTrigger, now.Location())
		if err != nil {
			slog.Warn(config.MsgSkippedRecord,
				config.LogKeyComponent, config.CompFeed,
				config.LogKeyID, rec.ID,
				config.LogKeyError, err,
			)
			continue
		}
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	sortEntries(entries)
	g.logSuccess(stats)

	if len(cal.Children) == 0 {
		// A valid empty VCALENDAR keeps subscribed clients from flagging the feed.
		return []byte(config.StubVCalendar), entries, 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), entries, stats.today, nil
}

// newEntry derives the display row of a record.
func newEntry(rec records.Record) Entry {
	input := fmt.Sprintf(config.FormatHashInput, rec.Kind, rec.ID, rec.Date, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))

	return Entry{
		UID:       fmt.Sprintf("%x", hash[:config.UIDHashLength]),
		ID:        rec.ID,
		Kind:      rec.Kind,
		Title:     rec.Title,
		Canonical: rec.Date,
		Shamsi:    calendar.GregorianToShamsi(rec.Date),
		Hijri:     calendar.GregorianToHijri(rec.Date),
	}
}

// createEvent builds the all-day event of a dated entry.
func (g *Generator) createEvent(e Entry, reminderTrigger string, loc *time.Location) (*ical.Event, error) {
	d, err := calendar.ParseCanonical(e.Canonical)
	if err != nil {
		return nil, err
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, e.UID, config.ICalDomain))

	summary := fmt.Sprintf(config.FallbackSummary, e.Title, e.Shamsi)
	if g.FormatSummary != nil {
		summary = g.FormatSummary(e.Title, e.Shamsi)
	}
	event.Props.SetText(config.PropSummary, summary)
	event.Props.SetText(config.PropDescription, fmt.Sprintf(config.FormatDescription, e.Shamsi, e.Hijri))
	event.Props.SetText(config.PropCategories, e.Kind)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc))
	event.Props.Set(dtStartProp)

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	return event, nil
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the raw value to avoid a VALUE=TEXT parameter.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// sortEntries orders entries newest first, undated last, then by title.
func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Dated() != b.Dated() {
			if a.Dated() {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.Canonical, a.Canonical); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
}

func (g *Generator) logSuccess(stats struct{ total, dated, today int }) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompFeed,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.total),
			slog.Int(config.LogKeyDated, stats.dated),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}
