package picker

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// localeFiles maps each calendar to the language its toolbar speaks.
var localeFiles = map[calendar.System]string{
	calendar.Persian:   config.LangDari,
	calendar.Arabic:    config.LangArabic,
	calendar.Gregorian: config.LangEnglish,
}

// Labels holds the toolbar button captions of the picker overlay.
type Labels struct {
	Today string
	Clear string
	OK    string
}

// Catalog resolves toolbar labels per calendar system. It is read-only after
// construction and safe to share between pickers.
type Catalog struct {
	localizers map[calendar.System]*i18n.Localizer
}

// NewCatalog loads the embedded toolbar translations.
func NewCatalog() (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &Catalog{localizers: make(map[calendar.System]*i18n.Localizer, len(localeFiles))}
	for system, lang := range localeFiles {
		path := "locales/active." + lang + ".json"
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrLocaleLoad, err)
		}
		c.localizers[system] = i18n.NewLocalizer(bundle, lang)
	}
	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		slog.Error(config.ErrLocaleLoad,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyError, err,
		)
		return &Catalog{}
	}
	return c
})

// DefaultCatalog returns the process-wide catalog built from the embedded locales.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// Labels returns the toolbar captions for a calendar. Missing translations
// fall back to English.
func (c *Catalog) Labels(system calendar.System) Labels {
	return Labels{
		Today: c.msg(system, config.TKeyPickerToday, config.FallbackPickerToday),
		Clear: c.msg(system, config.TKeyPickerClear, config.FallbackPickerClear),
		OK:    c.msg(system, config.TKeyPickerOK, config.FallbackPickerOK),
	}
}

func (c *Catalog) msg(system calendar.System, key, fallback string) string {
	if c == nil {
		return fallback
	}
	loc, ok := c.localizers[system]
	if !ok {
		return fallback
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}
