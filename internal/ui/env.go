package ui

import (
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/calendar"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
)

// SeedPreferences copies HSMIS_* environment values into empty preferences on
// first run. It returns true when seeding happened. Later runs leave
// preferences to the settings window.
func SeedPreferences(prefs fyne.Preferences, lookup func(string) (string, bool)) bool {
	if prefs.Bool(config.PrefSeeded) {
		return false
	}

	seeded := 0
	set := func(env, pref string, normalize func(string) (string, bool)) {
		v, ok := lookup(env)
		v = strings.TrimSpace(v)
		if !ok || v == "" || prefs.String(pref) != "" {
			return
		}
		if normalize != nil {
			if v, ok = normalize(v); !ok {
				slog.Warn(config.MsgEnvRejected,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyKey, env,
					config.LogKeyValue, v)
				return
			}
		}
		prefs.SetString(pref, v)
		seeded++
	}

	set(config.EnvAPIURL, config.PrefAPIURL, nil)
	set(config.EnvAPIUser, config.PrefUsername, nil)
	set(config.EnvKinds, config.PrefRecordKinds, nil)
	set(config.EnvLanguage, config.PrefLanguage, func(v string) (string, bool) {
		for _, lang := range config.SupportedLanguages {
			if strings.EqualFold(v, lang) {
				return lang, true
			}
		}
		return v, false
	})
	set(config.EnvCalendar, config.PrefCalendar, func(v string) (string, bool) {
		s, err := calendar.ParseSystem(v)
		if err != nil {
			return v, false
		}
		return s.String(), true
	})

	prefs.SetBool(config.PrefSeeded, true)
	slog.Info(config.MsgEnvSeeded,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyCount, seeded)
	return true
}
