// Package i18n localizes user-facing labels (anniversary summaries, orbit
// names) from embedded locale files.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/derive"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator wraps a go-i18n localizer for one selected language, falling
// back to English and, past that, to the raw key.
type Translator struct {
	localizer *goi18n.Localizer
	log       *slog.Logger
}

// New loads every embedded active.XX.json locale and builds a localizer for
// lang.
func New(lang string) *Translator {
	log := slog.With(config.LogKeyComponent, config.CompI18n)
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		log.Error(config.ErrLocalesAccess, config.LogKeyError, err)
		return &Translator{log: log}
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, name)
			continue
		}
		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			log.Warn(config.MsgLocaleBadName, config.LogKeyFile, name)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			log.Error(config.ErrLocaleLoad, config.LogKeyFile, name, config.LogKeyError, err)
			continue
		}
		log.Debug(config.MsgLocaleLoaded, config.LogKeyLang, langCode, config.LogKeyFile, name)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	return &Translator{
		localizer: goi18n.NewLocalizer(bundle, lang, config.DefaultLanguage),
		log:       log,
	}
}

// Msg translates a plain key, returning the key itself when no translation
// exists.
func (t *Translator) Msg(key string) string {
	return t.localize(key, nil)
}

// AnnivLabel renders the localized summary for one anniversary kind. The
// kind values double as message ids.
func (t *Translator) AnnivLabel(kind derive.AnnivKind, friendName string) string {
	return t.localize(string(kind), map[string]interface{}{"Name": friendName})
}

// OrbitLabel names an orbit tier for display.
func (t *Translator) OrbitLabel(orbit derive.Orbit) string {
	switch orbit {
	case derive.OrbitInner:
		return t.localize(config.TKeyOrbitInner, nil)
	case derive.OrbitMiddle:
		return t.localize(config.TKeyOrbitMiddle, nil)
	default:
		return t.localize(config.TKeyOrbitOuter, nil)
	}
}

func (t *Translator) localize(key string, data map[string]interface{}) string {
	if t.localizer == nil {
		t.log.Debug(config.ErrLocNotInit, config.LogKeyKey, key)
		return key
	}
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		t.log.Debug(config.MsgTransMissing, config.LogKeyKey, key, config.LogKeyError, err)
		return key
	}
	return msg
}
