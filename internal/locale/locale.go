// Package locale loads the embedded translations and formats reminder messages.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/pet-reminder/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Localizer translates UI strings and implements engine.Formatter.
// The active language can be switched at runtime from the settings window
// while the scheduler formats messages, hence the lock.
type Localizer struct {
	bundle    *i18n.Bundle
	languages []string

	mu   sync.RWMutex
	lang string
	loc  *i18n.Localizer
}

// New loads every embedded locale and activates lang.
func New(lang string) *Localizer {
	bundle, langs := loadBundle()
	l := &Localizer{bundle: bundle, languages: langs}
	l.SetLanguage(lang)
	return l
}

// loadBundle reads localeFS and skips files not named active.<lang>.json.
func loadBundle() (*i18n.Bundle, []string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle, config.SupportedLanguages
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	if len(detected) == 0 {
		detected = config.SupportedLanguages
	}
	return bundle, detected
}

// Languages returns the codes of the loaded locales.
func (l *Localizer) Languages() []string {
	return append([]string(nil), l.languages...)
}

// Language returns the active language code.
func (l *Localizer) Language() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// SetLanguage switches the active language. Empty means the default.
// Unknown codes fall back to English through the bundle.
func (l *Localizer) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	loc := i18n.NewLocalizer(l.bundle, lang, config.DefaultLanguage)

	l.mu.Lock()
	l.lang = lang
	l.loc = loc
	l.mu.Unlock()
}

// GetMsg translates a key. A missing key is returned unchanged.
func (l *Localizer) GetMsg(key string) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: key})
}

// GetMsgData translates a templated key.
func (l *Localizer) GetMsgData(key string, data map[string]any) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural returns the plural form of key matching n (e.g. "день", "дня", "дней").
func (l *Localizer) Plural(key string, n int) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: key, PluralCount: n})
}

func (l *Localizer) localize(cfg *i18n.LocalizeConfig) string {
	l.mu.RLock()
	loc := l.loc
	l.mu.RUnlock()

	if loc == nil {
		return cfg.MessageID
	}
	msg, err := loc.Localize(cfg)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, cfg.MessageID,
			config.LogKeyError, err,
		)
		return cfg.MessageID
	}
	return msg
}
