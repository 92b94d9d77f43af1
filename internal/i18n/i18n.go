// Package i18n provides the static localization tables for the admin UI.
// The store runs in English, Arabic and Kurdish; translations are embedded
// YAML files, loaded once at startup.

package i18n

import (
	"embed"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var localeFS embed.FS

const (
	DefaultLang = "en"
	langCookie  = "lang"
)

var supported = []string{"en", "ar", "ku"}

// Translator resolves message keys per language.
type Translator struct {
	tables map[string]map[string]string
}

// Load parses every embedded locale file. A malformed locale is a
// startup error.
func Load() (*Translator, error) {
	tables := make(map[string]map[string]string, len(supported))
	for _, lang := range supported {
		raw, err := localeFS.ReadFile("locales/" + lang + ".yml")
		if err != nil {
			return nil, fmt.Errorf("missing locale %s: %w", lang, err)
		}
		table := make(map[string]string)
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("invalid locale %s: %w", lang, err)
		}
		tables[lang] = table
	}
	return &Translator{tables: tables}, nil
}

// T translates a key, falling back to English and then to the key
// itself so a missing translation never blanks the UI.
func (tr *Translator) T(lang, key string) string {
	if table, ok := tr.tables[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := tr.tables[DefaultLang][key]; ok {
		return msg
	}
	return key
}

// Lang picks the UI language for a request from the cosmetic lang
// cookie, defaulting to English.
func Lang(r *http.Request) string {
	c, err := r.Cookie(langCookie)
	if err != nil {
		return DefaultLang
	}
	for _, lang := range supported {
		if c.Value == lang {
			return lang
		}
	}
	return DefaultLang
}

// RTL reports whether the language renders right-to-left.
func RTL(lang string) bool {
	return lang == "ar" || lang == "ku"
}
