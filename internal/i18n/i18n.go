// Package i18n localizes the user-facing strings of the TUI and the CLI.
//
// Messages live in embedded YAML files, one per language. Korean is the
// source language; a message missing from another language falls back to
// Korean, and an unknown message ID renders as the ID itself.
package i18n

import (
	"embed"
	"fmt"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/abelbrown/aagag/internal/logging"
)

//go:embed locales/*.yaml
var locales embed.FS

// Data is the template data for a message.
type Data map[string]any

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
)

func loadBundle() *goi18n.Bundle {
	bundleOnce.Do(func() {
		bundle = goi18n.NewBundle(language.Korean)
		bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

		entries, err := locales.ReadDir("locales")
		if err != nil {
			logging.Error("Failed to list message files", "error", err)
			return
		}
		for _, e := range entries {
			data, err := locales.ReadFile("locales/" + e.Name())
			if err != nil {
				logging.Error("Failed to read message file", "file", e.Name(), "error", err)
				continue
			}
			if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
				logging.Error("Failed to parse message file", "file", e.Name(), "error", err)
			}
		}
	})
	return bundle
}

// Translator renders messages for one locale.
type Translator struct {
	tag       language.Tag
	localizer *goi18n.Localizer
}

// New returns a Translator for locale, e.g. "ko" or "en-US". Unknown or
// unsupported locales resolve to Korean.
func New(locale string) *Translator {
	b := loadBundle()
	tag := language.Korean
	if locale != "" {
		matcher := language.NewMatcher(b.LanguageTags())
		if parsed, err := language.Parse(locale); err == nil {
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No {
				tag = b.LanguageTags()[idx]
			}
		}
	}
	return &Translator{
		tag:       tag,
		localizer: goi18n.NewLocalizer(b, tag.String()),
	}
}

// Language returns the resolved language. Name collation follows it.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// T renders the message id.
func (t *Translator) T(id string) string {
	return t.Tf(id, nil)
}

// Tf renders the message id with template data.
func (t *Translator) Tf(id string, data Data) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: map[string]any(data),
	})
	if err != nil {
		logging.Debug("Missing message", "id", id, "lang", t.tag, "error", err)
		return id
	}
	return msg
}

// Count formats a count-bearing message, e.g. Count("favorites_count", 3).
func (t *Translator) Count(id string, n int) string {
	return t.Tf(id, Data{"Count": n})
}

var (
	defaultMu sync.RWMutex
	current   = New("ko")
)

// SetLocale replaces the package-level translator.
func SetLocale(locale string) {
	tr := New(locale)
	defaultMu.Lock()
	current = tr
	defaultMu.Unlock()
}

// Default returns the package-level translator.
func Default() *Translator {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return current
}

// T renders id with the package-level translator.
func T(id string) string { return Default().T(id) }

// Tf renders id with data using the package-level translator.
func Tf(id string, data Data) string { return Default().Tf(id, data) }

// SortLabel returns the localized label of a sort preset value.
func (t *Translator) SortLabel(preset string) string {
	return t.T(fmt.Sprintf("sort_%s", preset))
}
