// Package locale renders user-facing sentences from embedded message files.
package locale

import (
	"embed"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported languages
const (
	German  = "de"
	English = "en"
)

// Message IDs
const (
	IncomeUnknown  = "IncomeUnknown"
	IncomePassed   = "IncomePassed"
	IncomeExceeded = "IncomeExceeded"

	FamilyUnknown = "FamilyUnknown"
	FamilyPassed  = "FamilyPassed"
	FamilyFailed  = "FamilyFailed"

	HousingUnknown = "HousingUnknown"
	HousingPassed  = "HousingPassed"
	HousingFailed  = "HousingFailed"

	VerdictEligible      = "VerdictEligible"
	VerdictIneligible    = "VerdictIneligible"
	VerdictIndeterminate = "VerdictIndeterminate"
	TechnicalError       = "TechnicalError"

	RationaleIncome       = "RationaleIncome"
	RationaleFamily       = "RationaleFamily"
	RationaleLowIncome    = "RationaleLowIncome"
	RationaleHighPriority = "RationaleHighPriority"
	RationaleFallback     = "RationaleFallback"
)

var localeFiles = map[string]string{
	German:  "locales/active.de.json",
	English: "locales/active.en.json",
}

// Messages renders messages in one language
type Messages struct {
	lang      string
	localizer *i18n.Localizer
}

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.German)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)
		for lang, path := range localeFiles {
			if _, err := b.LoadMessageFileFS(localeFS, path); err != nil {
				bundleErr = fmt.Errorf("failed to load %s messages: %w", lang, err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// New returns the messages for lang ("de" or "en")
func New(lang string) (*Messages, error) {
	if _, ok := localeFiles[lang]; !ok {
		return nil, fmt.Errorf("unsupported language %q (use %q or %q)", lang, German, English)
	}

	b, err := loadBundle()
	if err != nil {
		return nil, err
	}

	return &Messages{
		lang:      lang,
		localizer: i18n.NewLocalizer(b, lang),
	}, nil
}

var defaultMessages = sync.OnceValue(func() *Messages {
	m, err := New(German)
	if err != nil {
		panic(err)
	}
	return m
})

// Default returns the German messages
func Default() *Messages {
	return defaultMessages()
}

// Language returns the language code of m
func (m *Messages) Language() string {
	return m.lang
}

// Text renders a message without template data. Unknown ids render as the id.
func (m *Messages) Text(id string) string {
	return m.localize(&i18n.LocalizeConfig{MessageID: id})
}

// Plural renders a message with a {{.Count}} template and plural forms
func (m *Messages) Plural(id string, count int) string {
	return m.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: map[string]interface{}{"Count": count},
		PluralCount:  count,
	})
}

func (m *Messages) localize(cfg *i18n.LocalizeConfig) string {
	if m == nil || m.localizer == nil {
		return cfg.MessageID
	}
	msg, err := m.localizer.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return msg
}
