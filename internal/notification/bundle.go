package notification

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle renders notification templates in a fixed deployment locale.
type Bundle struct {
	bundle *i18n.Bundle
	locale string
}

// NewBundle loads the embedded locale files. locale selects the deployment
// language; unknown locales fall back to English message by message.
func NewBundle(locale string) (*Bundle, error) {
	if locale == "" {
		locale = "fr"
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", e.Name(), err)
		}
	}

	return &Bundle{bundle: bundle, locale: locale}, nil
}

// Render resolves the subject and body for a template key.
func (b *Bundle) Render(template string, data map[string]string) (subject, body string) {
	localizer := i18n.NewLocalizer(b.bundle, b.locale)
	subject = b.localize(localizer, template+".subject", data)
	body = b.localize(localizer, template+".body", data)
	return subject, body
}

func (b *Bundle) localize(localizer *i18n.Localizer, messageID string, data map[string]string) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		// An unknown key still produces something traceable in the outbox.
		return messageID
	}
	return msg
}
