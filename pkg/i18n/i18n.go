package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const DefaultLocale = "en"

type ctxKey struct{}

// Translator renders the CLI labels in the configured locale.
type Translator struct {
	bundle        *i18n.Bundle
	defaultLocale string
}

// New loads every embedded locale file.
func New(defaultLocale string) (*Translator, error) {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	if _, err := language.Parse(defaultLocale); err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", defaultLocale, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("reading locales: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", e.Name(), err)
		}
	}

	return &Translator{bundle: bundle, defaultLocale: defaultLocale}, nil
}

// WithLocale overrides the locale for calls made with ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

func (t *Translator) LocaleFromContext(ctx context.Context) string {
	if ctx != nil {
		if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
			return v
		}
	}
	return t.defaultLocale
}

// Languages lists the tags that have a message file.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// T translates messageID, falling back to English and then to the id itself.
func (t *Translator) T(ctx context.Context, messageID string, templateData ...map[string]interface{}) string {
	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}
	return t.localize(ctx, cfg)
}

// Plural picks the plural form of messageID for count, exposed to templates as .Count.
func (t *Translator) Plural(ctx context.Context, messageID string, count int) string {
	return t.localize(ctx, &i18n.LocalizeConfig{
		MessageID:    messageID,
		PluralCount:  count,
		TemplateData: map[string]interface{}{"Count": count},
	})
}

func (t *Translator) localize(ctx context.Context, cfg *i18n.LocalizeConfig) string {
	l := i18n.NewLocalizer(t.bundle, t.LocaleFromContext(ctx), DefaultLocale)
	msg, err := l.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return msg
}
