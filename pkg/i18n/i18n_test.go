package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/goto/intake/pkg/i18n"
)

func TestTranslator(t *testing.T) {
	tr, err := i18n.New("es")
	require.NoError(t, err)

	assert.ElementsMatch(t, []language.Tag{language.English, language.Spanish}, tr.Languages())

	t.Run("uses the default locale", func(t *testing.T) {
		assert.Equal(t, "En proceso", tr.T(context.Background(), "status.in_process"))
	})

	t.Run("context locale wins", func(t *testing.T) {
		ctx := i18n.WithLocale(context.Background(), "en")
		assert.Equal(t, "In Process", tr.T(ctx, "status.in_process"))
	})

	t.Run("unsupported locale falls back to english", func(t *testing.T) {
		ctx := i18n.WithLocale(context.Background(), "fr")
		assert.Equal(t, "Overdue", tr.T(ctx, "bucket.overdue"))
	})

	t.Run("unknown id is returned as is", func(t *testing.T) {
		assert.Equal(t, "missing.id", tr.T(context.Background(), "missing.id"))
	})

	t.Run("template data", func(t *testing.T) {
		ctx := i18n.WithLocale(context.Background(), "en")
		got := tr.T(ctx, "message.request_transitioned", map[string]interface{}{"ID": "doc-1", "Status": "Approved"})
		assert.Equal(t, "Request doc-1 is now Approved", got)
	})

	t.Run("plurals", func(t *testing.T) {
		ctx := i18n.WithLocale(context.Background(), "en")
		assert.Equal(t, "1 day", tr.Plural(ctx, "days_remaining", 1))
		assert.Equal(t, "3 days", tr.Plural(ctx, "days_remaining", 3))
		assert.Equal(t, "2 días", tr.Plural(context.Background(), "days_remaining", 2))
	})
}

func TestNew(t *testing.T) {
	_, err := i18n.New("not a locale!")
	assert.Error(t, err)

	tr, err := i18n.New("")
	require.NoError(t, err)
	assert.Equal(t, "en", tr.LocaleFromContext(context.Background()))
}
