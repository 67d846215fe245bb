package locale

import (
	"testing"

	"github.com/stretchr/testify/require"

	"heroes-marathon-bot/internal/domain"
)

func TestEveryKeyHasEveryLanguage(t *testing.T) {
	for _, key := range Keys() {
		for _, lang := range domain.Languages {
			_, ok := catalog[key][lang]
			require.Truef(t, ok, "key %q missing %q translation", key, lang)
		}
	}
}

func TestTextFormatsArguments(t *testing.T) {
	require.Equal(t, "Please enter the year of your birth (1900-2026):", Text(domain.English, AskBirthYear, 2026))
	require.Equal(t, "Не вказано", Text(domain.Ukrainian, Placeholder))
}

func TestTextFallsBackToEnglish(t *testing.T) {
	require.Equal(t, "Skip", Text(domain.Language("de"), ButtonSkip))
	require.Equal(t, "unknown_key", Text(domain.English, Key("unknown_key")))
}

func TestIsSkipAcceptsBothLanguages(t *testing.T) {
	require.True(t, IsSkip("Skip"))
	require.True(t, IsSkip("Пропустити"))
	require.True(t, IsSkip("  Skip "))
	require.False(t, IsSkip("skip please"))
	require.False(t, IsSkip(""))
}

func TestLanguageFromButton(t *testing.T) {
	lang, ok := LanguageFromButton("Українська")
	require.True(t, ok)
	require.Equal(t, domain.Ukrainian, lang)

	lang, ok = LanguageFromButton("English")
	require.True(t, ok)
	require.Equal(t, domain.English, lang)

	_, ok = LanguageFromButton("Deutsch")
	require.False(t, ok)
}
