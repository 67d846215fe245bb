package domain

import "golang.org/x/text/language"

// Language is one of the two locales the bot speaks.
type Language string

const (
	Ukrainian Language = "uk"
	English   Language = "en"
)

// Languages lists supported locales in keyboard order.
var Languages = []Language{Ukrainian, English}

var (
	ukrainianBase, _ = language.Ukrainian.Base()
	englishBase, _   = language.English.Base()
)

// ParseLanguage maps a BCP 47 tag ("uk", "en-GB", "uk-UA") to a supported locale.
func ParseLanguage(s string) (Language, bool) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base {
	case ukrainianBase:
		return Ukrainian, true
	case englishBase:
		return English, true
	}
	return "", false
}

func (l Language) Valid() bool {
	return l == Ukrainian || l == English
}
