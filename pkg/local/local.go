package local

import (
	"fmt"
	"strings"
)

type Language string

const (
	Eng = Language("en")
	Rus = Language("ru")
)

// ParseLanguage maps a config value or a Telegram language code
// ("ru", "en-US") to a supported language, falling back to def.
func ParseLanguage(code string, def Language) Language {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	switch Language(code) {
	case Eng:
		return Eng
	case Rus:
		return Rus
	default:
		return def
	}
}

type Translation struct {
	language Language
	text     string
}

// TextSet is one user-facing text with its translations. Default is used
// for languages without a translation.
type TextSet struct {
	Default      string
	translations map[Language]string
}

func NewTrans(language Language, text string) Translation {
	return Translation{
		language: language,
		text:     text,
	}
}

func NewSet(defaultText string, translations ...Translation) TextSet {
	set := TextSet{
		Default:      defaultText,
		translations: make(map[Language]string, len(translations)),
	}
	for _, translation := range translations {
		set.translations[translation.language] = translation.text
	}
	return set
}

func (l TextSet) Text(language Language) string {
	if text, ok := l.translations[language]; ok {
		return text
	}
	return l.Default
}

func (l TextSet) Format(language Language, a ...any) string {
	return fmt.Sprintf(l.Text(language), a...)
}

// Matches reports whether s equals the text in any language.
func (l TextSet) Matches(s string) bool {
	if s == l.Default {
		return true
	}
	for _, text := range l.translations {
		if s == text {
			return true
		}
	}
	return false
}
