// Package i18n holds the dashboard's two UI languages and every localized
// string shown to the operator. Indonesian is the default.
package i18n

import (
	"golang.org/x/text/language"
)

// Language is a UI locale.
type Language string

const (
	ID Language = "id"
	EN Language = "en"
)

// Default is the language of a fresh session.
const Default = ID

var matcher = language.NewMatcher([]language.Tag{language.Indonesian, language.English})

// Parse normalises a BCP 47 tag ("en-US", "id", "in") to a supported
// Language. ok is false when the tag is malformed or matches neither.
func Parse(tag string) (Language, bool) {
	t, err := language.Parse(tag)
	if err != nil {
		return Default, false
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return Default, false
	}
	if idx == 1 {
		return EN, true
	}
	return ID, true
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == ID || l == EN
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == ID {
		return EN
	}
	return ID
}

// Flag is the short label shown on the language toggle button.
func (l Language) Flag() string {
	if l == EN {
		return "🇺🇸 EN"
	}
	return "🇮🇩 ID"
}

// T returns the message for key in lang, falling back to Indonesian and then
// to the key itself.
func T(lang Language, key Key) string {
	entry, ok := catalog[key]
	if !ok {
		return string(key)
	}
	if msg, ok := entry[lang]; ok {
		return msg
	}
	return entry[ID]
}

// Translator binds a language so templates can call {{ .T "key" }}.
type Translator struct {
	Lang Language
}

// T looks up key in the bound language.
func (tr Translator) T(key string) string {
	return T(tr.Lang, Key(key))
}
