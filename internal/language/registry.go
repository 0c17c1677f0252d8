// Package language holds the fixed set of languages a pattern can be
// published in.
package language

import "fmt"

// SourceCode is the language patterns are authored in
const SourceCode = "sv"

// Language is one entry of the registry. DisplayName is the Swedish name
// used in archive filenames; EnglishName is what the translation prompt uses.
type Language struct {
	Code        string `json:"code"`
	DisplayName string `json:"name"`
	EnglishName string `json:"english_name"`
}

// Registry is an immutable, ordered set of languages with one source language.
type Registry struct {
	source string
	order  []string
	byCode map[string]Language
}

// defaultLanguages lists the registry in publishing order
var defaultLanguages = []Language{
	{Code: "sv", DisplayName: "Svenska", EnglishName: "Swedish"},
	{Code: "da", DisplayName: "Danska", EnglishName: "Danish"},
	{Code: "fi", DisplayName: "Finska", EnglishName: "Finnish"},
	{Code: "no", DisplayName: "Norska", EnglishName: "Norwegian"},
	{Code: "is", DisplayName: "Isländska", EnglishName: "Icelandic"},
	{Code: "en", DisplayName: "Engelska", EnglishName: "English"},
	{Code: "de", DisplayName: "Tyska", EnglishName: "German"},
	{Code: "nl", DisplayName: "Nederländska", EnglishName: "Dutch"},
	{Code: "it", DisplayName: "Italienska", EnglishName: "Italian"},
	{Code: "fr", DisplayName: "Franska", EnglishName: "French"},
	{Code: "tr", DisplayName: "Turkiska", EnglishName: "Turkish"},
	{Code: "es", DisplayName: "Spanska", EnglishName: "Spanish"},
}

// NewRegistry builds a registry from languages in the given order. The
// source language must be one of them and codes must be unique.
func NewRegistry(source string, languages []Language) (*Registry, error) {
	r := &Registry{
		source: source,
		order:  make([]string, 0, len(languages)),
		byCode: make(map[string]Language, len(languages)),
	}
	for _, lang := range languages {
		if lang.Code == "" {
			return nil, fmt.Errorf("language with empty code")
		}
		if _, dup := r.byCode[lang.Code]; dup {
			return nil, fmt.Errorf("duplicate language code: %s", lang.Code)
		}
		r.byCode[lang.Code] = lang
		r.order = append(r.order, lang.Code)
	}
	if _, ok := r.byCode[source]; !ok {
		return nil, fmt.Errorf("source language %q is not in the registry", source)
	}
	return r, nil
}

// Default returns the built-in registry with Swedish as the source language
func Default() *Registry {
	r, err := NewRegistry(SourceCode, defaultLanguages)
	if err != nil {
		panic(err)
	}
	return r
}

// Source returns the source language
func (r *Registry) Source() Language {
	return r.byCode[r.source]
}

// IsSource reports whether code is the source language
func (r *Registry) IsSource(code string) bool {
	return code == r.source
}

// Lookup returns the language for code
func (r *Registry) Lookup(code string) (Language, bool) {
	lang, ok := r.byCode[code]
	return lang, ok
}

// All returns every language in registry order
func (r *Registry) All() []Language {
	out := make([]Language, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}

// Targets returns every language except the source, in registry order
func (r *Registry) Targets() []Language {
	out := make([]Language, 0, len(r.order))
	for _, code := range r.order {
		if code == r.source {
			continue
		}
		out = append(out, r.byCode[code])
	}
	return out
}
