package translate

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/prettyknit/pattern-service/internal/glossary"
	"github.com/prettyknit/pattern-service/internal/language"
)

// Dictionary replaces glossary terms with their target-language equivalent.
// Matching is whole-word and case-insensitive. All terms are matched against
// the original text in one pass: spans are claimed in glossary order, a span
// that overlaps an already claimed one is dropped, and replacements are never
// scanned again.
type Dictionary struct {
	registry *language.Registry
	terms    []dictTerm
}

type dictTerm struct {
	pattern *regexp.Regexp
	entry   glossary.Entry
}

type span struct {
	start, end int
	text       string
}

// NewDictionary compiles one matcher per glossary entry
func NewDictionary(registry *language.Registry, g *glossary.Glossary) *Dictionary {
	d := &Dictionary{registry: registry}
	for _, e := range g.Entries() {
		d.terms = append(d.terms, dictTerm{
			pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(e.Term)),
			entry:   e,
		})
	}
	return d
}

// Translate never fails; the error is always nil.
func (d *Dictionary) Translate(_ context.Context, text, targetLang string) (string, error) {
	if passthrough(d.registry, text, targetLang) {
		return text, nil
	}
	return d.replace(text, targetLang), nil
}

// replace performs the substitution without the source-language shortcut
func (d *Dictionary) replace(text, targetLang string) string {
	var claimed []span
	for _, term := range d.terms {
		for _, loc := range findWholeWords(term.pattern, text) {
			start, end := loc[0], loc[1]
			if overlaps(claimed, start, end) {
				continue
			}
			replacement, ok := term.entry.Translation(targetLang)
			if !ok {
				replacement = text[start:end]
			}
			claimed = append(claimed, span{start: start, end: end, text: replacement})
		}
	}
	if len(claimed) == 0 {
		return text
	}

	sort.Slice(claimed, func(i, j int) bool { return claimed[i].start < claimed[j].start })

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, s := range claimed {
		b.WriteString(text[last:s.start])
		b.WriteString(s.text)
		last = s.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// findWholeWords returns the non-overlapping whole-word matches of re. A
// match glued to a word character is rejected and the scan resumes one rune
// after its start, so an overlapping whole-word occurrence is still found.
func findWholeWords(re *regexp.Regexp, text string) [][2]int {
	var out [][2]int
	pos := 0
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end > start && isWordBoundary(text, start, end) {
			out = append(out, [2]int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			break
		}
		pos = start + size
	}
	return out
}

func overlaps(claimed []span, start, end int) bool {
	for _, s := range claimed {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}

// isWordBoundary checks that the match is not glued to a letter, digit or
// underscore on either side. Unlike regexp's \b this treats å, ä and ö as
// word characters.
func isWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
