// Package glossary loads the fixed bilingual knitting vocabulary used by the
// dictionary translator.
package glossary

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

//go:embed knitting_terms.yaml
var defaultTerms []byte

// Entry maps one source-language term to its translations, keyed by
// language code.
type Entry struct {
	Term         string            `yaml:"term" json:"term"`
	Translations map[string]string `yaml:"translations" json:"translations"`
}

// Translation returns the term for lang, if the entry has one
func (e Entry) Translation(lang string) (string, bool) {
	t, ok := e.Translations[lang]
	if !ok || t == "" {
		return "", false
	}
	return t, true
}

// Glossary is an ordered, immutable list of entries
type Glossary struct {
	entries []Entry
}

type document struct {
	Terms []Entry `yaml:"terms"`
}

// Load parses a glossary YAML document. Entry order is preserved.
func Load(r io.Reader) (*Glossary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary: %w", err)
	}
	return parse(data)
}

// LoadFile reads a glossary YAML file
func LoadFile(path string) (*Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary file %s: %w", path, err)
	}
	return parse(data)
}

// Default returns the embedded knitting glossary
func Default() *Glossary {
	g, err := parse(defaultTerms)
	if err != nil {
		panic(fmt.Sprintf("embedded glossary is invalid: %v", err))
	}
	return g
}

func parse(data []byte) (*Glossary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse glossary: %w", err)
	}

	seen := make(map[string]bool, len(doc.Terms))
	for i, entry := range doc.Terms {
		term := strings.TrimSpace(entry.Term)
		if term == "" {
			return nil, fmt.Errorf("glossary entry %d has an empty term", i)
		}
		key := strings.ToLower(term)
		if seen[key] {
			return nil, fmt.Errorf("duplicate glossary term: %s", term)
		}
		seen[key] = true
		doc.Terms[i].Term = term
	}

	return &Glossary{entries: doc.Terms}, nil
}

// Len returns the number of entries
func (g *Glossary) Len() int {
	return len(g.entries)
}

// Entries returns a deep copy of the entries in glossary order
func (g *Glossary) Entries() []Entry {
	var out []Entry
	if err := copier.CopyWithOption(&out, g.entries, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched types, which cannot happen here
		panic(err)
	}
	return out
}

