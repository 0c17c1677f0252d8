package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Kind
	}{
		{"empty", "", Blank},
		{"whitespace", "   \t", Blank},
		{"heading", "SIBELLE", Heading},
		{"heading with accents", "STORLEKAR OCH MÅTT", Heading},
		{"heading with digits", "DEL 2", Heading},
		{"heading padded", "  ÄRMAR  ", Heading},
		{"single capital is not a heading", "A", Plain},
		{"digits only", "42", Plain},
		{"labeled", "Garn: Drops Fabel", Labeled},
		{"labeled without value", "Garnåtgång:", Labeled},
		{"labeled mixed case", "Stickor: 3,5 mm", Labeled},
		{"all caps with colon is plain", "MASKOR:", Plain},
		{"all caps with colon inside is a heading", "OBS: LÄS FÖRST", Heading},
		{"plain", "Stickas nedifrån och upp.", Plain},
		{"colon without letters", "12:30", Labeled},
		{"sharp s lowercases", "STRASSE ß", Plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line).Kind, "line %q", tt.line)
		})
	}
}

func TestClassifyAllCapsColonTieBreak(t *testing.T) {
	line := Classify("MASKOR:")
	assert.Equal(t, Plain, line.Kind)
	assert.Empty(t, line.Label)
	assert.Empty(t, line.Value)
}

func TestClassifyLabelSplit(t *testing.T) {
	line := Classify("Garn: Drops Fabel")
	require.Equal(t, Labeled, line.Kind)
	assert.Equal(t, "Garn:", line.Label)
	assert.Equal(t, " Drops Fabel", line.Value)

	line = Classify("Tid: 10:30")
	require.Equal(t, Labeled, line.Kind)
	assert.Equal(t, "Tid:", line.Label)
	assert.Equal(t, " 10:30", line.Value)
}

func TestClassifyIsMemoryless(t *testing.T) {
	lines := ClassifyAll("SIBELLE\nGarn: Drops Fabel\n\nStickas nedifrån och upp.\r\nMASKOR:")
	require.Len(t, lines, 5)

	want := []Kind{Heading, Labeled, Blank, Plain, Plain}
	for i, l := range lines {
		assert.Equal(t, want[i], l.Kind, "line %d", i)
		assert.Equal(t, Classify(l.Text), l, "line %d classified differently in isolation", i)
	}
	assert.Equal(t, "Stickas nedifrån och upp.", lines[3].Text)
}

func TestClassifyAllEmpty(t *testing.T) {
	assert.Nil(t, ClassifyAll(""))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "heading", Heading.String())
	assert.Equal(t, "labeled", Labeled.String())
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "blank", Blank.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
