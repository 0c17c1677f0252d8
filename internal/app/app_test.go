package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prettyknit/pattern-service/internal/config"
	"github.com/prettyknit/pattern-service/internal/glossary"
	"github.com/prettyknit/pattern-service/internal/services/pattern"
	"github.com/prettyknit/pattern-service/internal/translate"
)

func testConfig(t *testing.T) *config.ServiceConfig {
	t.Helper()
	return &config.ServiceConfig{
		Port:            "0",
		FontDir:         t.TempDir(),
		FooterText:      "Prettyknit.se",
		MaxRequestBytes: 1 << 20,
	}
}

func TestNewWithoutAPIKeyUsesDictionary(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &translate.Dictionary{}, a.Translator)
	assert.Equal(t, glossary.Default().Len(), a.Glossary.Len())

	out, err := a.Translator.Translate(context.Background(), "3 varv rät", "en")
	require.NoError(t, err)
	assert.Equal(t, "3 round knit", out)
}

func TestNewGeneratesRealArchive(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	archive, err := a.Service.GenerateArchive(context.Background(), pattern.Pattern{
		Title:     "Sibelle",
		Content:   "STORLEKAR\nGarn: Drops Fabel\n\nSticka 2 varv rät.",
		Languages: []string{"en", "de"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sibelle_Engelska.pdf", "Sibelle_Tyska.pdf"}, archive.Files)
	assert.NotEmpty(t, archive.Data)
}

func TestNewWithGlossaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("terms:\n  - term: mössa\n    translations:\n      en: hat\n"), 0o600))

	cfg := testConfig(t)
	cfg.GlossaryPath = path
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Glossary.Len())
	out, err := a.Translator.Translate(context.Background(), "En mössa", "en")
	require.NoError(t, err)
	assert.Equal(t, "En hat", out)
}

func TestNewWithMissingGlossaryFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.GlossaryPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestCloseWithoutRedis(t *testing.T) {
	a := &App{}
	assert.NoError(t, a.Close())
}
