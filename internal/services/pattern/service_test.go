package pattern

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prettyknit/pattern-service/internal/document"
	"github.com/prettyknit/pattern-service/internal/language"
)

type fakeTranslator struct {
	mu     sync.Mutex
	failOn map[string]bool
	calls  []string
}

func (f *fakeTranslator) Translate(_ context.Context, text, targetLang string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, targetLang)
	if f.failOn[targetLang] {
		return "", errors.New("translation backend down")
	}
	return "[" + targetLang + "] " + text, nil
}

type fakeRenderer struct {
	inputs []document.Input
	err    error
	panics bool
}

func (f *fakeRenderer) Render(in document.Input) ([]byte, error) {
	if f.panics {
		panic("renderer exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return []byte("%PDF " + in.Language.Code + " " + in.Title), nil
}

func testRegistry(t *testing.T) *language.Registry {
	t.Helper()
	reg, err := language.NewRegistry("sv", []language.Language{
		{Code: "sv", DisplayName: "Svenska", EnglishName: "Swedish"},
		{Code: "en", DisplayName: "Engelska", EnglishName: "English"},
		{Code: "de", DisplayName: "Tyska", EnglishName: "German"},
	})
	require.NoError(t, err)
	return reg
}

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = string(body)
	}
	return files
}

func TestGenerateArchive(t *testing.T) {
	tr := &fakeTranslator{}
	rend := &fakeRenderer{}
	svc := NewService(testRegistry(t), tr, rend)

	archive, err := svc.GenerateArchive(context.Background(), Pattern{
		Title:     "Sibelle",
		Content:   "Garn: Drops",
		Languages: []string{"en", "de"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Sibelle_alla-språk.zip", archive.Filename)
	assert.Equal(t, "application/zip", archive.ContentType)
	assert.Equal(t, []string{"Sibelle_Engelska.pdf", "Sibelle_Tyska.pdf"}, archive.Files)

	files := readArchive(t, archive.Data)
	assert.Len(t, files, 2)
	assert.Equal(t, "%PDF en [en] Sibelle", files["Sibelle_Engelska.pdf"])
	assert.Equal(t, "%PDF de [de] Sibelle", files["Sibelle_Tyska.pdf"])

	require.Len(t, rend.inputs, 2)
	assert.Equal(t, "[en] Garn: Drops", rend.inputs[0].Content)
	assert.Equal(t, "Engelska", rend.inputs[0].Language.DisplayName)
}

func TestGenerateArchiveSkipsFailedLanguage(t *testing.T) {
	tr := &fakeTranslator{failOn: map[string]bool{"de": true}}
	svc := NewService(testRegistry(t), tr, &fakeRenderer{})

	archive, err := svc.GenerateArchive(context.Background(), Pattern{
		Title:     "TEST",
		Content:   "Rad 1\nRad 2",
		Languages: []string{"en", "de"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"TEST_Engelska.pdf"}, archive.Files)
	files := readArchive(t, archive.Data)
	assert.Len(t, files, 1)
	assert.Contains(t, files, "TEST_Engelska.pdf")
	assert.Equal(t, []string{"en", "en", "de"}, tr.calls)
}

func TestGenerateArchiveAllLanguagesFail(t *testing.T) {
	svc := NewService(testRegistry(t), &fakeTranslator{}, &fakeRenderer{err: errors.New("no fonts")})

	archive, err := svc.GenerateArchive(context.Background(), Pattern{Title: "Sibelle", Languages: []string{"en", "de"}})
	require.NoError(t, err)
	assert.Empty(t, archive.Files)
	assert.Equal(t, "Sibelle_alla-språk.zip", archive.Filename)
	assert.Empty(t, readArchive(t, archive.Data))
}

func TestGenerateArchiveSingleFailingLanguageStillSucceeds(t *testing.T) {
	tr := &fakeTranslator{failOn: map[string]bool{"de": true}}
	svc := NewService(testRegistry(t), tr, &fakeRenderer{})

	archive, err := svc.GenerateArchive(context.Background(), Pattern{Title: "TEST", Languages: []string{"de"}})
	require.NoError(t, err)
	require.NotNil(t, archive)
	assert.Empty(t, archive.Files)
	assert.Empty(t, readArchive(t, archive.Data))
}

func TestGenerateArchiveRecoversRendererPanic(t *testing.T) {
	svc := NewService(testRegistry(t), &fakeTranslator{}, &fakeRenderer{panics: true})

	archive, err := svc.GenerateArchive(context.Background(), Pattern{Title: "Sibelle", Languages: []string{"en"}})
	require.NoError(t, err)
	assert.Empty(t, archive.Files)
}

func TestGenerateArchiveDefaultsToAllTargets(t *testing.T) {
	tr := &fakeTranslator{}
	svc := NewService(testRegistry(t), tr, &fakeRenderer{})

	archive, err := svc.GenerateArchive(context.Background(), Pattern{Title: "Sibelle"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sibelle_Engelska.pdf", "Sibelle_Tyska.pdf"}, archive.Files)
}

func TestGenerateArchiveSourceLanguageIsNotTranslated(t *testing.T) {
	rend := &fakeRenderer{}
	svc := NewService(testRegistry(t), &fakeTranslator{}, rend)

	archive, err := svc.GenerateArchive(context.Background(), Pattern{Title: "Sibelle", Languages: []string{"sv"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sibelle_Svenska.pdf"}, archive.Files)
}

func TestGenerateArchiveValidation(t *testing.T) {
	svc := NewService(testRegistry(t), &fakeTranslator{}, &fakeRenderer{})
	ctx := context.Background()

	_, err := svc.GenerateArchive(ctx, Pattern{Title: "", Languages: []string{"en"}})
	assert.ErrorIs(t, err, ErrMissingTitle)
	assert.True(t, IsValidationError(err))

	_, err = svc.GenerateArchive(ctx, Pattern{Title: "   ", Languages: []string{"en"}})
	assert.ErrorIs(t, err, ErrMissingTitle)

	_, err = svc.GenerateArchive(ctx, Pattern{Title: "Sibelle", Languages: []string{"en", "xx"}})
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), `"xx"`)

	assert.False(t, IsValidationError(errors.New("disk full")))
}

func TestResolveLanguages(t *testing.T) {
	svc := NewService(testRegistry(t), &fakeTranslator{}, &fakeRenderer{})

	langs, err := svc.ResolveLanguages([]string{"de", "en", "de"})
	require.NoError(t, err)
	require.Len(t, langs, 2)
	assert.Equal(t, "de", langs[0].Code)
	assert.Equal(t, "en", langs[1].Code)

	langs, err = svc.ResolveLanguages(nil)
	require.NoError(t, err)
	assert.Len(t, langs, 2)

	onlySource, err := language.NewRegistry("sv", []language.Language{{Code: "sv", DisplayName: "Svenska"}})
	require.NoError(t, err)
	_, err = NewService(onlySource, &fakeTranslator{}, &fakeRenderer{}).ResolveLanguages(nil)
	assert.ErrorIs(t, err, ErrNoLanguages)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Mönster_Sibelle", SanitizeFilename("Mönster: Sibelle!"))
	assert.Equal(t, "Tröja_-_dam", SanitizeFilename("Tröja - dam"))
	assert.Equal(t, "ÅÄÖ_123", SanitizeFilename("ÅÄÖ  123"))
	assert.Equal(t, "", SanitizeFilename("!?*"))

	long := SanitizeFilename(strings.Repeat("ö", 80))
	assert.Equal(t, 50, utf8.RuneCountInString(long))
	assert.True(t, utf8.ValidString(long))
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "Sibelle_Tyska.pdf", DocumentFilename("Sibelle", "Tyska"))
	assert.Equal(t, "Mönster_Sibelle_alla-språk.zip", ArchiveFilename("Mönster: Sibelle"))
}
