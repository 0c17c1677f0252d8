package document

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prettyknit/pattern-service/internal/language"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := NewRenderer(Config{FontDir: t.TempDir(), FooterText: "Prettyknit.se"})
	r.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	r.compress = false
	return r
}

func english(t *testing.T) language.Language {
	t.Helper()
	lang, ok := language.Default().Lookup("en")
	require.True(t, ok)
	return lang
}

const sampleContent = "SIZES\nYarn: Drops Fabel\n\nWorked bottom up.\nSTITCHES:"

func TestRenderWithoutImageHasOnePage(t *testing.T) {
	r := testRenderer(t)

	pdf, err := r.build(Input{Title: "SIBELLE", Content: sampleContent, Language: english(t)})
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())
}

func TestRenderWithImageAddsCoverPage(t *testing.T) {
	r := testRenderer(t)
	img, err := NewImage(testPNG(t, 40, 60))
	require.NoError(t, err)

	pdf, err := r.build(Input{Title: "SIBELLE", Content: sampleContent, Image: img, Language: english(t)})
	require.NoError(t, err)
	assert.Equal(t, 2, pdf.PageCount())
}

func TestRenderOutput(t *testing.T) {
	r := testRenderer(t)

	out, err := r.Render(Input{Title: "SIBELLE", Content: sampleContent, Language: english(t)})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Contains(t, string(out), "SIBELLE")
	assert.Contains(t, string(out), "Prettyknit.se 2026")
	assert.Contains(t, string(out), "Drops Fabel")
}

func TestRenderLongContentFlowsOntoMorePages(t *testing.T) {
	r := testRenderer(t)

	var content bytes.Buffer
	for i := 0; i < 200; i++ {
		content.WriteString("Sticka 2 rät, 2 avig varvet ut.\n")
	}

	pdf, err := r.build(Input{Title: "LÅNG", Content: content.String(), Language: english(t)})
	require.NoError(t, err)
	assert.Greater(t, pdf.PageCount(), 1)
}

func TestRenderEmptyContent(t *testing.T) {
	r := testRenderer(t)

	out, err := r.Render(Input{Title: "Tom", Language: english(t)})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDecodeImage(t *testing.T) {
	raw := testPNG(t, 4, 2)
	b64 := base64.StdEncoding.EncodeToString(raw)

	img, err := DecodeImage("data:image/png;base64," + b64)
	require.NoError(t, err)
	assert.Equal(t, "PNG", img.Format)
	assert.Equal(t, raw, img.Data)

	img, err = DecodeImage(b64)
	require.NoError(t, err)
	assert.Equal(t, raw, img.Data)

	img, err = DecodeImage("")
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestDecodeImageErrors(t *testing.T) {
	_, err := DecodeImage("data:image/png;base64")
	assert.Error(t, err)

	_, err = DecodeImage("data:text/plain,hello")
	assert.Error(t, err)

	_, err = DecodeImage("not base64 at all!")
	assert.Error(t, err)

	_, err = DecodeImage(base64.StdEncoding.EncodeToString([]byte("plain text, not an image")))
	assert.Error(t, err)
}

func TestFitRect(t *testing.T) {
	w, h := fitRect(100, 50, 200, 200)
	assert.InDelta(t, 200, w, 1e-9)
	assert.InDelta(t, 100, h, 1e-9)

	w, h = fitRect(50, 100, 200, 100)
	assert.InDelta(t, 50, w, 1e-9)
	assert.InDelta(t, 100, h, 1e-9)

	w, h = fitRect(0, 10, 100, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
