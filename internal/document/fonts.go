package document

import (
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf/v2"
	"go.uber.org/zap"

	"github.com/prettyknit/pattern-service/pkg/logger"
)

const (
	utf8Family   = "NotoSans"
	regularFont  = "NotoSans-Regular.ttf"
	boldFont     = "NotoSans-Bold.ttf"
	coreFallback = "Helvetica"
)

// fontSet is what the renderer writes text with. Core fonts only cover
// cp1252, so their text goes through translate first.
type fontSet struct {
	family    string
	translate func(string) string
}

// findFontDir returns the absolute font directory when it holds the regular
// UTF-8 font, or "" when the core font has to be used.
func findFontDir(dir string) string {
	if dir == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger.Base().Warn("failed to resolve font directory", zap.String("dir", dir), zap.Error(err))
		return ""
	}
	if _, err := os.Stat(filepath.Join(abs, regularFont)); err != nil {
		return ""
	}
	return abs
}

// newPDF creates an A4 document with the best available font family
func newPDF(fontDir string) (*gofpdf.Fpdf, fontSet) {
	dir := findFontDir(fontDir)
	if dir == "" {
		pdf := gofpdf.New("P", "mm", "A4", "")
		return pdf, fontSet{
			family:    coreFallback,
			translate: pdf.UnicodeTranslatorFromDescriptor(""),
		}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		SizeStr:        "A4",
		FontDirStr:     filepath.ToSlash(dir),
	})
	pdf.AddUTF8Font(utf8Family, "", regularFont)

	bold := boldFont
	if _, err := os.Stat(filepath.Join(dir, boldFont)); err != nil {
		logger.Base().Debug("bold font missing, using regular for bold text", zap.String("dir", dir))
		bold = regularFont
	}
	pdf.AddUTF8Font(utf8Family, "B", bold)

	return pdf, fontSet{
		family:    utf8Family,
		translate: func(s string) string { return s },
	}
}
