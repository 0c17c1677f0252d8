// Package document renders translated patterns as PDF files.
package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/prettyknit/pattern-service/internal/language"
	"github.com/prettyknit/pattern-service/internal/layout"
)

// Layout constants in points, converted with pt() where gofpdf wants mm
const (
	pagePadding   = 40.0
	coverPadding  = 30.0
	coverHeight   = 0.9
	footerBottom  = 30.0
	footerSize    = 10.0
	titleSize     = 32.0
	titleSpacing  = 30.0
	headingSize   = 13.0
	headingMargin = 10.0
	textSize      = 11.0
	lineHeight    = 1.4
)

func pt(v float64) float64 {
	return v * 25.4 / 72
}

// Input is one pattern in one language
type Input struct {
	Title    string
	Content  string
	Image    *Image
	Language language.Language
}

// Config holds fixed styling inputs
type Config struct {
	FontDir    string
	FooterText string
}

// Renderer produces PDF documents. It holds no per-document state and can
// be shared.
type Renderer struct {
	fontDir    string
	footerText string
	now        func() time.Time
	compress   bool
}

// NewRenderer creates a renderer
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		fontDir:    cfg.FontDir,
		footerText: cfg.FooterText,
		now:        time.Now,
		compress:   true,
	}
}

// Render lays out the cover page (when an image is given) and the content
// pages and returns the PDF bytes.
func (r *Renderer) Render(in Input) ([]byte, error) {
	pdf, err := r.build(in)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) build(in Input) (*gofpdf.Fpdf, error) {
	pdf, fonts := newPDF(r.fontDir)
	tr := fonts.translate

	pdf.SetCompression(r.compress)
	pdf.SetTitle(in.Title, true)
	pdf.SetSubject(in.Language.DisplayName, true)
	pdf.SetCreator(r.footerText, true)
	pdf.SetCreationDate(r.now())

	coverPages := 0
	if in.Image != nil {
		if err := addCover(pdf, in.Image); err != nil {
			return nil, err
		}
		coverPages = pdf.PageNo()
	}

	footer := tr(fmt.Sprintf("%s %d", r.footerText, r.now().Year()))
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() <= coverPages {
			return
		}
		pdf.SetY(-pt(footerBottom + footerSize))
		pdf.SetFont(fonts.family, "", footerSize)
		pdf.SetTextColor(107, 114, 128)
		pdf.CellFormat(0, pt(footerSize), footer, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.SetMargins(pt(pagePadding), pt(pagePadding), pt(pagePadding))
	pdf.SetAutoPageBreak(true, pt(footerBottom+footerSize+pagePadding/2))
	pdf.AddPage()

	pdf.SetFont(fonts.family, "B", titleSize)
	pdf.MultiCell(0, pt(titleSize*1.2), tr(in.Title), "", "L", false)
	pdf.Ln(pt(titleSpacing))

	writeContent(pdf, fonts, in.Content)

	if pdf.Err() {
		return nil, fmt.Errorf("failed to lay out PDF: %w", pdf.Error())
	}
	return pdf, nil
}

func addCover(pdf *gofpdf.Fpdf, img *Image) error {
	const name = "cover"
	opts := gofpdf.ImageOptions{ImageType: img.Format}

	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if pdf.Err() {
		return fmt.Errorf("failed to load cover image: %w", pdf.Error())
	}
	if info == nil {
		return fmt.Errorf("failed to load cover image")
	}

	pdf.SetMargins(pt(coverPadding), pt(coverPadding), pt(coverPadding))
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	areaW := pageW - 2*pt(coverPadding)
	areaH := pageH - 2*pt(coverPadding)
	w, h := fitRect(info.Width(), info.Height(), areaW, areaH*coverHeight)

	x := (pageW - w) / 2
	y := (pageH - h) / 2
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

// writeContent typesets the pattern body line by line
func writeContent(pdf *gofpdf.Fpdf, fonts fontSet, content string) {
	tr := fonts.translate
	textLine := pt(textSize * lineHeight)

	for _, line := range layout.ClassifyAll(content) {
		switch line.Kind {
		case layout.Blank:
			pdf.Ln(textLine)
		case layout.Heading:
			headingLine := pt(headingSize * lineHeight)
			pdf.Ln(pt(headingMargin))
			pdf.SetFont(fonts.family, "B", headingSize)
			pdf.Write(headingLine, tr(line.Text))
			pdf.Ln(headingLine)
		case layout.Labeled:
			pdf.SetFont(fonts.family, "B", textSize)
			pdf.Write(textLine, tr(line.Label))
			pdf.SetFont(fonts.family, "", textSize)
			pdf.Write(textLine, tr(line.Value))
			pdf.Ln(textLine)
		default:
			pdf.SetFont(fonts.family, "", textSize)
			pdf.Write(textLine, tr(line.Text))
			pdf.Ln(textLine)
		}
	}
}
