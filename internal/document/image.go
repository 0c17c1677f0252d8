package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// Image is a decoded cover image ready for the PDF engine
type Image struct {
	Data   []byte
	Format string // gofpdf image type: PNG, JPG or GIF
}

var pdfImageTypes = map[string]string{
	"png":  "PNG",
	"jpeg": "JPG",
	"gif":  "GIF",
}

// DecodeImage accepts a data URL ("data:image/png;base64,...") or bare
// base64 and returns the image bytes with their format. An empty string
// means no image and returns nil without error.
func DecodeImage(encoded string) (*Image, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}

	payload := encoded
	if strings.HasPrefix(payload, "data:") {
		comma := strings.Index(payload, ",")
		if comma < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		if !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, fmt.Errorf("data URL is not base64 encoded")
		}
		payload = payload[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// some encoders drop the padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
	}

	return NewImage(data)
}

// NewImage inspects raw image bytes
func NewImage(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	pdfType, ok := pdfImageTypes[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	return &Image{Data: data, Format: pdfType}, nil
}

// fitRect scales a w×h box into a maxW×maxH box keeping the aspect ratio
func fitRect(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := maxW / w
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}
