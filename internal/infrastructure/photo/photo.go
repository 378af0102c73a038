// Package photo normaliza la foto del motor antes de guardarla.
package photo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/jhoicas/rectificadora-api/internal/domain"
)

// Tamaño máximo de la foto normalizada (las cámaras de celular entregan 12MP).
const (
	MaxWidth    = 1024
	MaxHeight   = 768
	JPEGQuality = 80
)

// DecodeDataURI separa un data URI "data:<mime>;base64,<datos>" en bytes y MIME.
// Un valor vacío devuelve nil sin error.
func DecodeDataURI(uri string) ([]byte, string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, "", nil
	}
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", fmt.Errorf("%w: la foto debe ser un data URI", domain.ErrInvalidInput)
	}
	header, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, "", fmt.Errorf("%w: data URI sin base64", domain.ErrInvalidInput)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: base64 inválido: %v", domain.ErrInvalidInput, err)
	}
	return data, strings.TrimSuffix(header, ";base64"), nil
}

// EncodeDataURI arma un data URI base64.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Processor implementa taller.PhotoProcessor con imaging: corrige la orientación
// EXIF, reduce a MaxWidth×MaxHeight y recodifica como JPEG.
type Processor struct {
	maxW, maxH int
	quality    int
}

// NewProcessor crea el procesador con los límites por defecto.
func NewProcessor() *Processor {
	return &Processor{maxW: MaxWidth, maxH: MaxHeight, quality: JPEGQuality}
}

// Normalize devuelve la foto como data URI JPEG. Vacío se mantiene vacío.
func (p *Processor) Normalize(dataURI string) (string, error) {
	raw, _, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: imagen ilegible: %v", domain.ErrInvalidInput, err)
	}
	b := img.Bounds()
	if b.Dx() > p.maxW || b.Dy() > p.maxH {
		img = imaging.Fit(img, p.maxW, p.maxH, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return "", fmt.Errorf("photo: codificar jpeg: %w", err)
	}
	return EncodeDataURI("image/jpeg", buf.Bytes()), nil
}
