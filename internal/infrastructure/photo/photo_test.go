package photo_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/photo"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return photo.EncodeDataURI("image/png", buf.Bytes())
}

func TestDecodeDataURI(t *testing.T) {
	data, mime, err := photo.DecodeDataURI("data:image/png;base64,aG9sYQ==")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte("hola"), data)

	data, _, err = photo.DecodeDataURI("  ")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, _, err = photo.DecodeDataURI("http://foto.jpg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = photo.DecodeDataURI("data:image/png;base64,@@@")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalize_ReduceYConvierteAJPEG(t *testing.T) {
	out, err := photo.NewProcessor().Normalize(pngDataURI(t, 2048, 1024))
	require.NoError(t, err)

	raw, mime, err := photo.DecodeDataURI(out)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestNormalize_ImagenPequenaConservaTamano(t *testing.T) {
	out, err := photo.NewProcessor().Normalize(pngDataURI(t, 40, 30))
	require.NoError(t, err)

	raw, _, err := photo.DecodeDataURI(out)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestNormalize_VacioEInvalido(t *testing.T) {
	p := photo.NewProcessor()

	out, err := p.Normalize("")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = p.Normalize(photo.EncodeDataURI("image/png", []byte("no es imagen")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
