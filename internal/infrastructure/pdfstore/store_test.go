package pdfstore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/pdfstore"
)

func TestSaveOpen(t *testing.T) {
	s, err := pdfstore.New(t.TempDir(), 24*time.Hour, nil)
	require.NoError(t, err)

	name, err := s.Save("motor_00012", []byte("%PDF-1.3 contenido"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "motor_00012_"), name)
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	data, err := s.Open(name)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 contenido", string(data))

	other, err := s.Save("motor_00012", []byte("x"))
	require.NoError(t, err)
	assert.NotEqual(t, name, other, "cada exportación tiene nombre único")
}

func TestSave_PrefijoSaneado(t *testing.T) {
	s, err := pdfstore.New(t.TempDir(), time.Hour, nil)
	require.NoError(t, err)

	name, err := s.Save("../motor 1/ñ", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, name, filepath.Base(name))
	assert.NotContains(t, name, "..")
}

func TestOpen_NombresInvalidosYFaltantes(t *testing.T) {
	s, err := pdfstore.New(t.TempDir(), time.Hour, nil)
	require.NoError(t, err)

	for _, name := range []string{"", "../etc/passwd", "a/b.pdf", "archivo.txt", `..\x.pdf`} {
		_, err := s.Open(name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}

	_, err = s.Open("no_existe.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCleanup_BorraVencidos(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	s, err := pdfstore.New(dir, 24*time.Hour, nil)
	require.NoError(t, err)
	s.WithClock(func() time.Time { return now })

	viejo, err := s.Save("viejo", []byte("a"))
	require.NoError(t, err)
	nuevo, err := s.Save("nuevo", []byte("b"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("c"), 0o644))

	old := now.Add(-25 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, viejo), old, old))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "notas.txt"), old, old))

	n, err := s.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.Open(viejo)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Open(nuevo)
	assert.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "notas.txt"))
}
