// Package pdfstore archiva los PDFs generados en un directorio temporal y
// elimina los vencidos.
package pdfstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rectificadora-api/internal/domain"
	"github.com/jhoicas/rectificadora-api/pkg/logger"
)

const ext = ".pdf"

// Store implementa taller.ReportArchive sobre el sistema de archivos.
type Store struct {
	dir string
	ttl time.Duration
	log *logger.Logger
	now func() time.Time
}

// New crea el directorio si no existe.
func New(dir string, ttl time.Duration, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pdfstore: crear %s: %w", dir, err)
	}
	return &Store{dir: dir, ttl: ttl, log: log, now: time.Now}, nil
}

// WithClock fija el reloj usado por Cleanup.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Save escribe data como <prefijo>_<uuid>.pdf y devuelve el nombre.
func (s *Store) Save(prefix string, data []byte) (string, error) {
	name := sanitize(prefix) + "_" + uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("pdfstore: escribir %s: %w", name, err)
	}
	return name, nil
}

// Open lee un PDF archivado. Solo acepta nombres simples terminados en .pdf.
func (s *Store) Open(name string) ([]byte, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: nombre de archivo inválido", domain.ErrInvalidInput)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pdfstore: leer %s: %w", name, err)
	}
	return data, nil
}

// Cleanup elimina los PDFs con más de ttl de antigüedad. Devuelve cuántos borró.
func (s *Store) Cleanup() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("pdfstore: listar: %w", err)
	}
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.log.Warn().Err(err).Str("archivo", e.Name()).Msg("no se pudo borrar pdf vencido")
				continue
			}
			removed++
		}
	}
	return removed, nil
}

// RunJanitor ejecuta Cleanup cada interval hasta que ctx se cancele.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Cleanup()
			if err != nil {
				s.log.Error().Err(err).Msg("limpieza de pdfs")
				continue
			}
			if n > 0 {
				s.log.Info().Int("borrados", n).Msg("pdfs vencidos eliminados")
			}
		}
	}
}

func validName(name string) bool {
	return name != "" &&
		name == filepath.Base(name) &&
		!strings.Contains(name, "..") &&
		!strings.ContainsAny(name, `/\`) &&
		strings.HasSuffix(name, ext)
}

func sanitize(prefix string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, prefix)
	if out == "" {
		return "reporte"
	}
	return out
}
