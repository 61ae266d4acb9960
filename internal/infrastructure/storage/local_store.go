// Package storage guarda las imágenes subidas en el directorio de contenido.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/domain"
)

var _ ports.ImageStore = (*LocalStore)(nil)

// DefaultMaxBytes límite por archivo cuando no se configura otro.
const DefaultMaxBytes int64 = 2 << 20

// extensiones canónicas por tipo permitido.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// LocalStore implementa ports.ImageStore sobre un directorio local.
type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: ruta %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %q: %w", abs, err)
	}
	return &LocalStore{dir: abs, maxBytes: maxBytes}, nil
}

// Dir directorio absoluto de contenido.
func (s *LocalStore) Dir() string { return s.dir }

// Save valida tamaño, tipo declarado y tipo detectado; escribe <uuid><ext> y devuelve el nombre.
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", domain.ErrInvalidInput
	}
	if fh.Size > s.maxBytes {
		return "", domain.ErrFileTooLarge
	}
	declared, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return "", domain.ErrUnsupportedMedia
	}
	if _, ok := allowedTypes[declared]; !ok {
		return "", domain.ErrUnsupportedMedia
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("storage: abrir upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("storage: leer upload: %w", err)
	}
	head = head[:n]
	sniffed := http.DetectContentType(head)
	ext, ok := allowedTypes[sniffed]
	if !ok || sniffed != declared {
		return "", domain.ErrUnsupportedMedia
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}

	// El tamaño declarado puede mentir: se corta al superar el límite.
	written, err := io.Copy(dst, io.LimitReader(io.MultiReader(bytes.NewReader(head), src), s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = domain.ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, domain.ErrFileTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	log.Debug().Str("file", name).Int64("bytes", written).Msg("imagen guardada")
	return name, nil
}

// Remove borra un archivo guardado. No es error si ya no existe.
func (s *LocalStore) Remove(name string) error {
	clean, err := sanitize(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", clean, err)
	}
	return nil
}

// Resolve devuelve la ruta absoluta de un archivo existente dentro del directorio.
// Nombres con separadores, ".." o que empiezan con "." → ErrInvalidInput; ausente → ErrNotFound.
func (s *LocalStore) Resolve(name string) (string, error) {
	clean, err := sanitize(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, clean)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("storage: stat %s: %w", clean, err)
	}
	if !info.Mode().IsRegular() {
		return "", domain.ErrNotFound
	}
	return path, nil
}

func sanitize(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`+"\x00") || strings.HasPrefix(name, ".") {
		return "", domain.ErrInvalidInput
	}
	if filepath.Base(name) != name {
		return "", domain.ErrInvalidInput
	}
	return name, nil
}
