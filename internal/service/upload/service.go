package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medregistry/hospital-api/internal/repository"
	apperrors "github.com/medregistry/hospital-api/pkg/errors"
	"github.com/medregistry/hospital-api/pkg/metrics"
)

const placeholderImage = "no-img.jpg"

// validExtensions are compared against the supplied file name as-is,
// with no case normalization.
var validExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// imageUpdater is the slice of a repository the upload flow needs: swap
// the stored image name and report the previous one.
type imageUpdater interface {
	UpdateImage(ctx context.Context, id uuid.UUID, filename string) (*string, error)
}

type Service struct {
	baseDir  string
	updaters map[string]imageUpdater
	metrics  *metrics.Metrics
}

func NewService(baseDir string, users repository.UserRepository,
	doctors repository.DoctorRepository, hospitals repository.HospitalRepository,
	m *metrics.Metrics) *Service {
	return &Service{
		baseDir: baseDir,
		updaters: map[string]imageUpdater{
			"usuarios":   users,
			"medicos":    doctors,
			"hospitales": hospitals,
		},
		metrics: m,
	}
}

// CheckCollection rejects unknown collection tokens. It runs before the
// request body is consumed so an invalid collection wins over a missing
// file.
func (s *Service) CheckCollection(collection string) error {
	if s.updaters[collection] == nil {
		s.count(collection, "invalid_collection")
		return apperrors.Validation("Tablas no encontrada", nil)
	}
	return nil
}

// Store attaches an uploaded image to a record. The record is updated
// first; when it does not exist nothing is written to disk. On success
// the previous image file, if any, is removed best-effort.
func (s *Service) Store(ctx context.Context, collection string, id uuid.UUID,
	originalName string, content io.Reader) (string, error) {

	if err := s.CheckCollection(collection); err != nil {
		return "", err
	}
	updater := s.updaters[collection]

	ext := extension(originalName)
	if !validExtensions[ext] {
		s.count(collection, "invalid_extension")
		return "", apperrors.Validation(
			"Archivo no valido. Extención del archivo no soportada. Extenciones permitidas: png, jpg, jpeg, gif.", nil)
	}

	filename := uuid.New().String() + "." + ext

	previous, err := updater.UpdateImage(ctx, id, filename)
	if errors.Is(err, repository.ErrNotFound) {
		s.count(collection, "not_found")
		return "", apperrors.NotFoundMsg("No existe el registro en la base de datos")
	}
	if err != nil {
		s.count(collection, "error")
		return "", apperrors.Internal("Error al guardar el archivo", err)
	}

	if err := s.writeFile(collection, filename, content); err != nil {
		s.count(collection, "error")
		return "", apperrors.Storage("Error al guardar el archivo", err)
	}

	if previous != nil && *previous != "" {
		old := filepath.Join(s.baseDir, collection, *previous)
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", old).Msg("previous image cleanup failed")
		}
	}

	s.count(collection, "ok")
	return filename, nil
}

// Open resolves a stored image to an on-disk path. Unknown collections
// and missing files both resolve to the placeholder so the endpoint
// always serves an image.
func (s *Service) Open(collection, filename string) string {
	if s.updaters[collection] != nil && !strings.ContainsAny(filename, "/\\") {
		path := filepath.Join(s.baseDir, collection, filename)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(s.baseDir, placeholderImage)
}

func (s *Service) writeFile(collection, filename string, content io.Reader) error {
	dir := filepath.Join(s.baseDir, collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, content)
	return err
}

func (s *Service) count(collection, outcome string) {
	if s.metrics != nil {
		s.metrics.UploadsTotal.WithLabelValues(collection, outcome).Inc()
	}
}

// extension takes everything after the final dot, as supplied.
func extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}
