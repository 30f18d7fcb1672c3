package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medregistry/hospital-api/internal/model"
)

// ErrNotFound is returned by Get-style operations when no row matches.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	// UserRepository handles user storage operations
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, offset, limit int) ([]*model.User, error)
		Count(ctx context.Context) (int64, error)
		SearchByName(ctx context.Context, term string) ([]*model.User, error)
		UpdateImage(ctx context.Context, id uuid.UUID, filename string) (prev *string, err error)
	}

	HospitalRepository interface {
		Create(ctx context.Context, hospital *model.Hospital) error
		Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
		GetByName(ctx context.Context, name string) (*model.Hospital, error)
		Update(ctx context.Context, hospital *model.Hospital) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, offset, limit int) ([]*model.Hospital, error)
		Count(ctx context.Context) (int64, error)
		SearchByName(ctx context.Context, term string) ([]*model.Hospital, error)
		UpdateImage(ctx context.Context, id uuid.UUID, filename string) (prev *string, err error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByName(ctx context.Context, name string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, offset, limit int) ([]*model.Doctor, error)
		Count(ctx context.Context) (int64, error)
		SearchByName(ctx context.Context, term string) ([]*model.Doctor, error)
		UpdateImage(ctx context.Context, id uuid.UUID, filename string) (prev *string, err error)
	}

	// PatientRepository handles patient storage. Deletes are soft: rows
	// are retained with activo=false and excluded from default listings.
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		SoftDelete(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		ListActive(ctx context.Context, offset, limit int) ([]*model.Patient, error)
		CountActive(ctx context.Context) (int64, error)
		// ExistsByDocumentNumber and ExistsByEmail check uniqueness across
		// active and inactive patients, excluding the given id (uuid.Nil
		// excludes nothing).
		ExistsByDocumentNumber(ctx context.Context, documentNumber int64, excludeID uuid.UUID) (bool, error)
		ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	}
)
