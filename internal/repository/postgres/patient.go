package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO pacientes (
			id, nombre, apellido, tipo_documento, numero_documento, fecha_nacimiento,
			genero, tipo_sangre, telefono, email, direccion, ciudad, estado,
			codigo_postal, contacto_emergencia, numero_seguro, alergias, observaciones,
			usuario_id, activo, img, created_at, updated_at
		) VALUES (
			:id, :nombre, :apellido, :tipo_documento, :numero_documento, :fecha_nacimiento,
			:genero, :tipo_sangre, :telefono, :email, :direccion, :ciudad, :estado,
			:codigo_postal, :contacto_emergencia, :numero_seguro, :alergias, :observaciones,
			:usuario_id, :activo, :img, :created_at, :updated_at
		)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, query, patient)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM pacientes WHERE id = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE pacientes SET
			nombre = :nombre, apellido = :apellido, tipo_documento = :tipo_documento,
			numero_documento = :numero_documento, fecha_nacimiento = :fecha_nacimiento,
			genero = :genero, tipo_sangre = :tipo_sangre, telefono = :telefono,
			email = :email, direccion = :direccion, ciudad = :ciudad, estado = :estado,
			codigo_postal = :codigo_postal, contacto_emergencia = :contacto_emergencia,
			numero_seguro = :numero_seguro, alergias = :alergias, observaciones = :observaciones,
			usuario_id = :usuario_id, img = :img, updated_at = :updated_at
		WHERE id = :id
	`
	patient.UpdatedAt = time.Now()
	_, err := r.db.NamedExecContext(ctx, query, patient)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag; the row is never removed.
func (r *patientRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `UPDATE pacientes SET activo = false, updated_at = $1 WHERE id = $2 RETURNING *`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to soft delete patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) ListActive(ctx context.Context, offset, limit int) ([]*model.Patient, error) {
	query := `SELECT * FROM pacientes WHERE activo = true ORDER BY created_at OFFSET $1 LIMIT $2`
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients, query, offset, limit)
	return patients, err
}

func (r *patientRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM pacientes WHERE activo = true`)
	return total, err
}

func (r *patientRepository) ExistsByDocumentNumber(ctx context.Context, documentNumber int64, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pacientes WHERE numero_documento = $1 AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, documentNumber, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check document number: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pacientes WHERE email = $1 AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, email, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
