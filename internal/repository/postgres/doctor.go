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

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

const doctorJoined = `
	SELECT m.id, m.nombre, m.especialidad, m.img, m.usuario_id, m.hospital_id,
	       m.created_at, m.updated_at,
	       u.nombre AS usuario_nombre,
	       h.nombre AS hospital_nombre
	FROM medicos m
	LEFT JOIN usuarios u ON u.id = m.usuario_id
	LEFT JOIN hospitales h ON h.id = m.hospital_id
`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO medicos (id, nombre, especialidad, img, usuario_id, hospital_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Specialty,
		doctor.Image,
		doctor.UserID,
		doctor.HospitalID,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, doctorJoined+` WHERE m.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByName(ctx context.Context, name string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, doctorJoined+` WHERE m.nombre = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by name: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE medicos
		SET nombre = $1, especialidad = $2, img = $3, hospital_id = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		doctor.Name,
		doctor.Specialty,
		doctor.Image,
		doctor.HospitalID,
		time.Now(),
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM medicos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *doctorRepository) List(ctx context.Context, offset, limit int) ([]*model.Doctor, error) {
	query := doctorJoined + ` ORDER BY m.created_at OFFSET $1 LIMIT $2`
	doctors := []*model.Doctor{}
	err := r.db.SelectContext(ctx, &doctors, query, offset, limit)
	return doctors, err
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM medicos`)
	return total, err
}

func (r *doctorRepository) SearchByName(ctx context.Context, term string) ([]*model.Doctor, error) {
	query := doctorJoined + ` WHERE m.nombre ILIKE '%' || $1 || '%'`
	doctors := []*model.Doctor{}
	err := r.db.SelectContext(ctx, &doctors, query, escapeLike(term))
	return doctors, err
}

func (r *doctorRepository) UpdateImage(ctx context.Context, id uuid.UUID, filename string) (*string, error) {
	var prev *string
	query := `
		UPDATE medicos m SET img = $1, updated_at = $2
		FROM (SELECT id, img FROM medicos WHERE id = $3 FOR UPDATE) old
		WHERE m.id = old.id
		RETURNING old.img
	`
	err := r.db.GetContext(ctx, &prev, query, filename, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor image: %w", err)
	}
	return prev, nil
}
