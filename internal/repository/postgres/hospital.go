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

type hospitalRepository struct {
	db *sqlx.DB
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{db: db}
}

const hospitalJoined = `
	SELECT h.id, h.nombre, h.img, h.usuario_creador, h.created_at, h.updated_at,
	       u.nombre AS creador_nombre
	FROM hospitales h
	LEFT JOIN usuarios u ON u.id = h.usuario_creador
`

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitales (id, nombre, img, usuario_creador, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		hospital.ID,
		hospital.Name,
		hospital.Image,
		hospital.CreatorID,
		hospital.CreatedAt,
		hospital.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	var hospital model.Hospital
	err := r.db.GetContext(ctx, &hospital, hospitalJoined+` WHERE h.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) GetByName(ctx context.Context, name string) (*model.Hospital, error) {
	var hospital model.Hospital
	err := r.db.GetContext(ctx, &hospital, hospitalJoined+` WHERE h.nombre = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital by name: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *model.Hospital) error {
	query := `UPDATE hospitales SET nombre = $1, img = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, hospital.Name, hospital.Image, time.Now(), hospital.ID)
	if err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM hospitales WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *hospitalRepository) List(ctx context.Context, offset, limit int) ([]*model.Hospital, error) {
	query := hospitalJoined + ` ORDER BY h.created_at OFFSET $1 LIMIT $2`
	hospitals := []*model.Hospital{}
	err := r.db.SelectContext(ctx, &hospitals, query, offset, limit)
	return hospitals, err
}

func (r *hospitalRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM hospitales`)
	return total, err
}

func (r *hospitalRepository) SearchByName(ctx context.Context, term string) ([]*model.Hospital, error) {
	query := hospitalJoined + ` WHERE h.nombre ILIKE '%' || $1 || '%'`
	hospitals := []*model.Hospital{}
	err := r.db.SelectContext(ctx, &hospitals, query, escapeLike(term))
	return hospitals, err
}

func (r *hospitalRepository) UpdateImage(ctx context.Context, id uuid.UUID, filename string) (*string, error) {
	var prev *string
	query := `
		UPDATE hospitales h SET img = $1, updated_at = $2
		FROM (SELECT id, img FROM hospitales WHERE id = $3 FOR UPDATE) old
		WHERE h.id = old.id
		RETURNING old.img
	`
	err := r.db.GetContext(ctx, &prev, query, filename, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update hospital image: %w", err)
	}
	return prev, nil
}
