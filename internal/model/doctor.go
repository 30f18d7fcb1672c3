package model

import (
	"github.com/google/uuid"
)

// Doctor represents a doctor record, owned by the creating user and
// assigned to a hospital.
type Doctor struct {
	Base
	Name       string    `json:"nombre" db:"nombre"`
	Specialty  string    `json:"especialidad" db:"especialidad"`
	Image      *string   `json:"img,omitempty" db:"img"`
	UserID     uuid.UUID `json:"usuarioId" db:"usuario_id"`
	HospitalID uuid.UUID `json:"hospitalId" db:"hospital_id"`

	// Populated by joined queries (reference expansion).
	UserName     *string `json:"usuarioNombre,omitempty" db:"usuario_nombre"`
	HospitalName *string `json:"hospitalNombre,omitempty" db:"hospital_nombre"`
}

// CreateDoctorRequest represents doctor creation parameters
type CreateDoctorRequest struct {
	Name       string `json:"nombre" binding:"required"`
	Specialty  string `json:"especialidad" binding:"required"`
	HospitalID string `json:"hospitalId" binding:"required,uuid"`
}

// UpdateDoctorRequest represents doctor update parameters
type UpdateDoctorRequest struct {
	Name       string  `json:"nombre" binding:"required"`
	Specialty  string  `json:"especialidad" binding:"required"`
	HospitalID *string `json:"hospitalId" binding:"omitempty,uuid"`
	Image      *string `json:"img"`
}
