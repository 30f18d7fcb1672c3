package model

import (
	"github.com/google/uuid"
)

// Hospital represents a hospital record. CreatorID references the user
// who created it and is set from the caller's token, never from the body.
// The field keeps the original API's (misspelled) wire name.
type Hospital struct {
	Base
	Name      string    `json:"nombre" db:"nombre"`
	Image     *string   `json:"img,omitempty" db:"img"`
	CreatorID uuid.UUID `json:"ususarioCreador" db:"usuario_creador"`

	// CreatorName is populated by joined queries (reference expansion);
	// it is not a stored column of the hospitales table.
	CreatorName *string `json:"ususarioCreadorNombre,omitempty" db:"creador_nombre"`
}

// CreateHospitalRequest represents hospital creation parameters
type CreateHospitalRequest struct {
	Name string `json:"nombre" binding:"required"`
}

// UpdateHospitalRequest represents hospital update parameters
type UpdateHospitalRequest struct {
	Name  string  `json:"nombre" binding:"required"`
	Image *string `json:"img"`
}
