package model

import (
	"time"

	"github.com/google/uuid"
)

// Document type enumeration
const (
	DocumentDNI      = "DNI"
	DocumentRUT      = "RUT"
	DocumentPassport = "PASAPORTE"
)

// Gender enumeration
const (
	GenderMale   = "MASCULINO"
	GenderFemale = "FEMENINO"
	GenderOther  = "OTRO"
)

// Blood type enumeration
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodType reports whether s belongs to the blood-type enumeration.
// Genders and blood types validate against their own distinct sets.
func ValidBloodType(s string) bool {
	for _, bt := range BloodTypes {
		if s == bt {
			return true
		}
	}
	return false
}

// ValidGender reports whether s belongs to the gender enumeration.
func ValidGender(s string) bool {
	return s == GenderMale || s == GenderFemale || s == GenderOther
}

// ValidDocumentType reports whether s belongs to the document-type enumeration.
func ValidDocumentType(s string) bool {
	return s == DocumentDNI || s == DocumentRUT || s == DocumentPassport
}

// Patient represents a patient record. Document number and email are
// unique across active and inactive patients; UserID must reference an
// existing user. Patients are only ever soft-deleted via the active flag.
type Patient struct {
	Base
	Name             string    `json:"nombre" db:"nombre"`
	Surname          string    `json:"apellido" db:"apellido"`
	DocumentType     string    `json:"tipoDocumento" db:"tipo_documento"`
	DocumentNumber   int64     `json:"numeroDocumento" db:"numero_documento"`
	BirthDate        time.Time `json:"fechaNacimiento" db:"fecha_nacimiento"`
	Gender           string    `json:"genero" db:"genero"`
	BloodType        string    `json:"tipoSangre" db:"tipo_sangre"`
	Phone            *int64    `json:"telefono,omitempty" db:"telefono"`
	Email            string    `json:"email" db:"email"`
	Address          string    `json:"direccion" db:"direccion"`
	City             *string   `json:"ciudad,omitempty" db:"ciudad"`
	State            *string   `json:"estado,omitempty" db:"estado"`
	PostalCode       *int64    `json:"codigoPostal,omitempty" db:"codigo_postal"`
	EmergencyContact *int64    `json:"contactoEmergencia,omitempty" db:"contacto_emergencia"`
	InsuranceNumber  *int64    `json:"numeroSeguro,omitempty" db:"numero_seguro"`
	Allergies        *string   `json:"alergias,omitempty" db:"alergias"`
	Notes            *string   `json:"observaciones,omitempty" db:"observaciones"`
	UserID           uuid.UUID `json:"usuarioId" db:"usuario_id"`
	Active           bool      `json:"activo" db:"activo"`
	Image            *string   `json:"img,omitempty" db:"img"`
}

// Age computes the patient's age in full years.
func (p *Patient) Age() int {
	now := time.Now()
	age := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		age--
	}
	return age
}

// PatientRequest carries the fields for patient create and update; both
// routes validate the full field set.
type PatientRequest struct {
	Name             string    `json:"nombre" binding:"required"`
	Surname          string    `json:"apellido" binding:"required"`
	DocumentType     string    `json:"tipoDocumento" binding:"required,oneof=DNI RUT PASAPORTE"`
	DocumentNumber   int64     `json:"numeroDocumento" binding:"required"`
	BirthDate        time.Time `json:"fechaNacimiento" binding:"required"`
	Gender           string    `json:"genero" binding:"required,oneof=MASCULINO FEMENINO OTRO"`
	BloodType        string    `json:"tipoSangre" binding:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Phone            *int64    `json:"telefono"`
	Email            string    `json:"email" binding:"required,email"`
	Address          string    `json:"direccion" binding:"required"`
	City             *string   `json:"ciudad"`
	State            *string   `json:"estado"`
	PostalCode       *int64    `json:"codigoPostal"`
	EmergencyContact *int64    `json:"contactoEmergencia"`
	InsuranceNumber  *int64    `json:"numeroSeguro"`
	Allergies        *string   `json:"alergias"`
	Notes            *string   `json:"observaciones"`
	UserID           string    `json:"usuarioId" binding:"required,uuid"`
}

// ToPatient builds a Patient from the request fields.
func (r *PatientRequest) ToPatient() *Patient {
	userID, _ := uuid.Parse(r.UserID)
	return &Patient{
		Name:             r.Name,
		Surname:          r.Surname,
		DocumentType:     r.DocumentType,
		DocumentNumber:   r.DocumentNumber,
		BirthDate:        r.BirthDate,
		Gender:           r.Gender,
		BloodType:        r.BloodType,
		Phone:            r.Phone,
		Email:            r.Email,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		PostalCode:       r.PostalCode,
		EmergencyContact: r.EmergencyContact,
		InsuranceNumber:  r.InsuranceNumber,
		Allergies:        r.Allergies,
		Notes:            r.Notes,
		UserID:           userID,
		Active:           true,
	}
}
