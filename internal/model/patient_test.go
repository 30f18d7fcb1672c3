package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidDocumentType(t *testing.T) {
	assert.True(t, ValidDocumentType("DNI"))
	assert.True(t, ValidDocumentType("RUT"))
	assert.True(t, ValidDocumentType("PASAPORTE"))
	assert.False(t, ValidDocumentType("CEDULA"))
	assert.False(t, ValidDocumentType("dni"))
}

func TestValidGender(t *testing.T) {
	assert.True(t, ValidGender("MASCULINO"))
	assert.True(t, ValidGender("FEMENINO"))
	assert.True(t, ValidGender("OTRO"))
	assert.False(t, ValidGender("O+"))
}

func TestValidBloodType(t *testing.T) {
	for _, bt := range BloodTypes {
		assert.True(t, ValidBloodType(bt), bt)
	}
	assert.False(t, ValidBloodType("MASCULINO"))
	assert.False(t, ValidBloodType("C+"))
}

func TestPatientAge(t *testing.T) {
	birth := time.Now().AddDate(-30, 0, -1)
	p := &Patient{BirthDate: birth}
	assert.Equal(t, 30, p.Age())

	notYet := time.Now().AddDate(-30, 0, 1)
	p = &Patient{BirthDate: notYet}
	assert.Equal(t, 29, p.Age())
}

func TestToPatientSetsActive(t *testing.T) {
	req := &PatientRequest{
		Name:           "Ana",
		DocumentNumber: 1234,
		UserID:         "8f9f7e0a-0d3a-4a4d-96a4-3d7cf8f3a111",
	}
	p := req.ToPatient()
	assert.True(t, p.Active)
	assert.Equal(t, "8f9f7e0a-0d3a-4a4d-96a4-3d7cf8f3a111", p.UserID.String())
}
