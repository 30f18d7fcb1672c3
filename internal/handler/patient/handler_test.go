package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	patientService "github.com/medregistry/hospital-api/internal/service/patient"
	"github.com/medregistry/hospital-api/pkg/messaging"
)

type memPatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (r *memPatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *memPatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *memPatientRepo) Update(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *memPatientRepo) SoftDelete(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Active = false
	return p, nil
}

func (r *memPatientRepo) ListActive(_ context.Context, offset, limit int) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPatientRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.patients {
		if p.Active {
			n++
		}
	}
	return n, nil
}

func (r *memPatientRepo) ExistsByDocumentNumber(_ context.Context, n int64, excludeID uuid.UUID) (bool, error) {
	for _, p := range r.patients {
		if p.DocumentNumber == n && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPatientRepo) ExistsByEmail(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	for _, p := range r.patients {
		if p.Email == email && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type ownerRepo struct {
	id uuid.UUID
}

func (r ownerRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	if id == r.id {
		return &model.User{Base: model.Base{ID: id}}, nil
	}
	return nil, repository.ErrNotFound
}

func (r ownerRepo) Create(_ context.Context, u *model.User) error { return nil }
func (r ownerRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (r ownerRepo) Update(_ context.Context, u *model.User) error { return nil }
func (r ownerRepo) Delete(_ context.Context, id uuid.UUID) error  { return nil }
func (r ownerRepo) List(_ context.Context, offset, limit int) ([]*model.User, error) {
	return nil, nil
}
func (r ownerRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (r ownerRepo) SearchByName(_ context.Context, term string) ([]*model.User, error) {
	return nil, nil
}
func (r ownerRepo) UpdateImage(_ context.Context, id uuid.UUID, filename string) (*string, error) {
	return nil, nil
}

func setupRouter(owner uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := &memPatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
	svc := patientService.NewService(repo, ownerRepo{id: owner}, messaging.NopBroker{})
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func patientBody(owner uuid.UUID) string {
	return `{
		"nombre": "Ana",
		"apellido": "Perez",
		"tipoDocumento": "DNI",
		"numeroDocumento": 12345678,
		"fechaNacimiento": "1990-03-14T00:00:00Z",
		"genero": "FEMENINO",
		"tipoSangre": "O+",
		"email": "ana@example.com",
		"direccion": "Calle Falsa 123",
		"usuarioId": "` + owner.String() + `"
	}`
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreatePatientEndpoint(t *testing.T) {
	owner := uuid.New()
	r := setupRouter(owner)

	w := doJSON(r, http.MethodPost, "/api/paciente", patientBody(owner))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Paciente creado", body["message"])
	paciente := body["pacienteDestino"].(map[string]interface{})
	assert.NotEmpty(t, paciente["Guid"])
	assert.Equal(t, true, paciente["activo"])
}

func TestCreatePatientValidationEnvelope(t *testing.T) {
	r := setupRouter(uuid.New())

	w := doJSON(r, http.MethodPost, "/api/paciente", `{"nombre":"Ana"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["ok"])
	fields, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, fields)
}

func TestCreatePatientDuplicateDocument(t *testing.T) {
	owner := uuid.New()
	r := setupRouter(owner)

	w := doJSON(r, http.MethodPost, "/api/paciente", patientBody(owner))
	require.Equal(t, http.StatusCreated, w.Code)

	dup := strings.Replace(patientBody(owner), "ana@example.com", "otra@example.com", 1)
	w = doJSON(r, http.MethodPost, "/api/paciente", dup)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "El numero de documento ya esta registrado en otro paciente", body["message"])
}

func TestDeletePatientEndpoint(t *testing.T) {
	owner := uuid.New()
	r := setupRouter(owner)

	w := doJSON(r, http.MethodPost, "/api/paciente", patientBody(owner))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)["pacienteDestino"].(map[string]interface{})
	guid := created["Guid"].(string)

	w = doJSON(r, http.MethodDelete, "/api/paciente/"+guid, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Paciente eliminado correctamente", body["message"])

	// Listings exclude the record afterwards.
	w = doJSON(r, http.MethodGet, "/api/paciente", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.Equal(t, float64(0), list["total"])
}

func TestDeletePatientMissing(t *testing.T) {
	r := setupRouter(uuid.New())

	w := doJSON(r, http.MethodDelete, "/api/paciente/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPatientBadID(t *testing.T) {
	r := setupRouter(uuid.New())

	w := doJSON(r, http.MethodGet, "/api/paciente/no-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
