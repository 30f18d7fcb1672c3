package upload

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	uploadService "github.com/medregistry/hospital-api/internal/service/upload"
)

type stubUserRepo struct{}

func (stubUserRepo) Create(_ context.Context, _ *model.User) error { return nil }
func (stubUserRepo) Get(_ context.Context, _ uuid.UUID) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (stubUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (stubUserRepo) Update(_ context.Context, _ *model.User) error { return nil }
func (stubUserRepo) Delete(_ context.Context, _ uuid.UUID) error   { return nil }
func (stubUserRepo) List(_ context.Context, _, _ int) ([]*model.User, error) {
	return nil, nil
}
func (stubUserRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (stubUserRepo) SearchByName(_ context.Context, _ string) ([]*model.User, error) {
	return nil, nil
}
func (stubUserRepo) UpdateImage(_ context.Context, _ uuid.UUID, _ string) (*string, error) {
	return nil, repository.ErrNotFound
}

type stubDoctorRepo struct{}

func (stubDoctorRepo) Create(_ context.Context, _ *model.Doctor) error { return nil }
func (stubDoctorRepo) Get(_ context.Context, _ uuid.UUID) (*model.Doctor, error) {
	return nil, repository.ErrNotFound
}
func (stubDoctorRepo) GetByName(_ context.Context, _ string) (*model.Doctor, error) {
	return nil, repository.ErrNotFound
}
func (stubDoctorRepo) Update(_ context.Context, _ *model.Doctor) error { return nil }
func (stubDoctorRepo) Delete(_ context.Context, _ uuid.UUID) error     { return nil }
func (stubDoctorRepo) List(_ context.Context, _, _ int) ([]*model.Doctor, error) {
	return nil, nil
}
func (stubDoctorRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (stubDoctorRepo) SearchByName(_ context.Context, _ string) ([]*model.Doctor, error) {
	return nil, nil
}
func (stubDoctorRepo) UpdateImage(_ context.Context, _ uuid.UUID, _ string) (*string, error) {
	return nil, repository.ErrNotFound
}

type stubHospitalRepo struct{}

func (stubHospitalRepo) Create(_ context.Context, _ *model.Hospital) error { return nil }
func (stubHospitalRepo) Get(_ context.Context, _ uuid.UUID) (*model.Hospital, error) {
	return nil, repository.ErrNotFound
}
func (stubHospitalRepo) GetByName(_ context.Context, _ string) (*model.Hospital, error) {
	return nil, repository.ErrNotFound
}
func (stubHospitalRepo) Update(_ context.Context, _ *model.Hospital) error { return nil }
func (stubHospitalRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }
func (stubHospitalRepo) List(_ context.Context, _, _ int) ([]*model.Hospital, error) {
	return nil, nil
}
func (stubHospitalRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (stubHospitalRepo) SearchByName(_ context.Context, _ string) ([]*model.Hospital, error) {
	return nil, nil
}
func (stubHospitalRepo) UpdateImage(_ context.Context, _ uuid.UUID, _ string) (*string, error) {
	return nil, repository.ErrNotFound
}

func uploadTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := uploadService.NewService(t.TempDir(), stubUserRepo{}, stubDoctorRepo{}, stubHospitalRepo{}, nil)
	h := NewHandler(svc, nil)
	r := gin.New()
	r.PUT("/fileupload/:tabla/:guid", h.Upload)
	return r
}

func putUpload(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, nil))
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

// An unknown collection is reported even when the request carries no
// file at all; the collection check runs before the body is read.
func TestUploadUnknownCollectionWinsOverMissingFile(t *testing.T) {
	r := uploadTestRouter(t)

	w := putUpload(r, "/fileupload/noexiste/"+uuid.NewString())

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Tablas no encontrada", message(t, w))
}

func TestUploadMissingFile(t *testing.T) {
	r := uploadTestRouter(t)

	w := putUpload(r, "/fileupload/usuarios/"+uuid.NewString())

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No se subio ningún archivo", message(t, w))
}
