package search

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	apperrors "github.com/medregistry/hospital-api/pkg/errors"
)

type stubUserRepo struct {
	names []string
}

func (r *stubUserRepo) SearchByName(_ context.Context, term string) ([]*model.User, error) {
	var out []*model.User
	for _, n := range r.names {
		if strings.Contains(strings.ToLower(n), strings.ToLower(term)) {
			out = append(out, &model.User{Base: model.Base{ID: uuid.New()}, Name: n})
		}
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error { return nil }
func (r *stubUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) Update(_ context.Context, u *model.User) error { return nil }
func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error  { return nil }
func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]*model.User, error) {
	return nil, nil
}
func (r *stubUserRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (r *stubUserRepo) UpdateImage(_ context.Context, id uuid.UUID, filename string) (*string, error) {
	return nil, nil
}

type stubDoctorRepo struct {
	names []string
}

func (r *stubDoctorRepo) SearchByName(_ context.Context, term string) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, n := range r.names {
		if strings.Contains(strings.ToLower(n), strings.ToLower(term)) {
			out = append(out, &model.Doctor{Base: model.Base{ID: uuid.New()}, Name: n})
		}
	}
	return out, nil
}

func (r *stubDoctorRepo) Create(_ context.Context, d *model.Doctor) error { return nil }
func (r *stubDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	return nil, repository.ErrNotFound
}
func (r *stubDoctorRepo) GetByName(_ context.Context, name string) (*model.Doctor, error) {
	return nil, repository.ErrNotFound
}
func (r *stubDoctorRepo) Update(_ context.Context, d *model.Doctor) error { return nil }
func (r *stubDoctorRepo) Delete(_ context.Context, id uuid.UUID) error    { return nil }
func (r *stubDoctorRepo) List(_ context.Context, offset, limit int) ([]*model.Doctor, error) {
	return nil, nil
}
func (r *stubDoctorRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (r *stubDoctorRepo) UpdateImage(_ context.Context, id uuid.UUID, filename string) (*string, error) {
	return nil, nil
}

type stubHospitalRepo struct {
	names []string
}

func (r *stubHospitalRepo) SearchByName(_ context.Context, term string) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, n := range r.names {
		if strings.Contains(strings.ToLower(n), strings.ToLower(term)) {
			out = append(out, &model.Hospital{Base: model.Base{ID: uuid.New()}, Name: n})
		}
	}
	return out, nil
}

func (r *stubHospitalRepo) Create(_ context.Context, h *model.Hospital) error { return nil }
func (r *stubHospitalRepo) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	return nil, repository.ErrNotFound
}
func (r *stubHospitalRepo) GetByName(_ context.Context, name string) (*model.Hospital, error) {
	return nil, repository.ErrNotFound
}
func (r *stubHospitalRepo) Update(_ context.Context, h *model.Hospital) error { return nil }
func (r *stubHospitalRepo) Delete(_ context.Context, id uuid.UUID) error      { return nil }
func (r *stubHospitalRepo) List(_ context.Context, offset, limit int) ([]*model.Hospital, error) {
	return nil, nil
}
func (r *stubHospitalRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (r *stubHospitalRepo) UpdateImage(_ context.Context, id uuid.UUID, filename string) (*string, error) {
	return nil, nil
}

func newTestService() *Service {
	return NewService(
		&stubUserRepo{names: []string{"Maria Lopez", "Juan Garcia"}},
		&stubDoctorRepo{names: []string{"Maria Fernandez"}},
		&stubHospitalRepo{names: []string{"Hospital Santa Maria", "Clinica Norte"}},
	)
}

func TestSearchCollectionKnownTables(t *testing.T) {
	svc := newTestService()

	for _, tabla := range []string{"usuario", "medico", "hospital"} {
		_, err := svc.SearchCollection(context.Background(), tabla, "maria")
		assert.NoError(t, err, tabla)
	}
}

func TestSearchCollectionUnknownTable(t *testing.T) {
	svc := newTestService()

	_, err := svc.SearchCollection(context.Background(), "pacientes", "maria")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, "Tabla no encontrada", appErr.Message)
}

func TestSearchAllMergesCollections(t *testing.T) {
	svc := newTestService()

	results, err := svc.SearchAll(context.Background(), "maria")
	require.NoError(t, err)

	assert.Len(t, results.Users, 1)
	assert.Len(t, results.Doctors, 1)
	assert.Len(t, results.Hospitals, 1)
}

func TestSearchAllNoMatches(t *testing.T) {
	svc := newTestService()

	results, err := svc.SearchAll(context.Background(), "zzz")
	require.NoError(t, err)

	assert.Empty(t, results.Users)
	assert.Empty(t, results.Doctors)
	assert.Empty(t, results.Hospitals)
}
