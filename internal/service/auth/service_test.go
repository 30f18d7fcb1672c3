package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	jwtauth "github.com/medregistry/hospital-api/pkg/auth"
	apperrors "github.com/medregistry/hospital-api/pkg/errors"
	"github.com/medregistry/hospital-api/pkg/security"
)

type memUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMemUserRepo(users ...*model.User) *memUserRepo {
	r := &memUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }
func (r *memUserRepo) List(_ context.Context, offset, limit int) ([]*model.User, error) {
	return nil, nil
}
func (r *memUserRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (r *memUserRepo) SearchByName(_ context.Context, term string) ([]*model.User, error) {
	return nil, nil
}
func (r *memUserRepo) UpdateImage(_ context.Context, id uuid.UUID, filename string) (*string, error) {
	return nil, nil
}

type stubVerifier struct {
	profile *model.GoogleProfile
	err     error
}

func (v stubVerifier) Verify(_ context.Context, token string) (*model.GoogleProfile, error) {
	return v.profile, v.err
}

type nopEmail struct{}

func (nopEmail) SendWelcome(to, name string) error { return nil }

func newTestService(repo *memUserRepo, verifier IdentityVerifier) *Service {
	jwtSvc := jwtauth.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptHasher(4)
	return NewService(repo, jwtSvc, hasher, verifier, nopEmail{})
}

func storedUser(t *testing.T, email, password string) *model.User {
	t.Helper()
	hash, err := security.NewBcryptHasher(4).Hash(password)
	require.NoError(t, err)
	return &model.User{
		Base:         model.Base{ID: uuid.New()},
		Name:         "Carla",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := storedUser(t, "carla@example.com", "secreto123")
	svc := newTestService(newMemUserRepo(user), stubVerifier{})

	token, err := svc.Login(context.Background(), "carla@example.com", "secreto123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newMemUserRepo(), stubVerifier{})

	_, err := svc.Login(context.Background(), "nadie@example.com", "lo-que-sea")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestLoginWrongPassword(t *testing.T) {
	user := storedUser(t, "carla@example.com", "secreto123")
	svc := newTestService(newMemUserRepo(user), stubVerifier{})

	_, err := svc.Login(context.Background(), "carla@example.com", "equivocada")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, "Email o password incorrectos", appErr.Message)
}

func TestLoginGoogleAccountHasNoUsablePassword(t *testing.T) {
	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        "google@example.com",
		PasswordHash: security.GoogleMarker,
		Google:       true,
	}
	svc := newTestService(newMemUserRepo(user), stubVerifier{})

	// The marker is not a bcrypt hash, so any password fails.
	_, err := svc.Login(context.Background(), "google@example.com", security.GoogleMarker)
	assert.Error(t, err)
}

func TestRenew(t *testing.T) {
	user := storedUser(t, "carla@example.com", "secreto123")
	svc := newTestService(newMemUserRepo(user), stubVerifier{})

	token, renewed, err := svc.Renew(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, renewed.ID)
}

func TestRenewUnknownUser(t *testing.T) {
	svc := newTestService(newMemUserRepo(), stubVerifier{})

	_, _, err := svc.Renew(context.Background(), uuid.New())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestGoogleSignInInvalidToken(t *testing.T) {
	svc := newTestService(newMemUserRepo(), stubVerifier{err: errors.New("bad token")})

	_, _, err := svc.GoogleSignIn(context.Background(), "broken")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, "El token de Google es incorrecto", appErr.Message)
}

func TestGoogleSignInCreatesFirstTimeUser(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo, stubVerifier{profile: &model.GoogleProfile{
		Name:    "Nuevo Usuario",
		Email:   "nuevo@example.com",
		Picture: "https://example.com/p.png",
	}})

	profile, token, err := svc.GoogleSignIn(context.Background(), "valid")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "nuevo@example.com", profile.Email)

	created, err := repo.GetByEmail(context.Background(), "nuevo@example.com")
	require.NoError(t, err)
	assert.True(t, created.Google)
	assert.Equal(t, security.GoogleMarker, created.PasswordHash)
	assert.Equal(t, model.RoleUser, created.Role)
}

func TestGoogleSignInMarksExistingUser(t *testing.T) {
	user := storedUser(t, "carla@example.com", "secreto123")
	repo := newMemUserRepo(user)
	svc := newTestService(repo, stubVerifier{profile: &model.GoogleProfile{
		Name:  "Carla",
		Email: "carla@example.com",
	}})

	_, _, err := svc.GoogleSignIn(context.Background(), "valid")
	require.NoError(t, err)

	stored, err := repo.GetByEmail(context.Background(), "carla@example.com")
	require.NoError(t, err)
	assert.True(t, stored.Google)
	// The password survives so the account can still log in directly.
	assert.NotEqual(t, security.GoogleMarker, stored.PasswordHash)
}
