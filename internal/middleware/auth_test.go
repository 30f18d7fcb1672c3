package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	"github.com/medregistry/hospital-api/pkg/auth"
)

type userStore struct {
	users map[uuid.UUID]*model.User
}

func (s *userStore) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *userStore) Create(_ context.Context, u *model.User) error { return nil }
func (s *userStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (s *userStore) Update(_ context.Context, u *model.User) error { return nil }
func (s *userStore) Delete(_ context.Context, id uuid.UUID) error  { return nil }
func (s *userStore) List(_ context.Context, offset, limit int) ([]*model.User, error) {
	return nil, nil
}
func (s *userStore) Count(_ context.Context) (int64, error) { return 0, nil }
func (s *userStore) SearchByName(_ context.Context, term string) ([]*model.User, error) {
	return nil, nil
}
func (s *userStore) UpdateImage(_ context.Context, id uuid.UUID, filename string) (*string, error) {
	return nil, nil
}

func authTestSetup(users ...*model.User) (auth.JWTService, *gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	store := &userStore{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		store.users[u.ID] = u
	}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	mw := NewAuthMiddleware(jwtSvc, store)
	return jwtSvc, gin.New(), mw
}

func TestAuthenticateMissingToken(t *testing.T) {
	_, r, mw := authTestSetup()
	r.GET("/privado", mw.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/privado", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	_, r, mw := authTestSetup()
	r.GET("/privado", mw.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set(HeaderToken, "basura")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateSetsUserID(t *testing.T) {
	jwtSvc, r, mw := authTestSetup()
	userID := uuid.New()
	token, err := jwtSvc.GenerateToken(userID)
	require.NoError(t, err)

	var got uuid.UUID
	r.GET("/privado", mw.Authenticate(), func(c *gin.Context) {
		got = UserID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set(HeaderToken, token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, got)
}

func adminOrSelfRequest(t *testing.T, caller *model.User, targetID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	jwtSvc, r, mw := authTestSetup(caller)
	token, err := jwtSvc.GenerateToken(caller.ID)
	require.NoError(t, err)

	r.DELETE("/usuario/:guid", mw.Authenticate(), mw.AdminOrSelf(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/usuario/"+targetID.String(), nil)
	req.Header.Set(HeaderToken, token)
	r.ServeHTTP(w, req)
	return w
}

func TestAdminOrSelfAdminCanActOnAnyone(t *testing.T) {
	admin := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleAdmin}
	w := adminOrSelfRequest(t, admin, uuid.New())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOrSelfUserCanActOnSelf(t *testing.T) {
	user := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleUser}
	w := adminOrSelfRequest(t, user, user.ID)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOrSelfUserCannotActOnOthers(t *testing.T) {
	user := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleUser}
	w := adminOrSelfRequest(t, user, uuid.New())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireUUIDRejectsBadIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/cosa/:guid", RequireUUID("guid"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cosa/no-es-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cosa/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
