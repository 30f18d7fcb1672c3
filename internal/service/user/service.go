package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/medregistry/hospital-api/internal/email"
	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	"github.com/medregistry/hospital-api/pkg/auth"
	apperrors "github.com/medregistry/hospital-api/pkg/errors"
	"github.com/medregistry/hospital-api/pkg/messaging"
	"github.com/medregistry/hospital-api/pkg/security"
)

const eventChannel = "entity-events"

type Service struct {
	repo     repository.UserRepository
	hasher   security.PasswordHasher
	jwtSvc   auth.JWTService
	emailSvc email.Service
	broker   messaging.Broker
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher,
	jwtSvc auth.JWTService, emailSvc email.Service, broker messaging.Broker) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		jwtSvc:   jwtSvc,
		emailSvc: emailSvc,
		broker:   broker,
	}
}

// List returns one page of users plus the total count; both queries run
// concurrently.
func (s *Service) List(ctx context.Context, page int) ([]*model.User, int64, error) {
	var (
		users []*model.User
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.repo.List(gctx, page*model.UserPageSize, model.UserPageSize)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, apperrors.Internal("Error al listar usuarios", err)
	}
	return users, total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Usuario")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar encontrar usuario", err)
	}
	return user, nil
}

// Create registers a user after checking email uniqueness, and returns
// the record together with a session token for it.
func (s *Service) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, string, error) {
	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, "", apperrors.Conflict("El email ya esta registrado")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperrors.Internal("Error al intentar crear Usuario", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", apperrors.Internal("Error al intentar crear Usuario", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", apperrors.Internal("Error al intentar crear Usuario", err)
	}

	token, err := s.jwtSvc.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal("Error al intentar crear Usuario", err)
	}

	if err := s.emailSvc.SendWelcome(user.Email, user.Name); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("welcome email failed")
	}
	s.publish(ctx, "USER_CREATE", user)

	return user, token, nil
}

// Update applies a partial replace. An email change is validated for
// uniqueness; an unchanged email skips the check.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Usuario")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar actualizar el usuario", err)
	}

	if user.Email != req.Email {
		_, err := s.repo.GetByEmail(ctx, req.Email)
		if err == nil {
			return nil, apperrors.Conflict("El Email que desea proporcinar, ya esta siendo ocupado por otro Usuario")
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal("Error al intentar actualizar el usuario", err)
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	if req.Image != nil {
		user.Image = req.Image
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal("Error al intentar actualizar el usuario", err)
	}
	s.publish(ctx, "USER_UPDATE", user)
	return user, nil
}

// Delete removes the user record. Dependent hospitals, doctors and
// patients keep their dangling references; integrity is only enforced
// at creation time.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Usuario")
	}
	if err != nil {
		return apperrors.Internal("Error al intentar eliminar el usuario", err)
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return apperrors.Internal("Error al intentar eliminar el usuario", err)
	}
	s.publish(ctx, "USER_DELETE", user)
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, user *model.User) {
	event := messaging.Event{
		Type:       eventType,
		Collection: "usuarios",
		Guid:       user.ID.String(),
		Payload:    user,
	}
	if err := s.broker.Publish(ctx, eventChannel, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("event publish failed")
	}
}
