package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medregistry/hospital-api/internal/email"
	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	"github.com/medregistry/hospital-api/pkg/auth"
	apperrors "github.com/medregistry/hospital-api/pkg/errors"
	"github.com/medregistry/hospital-api/pkg/security"
)

// IdentityVerifier validates a third-party identity token and returns
// the asserted profile.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*model.GoogleProfile, error)
}

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	verifier IdentityVerifier
	emailSvc email.Service
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService,
	hasher security.PasswordHasher, verifier IdentityVerifier, emailSvc email.Service) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		verifier: verifier,
		emailSvc: emailSvc,
	}
}

// Login validates the credential pair and issues a session token. A
// missing email reports 404, a wrong password 400, matching the API the
// frontend was built against.
func (s *Service) Login(ctx context.Context, loginEmail, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, loginEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return "", apperrors.NotFound("Email")
	}
	if err != nil {
		return "", apperrors.Internal("Error al intentar ingresar", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", apperrors.Validation("Email o password incorrectos", nil)
	}

	token, err := s.jwtSvc.GenerateToken(user.ID)
	if err != nil {
		return "", apperrors.Internal("Error al intentar ingresar", err)
	}
	return token, nil
}

// Renew issues a fresh token for an already-authenticated caller.
func (s *Service) Renew(ctx context.Context, userID uuid.UUID) (string, *model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, apperrors.NotFound("Usuario")
	}
	if err != nil {
		return "", nil, apperrors.Internal("Error al intentar renovar el token", err)
	}

	token, err := s.jwtSvc.GenerateToken(user.ID)
	if err != nil {
		return "", nil, apperrors.Internal("Error al intentar renovar el token", err)
	}
	return token, user, nil
}

// GoogleSignIn verifies the provider token. The first sign-in for an
// unknown email creates a user carrying the placeholder password marker;
// a known user gets the google flag persisted.
func (s *Service) GoogleSignIn(ctx context.Context, idToken string) (*model.GoogleProfile, string, error) {
	profile, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", apperrors.Validation("El token de Google es incorrecto", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &model.User{
			Base:         model.Base{ID: uuid.New()},
			Name:         profile.Name,
			Email:        profile.Email,
			PasswordHash: security.GoogleMarker,
			Image:        &profile.Picture,
			Role:         model.RoleUser,
			Google:       true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", apperrors.Internal("Error al intentar ingresar con Google", err)
		}
		if err := s.emailSvc.SendWelcome(user.Email, user.Name); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("welcome email failed")
		}
	case err != nil:
		return nil, "", apperrors.Internal("Error al intentar ingresar con Google", err)
	default:
		if !user.Google {
			user.Google = true
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, "", apperrors.Internal("Error al intentar ingresar con Google", err)
			}
		}
	}

	token, err := s.jwtSvc.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal("Error al intentar ingresar con Google", err)
	}
	return profile, token, nil
}
