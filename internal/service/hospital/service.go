package hospital

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	apperrors "github.com/medregistry/hospital-api/pkg/errors"
	"github.com/medregistry/hospital-api/pkg/messaging"
)

const eventChannel = "entity-events"

type Service struct {
	repo     repository.HospitalRepository
	userRepo repository.UserRepository
	broker   messaging.Broker
}

func NewService(repo repository.HospitalRepository, userRepo repository.UserRepository,
	broker messaging.Broker) *Service {
	return &Service{repo: repo, userRepo: userRepo, broker: broker}
}

func (s *Service) List(ctx context.Context, page int) ([]*model.Hospital, int64, error) {
	var (
		hospitals []*model.Hospital
		total     int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hospitals, err = s.repo.List(gctx, page*model.DefaultPageSize, model.DefaultPageSize)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, apperrors.Internal("Error al listar hospitales", err)
	}
	return hospitals, total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	hospital, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Hospital")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar encontrar hospital", err)
	}
	return hospital, nil
}

// Create stores a hospital owned by the calling user. The response also
// carries the creator's name for display.
func (s *Service) Create(ctx context.Context, req *model.CreateHospitalRequest, creatorID uuid.UUID) (*model.Hospital, error) {
	creator, err := s.userRepo.Get(ctx, creatorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Usuario")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar crear Hospital", err)
	}

	hospital := &model.Hospital{
		Base:        model.Base{ID: uuid.New()},
		Name:        req.Name,
		CreatorID:   creator.ID,
		CreatorName: &creator.Name,
	}

	if err := s.repo.Create(ctx, hospital); err != nil {
		return nil, apperrors.Internal("Error al intentar crear Hospital", err)
	}
	s.publish(ctx, "HOSPITAL_CREATE", hospital)
	return hospital, nil
}

// Update applies a partial replace; a name change is rejected when the
// name is already held by another hospital.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateHospitalRequest) (*model.Hospital, error) {
	hospital, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Hospital")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar actualizar el hospital", err)
	}

	if hospital.Name != req.Name {
		existing, err := s.repo.GetByName(ctx, req.Name)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal("Error al intentar actualizar el hospital", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.Conflict("El Nombre que desea proporcinar, ya esta siendo ocupado por otro Hospital")
		}
	}

	hospital.Name = req.Name
	if req.Image != nil {
		hospital.Image = req.Image
	}

	if err := s.repo.Update(ctx, hospital); err != nil {
		return nil, apperrors.Internal("Error al intentar actualizar el hospital", err)
	}
	s.publish(ctx, "HOSPITAL_UPDATE", hospital)
	return hospital, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	hospital, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Hospital")
	}
	if err != nil {
		return apperrors.Internal("Error al intentar eliminar el hospital", err)
	}

	if err := s.repo.Delete(ctx, hospital.ID); err != nil {
		return apperrors.Internal("Error al intentar eliminar el hospital", err)
	}
	s.publish(ctx, "HOSPITAL_DELETE", hospital)
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, hospital *model.Hospital) {
	event := messaging.Event{
		Type:       eventType,
		Collection: "hospitales",
		Guid:       hospital.ID.String(),
		Payload:    hospital,
	}
	if err := s.broker.Publish(ctx, eventChannel, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("event publish failed")
	}
}
