package doctor

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
	repo         repository.DoctorRepository
	hospitalRepo repository.HospitalRepository
	broker       messaging.Broker
}

func NewService(repo repository.DoctorRepository, hospitalRepo repository.HospitalRepository,
	broker messaging.Broker) *Service {
	return &Service{repo: repo, hospitalRepo: hospitalRepo, broker: broker}
}

func (s *Service) List(ctx context.Context, page int) ([]*model.Doctor, int64, error) {
	var (
		doctors []*model.Doctor
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doctors, err = s.repo.List(gctx, page*model.DefaultPageSize, model.DefaultPageSize)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, apperrors.Internal("Error al listar medicos", err)
	}
	return doctors, total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Medico")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar encontrar medico", err)
	}
	return doctor, nil
}

// Create stores a doctor owned by the calling user; the hospital
// reference must exist.
func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest, userID uuid.UUID) (*model.Doctor, error) {
	hospitalID, err := uuid.Parse(req.HospitalID)
	if err != nil {
		return nil, apperrors.Validation("El hospitalId no es valido", err)
	}

	if _, err := s.hospitalRepo.Get(ctx, hospitalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Hospital")
		}
		return nil, apperrors.Internal("Error al intentar crear Medico", err)
	}

	doctor := &model.Doctor{
		Base:       model.Base{ID: uuid.New()},
		Name:       req.Name,
		Specialty:  req.Specialty,
		UserID:     userID,
		HospitalID: hospitalID,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, apperrors.Internal("Error al intentar crear Medico", err)
	}
	s.publish(ctx, "DOCTOR_CREATE", doctor)
	return doctor, nil
}

// Update applies a partial replace; a name change is rejected when the
// name is already held by another doctor.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Medico")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar actualizar el medico", err)
	}

	if doctor.Name != req.Name {
		existing, err := s.repo.GetByName(ctx, req.Name)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal("Error al intentar actualizar el medico", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.Conflict("El Nombre que desea proporcinar, ya esta siendo ocupado por otro Medico")
		}
	}

	doctor.Name = req.Name
	doctor.Specialty = req.Specialty
	if req.Image != nil {
		doctor.Image = req.Image
	}
	if req.HospitalID != nil {
		hospitalID, err := uuid.Parse(*req.HospitalID)
		if err != nil {
			return nil, apperrors.Validation("El hospitalId no es valido", err)
		}
		if _, err := s.hospitalRepo.Get(ctx, hospitalID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NotFound("Hospital")
			}
			return nil, apperrors.Internal("Error al intentar actualizar el medico", err)
		}
		doctor.HospitalID = hospitalID
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, apperrors.Internal("Error al intentar actualizar el medico", err)
	}
	s.publish(ctx, "DOCTOR_UPDATE", doctor)
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	doctor, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Medico")
	}
	if err != nil {
		return apperrors.Internal("Error al intentar eliminar el medico", err)
	}

	if err := s.repo.Delete(ctx, doctor.ID); err != nil {
		return apperrors.Internal("Error al intentar eliminar el medico", err)
	}
	s.publish(ctx, "DOCTOR_DELETE", doctor)
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, doctor *model.Doctor) {
	event := messaging.Event{
		Type:       eventType,
		Collection: "medicos",
		Guid:       doctor.ID.String(),
		Payload:    doctor,
	}
	if err := s.broker.Publish(ctx, eventChannel, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("event publish failed")
	}
}
