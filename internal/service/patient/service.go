package patient

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
	repo     repository.PatientRepository
	userRepo repository.UserRepository
	broker   messaging.Broker
}

func NewService(repo repository.PatientRepository, userRepo repository.UserRepository,
	broker messaging.Broker) *Service {
	return &Service{repo: repo, userRepo: userRepo, broker: broker}
}

func (s *Service) List(ctx context.Context, page int) ([]*model.Patient, int64, error) {
	var (
		patients []*model.Patient
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		patients, err = s.repo.ListActive(gctx, page*model.DefaultPageSize, model.DefaultPageSize)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountActive(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, apperrors.Internal("Error al listar pacientes", err)
	}
	return patients, total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Paciente")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar encontrar paciente", err)
	}
	return patient, nil
}

// Create validates document-number and email uniqueness and the owning
// user's existence, then inserts. The checks run concurrently and are
// evaluated only after all resolve; no record is written on conflict.
func (s *Service) Create(ctx context.Context, req *model.PatientRequest) (*model.Patient, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperrors.Validation("El usuarioId no es valido", err)
	}

	check := uniquenessCheck{
		documentNumber: &req.DocumentNumber,
		email:          &req.Email,
		ownerID:        &userID,
		excludeID:      uuid.Nil,
	}
	if err := s.runChecks(ctx, check); err != nil {
		return nil, err
	}

	patient := req.ToPatient()
	patient.ID = uuid.New()

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperrors.Internal("Error al intentar crear Paciente", err)
	}
	s.publish(ctx, "PATIENT_CREATE", patient)
	return patient, nil
}

// Update re-validates only the unique fields that actually changed;
// unchanged fields resolve to "no conflict" immediately so a record can
// always be saved over itself. Changed-field lookups exclude the
// record's own id.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.PatientRequest) (*model.Patient, error) {
	stored, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Paciente")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar actualizar al paciente", err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperrors.Validation("El usuarioId no es valido", err)
	}

	check := uniquenessCheck{excludeID: id}
	if stored.DocumentNumber != req.DocumentNumber {
		check.documentNumber = &req.DocumentNumber
	}
	if stored.Email != req.Email {
		check.email = &req.Email
	}
	if stored.UserID != userID {
		check.ownerID = &userID
	}
	if err := s.runChecks(ctx, check); err != nil {
		return nil, err
	}

	updated := req.ToPatient()
	updated.ID = stored.ID
	updated.Active = stored.Active
	updated.Image = stored.Image
	updated.CreatedAt = stored.CreatedAt

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, apperrors.Internal("Error al intentar actualizar al paciente", err)
	}
	s.publish(ctx, "PATIENT_UPDATE", updated)
	return updated, nil
}

// Delete is always soft: the active flag flips false and the record is
// retained, excluded from default listings.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.SoftDelete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Paciente")
	}
	if err != nil {
		return nil, apperrors.Internal("Error al intentar eliminar paciente", err)
	}
	s.publish(ctx, "PATIENT_DELETE", patient)
	return patient, nil
}

// uniquenessCheck describes which lookups to run; nil fields were
// unchanged and skip their check.
type uniquenessCheck struct {
	documentNumber *int64
	email          *string
	ownerID        *uuid.UUID
	excludeID      uuid.UUID
}

// runChecks fans the lookups out concurrently, waits for all of them,
// then reports conflicts in a fixed order: document number, email,
// missing owner.
func (s *Service) runChecks(ctx context.Context, check uniquenessCheck) error {
	var (
		documentTaken bool
		emailTaken    bool
		ownerMissing  bool
	)

	g, gctx := errgroup.WithContext(ctx)
	if check.documentNumber != nil {
		g.Go(func() error {
			var err error
			documentTaken, err = s.repo.ExistsByDocumentNumber(gctx, *check.documentNumber, check.excludeID)
			return err
		})
	}
	if check.email != nil {
		g.Go(func() error {
			var err error
			emailTaken, err = s.repo.ExistsByEmail(gctx, *check.email, check.excludeID)
			return err
		})
	}
	if check.ownerID != nil {
		g.Go(func() error {
			_, err := s.userRepo.Get(gctx, *check.ownerID)
			if errors.Is(err, repository.ErrNotFound) {
				ownerMissing = true
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return apperrors.Internal("Error al validar paciente", err)
	}

	switch {
	case documentTaken && check.excludeID == uuid.Nil:
		return apperrors.Conflict("El numero de documento ya esta registrado en otro paciente")
	case documentTaken:
		return apperrors.Conflict("El numero de documento ya esta siendo ocupado por otro paciente")
	case emailTaken && check.excludeID == uuid.Nil:
		return apperrors.Conflict("El email ya esta registrado en otro paciente")
	case emailTaken:
		return apperrors.Conflict("El email ya esta siendo ocupado por otro paciente")
	case ownerMissing:
		return apperrors.NotFoundMsg("El usuario no existe en la base de datos")
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, patient *model.Patient) {
	event := messaging.Event{
		Type:       eventType,
		Collection: "pacientes",
		Guid:       patient.ID.String(),
		Payload:    patient,
	}
	if err := s.broker.Publish(ctx, eventChannel, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("event publish failed")
	}
}
