package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/medregistry/hospital-api/internal/model"
	"github.com/medregistry/hospital-api/internal/repository"
	apperrors "github.com/medregistry/hospital-api/pkg/errors"
)

// Results holds one page-less name search across the three searchable
// collections.
type Results struct {
	Users     []*model.User     `json:"usuarios"`
	Doctors   []*model.Doctor   `json:"medicos"`
	Hospitals []*model.Hospital `json:"hospitales"`
}

type Service struct {
	users     repository.UserRepository
	doctors   repository.DoctorRepository
	hospitals repository.HospitalRepository

	strategies map[string]func(context.Context, string) (any, error)
}

func NewService(users repository.UserRepository, doctors repository.DoctorRepository,
	hospitals repository.HospitalRepository) *Service {
	s := &Service{users: users, doctors: doctors, hospitals: hospitals}
	// Singular collection keys, fixed at construction.
	s.strategies = map[string]func(context.Context, string) (any, error){
		"usuario": func(ctx context.Context, term string) (any, error) {
			return s.users.SearchByName(ctx, term)
		},
		"medico": func(ctx context.Context, term string) (any, error) {
			return s.doctors.SearchByName(ctx, term)
		},
		"hospital": func(ctx context.Context, term string) (any, error) {
			return s.hospitals.SearchByName(ctx, term)
		},
	}
	return s
}

// SearchCollection runs a case-insensitive substring match on the name
// field of a single collection. Unknown collection names are rejected
// before any lookup runs.
func (s *Service) SearchCollection(ctx context.Context, collection, term string) (any, error) {
	strategy, ok := s.strategies[collection]
	if !ok {
		return nil, apperrors.Validation("Tabla no encontrada", nil)
	}
	data, err := strategy(ctx, term)
	if err != nil {
		return nil, apperrors.Internal("Error al realizar la busqueda", err)
	}
	return data, nil
}

// SearchAll fans the same term out to users, doctors and hospitals
// concurrently and merges the three result sets.
func (s *Service) SearchAll(ctx context.Context, term string) (*Results, error) {
	results := &Results{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results.Users, err = s.users.SearchByName(gctx, term)
		return err
	})
	g.Go(func() error {
		var err error
		results.Doctors, err = s.doctors.SearchByName(gctx, term)
		return err
	})
	g.Go(func() error {
		var err error
		results.Hospitals, err = s.hospitals.SearchByName(gctx, term)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal("Error al realizar la busqueda", err)
	}
	return results, nil
}
