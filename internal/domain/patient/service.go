package patient

import (
	"context"

	"github.com/hms/hms/internal/platform/validate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Create(ctx context.Context, req *Request) (int64, error) {
	if verrs := validate.Struct(req); verrs != nil {
		return 0, verrs
	}
	p := req.toPatient()
	if err := s.repo.Create(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *Request) error {
	if verrs := validate.Struct(req); verrs != nil {
		return verrs
	}
	p := req.toPatient()
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
