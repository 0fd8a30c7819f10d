package doctor

import (
	"context"

	"github.com/hms/hms/internal/platform/validate"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusOnLeave  = "On Leave"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (int64, error) {
	if verrs := validate.Struct(req); verrs != nil {
		return 0, verrs
	}
	d := req.toDoctor()
	d.Status = StatusActive
	if err := s.repo.Create(ctx, d); err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest) error {
	if verrs := validate.Struct(req); verrs != nil {
		return verrs
	}
	d := req.toDoctor()
	d.ID = id
	d.Status = req.Status
	if d.Status == "" {
		d.Status = StatusActive
	}
	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
