package service

import (
	"context"
	"fmt"

	"tokopos/internal/dto"
	"tokopos/internal/model"
	"tokopos/internal/repository"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id int64) (*dto.CustomerResponse, error)
	List(ctx context.Context, name string) ([]dto.CustomerResponse, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	c := &model.Customer{Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return customerToResponse(c), nil
}

func (s *customerService) Get(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, customerNotFound(id)
		}
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) List(ctx context.Context, name string) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *customerToResponse(&customers[i]))
	}
	return out, nil
}
