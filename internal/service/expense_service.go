package service

import (
	"context"
	"fmt"
	"time"

	"tokopos/internal/dto"
	"tokopos/internal/model"
	"tokopos/internal/repository"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context, filter dto.ExpenseFilter) ([]dto.ExpenseResponse, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if err := checkMoney("amount", req.Amount); err != nil {
		return nil, err
	}
	e := &model.Expense{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		ExpenseDate: time.Now(),
	}
	if req.ExpenseDate != nil {
		e.ExpenseDate = req.ExpenseDate.Time
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	resp := expenseToResponse(e)
	return &resp, nil
}

func (s *expenseService) List(ctx context.Context, filter dto.ExpenseFilter) ([]dto.ExpenseResponse, error) {
	if err := checkDate("from", filter.From); err != nil {
		return nil, err
	}
	if err := checkDate("to", filter.To); err != nil {
		return nil, err
	}
	expenses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, expenseToResponse(&expenses[i]))
	}
	return out, nil
}

// checkDate validates an optional YYYY-MM-DD query value.
func checkDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return &ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD format"}
	}
	return nil
}
