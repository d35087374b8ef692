package service

import (
	"context"
	"fmt"
	"time"

	"tokopos/internal/dto"
	"tokopos/internal/model"
	"tokopos/internal/repository"

	"github.com/rs/zerolog/log"
)

// LedgerService manages debt/credit records and their payments. The record
// type is an opaque tag: both types settle with the same arithmetic.
type LedgerService interface {
	Create(ctx context.Context, req dto.CreateDebtCreditRequest) (*dto.DebtCreditResponse, error)
	Get(ctx context.Context, id int64) (*dto.DebtCreditResponse, error)
	List(ctx context.Context, filter dto.DebtCreditFilter) ([]dto.DebtCreditResponse, error)
	Pay(ctx context.Context, id int64, req dto.PayDebtCreditRequest) (*dto.DebtCreditResponse, error)
}

type ledgerService struct {
	repo         repository.DebtCreditRepository
	customerRepo repository.CustomerRepository
	maxRetries   int
	now          func() time.Time
}

// NewLedgerService builds the ledger. maxRetries bounds how many times a
// payment that lost a concurrent update is re-read and re-applied.
func NewLedgerService(repo repository.DebtCreditRepository, customerRepo repository.CustomerRepository, maxRetries int) LedgerService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &ledgerService{repo: repo, customerRepo: customerRepo, maxRetries: maxRetries, now: time.Now}
}

func (s *ledgerService) Create(ctx context.Context, req dto.CreateDebtCreditRequest) (*dto.DebtCreditResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if err := checkMoney("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.Type != model.DebtCreditDebt && req.Type != model.DebtCreditCredit {
		return nil, &ValidationError{Field: "type", Reason: "must be debt or credit"}
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if isNotFound(err) {
			return nil, customerNotFound(req.CustomerID)
		}
		return nil, err
	}

	d := &model.DebtCredit{
		CustomerID:      req.CustomerID,
		Type:            req.Type,
		Amount:          req.Amount,
		RemainingAmount: req.Amount,
		Description:     req.Description,
		DueDate:         req.DueDate.TimePtr(),
		IsPaid:          false,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("insert debt/credit: %w", err)
	}
	d.Customer = customer

	log.Info().
		Int64("debt_credit_id", d.ID).
		Int64("customer_id", d.CustomerID).
		Str("type", d.Type).
		Str("amount", d.Amount.StringFixed(2)).
		Msg("debt/credit recorded")
	return debtCreditToResponse(d, s.now()), nil
}

func (s *ledgerService) find(ctx context.Context, id int64) (*model.DebtCredit, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &NotFoundError{Resource: ResourceDebtCredit, ID: id}
		}
		return nil, err
	}
	return d, nil
}

func (s *ledgerService) Get(ctx context.Context, id int64) (*dto.DebtCreditResponse, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return debtCreditToResponse(d, s.now()), nil
}

func (s *ledgerService) List(ctx context.Context, filter dto.DebtCreditFilter) ([]dto.DebtCreditResponse, error) {
	now := s.now()
	records, err := s.repo.List(ctx, filter, now)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtCreditResponse, 0, len(records))
	for i := range records {
		out = append(out, *debtCreditToResponse(&records[i], now))
	}
	return out, nil
}

// ── Pay ───────────────────────────────────────────────────────────────────────
// read → check → compare-and-swap. The write only lands if remaining_amount
// is still what was read; otherwise the record is re-read and the checks run
// again against the fresh balance, up to maxRetries attempts.

func (s *ledgerService) Pay(ctx context.Context, id int64, req dto.PayDebtCreditRequest) (*dto.DebtCreditResponse, error) {
	if !req.PaymentAmount.IsPositive() {
		return nil, &ValidationError{Field: "payment_amount", Reason: "must be positive"}
	}
	if err := checkMoney("payment_amount", req.PaymentAmount); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		d, err := s.find(ctx, id)
		if err != nil {
			return nil, err
		}
		if d.IsPaid {
			return nil, ErrAlreadyPaid
		}
		if req.PaymentAmount.GreaterThan(d.RemainingAmount) {
			return nil, ErrOverpayment
		}

		remaining := d.RemainingAmount.Sub(req.PaymentAmount)
		now := s.now()
		ok, err := s.repo.ApplyPayment(ctx, id, d.RemainingAmount, remaining, now)
		if err != nil {
			return nil, fmt.Errorf("apply payment to debt/credit %d: %w", id, err)
		}
		if !ok {
			log.Warn().Int64("debt_credit_id", id).Int("attempt", attempt).Msg("payment lost a concurrent update, retrying")
			continue
		}

		d.RemainingAmount = remaining
		d.IsPaid = remaining.IsZero()
		d.UpdatedAt = now

		ev := log.Info().
			Int64("debt_credit_id", id).
			Str("payment_amount", req.PaymentAmount.StringFixed(2)).
			Str("remaining_amount", remaining.StringFixed(2)).
			Bool("is_paid", d.IsPaid)
		if req.Notes != nil {
			ev = ev.Str("notes", *req.Notes)
		}
		ev.Msg("payment applied")
		return debtCreditToResponse(d, now), nil
	}
	return nil, ErrConcurrentUpdate
}
