package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"tokopos/internal/dto"
	"tokopos/internal/model"
	"tokopos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newLedger(t *testing.T, f *fixture, repo repository.DebtCreditRepository, retries int) *ledgerService {
	t.Helper()
	if repo == nil {
		repo = f.ledger
	}
	return NewLedgerService(repo, f.customers, retries).(*ledgerService)
}

func seedDebt(t *testing.T, svc LedgerService, customerID int64, amount int64) *dto.DebtCreditResponse {
	t.Helper()
	d, err := svc.Create(context.Background(), dto.CreateDebtCreditRequest{
		CustomerID: customerID,
		Type:       model.DebtCreditDebt,
		Amount:     dec(amount),
	})
	require.NoError(t, err)
	return d
}

func pay(amount int64) dto.PayDebtCreditRequest {
	return dto.PayDebtCreditRequest{PaymentAmount: dec(amount)}
}

func TestLedgerCreate(t *testing.T) {
	f := newFixture(t, permissive)
	svc := newLedger(t, f, nil, 3)
	c := f.seedCustomer(t, "Siti")

	d := seedDebt(t, svc, c.ID, 250000)
	assert.True(t, dec(250000).Equal(d.RemainingAmount))
	assert.False(t, d.IsPaid)
	assert.Equal(t, "Siti", d.CustomerName)

	_, err := svc.Create(context.Background(), dto.CreateDebtCreditRequest{CustomerID: 999, Type: model.DebtCreditCredit, Amount: dec(1)})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ResourceCustomer, nf.Resource)

	_, err = svc.Create(context.Background(), dto.CreateDebtCreditRequest{CustomerID: c.ID, Type: model.DebtCreditDebt, Amount: dec(0)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPay_AccumulatesThenRejectsWhenPaid(t *testing.T) {
	f := newFixture(t, permissive)
	svc := newLedger(t, f, nil, 3)
	ctx := context.Background()
	c := f.seedCustomer(t, "Andi")
	d := seedDebt(t, svc, c.ID, 1000)

	after, err := svc.Pay(ctx, d.ID, pay(300))
	require.NoError(t, err)
	assert.True(t, dec(700).Equal(after.RemainingAmount), after.RemainingAmount.String())
	assert.False(t, after.IsPaid)

	after, err = svc.Pay(ctx, d.ID, pay(700))
	require.NoError(t, err)
	assert.True(t, after.RemainingAmount.IsZero())
	assert.True(t, after.IsPaid)

	_, err = svc.Pay(ctx, d.ID, pay(1))
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	stored, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid)
	assert.True(t, stored.RemainingAmount.IsZero())
}

func TestPay_FullSettlementInOneCall(t *testing.T) {
	f := newFixture(t, permissive)
	svc := newLedger(t, f, nil, 3)
	c := f.seedCustomer(t, "Rina")
	d := seedDebt(t, svc, c.ID, 500000)

	after, err := svc.Pay(context.Background(), d.ID, pay(500000))
	require.NoError(t, err)
	assert.True(t, after.RemainingAmount.IsZero())
	assert.True(t, after.IsPaid)
}

func TestPay_OverpaymentLeavesRecordUnchanged(t *testing.T) {
	f := newFixture(t, permissive)
	svc := newLedger(t, f, nil, 3)
	ctx := context.Background()
	c := f.seedCustomer(t, "Dewi")
	d := seedDebt(t, svc, c.ID, 1000)

	_, err := svc.Pay(ctx, d.ID, pay(1001))
	assert.ErrorIs(t, err, ErrOverpayment)

	stored, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, dec(1000).Equal(stored.RemainingAmount))
	assert.False(t, stored.IsPaid)
}

func TestLedger_RejectsSubCentAmounts(t *testing.T) {
	f := newFixture(t, permissive)
	svc := newLedger(t, f, nil, 3)
	ctx := context.Background()
	c := f.seedCustomer(t, "Rina")

	_, err := svc.Create(ctx, dto.CreateDebtCreditRequest{
		CustomerID: c.ID, Type: model.DebtCreditCredit, Amount: decimal.RequireFromString("0.004"),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
	assert.Zero(t, f.count(t, &model.DebtCredit{}))

	d := seedDebt(t, svc, c.ID, 1000)
	_, err = svc.Pay(ctx, d.ID, dto.PayDebtCreditRequest{PaymentAmount: decimal.RequireFromString("999.999")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payment_amount", verr.Field)

	stored, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, dec(1000).Equal(stored.RemainingAmount))
	assert.False(t, stored.IsPaid)

	// Trailing zeros beyond the second place are fine.
	paid, err := svc.Pay(ctx, d.ID, dto.PayDebtCreditRequest{PaymentAmount: decimal.RequireFromString("1000.000")})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
}

func TestPay_Errors(t *testing.T) {
	f := newFixture(t, permissive)
	svc := newLedger(t, f, nil, 3)
	ctx := context.Background()

	_, err := svc.Pay(ctx, 12345, pay(10))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ResourceDebtCredit, nf.Resource)

	c := f.seedCustomer(t, "Joko")
	d := seedDebt(t, svc, c.ID, 100)
	_, err = svc.Pay(ctx, d.ID, pay(0))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPay_FractionalAmountsStayExact(t *testing.T) {
	f := newFixture(t, permissive)
	svc := newLedger(t, f, nil, 3)
	ctx := context.Background()
	c := f.seedCustomer(t, "Eka")
	d, err := svc.Create(ctx, dto.CreateDebtCreditRequest{
		CustomerID: c.ID, Type: model.DebtCreditCredit, Amount: decimal.RequireFromString("0.30"),
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Pay(ctx, d.ID, dto.PayDebtCreditRequest{PaymentAmount: decimal.RequireFromString("0.10")})
		require.NoError(t, err)
	}
	stored, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid)
}

// racingRepo lets another writer pay first on the first CAS attempt.
type racingRepo struct {
	repository.DebtCreditRepository
	interloper decimal.Decimal
	calls      atomic.Int32
	alwaysLose bool
}

func (r *racingRepo) ApplyPayment(ctx context.Context, id int64, expected, remaining decimal.Decimal, now time.Time) (bool, error) {
	n := r.calls.Add(1)
	if r.alwaysLose {
		return false, nil
	}
	if n == 1 {
		ok, err := r.DebtCreditRepository.ApplyPayment(ctx, id, expected, expected.Sub(r.interloper), now)
		if err != nil || !ok {
			return ok, err
		}
	}
	return r.DebtCreditRepository.ApplyPayment(ctx, id, expected, remaining, now)
}

func TestPay_LostRaceIsRetriedAgainstFreshBalance(t *testing.T) {
	f := newFixture(t, permissive)
	repo := &racingRepo{DebtCreditRepository: f.ledger, interloper: dec(200)}
	svc := newLedger(t, f, repo, 3)
	ctx := context.Background()
	c := f.seedCustomer(t, "Wati")
	d := seedDebt(t, svc, c.ID, 1000)

	after, err := svc.Pay(ctx, d.ID, pay(300))
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.calls.Load())
	assert.True(t, dec(500).Equal(after.RemainingAmount), "both payments applied: %s", after.RemainingAmount)

	stored, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, dec(500).Equal(stored.RemainingAmount))
}

func TestPay_RetriesExhausted(t *testing.T) {
	f := newFixture(t, permissive)
	repo := &racingRepo{DebtCreditRepository: f.ledger, alwaysLose: true}
	svc := newLedger(t, f, repo, 3)
	c := f.seedCustomer(t, "Tono")
	d := seedDebt(t, svc, c.ID, 1000)

	_, err := svc.Pay(context.Background(), d.ID, pay(100))
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.Equal(t, int32(3), repo.calls.Load())
}

func TestLedgerList_OrderingAndOverdue(t *testing.T) {
	f := newFixture(t, permissive)
	svc := newLedger(t, f, nil, 3)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }
	c := f.seedCustomer(t, "Lina")

	mk := func(amount int64, due *time.Time) int64 {
		var dueDate *dto.Date
		if due != nil {
			dueDate = &dto.Date{Time: *due}
		}
		d, err := svc.Create(ctx, dto.CreateDebtCreditRequest{CustomerID: c.ID, Type: model.DebtCreditDebt, Amount: dec(amount), DueDate: dueDate})
		require.NoError(t, err)
		return d.ID
	}
	past := now.AddDate(0, 0, -3)
	soon := now.AddDate(0, 0, 2)
	later := now.AddDate(0, 1, 0)

	paid := mk(100, &past)
	undated := mk(200, nil)
	dueLater := mk(300, &later)
	overdue := mk(400, &past)
	dueSoon := mk(500, &soon)
	_, err := svc.Pay(ctx, paid, pay(100))
	require.NoError(t, err)

	all, err := svc.List(ctx, dto.DebtCreditFilter{})
	require.NoError(t, err)
	ids := make([]int64, 0, len(all))
	for _, d := range all {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int64{overdue, dueSoon, dueLater, undated, paid}, ids)
	assert.True(t, all[0].IsOverdue)
	assert.False(t, all[4].IsOverdue, "paid records are never overdue")

	over, err := svc.List(ctx, dto.DebtCreditFilter{Status: "overdue"})
	require.NoError(t, err)
	require.Len(t, over, 1)
	assert.Equal(t, overdue, over[0].ID)

	unpaid, err := svc.List(ctx, dto.DebtCreditFilter{Status: "unpaid"})
	require.NoError(t, err)
	assert.Len(t, unpaid, 4)
}
