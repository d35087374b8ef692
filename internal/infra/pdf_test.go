package infra

import (
	"bytes"
	"testing"
	"time"

	"tokopos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSaleReceipt(t *testing.T) {
	sale := &model.Sale{
		ID:             12,
		TotalAmount:    decimal.NewFromInt(45000),
		DiscountAmount: decimal.NewFromInt(5000),
		FinalAmount:    decimal.NewFromInt(40000),
		PaymentMethod:  "qris",
		CreatedAt:      time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Customer:       &model.Customer{Name: "Bu Ani"},
		Items: []model.SaleItem{
			{ProductID: 1, Quantity: 3, TotalPrice: decimal.NewFromInt(30000), Product: &model.Product{Name: "Premium Jasmine Rice 5kg Bag"}},
			{ProductID: 2, Quantity: 1, TotalPrice: decimal.NewFromInt(15000)},
		},
	}

	out, err := RenderSaleReceipt(sale, "Toko Makmur")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}
