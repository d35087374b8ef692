package service

import (
	"time"

	"tokopos/internal/dto"
	"tokopos/internal/model"
)

const (
	timeLayout = time.RFC3339
	dateLayout = "2006-01-02"
)

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Price:             p.Price,
		Unit:              p.Unit,
		Category:          p.Category,
		Barcode:           p.Barcode,
		StockQuantity:     p.StockQuantity,
		MinStockThreshold: p.MinStockThreshold,
		IsActive:          p.IsActive,
		LowStock:          p.IsLowStock(),
		CreatedAt:         p.CreatedAt.Format(timeLayout),
		UpdatedAt:         p.UpdatedAt.Format(timeLayout),
	}
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(timeLayout),
	}
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return &dto.SaleResponse{
		ID:             s.ID,
		CustomerID:     s.CustomerID,
		TotalAmount:    s.TotalAmount,
		DiscountAmount: s.DiscountAmount,
		FinalAmount:    s.FinalAmount,
		PaymentMethod:  s.PaymentMethod,
		Notes:          s.Notes,
		Items:          items,
		CreatedAt:      s.CreatedAt.Format(timeLayout),
	}
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	name := ""
	if m.Product != nil {
		name = m.Product.Name
	}
	return dto.StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   name,
		Kind:          m.Kind,
		Quantity:      m.Quantity,
		ReferenceKind: m.ReferenceKind,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		StockBefore:   m.StockBefore,
		StockAfter:    m.StockAfter,
		CreatedAt:     m.CreatedAt.Format(timeLayout),
	}
}

func debtCreditToResponse(d *model.DebtCredit, now time.Time) *dto.DebtCreditResponse {
	var due *string
	if d.DueDate != nil {
		s := d.DueDate.Format(timeLayout)
		due = &s
	}
	name := ""
	if d.Customer != nil {
		name = d.Customer.Name
	}
	return &dto.DebtCreditResponse{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		CustomerName:    name,
		Type:            d.Type,
		Amount:          d.Amount,
		RemainingAmount: d.RemainingAmount,
		Description:     d.Description,
		DueDate:         due,
		IsPaid:          d.IsPaid,
		IsOverdue:       d.IsOverdue(now),
		CreatedAt:       d.CreatedAt.Format(timeLayout),
		UpdatedAt:       d.UpdatedAt.Format(timeLayout),
	}
}

func expenseToResponse(e *model.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		Type:        e.Type,
		Amount:      e.Amount,
		Description: e.Description,
		ExpenseDate: e.ExpenseDate.Format(timeLayout),
		CreatedAt:   e.CreatedAt.Format(timeLayout),
	}
}

func strPtr(s string) *string { return &s }
