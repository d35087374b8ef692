package handler

import (
	"net/http"

	"tokopos/internal/dto"
	"tokopos/internal/service"

	"github.com/gin-gonic/gin"
)

type DebtCreditsHandler struct{ svc service.LedgerService }

func NewDebtCreditsHandler(svc service.LedgerService) *DebtCreditsHandler {
	return &DebtCreditsHandler{svc: svc}
}

func (h *DebtCreditsHandler) Create(c *gin.Context) {
	var req dto.CreateDebtCreditRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List debt/credit records
// @Description  Unpaid first, then by due date, then newest.
// @Tags         debt-credits
// @Produce      json
// @Param        customer_id query int    false "Customer ID"
// @Param        type        query string false "debt | credit"
// @Param        status      query string false "all | unpaid | paid | overdue"
// @Success      200 {array} dto.DebtCreditResponse
// @Router       /v1/debt-credits [get]
func (h *DebtCreditsHandler) List(c *gin.Context) {
	var filter dto.DebtCreditFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *DebtCreditsHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pay godoc
// @Summary      Apply a payment
// @Description  Decrements remaining_amount; the record is marked paid when it reaches zero.
// @Tags         debt-credits
// @Accept       json
// @Produce      json
// @Param        id   path int                      true "Record ID"
// @Param        body body dto.PayDebtCreditRequest true "Payment"
// @Success      200  {object} dto.DebtCreditResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError "already paid, overpayment or concurrent update"
// @Router       /v1/debt-credits/{id}/payments [post]
func (h *DebtCreditsHandler) Pay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PayDebtCreditRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Pay(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
