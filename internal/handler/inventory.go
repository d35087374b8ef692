package handler

import (
	"net/http"

	"tokopos/internal/dto"
	"tokopos/internal/service"
	"tokopos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Adjust godoc
// @Summary      Set stock to an absolute quantity
// @Description  Records the signed delta (new − old) as one adjustment movement. Adjusting to the current value records a zero movement.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body body dto.AdjustStockRequest true "Adjustment"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receive godoc
// @Summary      Book incoming goods
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body body dto.ReceiveStockRequest true "Receipt"
// @Success      200  {object} dto.ProductResponse
// @Router       /v1/inventory/receipts [post]
func (h *InventoryHandler) Receive(c *gin.Context) {
	var req dto.ReceiveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReceiveStock(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	var filter dto.MovementFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reconcile reports products whose stock counter disagrees with their
// movement log. It never modifies stock.
func (h *InventoryHandler) Reconcile(c *gin.Context) {
	resp, err := h.svc.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStockAlerts lists the products the alert worker has flagged.
func LowStockAlerts(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		alerts, err := worker.LowStockAlerts(c.Request.Context(), rdb)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": alerts})
	}
}
