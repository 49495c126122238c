package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprebalancing "github.com/retail/backoffice/internal/application/rebalancing"
	"github.com/retail/backoffice/internal/domain/rebalancing"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
)

// RebalancingHandler handles stock transfer and dispatch endpoints
type RebalancingHandler struct {
	BaseHandler
	rebalancingService *apprebalancing.RebalancingService
}

// NewRebalancingHandler creates a new RebalancingHandler
func NewRebalancingHandler(rebalancingService *apprebalancing.RebalancingService) *RebalancingHandler {
	return &RebalancingHandler{rebalancingService: rebalancingService}
}

// CreateRebalancingRequest represents a request for a new stock transfer
type CreateRebalancingRequest struct {
	ProductID          string  `json:"product_id" binding:"required,uuid"`
	SourceStoreID      string  `json:"source_store_id" binding:"required,uuid"`
	SourceBatchID      *string `json:"source_batch_id" binding:"omitempty,uuid"`
	DestinationStoreID string  `json:"destination_store_id" binding:"required,uuid"`
	Quantity           int     `json:"quantity" binding:"required,gt=0"`
	Reason             string  `json:"reason" binding:"required"`
	Priority           string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// RejectRebalancingRequest carries the reason a transfer was rejected
type RejectRebalancingRequest struct {
	Reason string `json:"reason"`
}

// UpdateDispatchStatusRequest represents a dispatch status change
type UpdateDispatchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_transit delivered cancelled"`
}

// RegisterRoutes registers all rebalancing and dispatch routes
func (h *RebalancingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rebalancings := rg.Group("/rebalancings")
	{
		rebalancings.GET("", h.List)
		rebalancings.GET("/suggestions", h.Suggestions)
		rebalancings.GET("/statistics", h.Statistics)
		rebalancings.POST("", middleware.RequireActor(), h.Create)
		rebalancings.POST("/:id/approve", middleware.RequireActor(), h.Approve)
		rebalancings.POST("/:id/reject", middleware.RequireActor(), h.Reject)
		rebalancings.POST("/:id/cancel", middleware.RequireActor(), h.Cancel)
		rebalancings.POST("/:id/complete", middleware.RequireActor(), h.Complete)
	}

	dispatches := rg.Group("/dispatches")
	{
		dispatches.PUT("/:id/status", middleware.RequireActor(), h.UpdateDispatchStatus)
	}
}

// List lists rebalancing requests, newest first. Supported query filters:
// status, product_id, store_id.
func (h *RebalancingHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		if !rebalancing.Status(status).IsValid() {
			h.BadRequest(c, "Invalid rebalancing status")
			return
		}
		filter.Filters["status"] = status
	}
	if productID := c.Query("product_id"); productID != "" {
		id, err := uuid.Parse(productID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		filter.Filters["product_id"] = id
	}
	if storeID := c.Query("store_id"); storeID != "" {
		id, err := uuid.Parse(storeID)
		if err != nil {
			h.BadRequest(c, "Invalid store ID")
			return
		}
		filter.Filters["store_id"] = id
	}

	page, err := h.rebalancingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Suggestions proposes transfers from overstocked to understocked stores
func (h *RebalancingHandler) Suggestions(c *gin.Context) {
	result, err := h.rebalancingService.Suggest(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Statistics summarizes rebalancing activity
func (h *RebalancingHandler) Statistics(c *gin.Context) {
	stats, err := h.rebalancingService.GetStatistics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// Create creates a new rebalancing request
func (h *RebalancingHandler) Create(c *gin.Context) {
	var req CreateRebalancingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actor, err := actorID(c)
	if err != nil {
		h.BadRequest(c, "Acting employee is required")
		return
	}

	priority := rebalancing.PriorityMedium
	if req.Priority != "" {
		priority = rebalancing.Priority(req.Priority)
	}

	cmd := apprebalancing.CreateCommand{
		ProductID:          uuid.MustParse(req.ProductID),
		SourceStoreID:      uuid.MustParse(req.SourceStoreID),
		DestinationStoreID: uuid.MustParse(req.DestinationStoreID),
		Quantity:           req.Quantity,
		Reason:             req.Reason,
		Priority:           priority,
		ActorID:            actor,
	}
	if req.SourceBatchID != nil {
		batchID := uuid.MustParse(*req.SourceBatchID)
		cmd.SourceBatchID = &batchID
	}

	result, err := h.rebalancingService.Create(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Approve approves a pending request, deducts source stock and creates
// the dispatch
func (h *RebalancingHandler) Approve(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rebalancing ID")
		return
	}

	actor, err := actorID(c)
	if err != nil {
		h.BadRequest(c, "Acting employee is required")
		return
	}

	result, err := h.rebalancingService.Approve(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Reject rejects a pending request
func (h *RebalancingHandler) Reject(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rebalancing ID")
		return
	}

	// The reason body is optional
	var req RejectRebalancingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	actor, err := actorID(c)
	if err != nil {
		h.BadRequest(c, "Acting employee is required")
		return
	}

	result, err := h.rebalancingService.Reject(c.Request.Context(), id, actor, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel cancels a pending request
func (h *RebalancingHandler) Cancel(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rebalancing ID")
		return
	}

	result, err := h.rebalancingService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Complete completes an in-transit request after its dispatch was
// delivered, crediting destination stock
func (h *RebalancingHandler) Complete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rebalancing ID")
		return
	}

	result, err := h.rebalancingService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateDispatchStatus moves a dispatch along its delivery lifecycle
func (h *RebalancingHandler) UpdateDispatchStatus(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid dispatch ID")
		return
	}

	var req UpdateDispatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.rebalancingService.UpdateDispatchStatus(c.Request.Context(), id, rebalancing.DispatchStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
