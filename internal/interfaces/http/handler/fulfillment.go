package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appfulfillment "github.com/retail/backoffice/internal/application/fulfillment"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
)

// FulfillmentHandler handles order assignment and fulfillment endpoints
type FulfillmentHandler struct {
	BaseHandler
	fulfillmentService  *appfulfillment.FulfillmentService
	availabilityService *appfulfillment.AvailabilityService
}

// NewFulfillmentHandler creates a new FulfillmentHandler
func NewFulfillmentHandler(
	fulfillmentService *appfulfillment.FulfillmentService,
	availabilityService *appfulfillment.AvailabilityService,
) *FulfillmentHandler {
	return &FulfillmentHandler{
		fulfillmentService:  fulfillmentService,
		availabilityService: availabilityService,
	}
}

// AssignOrderRequest represents a request to assign an order to a store
type AssignOrderRequest struct {
	StoreID string `json:"store_id" binding:"required,uuid"`
	Notes   string `json:"notes"`
}

// ScanBarcodeRequest represents one barcode scan against an order item
type ScanBarcodeRequest struct {
	Barcode     string `json:"barcode" binding:"required"`
	OrderItemID string `json:"order_item_id" binding:"required,uuid"`
}

// RegisterRoutes registers all fulfillment routes
func (h *FulfillmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("/pending", h.ListPending)
		orders.GET("/:id/available-stores", h.AvailableStores)
		orders.POST("/:id/assign", middleware.RequireActor(), h.Assign)
	}

	stores := rg.Group("/stores")
	{
		stores.GET("/:id/orders", h.ListStoreOrders)
		stores.GET("/:id/orders/:orderId", h.StoreOrderDetails)
	}

	fulfillmentGroup := rg.Group("/fulfillment", middleware.RequireActor())
	{
		fulfillmentGroup.POST("/orders/:id/scan", h.Scan)
		fulfillmentGroup.POST("/orders/:id/ready", h.MarkReady)
	}
}

// ListPending lists e-commerce orders awaiting store assignment
func (h *FulfillmentHandler) ListPending(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.fulfillmentService.ListPendingOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// AvailableStores evaluates which stores can fulfill an order
func (h *FulfillmentHandler) AvailableStores(c *gin.Context) {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	report, err := h.availabilityService.EvaluateStores(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Assign assigns a pending order to a store
func (h *FulfillmentHandler) Assign(c *gin.Context) {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req AssignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actor, err := actorID(c)
	if err != nil {
		h.BadRequest(c, "Acting employee is required")
		return
	}

	order, err := h.fulfillmentService.AssignToStore(c.Request.Context(), appfulfillment.AssignToStoreCommand{
		OrderID: orderID,
		StoreID: uuid.MustParse(req.StoreID),
		ActorID: actor,
		Notes:   req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListStoreOrders lists a store's assigned orders, optionally filtered by
// status. Multiple statuses may be given comma separated.
func (h *FulfillmentHandler) ListStoreOrders(c *gin.Context) {
	storeID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	statuses, err := parseOrderStatuses(c.Query("status"))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.fulfillmentService.ListAssignedOrders(c.Request.Context(), storeID, statuses, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StoreOrderDetails returns one order with its fulfillment state
func (h *FulfillmentHandler) StoreOrderDetails(c *gin.Context) {
	storeID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.fulfillmentService.OrderFulfillmentDetails(c.Request.Context(), storeID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Scan records one barcode scan against an order item
func (h *FulfillmentHandler) Scan(c *gin.Context) {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req ScanBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actor, err := actorID(c)
	if err != nil {
		h.BadRequest(c, "Acting employee is required")
		return
	}

	result, err := h.fulfillmentService.ScanBarcode(c.Request.Context(), appfulfillment.ScanBarcodeCommand{
		OrderID:     orderID,
		OrderItemID: uuid.MustParse(req.OrderItemID),
		Barcode:     req.Barcode,
		ActorID:     actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkReady marks a fully scanned order ready for shipment
func (h *FulfillmentHandler) MarkReady(c *gin.Context) {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	actor, err := actorID(c)
	if err != nil {
		h.BadRequest(c, "Acting employee is required")
		return
	}

	order, err := h.fulfillmentService.MarkReadyForShipment(c.Request.Context(), orderID, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

func parseOrderStatuses(raw string) ([]fulfillment.OrderStatus, error) {
	if raw == "" {
		return nil, nil
	}
	var statuses []fulfillment.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		status := fulfillment.OrderStatus(strings.TrimSpace(part))
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid order status: %s", part)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
