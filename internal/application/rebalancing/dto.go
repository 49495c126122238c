package rebalancing

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/rebalancing"
)

// Suggestion is one advisory transfer proposal, enriched with product and
// store display data
type Suggestion struct {
	ProductID           uuid.UUID `json:"product_id"`
	ProductName         string    `json:"product_name"`
	SKU                 string    `json:"sku"`
	FromStoreID         uuid.UUID `json:"from_store_id"`
	FromStoreName       string    `json:"from_store_name"`
	FromStoreQuantity   int       `json:"from_store_quantity"`
	ToStoreID           uuid.UUID `json:"to_store_id"`
	ToStoreName         string    `json:"to_store_name"`
	ToStoreQuantity     int       `json:"to_store_quantity"`
	ToStoreReorderLevel float64   `json:"to_store_reorder_level"`
	SuggestedQuantity   int       `json:"suggested_quantity"`
	Reason              string    `json:"reason"`
}

// SuggestionsResult is the full suggestion listing
type SuggestionsResult struct {
	TotalSuggestions int          `json:"total_suggestions"`
	Suggestions      []Suggestion `json:"suggestions"`
}

// CreateCommand carries a new transfer request
type CreateCommand struct {
	ProductID          uuid.UUID
	SourceStoreID      uuid.UUID
	SourceBatchID      *uuid.UUID
	DestinationStoreID uuid.UUID
	Quantity           int
	Reason             string
	Priority           rebalancing.Priority
	ActorID            uuid.UUID
}

// RebalancingDTO is the rebalancing view returned to callers
type RebalancingDTO struct {
	ID                 uuid.UUID            `json:"id"`
	ProductID          uuid.UUID            `json:"product_id"`
	SourceStoreID      uuid.UUID            `json:"source_store_id"`
	SourceBatchID      *uuid.UUID           `json:"source_batch_id,omitempty"`
	DestinationStoreID uuid.UUID            `json:"destination_store_id"`
	Quantity           int                  `json:"quantity"`
	Status             rebalancing.Status   `json:"status"`
	Priority           rebalancing.Priority `json:"priority"`
	Reason             string               `json:"reason"`
	RequestedBy        uuid.UUID            `json:"requested_by"`
	ApprovedBy         *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time           `json:"approved_at,omitempty"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty"`
	DispatchID         *uuid.UUID           `json:"dispatch_id,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

// Statistics summarizes rebalancing activity
type Statistics struct {
	Total          int64                        `json:"total"`
	ByStatus       map[rebalancing.Status]int64 `json:"by_status"`
	RecentActivity []RebalancingDTO             `json:"recent_activity"`
}

// DispatchDTO is the dispatch view returned to callers
type DispatchDTO struct {
	ID                 uuid.UUID                  `json:"id"`
	SourceStoreID      uuid.UUID                  `json:"source_store_id"`
	DestinationStoreID uuid.UUID                  `json:"destination_store_id"`
	Status             rebalancing.DispatchStatus `json:"status"`
	DispatchDate       time.Time                  `json:"dispatch_date"`
	Notes              string                     `json:"notes,omitempty"`
}

func toRebalancingDTO(r *rebalancing.Rebalancing) RebalancingDTO {
	return RebalancingDTO{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		SourceStoreID:      r.SourceStoreID,
		SourceBatchID:      r.SourceBatchID,
		DestinationStoreID: r.DestinationStoreID,
		Quantity:           r.Quantity,
		Status:             r.Status,
		Priority:           r.Priority,
		Reason:             r.Reason,
		RequestedBy:        r.RequestedBy,
		ApprovedBy:         r.ApprovedBy,
		ApprovedAt:         r.ApprovedAt,
		CompletedAt:        r.CompletedAt,
		DispatchID:         r.DispatchID,
		CreatedAt:          r.CreatedAt,
	}
}

func toDispatchDTO(d *rebalancing.Dispatch) DispatchDTO {
	return DispatchDTO{
		ID:                 d.ID,
		SourceStoreID:      d.SourceStoreID,
		DestinationStoreID: d.DestinationStoreID,
		Status:             d.Status,
		DispatchDate:       d.DispatchDate,
		Notes:              d.Notes,
	}
}
