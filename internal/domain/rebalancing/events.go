package rebalancing

import (
	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRebalancing = "Rebalancing"

// Event type constants
const (
	EventTypeRebalancingRequested = "RebalancingRequested"
	EventTypeRebalancingApproved  = "RebalancingApproved"
	EventTypeRebalancingCompleted = "RebalancingCompleted"
)

// RebalancingRequestedEvent is raised when a transfer request is created
type RebalancingRequestedEvent struct {
	shared.BaseDomainEvent
	RebalancingID      uuid.UUID `json:"rebalancing_id"`
	ProductID          uuid.UUID `json:"product_id"`
	SourceStoreID      uuid.UUID `json:"source_store_id"`
	DestinationStoreID uuid.UUID `json:"destination_store_id"`
	Quantity           int       `json:"quantity"`
	RequestedBy        uuid.UUID `json:"requested_by"`
}

// NewRebalancingRequestedEvent creates a new RebalancingRequestedEvent
func NewRebalancingRequestedEvent(r *Rebalancing) *RebalancingRequestedEvent {
	return &RebalancingRequestedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeRebalancingRequested, AggregateTypeRebalancing, r.ID),
		RebalancingID:      r.ID,
		ProductID:          r.ProductID,
		SourceStoreID:      r.SourceStoreID,
		DestinationStoreID: r.DestinationStoreID,
		Quantity:           r.Quantity,
		RequestedBy:        r.RequestedBy,
	}
}

// EventType returns the event type name
func (e *RebalancingRequestedEvent) EventType() string {
	return EventTypeRebalancingRequested
}

// RebalancingApprovedEvent is raised when a request is approved and its
// dispatch has been created
type RebalancingApprovedEvent struct {
	shared.BaseDomainEvent
	RebalancingID uuid.UUID `json:"rebalancing_id"`
	DispatchID    uuid.UUID `json:"dispatch_id"`
	ApprovedBy    uuid.UUID `json:"approved_by"`
}

// NewRebalancingApprovedEvent creates a new RebalancingApprovedEvent
func NewRebalancingApprovedEvent(r *Rebalancing) *RebalancingApprovedEvent {
	return &RebalancingApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRebalancingApproved, AggregateTypeRebalancing, r.ID),
		RebalancingID:   r.ID,
		DispatchID:      *r.DispatchID,
		ApprovedBy:      *r.ApprovedBy,
	}
}

// EventType returns the event type name
func (e *RebalancingApprovedEvent) EventType() string {
	return EventTypeRebalancingApproved
}

// RebalancingCompletedEvent is raised when a delivered dispatch closes the
// rebalancing
type RebalancingCompletedEvent struct {
	shared.BaseDomainEvent
	RebalancingID uuid.UUID `json:"rebalancing_id"`
	DispatchID    uuid.UUID `json:"dispatch_id"`
}

// NewRebalancingCompletedEvent creates a new RebalancingCompletedEvent
func NewRebalancingCompletedEvent(r *Rebalancing) *RebalancingCompletedEvent {
	e := &RebalancingCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRebalancingCompleted, AggregateTypeRebalancing, r.ID),
		RebalancingID:   r.ID,
	}
	if r.DispatchID != nil {
		e.DispatchID = *r.DispatchID
	}
	return e
}

// EventType returns the event type name
func (e *RebalancingCompletedEvent) EventType() string {
	return EventTypeRebalancingCompleted
}
