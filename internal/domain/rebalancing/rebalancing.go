package rebalancing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// Status represents the lifecycle state of a rebalancing request
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Priority represents how urgently a transfer should be executed
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is a valid Priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// String returns the string representation of Priority
func (p Priority) String() string {
	return string(p)
}

// Rebalancing represents a proposed stock transfer of one product between
// two stores. Approval creates the dispatch that physically carries the
// transfer; completion is gated on that dispatch being delivered.
type Rebalancing struct {
	shared.BaseAggregateRoot
	ProductID          uuid.UUID
	SourceStoreID      uuid.UUID
	DestinationStoreID uuid.UUID
	SourceBatchID      *uuid.UUID // nil means any batch at the source
	Quantity           int
	Status             Status
	Priority           Priority
	Reason             string
	RequestedBy        uuid.UUID
	ApprovedBy         *uuid.UUID
	ApprovedAt         *time.Time
	CompletedAt        *time.Time
	DispatchID         *uuid.UUID
}

// NewRebalancing creates a pending rebalancing request. The caller has
// already verified source availability; this validates shape only.
func NewRebalancing(
	productID, sourceStoreID, destinationStoreID uuid.UUID,
	sourceBatchID *uuid.UUID,
	quantity int,
	reason string,
	priority Priority,
	requestedBy uuid.UUID,
) (*Rebalancing, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if sourceStoreID == uuid.Nil || destinationStoreID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Source and destination stores are required")
	}
	if sourceStoreID == destinationStoreID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination stores must differ")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Transfer quantity must be at least 1")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", fmt.Sprintf("Unknown priority %q", priority))
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Requester is required")
	}

	r := &Rebalancing{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		ProductID:          productID,
		SourceStoreID:      sourceStoreID,
		DestinationStoreID: destinationStoreID,
		SourceBatchID:      sourceBatchID,
		Quantity:           quantity,
		Status:             StatusPending,
		Priority:           priority,
		Reason:             reason,
		RequestedBy:        requestedBy,
	}

	r.AddDomainEvent(NewRebalancingRequestedEvent(r))

	return r, nil
}

// Approve moves a pending request to approved and links the dispatch
// created to carry it
func (r *Rebalancing) Approve(actorID, dispatchID uuid.UUID) error {
	if r.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending rebalancing requests can be approved")
	}

	now := time.Now()
	r.Status = StatusApproved
	r.ApprovedBy = &actorID
	r.ApprovedAt = &now
	r.DispatchID = &dispatchID
	r.UpdatedAt = now

	r.AddDomainEvent(NewRebalancingApprovedEvent(r))

	return nil
}

// Reject declines a pending request, appending the rejection reason to the
// record's reason so the original motivation stays visible
func (r *Rebalancing) Reject(actorID uuid.UUID, rejectionReason string) error {
	if r.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending rebalancing requests can be rejected")
	}
	if rejectionReason == "" {
		return shared.NewDomainError("INVALID_INPUT", "Rejection reason is required")
	}

	now := time.Now()
	r.Status = StatusRejected
	r.ApprovedBy = &actorID
	r.ApprovedAt = &now
	r.Reason = r.Reason + " | Rejected: " + rejectionReason
	r.UpdatedAt = now

	return nil
}

// Cancel withdraws a request before its transfer has happened
func (r *Rebalancing) Cancel() error {
	if r.Status != StatusPending && r.Status != StatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only pending or approved rebalancing requests can be cancelled")
	}

	r.Status = StatusCancelled
	r.UpdatedAt = time.Now()

	return nil
}

// Complete closes an approved request once its dispatch has been delivered.
// The inventory movement itself happens through the dispatch subsystem.
func (r *Rebalancing) Complete(dispatchStatus DispatchStatus) error {
	if r.Status != StatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved rebalancing requests can be completed")
	}
	if dispatchStatus != DispatchStatusDelivered {
		return shared.NewDomainError("DISPATCH_NOT_DELIVERED", "Dispatch must be delivered before completing rebalancing")
	}

	now := time.Now()
	r.Status = StatusCompleted
	r.CompletedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewRebalancingCompletedEvent(r))

	return nil
}
