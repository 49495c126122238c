package rebalancing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// DispatchStatus represents where a dispatch is on its way between stores
type DispatchStatus string

const (
	DispatchStatusPending   DispatchStatus = "pending"
	DispatchStatusInTransit DispatchStatus = "in_transit"
	DispatchStatusDelivered DispatchStatus = "delivered"
	DispatchStatusCancelled DispatchStatus = "cancelled"
)

// IsValid checks if the status is a valid DispatchStatus
func (s DispatchStatus) IsValid() bool {
	switch s {
	case DispatchStatusPending, DispatchStatusInTransit, DispatchStatusDelivered, DispatchStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DispatchStatus
func (s DispatchStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DispatchStatus) CanTransitionTo(target DispatchStatus) bool {
	switch s {
	case DispatchStatusPending:
		return target == DispatchStatusInTransit || target == DispatchStatusDelivered || target == DispatchStatusCancelled
	case DispatchStatusInTransit:
		return target == DispatchStatusDelivered || target == DispatchStatusCancelled
	case DispatchStatusDelivered, DispatchStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Dispatch represents the shipment that physically carries a transfer
// between two stores. The wider shipping subsystem owns its progress; the
// rebalancing engine creates dispatches and reads their status as the
// completion gate.
type Dispatch struct {
	shared.BaseAggregateRoot
	SourceStoreID      uuid.UUID
	DestinationStoreID uuid.UUID
	Status             DispatchStatus
	DispatchDate       time.Time
	CreatedBy          uuid.UUID
	Notes              string
}

// NewDispatch creates a pending dispatch between two stores
func NewDispatch(sourceStoreID, destinationStoreID, createdBy uuid.UUID, notes string) (*Dispatch, error) {
	if sourceStoreID == uuid.Nil || destinationStoreID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Source and destination stores are required")
	}
	if sourceStoreID == destinationStoreID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination stores must differ")
	}

	return &Dispatch{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		SourceStoreID:      sourceStoreID,
		DestinationStoreID: destinationStoreID,
		Status:             DispatchStatusPending,
		DispatchDate:       time.Now(),
		CreatedBy:          createdBy,
		Notes:              notes,
	}, nil
}

// UpdateStatus records a status change reported by the shipping subsystem
func (d *Dispatch) UpdateStatus(target DispatchStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown dispatch status %q", target))
	}
	if !d.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Dispatch cannot move from %s to %s", d.Status, target))
	}

	d.Status = target
	d.UpdatedAt = time.Now()

	return nil
}
