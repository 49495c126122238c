package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/rebalancing"
)

// RebalancingModel is the persistence model for the Rebalancing aggregate root.
type RebalancingModel struct {
	AggregateModel
	ProductID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	SourceStoreID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DestinationStoreID uuid.UUID  `gorm:"type:uuid;not null;index"`
	SourceBatchID      *uuid.UUID `gorm:"type:uuid"`
	Quantity           int        `gorm:"not null"`
	Status             string     `gorm:"type:varchar(20);not null;index"`
	Priority           string     `gorm:"type:varchar(20);not null"`
	Reason             string     `gorm:"type:text"`
	RequestedBy        uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy         *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt         *time.Time
	CompletedAt        *time.Time
	DispatchID         *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (RebalancingModel) TableName() string {
	return "rebalancings"
}

// ToDomain converts the persistence model to a domain Rebalancing entity.
func (m *RebalancingModel) ToDomain() *rebalancing.Rebalancing {
	return &rebalancing.Rebalancing{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		ProductID:          m.ProductID,
		SourceStoreID:      m.SourceStoreID,
		DestinationStoreID: m.DestinationStoreID,
		SourceBatchID:      m.SourceBatchID,
		Quantity:           m.Quantity,
		Status:             rebalancing.Status(m.Status),
		Priority:           rebalancing.Priority(m.Priority),
		Reason:             m.Reason,
		RequestedBy:        m.RequestedBy,
		ApprovedBy:         m.ApprovedBy,
		ApprovedAt:         m.ApprovedAt,
		CompletedAt:        m.CompletedAt,
		DispatchID:         m.DispatchID,
	}
}

// FromDomain populates the persistence model from a domain Rebalancing entity.
func (m *RebalancingModel) FromDomain(r *rebalancing.Rebalancing) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ProductID = r.ProductID
	m.SourceStoreID = r.SourceStoreID
	m.DestinationStoreID = r.DestinationStoreID
	m.SourceBatchID = r.SourceBatchID
	m.Quantity = r.Quantity
	m.Status = r.Status.String()
	m.Priority = r.Priority.String()
	m.Reason = r.Reason
	m.RequestedBy = r.RequestedBy
	m.ApprovedBy = r.ApprovedBy
	m.ApprovedAt = r.ApprovedAt
	m.CompletedAt = r.CompletedAt
	m.DispatchID = r.DispatchID
}

// RebalancingModelFromDomain creates a new persistence model from a domain Rebalancing entity.
func RebalancingModelFromDomain(r *rebalancing.Rebalancing) *RebalancingModel {
	m := &RebalancingModel{}
	m.FromDomain(r)
	return m
}

// DispatchModel is the persistence model for the Dispatch aggregate root.
type DispatchModel struct {
	AggregateModel
	SourceStoreID      uuid.UUID `gorm:"type:uuid;not null;index"`
	DestinationStoreID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status             string    `gorm:"type:varchar(20);not null;index"`
	DispatchDate       time.Time `gorm:"not null"`
	CreatedBy          uuid.UUID `gorm:"type:uuid;not null"`
	Notes              string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DispatchModel) TableName() string {
	return "dispatches"
}

// ToDomain converts the persistence model to a domain Dispatch entity.
func (m *DispatchModel) ToDomain() *rebalancing.Dispatch {
	return &rebalancing.Dispatch{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		SourceStoreID:      m.SourceStoreID,
		DestinationStoreID: m.DestinationStoreID,
		Status:             rebalancing.DispatchStatus(m.Status),
		DispatchDate:       m.DispatchDate,
		CreatedBy:          m.CreatedBy,
		Notes:              m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Dispatch entity.
func (m *DispatchModel) FromDomain(d *rebalancing.Dispatch) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.SourceStoreID = d.SourceStoreID
	m.DestinationStoreID = d.DestinationStoreID
	m.Status = d.Status.String()
	m.DispatchDate = d.DispatchDate
	m.CreatedBy = d.CreatedBy
	m.Notes = d.Notes
}

// DispatchModelFromDomain creates a new persistence model from a domain Dispatch entity.
func DispatchModelFromDomain(d *rebalancing.Dispatch) *DispatchModel {
	m := &DispatchModel{}
	m.FromDomain(d)
	return m
}
