package models

import (
	"github.com/retail/backoffice/internal/domain/store"
)

// StoreModel is the persistence model for the Store aggregate root.
type StoreModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(200);not null"`
	Address     string `gorm:"type:varchar(500)"`
	IsWarehouse bool   `gorm:"not null;default:false"`
	IsOnline    bool   `gorm:"not null;default:false;index"`
	Active      bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store entity.
func (m *StoreModel) ToDomain() *store.Store {
	return &store.Store{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		IsWarehouse:       m.IsWarehouse,
		IsOnline:          m.IsOnline,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Store entity.
func (m *StoreModel) FromDomain(s *store.Store) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Address = s.Address
	m.IsWarehouse = s.IsWarehouse
	m.IsOnline = s.IsOnline
	m.Active = s.Active
}

// StoreModelFromDomain creates a new persistence model from a domain Store entity.
func StoreModelFromDomain(s *store.Store) *StoreModel {
	m := &StoreModel{}
	m.FromDomain(s)
	return m
}
