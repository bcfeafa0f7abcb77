package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType tipo de plan contratable en una sede.
type ServiceType string

const (
	ServiceInternet   ServiceType = "internet"
	ServiceTelevision ServiceType = "television"
)

// Valid indica si el tipo de servicio es conocido.
func (t ServiceType) Valid() bool {
	return t == ServiceInternet || t == ServiceTelevision
}

// ServicePlan plan de internet o televisión.
// Price es nil cuando el registro no tiene precio cargado; nunca se asume cero.
type ServicePlan struct {
	ID           string
	Name         string
	Type         ServiceType
	Price        *decimal.Decimal
	AppliesVAT   bool
	VATPercent   decimal.Decimal
	SpeedDown    int // Mbps, solo internet
	SpeedUp      int // Mbps, solo internet
	ChannelCount int // solo televisión
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
