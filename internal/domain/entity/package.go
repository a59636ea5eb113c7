package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados comunes de registro (soft delete por bandera, nunca borrado físico
// mientras existan clientes referenciando el plan).
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Package representa un plan de internet contratable (velocidad + precio mensual).
type Package struct {
	ID          string
	Name        string
	Description string
	SpeedMbps   int             // velocidad en Mbps, siempre positiva
	Price       decimal.Decimal // precio mensual
	Status      string          // ACTIVE, INACTIVE
	EntryByID   string
	UpdatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
