package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePackageRequest body para POST /api/packages.
type CreatePackageRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SpeedMbps   int             `json:"speed_mbps"`
	Price       decimal.Decimal `json:"price"`
}

// UpdatePackageRequest body para PUT /api/packages/:id. Campos en nil no se tocan.
type UpdatePackageRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	SpeedMbps   *int             `json:"speed_mbps,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

// PackageResponse plan en respuestas.
type PackageResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SpeedMbps   int             `json:"speed_mbps"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
