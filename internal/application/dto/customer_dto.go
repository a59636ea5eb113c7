package dto

import "time"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email,omitempty"`
	Address             string     `json:"address,omitempty"`
	NID                 string     `json:"nid,omitempty"`
	PackageID           string     `json:"package_id,omitempty"`
	ConnectionStartDate *time.Time `json:"connection_start_date,omitempty"`
	IsFree              bool       `json:"is_free"`
	Username            string     `json:"username,omitempty"`
	Password            string     `json:"password,omitempty"`
	MACAddress          string     `json:"mac_address,omitempty"`
	IPAddress           string     `json:"ip_address,omitempty"`
	ConnectionType      string     `json:"connection_type,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id. Campos en nil no se tocan.
// is_active NO se edita por acá: usar el toggle explícito de estado.
type UpdateCustomerRequest struct {
	Name           *string `json:"name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	Address        *string `json:"address,omitempty"`
	NID            *string `json:"nid,omitempty"`
	PackageID      *string `json:"package_id,omitempty"`
	IsFree         *bool   `json:"is_free,omitempty"`
	Username       *string `json:"username,omitempty"`
	Password       *string `json:"password,omitempty"`
	MACAddress     *string `json:"mac_address,omitempty"`
	IPAddress      *string `json:"ip_address,omitempty"`
	ConnectionType *string `json:"connection_type,omitempty"`
}

// StatusToggleRequest body para POST /api/customers/toggle-status.
type StatusToggleRequest struct {
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// StatusToggleResponse resultado del toggle manual.
type StatusToggleResponse struct {
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
	Message  string `json:"message,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Phone               string           `json:"phone"`
	Email               string           `json:"email,omitempty"`
	Address             string           `json:"address,omitempty"`
	NID                 string           `json:"nid,omitempty"`
	Package             *PackageResponse `json:"package,omitempty"`
	ConnectionStartDate *time.Time       `json:"connection_start_date,omitempty"`
	IsActive            bool             `json:"is_active"`
	IsFree              bool             `json:"is_free"`
	Username            string           `json:"username,omitempty"`
	MACAddress          string           `json:"mac_address,omitempty"`
	IPAddress           string           `json:"ip_address,omitempty"`
	ConnectionType      string           `json:"connection_type,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// ImportResult resumen de la importación de suscriptores desde el router.
type ImportResult struct {
	Fetched  int `json:"fetched"`
	Created  int `json:"created"`
	Skipped  int `json:"skipped"`
	Packages int `json:"packages_created"`
}
