package entity

import "time"

// Tipos de conexión soportados.
const (
	ConnectionDHCP   = "DHCP"
	ConnectionStatic = "STATIC"
	ConnectionPPPoE  = "PPPoE"
)

// Customer representa un abonado del ISP. El ID (UUID) es el identificador
// externo estable; SecretID guarda el ".id" del secret PPP en el router.
type Customer struct {
	ID                  string
	Name                string
	Phone               string // único entre clientes activos
	Email               string // opcional, único cuando existe
	Address             string
	NID                 string // documento de identidad
	PackageID           string // referencia al plan, puede quedar vacía
	Package             *Package
	ConnectionStartDate *time.Time
	IsActive            bool // debe reflejar el estado real de la sesión en el router
	IsFree              bool // exento de facturación: nunca se le crean pagos

	// Credenciales de red
	SecretID       string
	Username       string
	Password       string
	MACAddress     string
	IPAddress      string
	ConnectionType string // DHCP, STATIC, PPPoE

	Status      string
	EntryByID   string
	UpdatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidConnectionType verifica que el tipo de conexión sea uno de los soportados.
func IsValidConnectionType(s string) bool {
	switch s {
	case ConnectionDHCP, ConnectionStatic, ConnectionPPPoE:
		return true
	}
	return false
}
