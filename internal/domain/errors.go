package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrFreeCustomer      = errors.New("el cliente tiene plan gratuito, no se le registran pagos")
	ErrAlreadyPaid       = errors.New("el pago de ese mes ya fue liquidado")
	ErrIntegrityConflict = errors.New("existen múltiples pagos para el mismo mes, requiere intervención manual")
	ErrRouterUnavailable = errors.New("el router no aplicó el cambio de conectividad")
)
