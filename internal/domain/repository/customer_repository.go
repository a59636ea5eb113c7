package repository

import (
	"context"

	"github.com/jhoicas/netbill-api/internal/domain/entity"
)

// ListCustomerFilter filtros opcionales para el listado de clientes.
// Los punteros distinguen "sin filtro" de "filtrar por false".
type ListCustomerFilter struct {
	Name      string // coincidencia parcial, case-insensitive
	Username  string // coincidencia parcial
	Phone     string // coincidencia exacta
	PackageID string
	IsActive  *bool
	IsFree    *bool
}

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID y List cargan el Package asociado (JOIN), igual que un select_related.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// BulkCreate inserta clientes en lote (importación desde el router).
	BulkCreate(ctx context.Context, customers []*entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByUsername(ctx context.Context, username string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListCustomerFilter, limit, offset int) ([]*entity.Customer, error)
	// ListBillable devuelve clientes activos, no gratuitos y con plan de precio > 0.
	ListBillable(ctx context.Context) ([]*entity.Customer, error)
	// ListUsernames devuelve el conjunto de usernames ya registrados (dedupe de importación).
	ListUsernames(ctx context.Context) (map[string]bool, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// SetActive persiste únicamente la bandera is_active.
	SetActive(ctx context.Context, id string, active bool) error
}
