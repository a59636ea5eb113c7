package repository

import (
	"context"

	"github.com/jhoicas/netbill-api/internal/domain/entity"
)

// PackageRepository define el puerto de persistencia para Package.
// No hay Delete físico: mientras existan clientes referenciando el plan
// solo se cambia el status.
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByID(ctx context.Context, id string) (*entity.Package, error)
	GetBySpeed(ctx context.Context, speedMbps int) (*entity.Package, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
	SetStatus(ctx context.Context, id, status string) error
}
