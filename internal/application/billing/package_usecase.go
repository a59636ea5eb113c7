package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

// PackageUseCase administración de planes de internet.
type PackageUseCase struct {
	repo repository.PackageRepository
}

// NewPackageUseCase construye el caso de uso.
func NewPackageUseCase(repo repository.PackageRepository) *PackageUseCase {
	return &PackageUseCase{repo: repo}
}

// Create registra un plan. Velocidad positiva, precio no negativo.
func (uc *PackageUseCase) Create(ctx context.Context, in dto.CreatePackageRequest, actorID string) (*dto.PackageResponse, error) {
	if in.Name == "" || in.SpeedMbps <= 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	pkg := &entity.Package{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		SpeedMbps:   in.SpeedMbps,
		Price:       in.Price,
		Status:      entity.StatusActive,
		EntryByID:   actorID,
		UpdatedByID: actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	out := ToPackageResponse(pkg)
	return &out, nil
}

// GetByID devuelve un plan.
func (uc *PackageUseCase) GetByID(ctx context.Context, id string) (*dto.PackageResponse, error) {
	pkg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	out := ToPackageResponse(pkg)
	return &out, nil
}

// List lista los planes.
func (uc *PackageUseCase) List(ctx context.Context, limit, offset int) ([]dto.PackageResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackageResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPackageResponse(p))
	}
	return out, nil
}

// Update edición administrativa del plan. El precio nuevo aplica al próximo
// cobro de cada cliente (el snapshot se toma al facturar/cobrar).
func (uc *PackageUseCase) Update(ctx context.Context, id string, in dto.UpdatePackageRequest, actorID string) (*dto.PackageResponse, error) {
	pkg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		pkg.Name = *in.Name
	}
	if in.Description != nil {
		pkg.Description = *in.Description
	}
	if in.SpeedMbps != nil {
		if *in.SpeedMbps <= 0 {
			return nil, domain.ErrInvalidInput
		}
		pkg.SpeedMbps = *in.SpeedMbps
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		pkg.Price = *in.Price
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, domain.ErrInvalidInput
		}
		pkg.Status = *in.Status
	}
	pkg.UpdatedByID = actorID
	pkg.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	out := ToPackageResponse(pkg)
	return &out, nil
}

// Deactivate baja lógica del plan (los clientes que lo referencian no se tocan).
func (uc *PackageUseCase) Deactivate(ctx context.Context, id string) error {
	pkg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pkg == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetStatus(ctx, id, entity.StatusInactive)
}

// ToPackageResponse convierte la entidad a su DTO.
func ToPackageResponse(p *entity.Package) dto.PackageResponse {
	return dto.PackageResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SpeedMbps:   p.SpeedMbps,
		Price:       p.Price,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
