package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

// CustomerUseCase altas, ediciones y consultas de clientes. Las bajas son
// solo de status (nunca borrado físico); is_active no se toca por acá sino
// vía StatusToggleUseCase o el flip por pago.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	packageRepo repository.PackageRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, packageRepo repository.PackageRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, packageRepo: packageRepo}
}

// Create registra un cliente. Teléfono único; email único cuando viene.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest, actorID string) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ConnectionType != "" && !entity.IsValidConnectionType(in.ConnectionType) {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByPhone(ctx, in.Phone); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Email != "" {
		if exists, _ := uc.repo.ExistsEmail(ctx, in.Email); exists {
			return nil, domain.ErrDuplicate
		}
	}
	if in.PackageID != "" {
		pkg, err := uc.packageRepo.GetByID(ctx, in.PackageID)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			return nil, domain.ErrNotFound
		}
	}

	connType := in.ConnectionType
	if connType == "" {
		connType = entity.ConnectionDHCP
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		Phone:               in.Phone,
		Email:               in.Email,
		Address:             in.Address,
		NID:                 in.NID,
		PackageID:           in.PackageID,
		ConnectionStartDate: in.ConnectionStartDate,
		IsActive:            true,
		IsFree:              in.IsFree,
		Username:            in.Username,
		Password:            in.Password,
		MACAddress:          in.MACAddress,
		IPAddress:           in.IPAddress,
		ConnectionType:      connType,
		Status:              entity.StatusActive,
		EntryByID:           actorID,
		UpdatedByID:         actorID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	out := ToCustomerResponse(customer)
	return &out, nil
}

// GetByID devuelve el cliente con su plan cargado.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	out := ToCustomerResponse(customer)
	return &out, nil
}

// List lista clientes con los filtros del panel.
func (uc *CustomerUseCase) List(ctx context.Context, filter repository.ListCustomerFilter, limit, offset int) ([]dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCustomerResponse(c))
	}
	return out, nil
}

// Update edición administrativa de campos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest, actorID string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	if in.Phone != nil && *in.Phone != customer.Phone {
		if existing, _ := uc.repo.GetByPhone(ctx, *in.Phone); existing != nil {
			return nil, domain.ErrDuplicate
		}
		customer.Phone = *in.Phone
	}
	if in.Email != nil && *in.Email != customer.Email {
		if *in.Email != "" {
			if exists, _ := uc.repo.ExistsEmail(ctx, *in.Email); exists {
				return nil, domain.ErrDuplicate
			}
		}
		customer.Email = *in.Email
	}
	if in.PackageID != nil && *in.PackageID != customer.PackageID {
		if *in.PackageID != "" {
			pkg, err := uc.packageRepo.GetByID(ctx, *in.PackageID)
			if err != nil {
				return nil, err
			}
			if pkg == nil {
				return nil, domain.ErrNotFound
			}
		}
		customer.PackageID = *in.PackageID
		customer.Package = nil
	}
	if in.ConnectionType != nil {
		if !entity.IsValidConnectionType(*in.ConnectionType) {
			return nil, domain.ErrInvalidInput
		}
		customer.ConnectionType = *in.ConnectionType
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.NID != nil {
		customer.NID = *in.NID
	}
	if in.IsFree != nil {
		customer.IsFree = *in.IsFree
	}
	if in.Username != nil {
		customer.Username = *in.Username
	}
	if in.Password != nil {
		customer.Password = *in.Password
	}
	if in.MACAddress != nil {
		customer.MACAddress = *in.MACAddress
	}
	if in.IPAddress != nil {
		customer.IPAddress = *in.IPAddress
	}
	customer.UpdatedByID = actorID
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	// Releer para devolver el plan actualizado.
	updated, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToCustomerResponse(updated)
	return &out, nil
}

// Deactivate baja lógica: marca el registro INACTIVE sin borrarlo.
func (uc *CustomerUseCase) Deactivate(ctx context.Context, id string, actorID string) error {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	customer.Status = entity.StatusInactive
	customer.UpdatedByID = actorID
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return fmt.Errorf("desactivar cliente: %w", err)
	}
	return nil
}

// ToCustomerResponse convierte la entidad a su DTO (la contraseña jamás sale).
func ToCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	out := dto.CustomerResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Phone:               c.Phone,
		Email:               c.Email,
		Address:             c.Address,
		NID:                 c.NID,
		ConnectionStartDate: c.ConnectionStartDate,
		IsActive:            c.IsActive,
		IsFree:              c.IsFree,
		Username:            c.Username,
		MACAddress:          c.MACAddress,
		IPAddress:           c.IPAddress,
		ConnectionType:      c.ConnectionType,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
	if c.Package != nil {
		pkg := ToPackageResponse(c.Package)
		out.Package = &pkg
	}
	return out
}
