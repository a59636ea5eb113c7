package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo implementación de PackageRepository (usable con pool o tx).
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

const packageColumns = `id, name, description, speed_mbps, price, status, entry_by_id, updated_by_id, created_at, updated_at`

func scanPackage(row pgx.Row) (*entity.Package, error) {
	var p entity.Package
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.SpeedMbps, &p.Price, &p.Status,
		&p.EntryByID, &p.UpdatedByID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo plan.
func (r *PackageRepo) Create(ctx context.Context, p *entity.Package) error {
	query := `
		INSERT INTO packages (` + packageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.SpeedMbps, p.Price, p.Status,
		p.EntryByID, p.UpdatedByID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID. Devuelve (nil, nil) si no existe.
func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	p, err := scanPackage(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return p, nil
}

// GetBySpeed obtiene el plan activo con la velocidad dada (la importación
// resuelve planes por el prefijo numérico del profile del router).
func (r *PackageRepo) GetBySpeed(ctx context.Context, speedMbps int) (*entity.Package, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages WHERE speed_mbps = $1 AND status = $2
		ORDER BY created_at ASC LIMIT 1`
	p, err := scanPackage(r.q.QueryRow(ctx, query, speedMbps, entity.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package by speed: %w", err)
	}
	return p, nil
}

// List lista planes con paginación, los más recientes primero.
func (r *PackageRepo) List(ctx context.Context, limit, offset int) ([]*entity.Package, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var out []*entity.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update actualiza un plan existente.
func (r *PackageRepo) Update(ctx context.Context, p *entity.Package) error {
	query := `
		UPDATE packages
		SET name = $2, description = $3, speed_mbps = $4, price = $5, status = $6,
		    updated_by_id = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.SpeedMbps, p.Price, p.Status,
		p.UpdatedByID, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus cambia el status del plan (no hay borrado físico: los pagos
// históricos referencian el plan).
func (r *PackageRepo) SetStatus(ctx context.Context, id, status string) error {
	query := `UPDATE packages SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("set package status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
