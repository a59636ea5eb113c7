package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

var customerColumns = []string{
	"id", "name", "phone", "email", "address", "nid", "package_id",
	"connection_start_date", "is_active", "is_free", "secret_id", "username",
	"password", "mac_address", "ip_address", "connection_type", "status",
	"entry_by_id", "updated_by_id", "created_at", "updated_at",
}

// selección con el plan precargado, como un select_related. LEFT JOIN porque
// los suscriptores importados con un profile irreconocible no tienen plan.
const customerWithPackageSelect = `
	SELECT c.id, c.name, c.phone, c.email, c.address, c.nid, c.package_id,
	       c.connection_start_date, c.is_active, c.is_free, c.secret_id, c.username,
	       c.password, c.mac_address, c.ip_address, c.connection_type, c.status,
	       c.entry_by_id, c.updated_by_id, c.created_at, c.updated_at,
	       p.id, p.name, p.description, p.speed_mbps, p.price, p.status,
	       p.entry_by_id, p.updated_by_id, p.created_at, p.updated_at
	FROM customers c
	LEFT JOIN packages p ON p.id = c.package_id`

func scanCustomerWithPackage(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var p entity.Package
	var pkgID *string
	var pName, pDesc, pStatus, pEntryBy, pUpdatedBy *string
	var pSpeed *int
	var pPrice *decimal.Decimal
	var pCreated, pUpdated *time.Time
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.NID, &c.PackageID,
		&c.ConnectionStartDate, &c.IsActive, &c.IsFree, &c.SecretID, &c.Username,
		&c.Password, &c.MACAddress, &c.IPAddress, &c.ConnectionType, &c.Status,
		&c.EntryByID, &c.UpdatedByID, &c.CreatedAt, &c.UpdatedAt,
		&pkgID, &pName, &pDesc, &pSpeed, &pPrice, &pStatus,
		&pEntryBy, &pUpdatedBy, &pCreated, &pUpdated,
	)
	if err != nil {
		return nil, err
	}
	if pkgID != nil {
		p.ID = *pkgID
		if pName != nil {
			p.Name = *pName
		}
		if pDesc != nil {
			p.Description = *pDesc
		}
		if pSpeed != nil {
			p.SpeedMbps = *pSpeed
		}
		if pPrice != nil {
			p.Price = *pPrice
		}
		if pStatus != nil {
			p.Status = *pStatus
		}
		if pEntryBy != nil {
			p.EntryByID = *pEntryBy
		}
		if pUpdatedBy != nil {
			p.UpdatedByID = *pUpdatedBy
		}
		if pCreated != nil {
			p.CreatedAt = *pCreated
		}
		if pUpdated != nil {
			p.UpdatedAt = *pUpdated
		}
		c.Package = &p
	}
	return &c, nil
}

func customerRow(c *entity.Customer) []any {
	return []any{
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.NID, c.PackageID,
		c.ConnectionStartDate, c.IsActive, c.IsFree, c.SecretID, c.Username,
		c.Password, c.MACAddress, c.IPAddress, c.ConnectionType, c.Status,
		c.EntryByID, c.UpdatedByID, c.CreatedAt, c.UpdatedAt,
	}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	placeholders := make([]string, len(customerColumns))
	for i := range customerColumns {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	query := `INSERT INTO customers (` + strings.Join(customerColumns, ", ") + `)
		VALUES (` + strings.Join(placeholders, ", ") + `)`
	_, err := r.q.Exec(ctx, query, customerRow(c)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// BulkCreate inserta clientes en lote vía COPY (importación desde el router).
func (r *CustomerRepo) BulkCreate(ctx context.Context, customers []*entity.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, customerRow(c))
	}
	_, err := r.q.CopyFrom(ctx, pgx.Identifier{"customers"}, customerColumns, pgx.CopyFromRows(rows))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("bulk insert customers: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente con su plan. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := customerWithPackageSelect + ` WHERE c.id = $1`
	c, err := scanCustomerWithPackage(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByUsername obtiene un cliente por su username de red.
func (r *CustomerRepo) GetByUsername(ctx context.Context, username string) (*entity.Customer, error) {
	query := customerWithPackageSelect + ` WHERE c.username = $1`
	c, err := scanCustomerWithPackage(r.q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by username: %w", err)
	}
	return c, nil
}

// GetByPhone obtiene un cliente por teléfono.
func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	query := customerWithPackageSelect + ` WHERE c.phone = $1`
	c, err := scanCustomerWithPackage(r.q.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by phone: %w", err)
	}
	return c, nil
}

// ExistsEmail indica si ya hay un cliente con ese email.
func (r *CustomerRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists customer email: %w", err)
	}
	return exists, nil
}

// List lista clientes con filtros opcionales y paginación.
func (r *CustomerRepo) List(ctx context.Context, filter repository.ListCustomerFilter, limit, offset int) ([]*entity.Customer, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Name != "" {
		conds = append(conds, "c.name ILIKE "+arg("%"+filter.Name+"%"))
	}
	if filter.Username != "" {
		conds = append(conds, "c.username ILIKE "+arg("%"+filter.Username+"%"))
	}
	if filter.Phone != "" {
		conds = append(conds, "c.phone = "+arg(filter.Phone))
	}
	if filter.PackageID != "" {
		conds = append(conds, "c.package_id = "+arg(filter.PackageID))
	}
	if filter.IsActive != nil {
		conds = append(conds, "c.is_active = "+arg(*filter.IsActive))
	}
	if filter.IsFree != nil {
		conds = append(conds, "c.is_free = "+arg(*filter.IsFree))
	}

	query := customerWithPackageSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomerWithPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListBillable devuelve clientes activos, no gratuitos y con plan de precio > 0.
func (r *CustomerRepo) ListBillable(ctx context.Context) ([]*entity.Customer, error) {
	query := customerWithPackageSelect + `
		WHERE c.is_active = TRUE AND c.is_free = FALSE AND p.price > 0
		ORDER BY c.name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list billable customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomerWithPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListUsernames devuelve el conjunto de usernames registrados (dedupe de importación).
func (r *CustomerRepo) ListUsernames(ctx context.Context) (map[string]bool, error) {
	rows, err := r.q.Query(ctx, `SELECT username FROM customers WHERE username <> ''`)
	if err != nil {
		return nil, fmt.Errorf("list customer usernames: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("scan username: %w", err)
		}
		out[username] = true
	}
	return out, rows.Err()
}

// Update actualiza un cliente existente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, email = $4, address = $5, nid = $6, package_id = $7,
		    connection_start_date = $8, is_active = $9, is_free = $10, secret_id = $11,
		    username = $12, password = $13, mac_address = $14, ip_address = $15,
		    connection_type = $16, status = $17, updated_by_id = $18, updated_at = $19
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.NID, c.PackageID,
		c.ConnectionStartDate, c.IsActive, c.IsFree, c.SecretID, c.Username,
		c.Password, c.MACAddress, c.IPAddress, c.ConnectionType, c.Status,
		c.UpdatedByID, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive persiste únicamente la bandera is_active.
func (r *CustomerRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET is_active = $2, updated_at = $3 WHERE id = $1`,
		id, active, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set customer active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
