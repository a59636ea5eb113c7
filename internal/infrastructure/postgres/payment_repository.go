package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

var paymentColumns = []string{
	"id", "customer_id", "bill_amount", "amount", "billing_month",
	"payment_method", "paid", "transaction_id", "payment_date", "note",
	"status", "entry_by_id", "updated_by_id", "created_at", "updated_at",
}

// selección con el cliente y el colector precargados para listados.
const paymentWithRelationsSelect = `
	SELECT py.id, py.customer_id, py.bill_amount, py.amount, py.billing_month,
	       py.payment_method, py.paid, py.transaction_id, py.payment_date, py.note,
	       py.status, py.entry_by_id, py.updated_by_id, py.created_at, py.updated_at,
	       c.name, c.phone, c.username,
	       u.first_name, u.last_name
	FROM payments py
	JOIN customers c ON c.id = py.customer_id
	LEFT JOIN users u ON u.id = py.entry_by_id`

func scanPaymentWithRelations(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var cust entity.Customer
	var firstName, lastName *string
	err := row.Scan(
		&p.ID, &p.CustomerID, &p.BillAmount, &p.Amount, &p.BillingMonth,
		&p.PaymentMethod, &p.Paid, &p.TransactionID, &p.PaymentDate, &p.Note,
		&p.Status, &p.EntryByID, &p.UpdatedByID, &p.CreatedAt, &p.UpdatedAt,
		&cust.Name, &cust.Phone, &cust.Username,
		&firstName, &lastName,
	)
	if err != nil {
		return nil, err
	}
	cust.ID = p.CustomerID
	p.Customer = &cust
	if firstName != nil || lastName != nil {
		collector := &entity.User{ID: p.EntryByID}
		if firstName != nil {
			collector.FirstName = *firstName
		}
		if lastName != nil {
			collector.LastName = *lastName
		}
		p.EntryBy = collector
	}
	return &p, nil
}

func paymentRow(p *entity.Payment) []any {
	return []any{
		p.ID, p.CustomerID, p.BillAmount, p.Amount, p.BillingMonth,
		p.PaymentMethod, p.Paid, p.TransactionID, p.PaymentDate, p.Note,
		p.Status, p.EntryByID, p.UpdatedByID, p.CreatedAt, p.UpdatedAt,
	}
}

// Create persiste un nuevo pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	placeholders := make([]string, len(paymentColumns))
	for i := range paymentColumns {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	query := `INSERT INTO payments (` + strings.Join(paymentColumns, ", ") + `)
		VALUES (` + strings.Join(placeholders, ", ") + `)`
	_, err := r.q.Exec(ctx, query, paymentRow(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// BulkCreate inserta pagos placeholder en un solo lote atómico vía COPY.
func (r *PaymentRepo) BulkCreate(ctx context.Context, payments []*entity.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, paymentRow(p))
	}
	_, err := r.q.CopyFrom(ctx, pgx.Identifier{"payments"}, paymentColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("bulk insert payments: %w", err)
	}
	return nil
}

// GetByID obtiene un pago con cliente y colector. Devuelve (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := paymentWithRelationsSelect + ` WHERE py.id = $1`
	p, err := scanPaymentWithRelations(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// GetByCustomerAndMonth devuelve el pago único del par (cliente, mes).
// Pide dos filas a propósito: una segunda fila delata datos corruptos y se
// reporta como domain.ErrIntegrityConflict en vez de elegir una en silencio.
func (r *PaymentRepo) GetByCustomerAndMonth(ctx context.Context, customerID, billingMonth string) (*entity.Payment, error) {
	query := paymentWithRelationsSelect + `
		WHERE py.customer_id = $1 AND py.billing_month = $2
		LIMIT 2`
	rows, err := r.q.Query(ctx, query, customerID, billingMonth)
	if err != nil {
		return nil, fmt.Errorf("get payment by customer and month: %w", err)
	}
	defer rows.Close()

	var found []*entity.Payment
	for rows.Next() {
		p, err := scanPaymentWithRelations(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		found = append(found, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: cliente %s tiene más de un pago en %s",
			domain.ErrIntegrityConflict, customerID, billingMonth)
	}
}

// CustomerIDsWithMonth devuelve los IDs de cliente que ya tienen pago en el período.
func (r *PaymentRepo) CustomerIDsWithMonth(ctx context.Context, billingMonth string) (map[string]bool, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT customer_id FROM payments WHERE billing_month = $1`, billingMonth)
	if err != nil {
		return nil, fmt.Errorf("list billed customer ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan customer id: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

// List lista pagos con filtros opcionales y paginación.
func (r *PaymentRepo) List(ctx context.Context, filter repository.ListPaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Paid != nil {
		conds = append(conds, "py.paid = "+arg(*filter.Paid))
	}
	if filter.BillingMonth != "" {
		conds = append(conds, "py.billing_month = "+arg(filter.BillingMonth))
	}
	if filter.CustomerName != "" {
		conds = append(conds, "c.name ILIKE "+arg("%"+filter.CustomerName+"%"))
	}
	if filter.CustomerPhone != "" {
		conds = append(conds, "c.phone = "+arg(filter.CustomerPhone))
	}
	if filter.CollectedBy != "" {
		conds = append(conds, "(u.first_name || ' ' || u.last_name) ILIKE "+arg("%"+filter.CollectedBy+"%"))
	}

	query := paymentWithRelationsSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY py.created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		p, err := scanPaymentWithRelations(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListByCustomer lista los pagos de un cliente, los más recientes primero.
func (r *PaymentRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Payment, error) {
	query := paymentWithRelationsSelect + `
		WHERE py.customer_id = $1
		ORDER BY py.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments by customer: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		p, err := scanPaymentWithRelations(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update actualiza un pago existente.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE payments
		SET bill_amount = $2, amount = $3, billing_month = $4, payment_method = $5,
		    paid = $6, transaction_id = $7, payment_date = $8, note = $9, status = $10,
		    updated_by_id = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.BillAmount, p.Amount, p.BillingMonth, p.PaymentMethod,
		p.Paid, p.TransactionID, p.PaymentDate, p.Note, p.Status,
		p.UpdatedByID, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un pago (corrección administrativa).
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RealignBillAmounts reescribe bill_amount de todos los pagos con el precio
// actual del plan del cliente. Devuelve la cantidad de filas afectadas.
func (r *PaymentRepo) RealignBillAmounts(ctx context.Context) (int64, error) {
	query := `
		UPDATE payments py
		SET bill_amount = pk.price
		FROM customers c
		JOIN packages pk ON pk.id = c.package_id
		WHERE py.customer_id = c.id AND py.bill_amount <> pk.price`
	tag, err := r.q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("realign bill amounts: %w", err)
	}
	return tag.RowsAffected(), nil
}
