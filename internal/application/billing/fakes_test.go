package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de facturación
// ──────────────────────────────────────────────────────────────────────────────

type setActiveCall struct {
	ID     string
	Active bool
}

type fakeCustomerRepo struct {
	customers []*entity.Customer

	setActiveCalls []setActiveCall
	bulks          [][]*entity.Customer
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers = append(r.customers, c)
	return nil
}

func (r *fakeCustomerRepo) BulkCreate(_ context.Context, customers []*entity.Customer) error {
	r.bulks = append(r.bulks, customers)
	r.customers = append(r.customers, customers...)
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByUsername(_ context.Context, username string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Username == username {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) ExistsEmail(_ context.Context, email string) (bool, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ repository.ListCustomerFilter, _, _ int) ([]*entity.Customer, error) {
	return r.customers, nil
}

func (r *fakeCustomerRepo) ListBillable(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if c.IsActive && !c.IsFree && c.Package != nil && c.Package.Price.IsPositive() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) ListUsernames(_ context.Context) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, c := range r.customers {
		if c.Username != "" {
			out[c.Username] = true
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	for i, existing := range r.customers {
		if existing.ID == c.ID {
			r.customers[i] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeCustomerRepo) SetActive(_ context.Context, id string, active bool) error {
	r.setActiveCalls = append(r.setActiveCalls, setActiveCall{ID: id, Active: active})
	for _, c := range r.customers {
		if c.ID == id {
			c.IsActive = active
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakePaymentRepo struct {
	payments []*entity.Payment

	created []*entity.Payment
	updated []*entity.Payment
	bulks   [][]*entity.Payment
}

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.payments = append(r.payments, p)
	r.created = append(r.created, p)
	return nil
}

func (r *fakePaymentRepo) BulkCreate(_ context.Context, payments []*entity.Payment) error {
	r.bulks = append(r.bulks, payments)
	r.payments = append(r.payments, payments...)
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) GetByCustomerAndMonth(_ context.Context, customerID, billingMonth string) (*entity.Payment, error) {
	var found []*entity.Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID && p.BillingMonth == billingMonth {
			found = append(found, p)
		}
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

func (r *fakePaymentRepo) CustomerIDsWithMonth(_ context.Context, billingMonth string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, p := range r.payments {
		if p.BillingMonth == billingMonth {
			out[p.CustomerID] = true
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) List(_ context.Context, _ repository.ListPaymentFilter, _, _ int) ([]*entity.Payment, error) {
	return r.payments, nil
}

func (r *fakePaymentRepo) ListByCustomer(_ context.Context, customerID string, _, _ int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, p *entity.Payment) error {
	r.updated = append(r.updated, p)
	for i, existing := range r.payments {
		if existing.ID == p.ID {
			r.payments[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakePaymentRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.payments {
		if p.ID == id {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakePaymentRepo) RealignBillAmounts(_ context.Context) (int64, error) {
	return 0, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes.
type fakeTxRunner struct {
	payments  *fakePaymentRepo
	customers *fakeCustomerRepo
}

func (r *fakeTxRunner) RunBilling(_ context.Context, fn func(
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return fn(r.payments, r.customers)
}

type toggleCall struct {
	Username string
	Enabled  bool
}

// fakeToggler adapter de router programable.
type fakeToggler struct {
	ok    bool
	msg   string
	calls []toggleCall
}

func (t *fakeToggler) SetSubscriberEnabled(_ context.Context, username string, enabled bool) (bool, string) {
	t.calls = append(t.calls, toggleCall{Username: username, Enabled: enabled})
	return t.ok, t.msg
}

type fakePackageRepo struct {
	packages []*entity.Package
	created  []*entity.Package
}

var _ repository.PackageRepository = (*fakePackageRepo)(nil)

func (r *fakePackageRepo) Create(_ context.Context, p *entity.Package) error {
	r.packages = append(r.packages, p)
	r.created = append(r.created, p)
	return nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id string) (*entity.Package, error) {
	for _, p := range r.packages {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePackageRepo) GetBySpeed(_ context.Context, speedMbps int) (*entity.Package, error) {
	for _, p := range r.packages {
		if p.SpeedMbps == speedMbps && p.Status == entity.StatusActive {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePackageRepo) List(_ context.Context, _, _ int) ([]*entity.Package, error) {
	return r.packages, nil
}

func (r *fakePackageRepo) Update(_ context.Context, p *entity.Package) error {
	for i, existing := range r.packages {
		if existing.ID == p.ID {
			r.packages[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakePackageRepo) SetStatus(_ context.Context, id, status string) error {
	for _, p := range r.packages {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeSource fuente de suscriptores programable.
type fakeSource struct {
	subs []Subscriber
	err  error
}

func (s *fakeSource) ListSubscribers(_ context.Context) ([]Subscriber, error) {
	return s.subs, s.err
}
