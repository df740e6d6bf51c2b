package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria: cada fila guarda su organización y toda lectura la
// filtra igual que los repositorios de Postgres.
// ──────────────────────────────────────────────────────────────────────────────

const (
	orgA  = "00000000-0000-0000-0000-00000000000a"
	orgB  = "00000000-0000-0000-0000-00000000000b"
	userA = "00000000-0000-0000-0000-0000000000a1"
)

// scopeFor emite un Scope como lo haría el Gate para un usuario autenticado.
func scopeFor(t *testing.T, org, user string) tenant.Scope {
	t.Helper()
	s, err := tenant.NewGate(nil).Authorize(
		tenant.Context{UserID: user, OrganizationID: org, Role: rbac.RoleSuperAdmin},
		nil, rbac.DashboardRead,
	)
	require.NoError(t, err)
	return s
}

type memTable[T any] struct {
	mu   sync.Mutex
	org  map[string]string
	rows map[string]*T
}

func newTable[T any]() *memTable[T] {
	return &memTable[T]{org: map[string]string{}, rows: map[string]*T{}}
}

func (m *memTable[T]) put(org, id string, v *T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.org[id] = org
	m.rows[id] = v
}

func (m *memTable[T]) get(org, id string) (*T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.org[id] != org {
		return nil, false
	}
	v, ok := m.rows[id]
	return v, ok
}

func (m *memTable[T]) all(org string) []*T {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*T
	for id, v := range m.rows {
		if m.org[id] == org {
			out = append(out, v)
		}
	}
	return out
}

func (m *memTable[T]) remove(org, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.org[id] != org {
		return false
	}
	delete(m.rows, id)
	delete(m.org, id)
	return true
}

// ── obras ──

type memProjects struct{ t *memTable[entity.Project] }

func newMemProjects() *memProjects { return &memProjects{t: newTable[entity.Project]()} }

func (r *memProjects) Create(_ context.Context, s tenant.Scope, p *entity.Project) error {
	p.OrganizationID = s.OrganizationID()
	r.t.put(s.OrganizationID(), p.ID, p)
	return nil
}

func (r *memProjects) GetByID(_ context.Context, s tenant.Scope, id string) (*entity.Project, error) {
	if p, ok := r.t.get(s.OrganizationID(), id); ok {
		return p, nil
	}
	return nil, domain.NotFound(projectNotFound)
}

func (r *memProjects) List(_ context.Context, s tenant.Scope, f repository.ProjectFilter) ([]*entity.Project, int, error) {
	var out []*entity.Project
	for _, p := range r.t.all(s.OrganizationID()) {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memProjects) ListThin(_ context.Context, s tenant.Scope, _ string) ([]repository.Option, error) {
	var out []repository.Option
	for _, p := range r.t.all(s.OrganizationID()) {
		out = append(out, repository.Option{ID: p.ID, Name: p.ProjectName})
	}
	return out, nil
}

func (r *memProjects) ExistsByName(_ context.Context, s tenant.Scope, name, excludeID string) (bool, error) {
	for _, p := range r.t.all(s.OrganizationID()) {
		if strings.EqualFold(p.ProjectName, name) && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProjects) Update(_ context.Context, s tenant.Scope, p *entity.Project) error {
	if _, ok := r.t.get(s.OrganizationID(), p.ID); !ok {
		return domain.NotFound(projectNotFound)
	}
	r.t.put(s.OrganizationID(), p.ID, p)
	return nil
}

func (r *memProjects) Delete(_ context.Context, s tenant.Scope, id string) error {
	if !r.t.remove(s.OrganizationID(), id) {
		return domain.NotFound(projectNotFound)
	}
	return nil
}

// ── proveedores ──

type memVendors struct{ t *memTable[entity.Vendor] }

func newMemVendors() *memVendors { return &memVendors{t: newTable[entity.Vendor]()} }

func (r *memVendors) Create(_ context.Context, s tenant.Scope, v *entity.Vendor) error {
	v.OrganizationID = s.OrganizationID()
	r.t.put(s.OrganizationID(), v.ID, v)
	return nil
}

func (r *memVendors) GetByID(_ context.Context, s tenant.Scope, id string) (*entity.Vendor, error) {
	if v, ok := r.t.get(s.OrganizationID(), id); ok {
		return v, nil
	}
	return nil, domain.NotFound(vendorNotFound)
}

func (r *memVendors) List(_ context.Context, s tenant.Scope, _ repository.ListFilter) ([]*entity.Vendor, int, error) {
	out := r.t.all(s.OrganizationID())
	return out, len(out), nil
}

func (r *memVendors) ListThin(_ context.Context, s tenant.Scope, _ string) ([]repository.Option, error) {
	var out []repository.Option
	for _, v := range r.t.all(s.OrganizationID()) {
		out = append(out, repository.Option{ID: v.ID, Name: v.VendorName})
	}
	return out, nil
}

func (r *memVendors) ExistsByName(_ context.Context, s tenant.Scope, name, excludeID string) (bool, error) {
	for _, v := range r.t.all(s.OrganizationID()) {
		if strings.EqualFold(v.VendorName, name) && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memVendors) Update(_ context.Context, s tenant.Scope, v *entity.Vendor) error {
	r.t.put(s.OrganizationID(), v.ID, v)
	return nil
}

func (r *memVendors) Delete(_ context.Context, s tenant.Scope, id string) error {
	if !r.t.remove(s.OrganizationID(), id) {
		return domain.NotFound(vendorNotFound)
	}
	return nil
}

// ── tipos de material ──

type memMaterialTypes struct{ t *memTable[entity.MaterialType] }

func newMemMaterialTypes() *memMaterialTypes {
	return &memMaterialTypes{t: newTable[entity.MaterialType]()}
}

func (r *memMaterialTypes) Create(_ context.Context, s tenant.Scope, mt *entity.MaterialType) error {
	mt.OrganizationID = s.OrganizationID()
	r.t.put(s.OrganizationID(), mt.ID, mt)
	return nil
}

func (r *memMaterialTypes) CreateMany(ctx context.Context, s tenant.Scope, list []*entity.MaterialType) error {
	for _, mt := range list {
		if err := r.Create(ctx, s, mt); err != nil {
			return err
		}
	}
	return nil
}

func (r *memMaterialTypes) GetByID(_ context.Context, s tenant.Scope, id string) (*entity.MaterialType, error) {
	if mt, ok := r.t.get(s.OrganizationID(), id); ok {
		return mt, nil
	}
	return nil, domain.NotFound(materialTypeNotFound)
}

func (r *memMaterialTypes) List(_ context.Context, s tenant.Scope, _ repository.ListFilter) ([]*entity.MaterialType, int, error) {
	out := r.t.all(s.OrganizationID())
	return out, len(out), nil
}

func (r *memMaterialTypes) ListThin(_ context.Context, s tenant.Scope, _ string) ([]repository.Option, error) {
	var out []repository.Option
	for _, mt := range r.t.all(s.OrganizationID()) {
		out = append(out, repository.Option{ID: mt.ID, Name: mt.Name})
	}
	return out, nil
}

func (r *memMaterialTypes) ExistsBySlug(_ context.Context, s tenant.Scope, slug, excludeID string) (bool, error) {
	for _, mt := range r.t.all(s.OrganizationID()) {
		if mt.Slug == slug && mt.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMaterialTypes) Update(_ context.Context, s tenant.Scope, mt *entity.MaterialType) error {
	r.t.put(s.OrganizationID(), mt.ID, mt)
	return nil
}

func (r *memMaterialTypes) Delete(_ context.Context, s tenant.Scope, id string) error {
	if !r.t.remove(s.OrganizationID(), id) {
		return domain.NotFound(materialTypeNotFound)
	}
	return nil
}

// ── materiales ──

type memMaterials struct {
	t        *memTable[entity.Material]
	writeErr error
}

func newMemMaterials() *memMaterials { return &memMaterials{t: newTable[entity.Material]()} }

func (r *memMaterials) Create(_ context.Context, s tenant.Scope, m *entity.Material) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	m.OrganizationID = s.OrganizationID()
	r.t.put(s.OrganizationID(), m.ID, m)
	return nil
}

func (r *memMaterials) GetByID(_ context.Context, s tenant.Scope, id string) (*entity.Material, error) {
	if m, ok := r.t.get(s.OrganizationID(), id); ok {
		cp := *m
		return &cp, nil
	}
	return nil, domain.NotFound(materialNotFound)
}

func (r *memMaterials) List(_ context.Context, s tenant.Scope, _ repository.MaterialFilter) ([]*entity.Material, int, error) {
	out := r.t.all(s.OrganizationID())
	return out, len(out), nil
}

func (r *memMaterials) ListThin(_ context.Context, _ tenant.Scope, _ string) ([]repository.Option, error) {
	return nil, nil
}

func (r *memMaterials) Update(_ context.Context, s tenant.Scope, m *entity.Material) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	cp := *m
	r.t.put(s.OrganizationID(), m.ID, &cp)
	return nil
}

func (r *memMaterials) Delete(_ context.Context, s tenant.Scope, id string) error {
	if !r.t.remove(s.OrganizationID(), id) {
		return domain.NotFound(materialNotFound)
	}
	return nil
}

// ── gastos ──

type memExpenses struct{ t *memTable[entity.Expense] }

func newMemExpenses() *memExpenses { return &memExpenses{t: newTable[entity.Expense]()} }

func (r *memExpenses) Create(_ context.Context, s tenant.Scope, e *entity.Expense) error {
	e.OrganizationID = s.OrganizationID()
	r.t.put(s.OrganizationID(), e.ID, e)
	return nil
}

func (r *memExpenses) GetByID(_ context.Context, s tenant.Scope, id string) (*entity.Expense, error) {
	if e, ok := r.t.get(s.OrganizationID(), id); ok {
		return e, nil
	}
	return nil, domain.NotFound(expenseNotFound)
}

func (r *memExpenses) List(_ context.Context, s tenant.Scope, _ repository.ExpenseFilter) ([]*entity.Expense, int, error) {
	out := r.t.all(s.OrganizationID())
	return out, len(out), nil
}

func (r *memExpenses) Update(_ context.Context, s tenant.Scope, e *entity.Expense) error {
	r.t.put(s.OrganizationID(), e.ID, e)
	return nil
}

func (r *memExpenses) Delete(_ context.Context, s tenant.Scope, id string) error {
	if !r.t.remove(s.OrganizationID(), id) {
		return domain.NotFound(expenseNotFound)
	}
	return nil
}

// ── usuarios ──

type memUsers struct{ t *memTable[entity.User] }

func newMemUsers() *memUsers { return &memUsers{t: newTable[entity.User]()} }

func (r *memUsers) Create(_ context.Context, s tenant.Scope, u *entity.User) error {
	u.OrganizationID = s.OrganizationID()
	r.t.put(s.OrganizationID(), u.ID, u)
	return nil
}

func (r *memUsers) GetByID(_ context.Context, s tenant.Scope, id string) (*entity.User, error) {
	if u, ok := r.t.get(s.OrganizationID(), id); ok {
		return u, nil
	}
	return nil, domain.NotFound(userNotFound)
}

func (r *memUsers) List(_ context.Context, s tenant.Scope, _ repository.ListFilter) ([]*entity.User, int, error) {
	out := r.t.all(s.OrganizationID())
	return out, len(out), nil
}

func (r *memUsers) ExistsByEmail(_ context.Context, s tenant.Scope, email, excludeID string) (bool, error) {
	for _, u := range r.t.all(s.OrganizationID()) {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsers) Update(_ context.Context, s tenant.Scope, u *entity.User) error {
	r.t.put(s.OrganizationID(), u.ID, u)
	return nil
}

func (r *memUsers) FindForLogin(_ context.Context, _, _ string) (*entity.User, error) {
	return nil, domain.NotFound(userNotFound)
}

// ── comprobantes ──

type fakeReceipts struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeReceipts() *fakeReceipts { return &fakeReceipts{objects: map[string][]byte{}} }

func (f *fakeReceipts) Put(_ context.Context, key string, body []byte, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = body
	return nil
}

func (f *fakeReceipts) PresignGet(_ context.Context, key string) (string, error) {
	return "https://receipts.test/" + key, nil
}

func (f *fakeReceipts) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

// ── tablero ──

type fakeDashboard struct {
	projects, vendors, materials int
	expenses                     decimal.Decimal
	err                          error
}

func (f *fakeDashboard) CountProjects(context.Context, tenant.Scope) (int, error) {
	return f.projects, nil
}

func (f *fakeDashboard) CountVendors(context.Context, tenant.Scope) (int, error) {
	return f.vendors, nil
}

func (f *fakeDashboard) CountMaterials(context.Context, tenant.Scope) (int, error) {
	return f.materials, f.err
}

func (f *fakeDashboard) SumExpenses(context.Context, tenant.Scope) (decimal.Decimal, error) {
	return f.expenses, nil
}
