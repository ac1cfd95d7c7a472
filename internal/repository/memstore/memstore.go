// Package memstore is an in-memory repository.Store. It enforces the same
// tenant scoping, uniqueness and reference rules as the PostgreSQL schema, and
// WithTx is all-or-nothing, so service tests can exercise rollback paths
// without a database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"flota/internal/apierror"
	"flota/internal/model"
	"flota/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type data struct {
	camiones       map[uuid.UUID]model.Camion
	choferes       map[uuid.UUID]model.Chofer
	fletes         map[uuid.UUID]model.Flete
	cargas         map[uuid.UUID]model.CargaCombustible
	planes         map[uuid.UUID]model.PlanMantenimiento
	mantenimientos map[uuid.UUID]model.Mantenimiento
}

func newData() *data {
	return &data{
		camiones:       map[uuid.UUID]model.Camion{},
		choferes:       map[uuid.UUID]model.Chofer{},
		fletes:         map[uuid.UUID]model.Flete{},
		cargas:         map[uuid.UUID]model.CargaCombustible{},
		planes:         map[uuid.UUID]model.PlanMantenimiento{},
		mantenimientos: map[uuid.UUID]model.Mantenimiento{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.camiones {
		c.camiones[k] = v
	}
	for k, v := range d.choferes {
		c.choferes[k] = v
	}
	for k, v := range d.fletes {
		c.fletes[k] = v
	}
	for k, v := range d.cargas {
		c.cargas[k] = v
	}
	for k, v := range d.planes {
		c.planes[k] = v
	}
	for k, v := range d.mantenimientos {
		c.mantenimientos[k] = v
	}
	return c
}

// Store implements repository.Store in memory. The zero value is not usable;
// call New.
type Store struct {
	mu     sync.Mutex
	d      *data
	fallas map[string]error
	now    func() time.Time
}

func New() *Store {
	return &Store{d: newData(), fallas: map[string]error{}, now: time.Now}
}

// FallarEn makes every later call to op (e.g. "mantenimientos.Create") fail
// with err. A nil err clears the failure.
func (s *Store) FallarEn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fallas, op)
		return
	}
	s.fallas[op] = err
}

func (s *Store) root() *view { return &view{s: s} }

func (s *Store) Camiones() repository.CamionRepository         { return camiones{s.root()} }
func (s *Store) Choferes() repository.ChoferRepository         { return choferes{s.root()} }
func (s *Store) Fletes() repository.FleteRepository            { return fletes{s.root()} }
func (s *Store) Combustible() repository.CombustibleRepository { return cargas{s.root()} }
func (s *Store) Planes() repository.PlanMantenimientoRepository {
	return planes{s.root()}
}
func (s *Store) Mantenimientos() repository.MantenimientoRepository {
	return mantenimientos{s.root()}
}

// WithTx serializes transactions: fn runs on a private copy that replaces the
// committed state only when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return apierror.Interno(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &view{s: s, tx: true, d: s.d.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.d = tx.d
	return nil
}

// view is a Store bound either to the committed state or to a transaction copy.
// Inside a transaction the Store mutex is already held.
type view struct {
	s  *Store
	tx bool
	d  *data
}

func (v *view) Camiones() repository.CamionRepository         { return camiones{v} }
func (v *view) Choferes() repository.ChoferRepository         { return choferes{v} }
func (v *view) Fletes() repository.FleteRepository            { return fletes{v} }
func (v *view) Combustible() repository.CombustibleRepository { return cargas{v} }
func (v *view) Planes() repository.PlanMantenimientoRepository {
	return planes{v}
}
func (v *view) Mantenimientos() repository.MantenimientoRepository {
	return mantenimientos{v}
}

func (v *view) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if v.tx {
		return fn(v)
	}
	return v.s.WithTx(ctx, fn)
}

// begin locks the store (outside a transaction), checks ctx and the injected
// failure for op, and returns the state to operate on. The caller must defer
// the returned release.
func (v *view) begin(ctx context.Context, op string) (*data, func(), error) {
	release := func() {}
	if !v.tx {
		v.s.mu.Lock()
		release = v.s.mu.Unlock
	}
	if err := ctx.Err(); err != nil {
		release()
		return nil, func() {}, apierror.Interno(err)
	}
	if err, ok := v.s.fallas[op]; ok {
		release()
		return nil, func() {}, apierror.Interno(err)
	}
	if v.tx {
		return v.d, release, nil
	}
	return v.s.d, release, nil
}

func (v *view) now() time.Time { return v.s.now() }

func asignarID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func enRango(t time.Time, desde, hasta *time.Time) bool {
	if desde != nil && t.Before(*desde) {
		return false
	}
	if hasta != nil && !t.Before(*hasta) {
		return false
	}
	return true
}

// ── Camiones ──────────────────────────────────────────────────────────────────

type camiones struct{ v *view }

func placaTomada(d *data, c *model.Camion) bool {
	for _, o := range d.camiones {
		if o.TenantID == c.TenantID && o.ID != c.ID && o.Placa == c.Placa {
			return true
		}
	}
	return false
}

func (r camiones) Create(ctx context.Context, c *model.Camion) error {
	d, release, err := r.v.begin(ctx, "camiones.Create")
	defer release()
	if err != nil {
		return err
	}
	asignarID(&c.ID)
	if placaTomada(d, c) {
		return apierror.Conflicto("camión duplicado")
	}
	c.CreatedAt, c.UpdatedAt = r.v.now(), r.v.now()
	d.camiones[c.ID] = *c
	return nil
}

func (r camiones) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Camion, error) {
	d, release, err := r.v.begin(ctx, "camiones.FindByID")
	defer release()
	if err != nil {
		return nil, err
	}
	c, ok := d.camiones[id]
	if !ok || c.TenantID != tenantID {
		return nil, apierror.NoEncontrado("camión no encontrado")
	}
	return &c, nil
}

// FindByIDForUpdate needs no extra locking: a transaction already holds the
// store mutex.
func (r camiones) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*model.Camion, error) {
	d, release, err := r.v.begin(ctx, "camiones.FindByIDForUpdate")
	defer release()
	if err != nil {
		return nil, err
	}
	c, ok := d.camiones[id]
	if !ok || c.TenantID != tenantID {
		return nil, apierror.NoEncontrado("camión no encontrado")
	}
	return &c, nil
}

func (r camiones) List(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]model.Camion, error) {
	d, release, err := r.v.begin(ctx, "camiones.List")
	defer release()
	if err != nil {
		return nil, err
	}
	out := []model.Camion{}
	for _, c := range d.camiones {
		if c.TenantID == tenantID && (!soloActivos || c.Activo) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Placa < out[j].Placa })
	return out, nil
}

func (r camiones) Update(ctx context.Context, c *model.Camion) error {
	d, release, err := r.v.begin(ctx, "camiones.Update")
	defer release()
	if err != nil {
		return err
	}
	prev, ok := d.camiones[c.ID]
	if !ok || prev.TenantID != c.TenantID {
		return apierror.NoEncontrado("camión no encontrado")
	}
	if placaTomada(d, c) {
		return apierror.Conflicto("camión duplicado")
	}
	c.CreatedAt, c.UpdatedAt = prev.CreatedAt, r.v.now()
	d.camiones[c.ID] = *c
	return nil
}

func (r camiones) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	d, release, err := r.v.begin(ctx, "camiones.Delete")
	defer release()
	if err != nil {
		return err
	}
	c, ok := d.camiones[id]
	if !ok || c.TenantID != tenantID {
		return apierror.NoEncontrado("camión no encontrado")
	}
	if camionReferenciado(d, id) {
		return apierror.Conflicto("camión tiene registros relacionados")
	}
	delete(d.camiones, id)
	return nil
}

func camionReferenciado(d *data, id uuid.UUID) bool {
	for _, f := range d.fletes {
		if f.CamionID == id {
			return true
		}
	}
	for _, c := range d.cargas {
		if c.CamionID == id {
			return true
		}
	}
	for _, p := range d.planes {
		if p.CamionID == id {
			return true
		}
	}
	for _, m := range d.mantenimientos {
		if m.CamionID == id {
			return true
		}
	}
	return false
}

func (r camiones) AvanzarKilometraje(ctx context.Context, tenantID, id uuid.UUID, km int) error {
	d, release, err := r.v.begin(ctx, "camiones.AvanzarKilometraje")
	defer release()
	if err != nil {
		return err
	}
	c, ok := d.camiones[id]
	if !ok || c.TenantID != tenantID {
		return apierror.NoEncontrado("camión no encontrado")
	}
	if km > c.KilometrajeActual {
		c.KilometrajeActual = km
	}
	c.UpdatedAt = r.v.now()
	d.camiones[id] = c
	return nil
}

// ── Choferes ──────────────────────────────────────────────────────────────────

type choferes struct{ v *view }

func documentoTomado(d *data, c *model.Chofer) bool {
	for _, o := range d.choferes {
		if o.TenantID == c.TenantID && o.ID != c.ID && o.Documento == c.Documento {
			return true
		}
	}
	return false
}

func (r choferes) Create(ctx context.Context, c *model.Chofer) error {
	d, release, err := r.v.begin(ctx, "choferes.Create")
	defer release()
	if err != nil {
		return err
	}
	asignarID(&c.ID)
	if documentoTomado(d, c) {
		return apierror.Conflicto("chofer duplicado")
	}
	c.CreatedAt, c.UpdatedAt = r.v.now(), r.v.now()
	d.choferes[c.ID] = *c
	return nil
}

func (r choferes) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Chofer, error) {
	d, release, err := r.v.begin(ctx, "choferes.FindByID")
	defer release()
	if err != nil {
		return nil, err
	}
	c, ok := d.choferes[id]
	if !ok || c.TenantID != tenantID {
		return nil, apierror.NoEncontrado("chofer no encontrado")
	}
	return &c, nil
}

func (r choferes) List(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]model.Chofer, error) {
	d, release, err := r.v.begin(ctx, "choferes.List")
	defer release()
	if err != nil {
		return nil, err
	}
	out := []model.Chofer{}
	for _, c := range d.choferes {
		if c.TenantID == tenantID && (!soloActivos || c.Activo) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r choferes) Update(ctx context.Context, c *model.Chofer) error {
	d, release, err := r.v.begin(ctx, "choferes.Update")
	defer release()
	if err != nil {
		return err
	}
	prev, ok := d.choferes[c.ID]
	if !ok || prev.TenantID != c.TenantID {
		return apierror.NoEncontrado("chofer no encontrado")
	}
	if documentoTomado(d, c) {
		return apierror.Conflicto("chofer duplicado")
	}
	c.CreatedAt, c.UpdatedAt = prev.CreatedAt, r.v.now()
	d.choferes[c.ID] = *c
	return nil
}

func (r choferes) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	d, release, err := r.v.begin(ctx, "choferes.Delete")
	defer release()
	if err != nil {
		return err
	}
	c, ok := d.choferes[id]
	if !ok || c.TenantID != tenantID {
		return apierror.NoEncontrado("chofer no encontrado")
	}
	for _, f := range d.fletes {
		if f.ChoferID == id {
			return apierror.Conflicto("chofer tiene registros relacionados")
		}
	}
	for _, cg := range d.cargas {
		if cg.ChoferID == id {
			return apierror.Conflicto("chofer tiene registros relacionados")
		}
	}
	delete(d.choferes, id)
	return nil
}

// ── Fletes ────────────────────────────────────────────────────────────────────

type fletes struct{ v *view }

func (r fletes) Create(ctx context.Context, f *model.Flete) error {
	d, release, err := r.v.begin(ctx, "fletes.Create")
	defer release()
	if err != nil {
		return err
	}
	asignarID(&f.ID)
	f.CreatedAt, f.UpdatedAt = r.v.now(), r.v.now()
	stored := *f
	stored.Camion, stored.Chofer = nil, nil
	d.fletes[f.ID] = stored
	return nil
}

func (r fletes) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Flete, error) {
	d, release, err := r.v.begin(ctx, "fletes.FindByID")
	defer release()
	if err != nil {
		return nil, err
	}
	f, ok := d.fletes[id]
	if !ok || f.TenantID != tenantID {
		return nil, apierror.NoEncontrado("flete no encontrado")
	}
	return &f, nil
}

func (r fletes) List(ctx context.Context, tenantID uuid.UUID, filter repository.FleteFilter) ([]model.Flete, error) {
	d, release, err := r.v.begin(ctx, "fletes.List")
	defer release()
	if err != nil {
		return nil, err
	}
	out := []model.Flete{}
	for _, f := range d.fletes {
		if f.TenantID != tenantID {
			continue
		}
		if filter.CamionID != nil && f.CamionID != *filter.CamionID {
			continue
		}
		if filter.ChoferID != nil && f.ChoferID != *filter.ChoferID {
			continue
		}
		if filter.Estado != "" && f.Estado != filter.Estado {
			continue
		}
		if !enRango(f.Fecha, filter.Desde, filter.Hasta) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (r fletes) Update(ctx context.Context, f *model.Flete) error {
	d, release, err := r.v.begin(ctx, "fletes.Update")
	defer release()
	if err != nil {
		return err
	}
	prev, ok := d.fletes[f.ID]
	if !ok || prev.TenantID != f.TenantID {
		return apierror.NoEncontrado("flete no encontrado")
	}
	f.CreatedAt, f.UpdatedAt = prev.CreatedAt, r.v.now()
	stored := *f
	stored.Camion, stored.Chofer = nil, nil
	d.fletes[f.ID] = stored
	return nil
}

func (r fletes) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	d, release, err := r.v.begin(ctx, "fletes.Delete")
	defer release()
	if err != nil {
		return err
	}
	f, ok := d.fletes[id]
	if !ok || f.TenantID != tenantID {
		return apierror.NoEncontrado("flete no encontrado")
	}
	delete(d.fletes, id)
	return nil
}

func (r fletes) SumCompletados(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (repository.TotalesFletes, error) {
	d, release, err := r.v.begin(ctx, "fletes.SumCompletados")
	defer release()
	if err != nil {
		return repository.TotalesFletes{}, err
	}
	tot := repository.TotalesFletes{Ingreso: decimal.Zero, Ganancia: decimal.Zero}
	for _, f := range d.fletes {
		if f.TenantID == tenantID && f.Estado == model.FleteCompletado && enRango(f.Fecha, &desde, &hasta) {
			tot.Ingreso = tot.Ingreso.Add(f.Ingreso)
			tot.Ganancia = tot.Ganancia.Add(f.Ganancia)
		}
	}
	return tot, nil
}

// ── Combustible ───────────────────────────────────────────────────────────────

type cargas struct{ v *view }

func (r cargas) Create(ctx context.Context, c *model.CargaCombustible) error {
	d, release, err := r.v.begin(ctx, "combustible.Create")
	defer release()
	if err != nil {
		return err
	}
	asignarID(&c.ID)
	c.CreatedAt, c.UpdatedAt = r.v.now(), r.v.now()
	d.cargas[c.ID] = *c
	return nil
}

func (r cargas) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.CargaCombustible, error) {
	d, release, err := r.v.begin(ctx, "combustible.FindByID")
	defer release()
	if err != nil {
		return nil, err
	}
	c, ok := d.cargas[id]
	if !ok || c.TenantID != tenantID {
		return nil, apierror.NoEncontrado("carga de combustible no encontrado")
	}
	return &c, nil
}

func (r cargas) List(ctx context.Context, tenantID uuid.UUID, filter repository.CombustibleFilter) ([]model.CargaCombustible, error) {
	d, release, err := r.v.begin(ctx, "combustible.List")
	defer release()
	if err != nil {
		return nil, err
	}
	out := []model.CargaCombustible{}
	for _, c := range d.cargas {
		if c.TenantID != tenantID {
			continue
		}
		if filter.CamionID != nil && c.CamionID != *filter.CamionID {
			continue
		}
		if !enRango(c.Fecha, filter.Desde, filter.Hasta) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (r cargas) Update(ctx context.Context, c *model.CargaCombustible) error {
	d, release, err := r.v.begin(ctx, "combustible.Update")
	defer release()
	if err != nil {
		return err
	}
	prev, ok := d.cargas[c.ID]
	if !ok || prev.TenantID != c.TenantID {
		return apierror.NoEncontrado("carga de combustible no encontrado")
	}
	c.CreatedAt, c.UpdatedAt = prev.CreatedAt, r.v.now()
	d.cargas[c.ID] = *c
	return nil
}

func (r cargas) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	d, release, err := r.v.begin(ctx, "combustible.Delete")
	defer release()
	if err != nil {
		return err
	}
	c, ok := d.cargas[id]
	if !ok || c.TenantID != tenantID {
		return apierror.NoEncontrado("carga de combustible no encontrado")
	}
	delete(d.cargas, id)
	return nil
}

func (r cargas) SumTotal(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	d, release, err := r.v.begin(ctx, "combustible.SumTotal")
	defer release()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range d.cargas {
		if c.TenantID == tenantID && enRango(c.Fecha, &desde, &hasta) {
			total = total.Add(c.Total)
		}
	}
	return total, nil
}

// ── Planes ────────────────────────────────────────────────────────────────────

type planes struct{ v *view }

func planActivoDuplicado(d *data, p *model.PlanMantenimiento) bool {
	if !p.Activo {
		return false
	}
	for _, o := range d.planes {
		if o.ID != p.ID && o.Activo && o.TenantID == p.TenantID && o.CamionID == p.CamionID && o.Tipo == p.Tipo {
			return true
		}
	}
	return false
}

func (r planes) Create(ctx context.Context, p *model.PlanMantenimiento) error {
	d, release, err := r.v.begin(ctx, "planes.Create")
	defer release()
	if err != nil {
		return err
	}
	asignarID(&p.ID)
	if planActivoDuplicado(d, p) {
		return apierror.Conflicto("plan de mantenimiento duplicado")
	}
	p.CreatedAt, p.UpdatedAt = r.v.now(), r.v.now()
	stored := *p
	stored.Camion = nil
	d.planes[p.ID] = stored
	return nil
}

func (r planes) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.PlanMantenimiento, error) {
	d, release, err := r.v.begin(ctx, "planes.FindByID")
	defer release()
	if err != nil {
		return nil, err
	}
	p, ok := d.planes[id]
	if !ok || p.TenantID != tenantID {
		return nil, apierror.NoEncontrado("plan de mantenimiento no encontrado")
	}
	return &p, nil
}

func (r planes) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*model.PlanMantenimiento, error) {
	d, release, err := r.v.begin(ctx, "planes.FindByIDForUpdate")
	defer release()
	if err != nil {
		return nil, err
	}
	p, ok := d.planes[id]
	if !ok || p.TenantID != tenantID {
		return nil, apierror.NoEncontrado("plan de mantenimiento no encontrado")
	}
	return &p, nil
}

func (r planes) List(ctx context.Context, tenantID uuid.UUID, filter repository.PlanFilter) ([]model.PlanMantenimiento, error) {
	d, release, err := r.v.begin(ctx, "planes.List")
	defer release()
	if err != nil {
		return nil, err
	}
	out := []model.PlanMantenimiento{}
	for _, p := range d.planes {
		if p.TenantID != tenantID {
			continue
		}
		if filter.CamionID != nil && p.CamionID != *filter.CamionID {
			continue
		}
		if filter.Activo != nil && p.Activo != *filter.Activo {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProximoKm < out[j].ProximoKm })
	return out, nil
}

func (r planes) Update(ctx context.Context, p *model.PlanMantenimiento) error {
	d, release, err := r.v.begin(ctx, "planes.Update")
	defer release()
	if err != nil {
		return err
	}
	prev, ok := d.planes[p.ID]
	if !ok || prev.TenantID != p.TenantID {
		return apierror.NoEncontrado("plan de mantenimiento no encontrado")
	}
	if planActivoDuplicado(d, p) {
		return apierror.Conflicto("plan de mantenimiento duplicado")
	}
	p.CreatedAt, p.UpdatedAt = prev.CreatedAt, r.v.now()
	stored := *p
	stored.Camion = nil
	d.planes[p.ID] = stored
	return nil
}

func (r planes) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	d, release, err := r.v.begin(ctx, "planes.Delete")
	defer release()
	if err != nil {
		return err
	}
	p, ok := d.planes[id]
	if !ok || p.TenantID != tenantID {
		return apierror.NoEncontrado("plan de mantenimiento no encontrado")
	}
	delete(d.planes, id)
	return nil
}

func (r planes) FindActivoForUpdate(ctx context.Context, tenantID, camionID uuid.UUID, tipo string) (*model.PlanMantenimiento, error) {
	d, release, err := r.v.begin(ctx, "planes.FindActivoForUpdate")
	defer release()
	if err != nil {
		return nil, err
	}
	for _, p := range d.planes {
		if p.TenantID == tenantID && p.CamionID == camionID && p.Tipo == tipo && p.Activo {
			return &p, nil
		}
	}
	return nil, nil
}

func (r planes) ListActivosConCamion(ctx context.Context, tenantID uuid.UUID) ([]model.PlanMantenimiento, error) {
	d, release, err := r.v.begin(ctx, "planes.ListActivosConCamion")
	defer release()
	if err != nil {
		return nil, err
	}
	out := []model.PlanMantenimiento{}
	for _, p := range d.planes {
		if p.TenantID != tenantID || !p.Activo {
			continue
		}
		if c, ok := d.camiones[p.CamionID]; ok && c.TenantID == tenantID {
			p.Camion = &c
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProximoKm < out[j].ProximoKm })
	return out, nil
}

// ── Mantenimientos ────────────────────────────────────────────────────────────

type mantenimientos struct{ v *view }

func (r mantenimientos) Create(ctx context.Context, m *model.Mantenimiento) error {
	d, release, err := r.v.begin(ctx, "mantenimientos.Create")
	defer release()
	if err != nil {
		return err
	}
	asignarID(&m.ID)
	m.CreatedAt = r.v.now()
	d.mantenimientos[m.ID] = *m
	return nil
}

func (r mantenimientos) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Mantenimiento, error) {
	d, release, err := r.v.begin(ctx, "mantenimientos.FindByID")
	defer release()
	if err != nil {
		return nil, err
	}
	m, ok := d.mantenimientos[id]
	if !ok || m.TenantID != tenantID {
		return nil, apierror.NoEncontrado("mantenimiento no encontrado")
	}
	return &m, nil
}

func (r mantenimientos) List(ctx context.Context, tenantID uuid.UUID, filter repository.MantenimientoFilter) ([]model.Mantenimiento, error) {
	d, release, err := r.v.begin(ctx, "mantenimientos.List")
	defer release()
	if err != nil {
		return nil, err
	}
	out := []model.Mantenimiento{}
	for _, m := range d.mantenimientos {
		if m.TenantID != tenantID {
			continue
		}
		if filter.CamionID != nil && m.CamionID != *filter.CamionID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		if !enRango(m.Fecha, filter.Desde, filter.Hasta) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (r mantenimientos) SumCosto(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	d, release, err := r.v.begin(ctx, "mantenimientos.SumCosto")
	defer release()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, m := range d.mantenimientos {
		if m.TenantID == tenantID && enRango(m.Fecha, &desde, &hasta) {
			total = total.Add(m.Costo)
		}
	}
	return total, nil
}
