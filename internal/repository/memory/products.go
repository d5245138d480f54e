package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type productRepo struct {
	s *Store
}

func (s *Store) Products() repository.ProductRepository {
	return &productRepo{s: s}
}

func (r *productRepo) Create(_ context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&product.ID)
	stamp(&product.CreatedAt, &product.UpdatedAt)
	for i := range product.Variants {
		ensureID(&product.Variants[i].ID)
		product.Variants[i].ProductID = product.ID
	}
	r.s.products.put(product.ID, cloneProduct(*product))
	return nil
}

func (r *productRepo) Update(_ context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.products.get(product.ID)
	if !ok {
		return errNotFound
	}
	updated := cloneProduct(*product)
	updated.Variants = current.Variants
	stamp(&updated.CreatedAt, &updated.UpdatedAt)
	product.UpdatedAt = updated.UpdatedAt
	r.s.products.put(product.ID, updated)
	return nil
}

func (r *productRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products.del(id)
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products.get(id)
	if !ok {
		return nil, errNotFound
	}
	p = cloneProduct(p)
	slices.SortFunc(p.Variants, func(a, b model.ProductVariant) int { return strings.Compare(a.Color, b.Color) })
	return &p, nil
}

func (r *productRepo) List(_ context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.Product
	for _, p := range r.s.products.newestFirst() {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return paginate(out, filter.Page), int64(len(out)), nil
}

func (r *productRepo) SaveVariant(_ context.Context, variant *model.ProductVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products.get(variant.ProductID)
	if !ok {
		return errNotFound
	}
	p = cloneProduct(p)
	ensureID(&variant.ID)
	idx := slices.IndexFunc(p.Variants, func(v model.ProductVariant) bool { return v.ID == variant.ID })
	if idx < 0 {
		p.Variants = append(p.Variants, *variant)
	} else {
		p.Variants[idx] = *variant
	}
	r.s.products.put(p.ID, p)
	return nil
}

func (r *productRepo) DeleteVariantsExcept(_ context.Context, productID uuid.UUID, keep []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products.get(productID)
	if !ok {
		return nil
	}
	p = cloneProduct(p)
	p.Variants = slices.DeleteFunc(p.Variants, func(v model.ProductVariant) bool { return !slices.Contains(keep, v.ID) })
	r.s.products.put(p.ID, p)
	return nil
}

func (r *productRepo) FindVariantForUpdate(_ context.Context, productID uuid.UUID, color string) (*model.ProductVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products.get(productID)
	if !ok {
		return nil, errNotFound
	}
	want := strings.ToLower(strings.TrimSpace(color))
	for _, v := range p.Variants {
		if strings.ToLower(v.Color) == want {
			return &v, nil
		}
	}
	return nil, errNotFound
}

func (r *productRepo) UpdateVariantStock(_ context.Context, variantID uuid.UUID, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.products.rows {
		for i, v := range p.Variants {
			if v.ID != variantID {
				continue
			}
			p = cloneProduct(p)
			p.Variants[i].StockInMeters = stock
			r.s.products.put(p.ID, p)
			return nil
		}
	}
	return errNotFound
}

type movementRepo struct {
	s *Store
}

func (s *Store) StockMovements() repository.StockMovementRepository {
	return &movementRepo{s: s}
}

func (r *movementRepo) Create(_ context.Context, movement *model.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&movement.ID)
	stamp(&movement.CreatedAt, &movement.CreatedAt)
	r.s.movements.put(movement.ID, *movement)
	return nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID uuid.UUID, page repository.Page) ([]model.StockMovement, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.StockMovement
	for _, m := range r.s.movements.newestFirst() {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return paginate(out, page), int64(len(out)), nil
}
