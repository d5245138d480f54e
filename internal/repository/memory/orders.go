package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/google/uuid"
)

type customerRepo struct {
	s *Store
}

func (s *Store) Customers() repository.CustomerRepository {
	return &customerRepo{s: s}
}

func (r *customerRepo) Create(_ context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&customer.ID)
	stamp(&customer.CreatedAt, &customer.UpdatedAt)
	r.s.customers.put(customer.ID, *customer)
	return nil
}

func (r *customerRepo) Update(_ context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers.get(customer.ID); !ok {
		return errNotFound
	}
	stamp(&customer.CreatedAt, &customer.UpdatedAt)
	r.s.customers.put(customer.ID, *customer)
	return nil
}

func (r *customerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers.del(id)
	return nil
}

func (r *customerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.customers.get(id)
	if !ok {
		return nil, errNotFound
	}
	return &c, nil
}

func (r *customerRepo) List(_ context.Context, filter repository.CustomerFilter) ([]model.Customer, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(filter.Search)
	var out []model.Customer
	for _, c := range r.s.customers.newestFirst() {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if search != "" && !containsAny(search, c.Name, c.Phone, c.Email, c.City) {
			continue
		}
		out = append(out, c)
	}
	return paginate(out, filter.Page), int64(len(out)), nil
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

type orderRepo struct {
	s *Store
}

func (s *Store) Orders() repository.OrderRepository {
	return &orderRepo{s: s}
}

func (r *orderRepo) Create(_ context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&order.ID)
	stamp(&order.CreatedAt, &order.UpdatedAt)
	r.s.orderSeq++
	order.Seq = r.s.orderSeq
	for i := range order.Items {
		ensureID(&order.Items[i].ID)
		order.Items[i].OrderID = order.ID
	}
	r.s.orders.put(order.ID, cloneOrder(*order))
	return nil
}

func (r *orderRepo) Update(_ context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.orders.get(order.ID)
	if !ok {
		return errNotFound
	}
	updated := cloneOrder(*order)
	updated.Items = current.Items
	updated.Seq = current.Seq
	stamp(&updated.CreatedAt, &updated.UpdatedAt)
	order.UpdatedAt = updated.UpdatedAt
	r.s.orders.put(order.ID, updated)
	return nil
}

func (r *orderRepo) ReplaceItems(_ context.Context, orderID uuid.UUID, items []model.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders.get(orderID)
	if !ok {
		return errNotFound
	}
	o = cloneOrder(o)
	for i := range items {
		ensureID(&items[i].ID)
		items[i].OrderID = orderID
	}
	o.Items = append([]model.OrderItem(nil), items...)
	r.s.orders.put(orderID, o)
	return nil
}

func (r *orderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders.del(id)
	return nil
}

func (r *orderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders.get(id)
	if !ok {
		return nil, errNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *orderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *orderRepo) CountOpenItems(_ context.Context, productID uuid.UUID, color string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, o := range r.s.orders.rows {
		if o.Status == model.OrderStatusCancelled {
			continue
		}
		for _, item := range o.Items {
			if item.ProductID == productID && strings.EqualFold(item.Color, strings.TrimSpace(color)) {
				count++
			}
		}
	}
	return count, nil
}

func (r *orderRepo) List(_ context.Context, filter repository.OrderFilter) ([]model.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(filter.Search)
	var out []model.Order
	for _, o := range r.s.orders.newestFirst() {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.CustomerID != nil && (o.CustomerID == nil || *o.CustomerID != *filter.CustomerID) {
			continue
		}
		if search != "" && !containsAny(search, o.Customer) {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return paginate(out, filter.Page), int64(len(out)), nil
}

type stockRepo struct {
	s *Store
}

func (s *Store) Stocks() repository.StockRepository {
	return &stockRepo{s: s}
}

func (r *stockRepo) Create(_ context.Context, stock *model.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&stock.ID)
	stamp(&stock.CreatedAt, &stock.UpdatedAt)
	for i := range stock.Variants {
		ensureID(&stock.Variants[i].ID)
		stock.Variants[i].StockID = stock.ID
	}
	r.s.stocks.put(stock.ID, cloneStock(*stock))
	return nil
}

func (r *stockRepo) Update(_ context.Context, stock *model.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.stocks.get(stock.ID)
	if !ok {
		return errNotFound
	}
	updated := cloneStock(*stock)
	updated.Variants = current.Variants
	stamp(&updated.CreatedAt, &updated.UpdatedAt)
	stock.UpdatedAt = updated.UpdatedAt
	r.s.stocks.put(stock.ID, updated)
	return nil
}

func (r *stockRepo) ReplaceVariants(_ context.Context, stockID uuid.UUID, variants []model.StockVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stocks.get(stockID)
	if !ok {
		return errNotFound
	}
	st = cloneStock(st)
	for i := range variants {
		ensureID(&variants[i].ID)
		variants[i].StockID = stockID
	}
	st.Variants = append([]model.StockVariant(nil), variants...)
	r.s.stocks.put(stockID, st)
	return nil
}

func (r *stockRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stocks.del(id)
	return nil
}

func (r *stockRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stocks.get(id)
	if !ok {
		return nil, errNotFound
	}
	st = cloneStock(st)
	return &st, nil
}

func (r *stockRepo) List(_ context.Context, filter repository.StockFilter) ([]model.Stock, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.Stock
	for _, st := range r.s.stocks.newestFirst() {
		if filter.StockType != "" && st.StockType != filter.StockType {
			continue
		}
		if filter.Status != "" && st.Status != filter.Status {
			continue
		}
		out = append(out, cloneStock(st))
	}
	return paginate(out, filter.Page), int64(len(out)), nil
}

type returnRepo struct {
	s *Store
}

func (s *Store) Returns() repository.ReturnRepository {
	return &returnRepo{s: s}
}

func (r *returnRepo) Create(_ context.Context, ret *model.Return) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&ret.ID)
	stamp(&ret.CreatedAt, &ret.UpdatedAt)
	r.s.returnSeq++
	ret.Seq = r.s.returnSeq
	r.s.returns.put(ret.ID, *ret)
	return nil
}

func (r *returnRepo) Update(_ context.Context, ret *model.Return) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.returns.get(ret.ID); !ok {
		return errNotFound
	}
	stamp(&ret.CreatedAt, &ret.UpdatedAt)
	r.s.returns.put(ret.ID, *ret)
	return nil
}

func (r *returnRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.returns.del(id)
	return nil
}

func (r *returnRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ret, ok := r.s.returns.get(id)
	if !ok {
		return nil, errNotFound
	}
	return &ret, nil
}

func (r *returnRepo) List(_ context.Context, filter repository.ReturnFilter) ([]model.Return, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.Return
	for _, ret := range r.s.returns.newestFirst() {
		if filter.Status != "" && ret.Status() != filter.Status {
			continue
		}
		if filter.OrderID != nil && ret.OrderID != *filter.OrderID {
			continue
		}
		out = append(out, ret)
	}
	return paginate(out, filter.Page), int64(len(out)), nil
}

func (r *returnRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]model.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.Return
	for _, ret := range r.s.returns.rows {
		if ret.OrderID == orderID {
			out = append(out, ret)
		}
	}
	slices.SortFunc(out, func(a, b model.Return) int { return cmp.Compare(a.Seq, b.Seq) })
	return out, nil
}
