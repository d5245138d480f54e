// Package memory provides in-process implementations of the repository
// interfaces. Transactions snapshot the whole store and restore it on error.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type table[T any] struct {
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]T)}
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id uuid.UUID, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) del(id uuid.UUID) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(x uuid.UUID) bool { return x == id })
}

// newestFirst returns rows in reverse insertion order
func (t *table[T]) newestFirst() []T {
	out := make([]T, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		out = append(out, t.rows[t.order[i]])
	}
	return out
}

func (t *table[T]) clone(copyFn func(T) T) *table[T] {
	c := &table[T]{rows: make(map[uuid.UUID]T, len(t.rows)), order: slices.Clone(t.order)}
	for id, v := range t.rows {
		c.rows[id] = copyFn(v)
	}
	return c
}

func identity[T any](v T) T { return v }

// Store holds every table; the repository accessors share it.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	products   *table[model.Product]
	movements  *table[model.StockMovement]
	customers  *table[model.Customer]
	orders     *table[model.Order]
	stocks     *table[model.Stock]
	returns    *table[model.Return]
	businesses *table[model.Business]
	settings   *table[model.WhatsappNotification]
	messages   *table[model.WhatsappMessage]
	users      *table[model.User]
	audits     *table[model.AuditLog]
	orderSeq   int64
	returnSeq  int64
}

func NewStore() *Store {
	return &Store{
		products:   newTable[model.Product](),
		movements:  newTable[model.StockMovement](),
		customers:  newTable[model.Customer](),
		orders:     newTable[model.Order](),
		stocks:     newTable[model.Stock](),
		returns:    newTable[model.Return](),
		businesses: newTable[model.Business](),
		settings:   newTable[model.WhatsappNotification](),
		messages:   newTable[model.WhatsappMessage](),
		users:      newTable[model.User](),
		audits:     newTable[model.AuditLog](),
	}
}

type snapshot struct {
	products   *table[model.Product]
	movements  *table[model.StockMovement]
	customers  *table[model.Customer]
	orders     *table[model.Order]
	stocks     *table[model.Stock]
	returns    *table[model.Return]
	businesses *table[model.Business]
	settings   *table[model.WhatsappNotification]
	users      *table[model.User]
	audits     *table[model.AuditLog]
	orderSeq   int64
	returnSeq  int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		products:   s.products.clone(cloneProduct),
		movements:  s.movements.clone(identity[model.StockMovement]),
		customers:  s.customers.clone(identity[model.Customer]),
		orders:     s.orders.clone(cloneOrder),
		stocks:     s.stocks.clone(cloneStock),
		returns:    s.returns.clone(identity[model.Return]),
		businesses: s.businesses.clone(identity[model.Business]),
		settings:   s.settings.clone(cloneSettings),
		users:      s.users.clone(identity[model.User]),
		audits:     s.audits.clone(identity[model.AuditLog]),
		orderSeq:   s.orderSeq,
		returnSeq:  s.returnSeq,
	}
}

// restore rolls back everything except the message log, which is
// written outside business transactions.
func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.movements = snap.movements
	s.customers = snap.customers
	s.orders = snap.orders
	s.stocks = snap.stocks
	s.returns = snap.returns
	s.businesses = snap.businesses
	s.settings = snap.settings
	s.users = snap.users
	s.audits = snap.audits
	s.orderSeq = snap.orderSeq
	s.returnSeq = snap.returnSeq
}

type txKey struct{}

type txManager struct {
	s *Store
}

// TxManager returns a TransactionManager that serializes transactions
func (s *Store) TxManager() repository.TransactionManager {
	return &txManager{s: s}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

func paginate[T any](rows []T, page repository.Page) []T {
	if page.Limit <= 0 {
		return rows
	}
	start := page.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+page.Limit, len(rows))
	return rows[start:end]
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

var errNotFound = gorm.ErrRecordNotFound

func cloneProduct(p model.Product) model.Product {
	p.Tags = slices.Clone(p.Tags)
	p.Variants = slices.Clone(p.Variants)
	return p
}

func cloneOrder(o model.Order) model.Order {
	o.Items = slices.Clone(o.Items)
	if o.CustomerID != nil {
		id := *o.CustomerID
		o.CustomerID = &id
	}
	return o
}

func cloneStock(st model.Stock) model.Stock {
	st.Variants = slices.Clone(st.Variants)
	return st
}

func cloneSettings(n model.WhatsappNotification) model.WhatsappNotification {
	n.Recipients = slices.Clone(n.Recipients)
	return n
}
