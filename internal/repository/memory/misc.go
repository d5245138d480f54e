package memory

import (
	"context"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/google/uuid"
)

type businessRepo struct {
	s *Store
}

func (s *Store) Business() repository.BusinessRepository {
	return &businessRepo{s: s}
}

func (r *businessRepo) Get(_ context.Context) (*model.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.businesses.order) == 0 {
		return nil, errNotFound
	}
	b := r.s.businesses.rows[r.s.businesses.order[0]]
	return &b, nil
}

func (r *businessRepo) Create(_ context.Context, business *model.Business) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&business.ID)
	stamp(&business.CreatedAt, &business.UpdatedAt)
	r.s.businesses.put(business.ID, *business)
	return nil
}

func (r *businessRepo) Update(_ context.Context, business *model.Business) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stamp(&business.CreatedAt, &business.UpdatedAt)
	r.s.businesses.put(business.ID, *business)
	return nil
}

type notificationRepo struct {
	s *Store
}

func (s *Store) Notifications() repository.NotificationRepository {
	return &notificationRepo{s: s}
}

func (r *notificationRepo) GetSettings(_ context.Context) (*model.WhatsappNotification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.settings.order) == 0 {
		return nil, errNotFound
	}
	n := cloneSettings(r.s.settings.rows[r.s.settings.order[0]])
	return &n, nil
}

func (r *notificationRepo) SaveSettings(_ context.Context, settings *model.WhatsappNotification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&settings.ID)
	stamp(&settings.CreatedAt, &settings.UpdatedAt)
	r.s.settings.put(settings.ID, cloneSettings(*settings))
	return nil
}

func (r *notificationRepo) CreateMessage(_ context.Context, msg *model.WhatsappMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&msg.ID)
	stamp(&msg.CreatedAt, &msg.CreatedAt)
	r.s.messages.put(msg.ID, *msg)
	return nil
}

func (r *notificationRepo) FindMessage(_ context.Context, id uuid.UUID) (*model.WhatsappMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages.get(id)
	if !ok {
		return nil, errNotFound
	}
	return &m, nil
}

func (r *notificationRepo) ListMessages(_ context.Context, filter repository.MessageFilter) ([]model.WhatsappMessage, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.WhatsappMessage
	for _, m := range r.s.messages.newestFirst() {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.Event != "" && m.Event != filter.Event {
			continue
		}
		out = append(out, m)
	}
	return paginate(out, filter.Page), int64(len(out)), nil
}

type userRepo struct {
	s *Store
}

func (s *Store) Users() repository.UserRepository {
	return &userRepo{s: s}
}

func (r *userRepo) Upsert(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if user.LastSeenAt.IsZero() {
		user.LastSeenAt = time.Now()
	}
	for _, existing := range r.s.users.rows {
		if existing.ExternalID == user.ExternalID {
			existing.Email = user.Email
			existing.Name = user.Name
			existing.LastSeenAt = user.LastSeenAt
			stamp(&existing.CreatedAt, &existing.UpdatedAt)
			r.s.users.put(existing.ID, existing)
			*user = existing
			return nil
		}
	}
	ensureID(&user.ID)
	if user.Role == "" {
		user.Role = "staff"
	}
	stamp(&user.CreatedAt, &user.UpdatedAt)
	r.s.users.put(user.ID, *user)
	return nil
}

func (r *userRepo) GetByExternalID(_ context.Context, externalID string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users.rows {
		if u.ExternalID == externalID {
			return &u, nil
		}
	}
	return nil, errNotFound
}

func (r *userRepo) List(_ context.Context, page repository.Page) ([]model.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := r.s.users.newestFirst()
	return paginate(out, page), int64(len(out)), nil
}

type auditRepo struct {
	s *Store
}

func (s *Store) Audits() repository.AuditRepository {
	return &auditRepo{s: s}
}

func (r *auditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ensureID(&entry.ID)
	stamp(&entry.CreatedAt, &entry.CreatedAt)
	r.s.audits.put(entry.ID, *entry)
	return nil
}

func (r *auditRepo) List(_ context.Context, filter repository.AuditFilter) ([]model.AuditLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.AuditLog
	for _, l := range r.s.audits.newestFirst() {
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.EntityID != "" && l.EntityID != filter.EntityID {
			continue
		}
		out = append(out, l)
	}
	return paginate(out, filter.Page), int64(len(out)), nil
}
