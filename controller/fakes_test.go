package controller

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketplace-backend/dao"
	"marketplace-backend/model"
	"marketplace-backend/notify"
)

type memProfiles struct {
	mu   sync.Mutex
	byID map[string]model.SellerProfile
}

func (m *memProfiles) Insert(_ context.Context, p *model.SellerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.UserID == p.UserID {
			return dao.ErrDuplicate
		}
	}
	m.byID[p.ID] = p.Clone()
	return nil
}

func (m *memProfiles) Update(_ context.Context, p *model.SellerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return dao.ErrNotFound
	}
	m.byID[p.ID] = p.Clone()
	return nil
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*model.SellerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	c := p.Clone()
	return &c, nil
}

func (m *memProfiles) GetByUserID(_ context.Context, userID string) (*model.SellerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.UserID == userID {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memProfiles) List(_ context.Context, filter dao.ProfileFilter) ([]model.SellerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	allowed := map[model.NegotiationState]bool{}
	for _, s := range filter.States {
		allowed[s] = true
	}
	var out []model.SellerProfile
	for _, p := range m.byID {
		if len(allowed) > 0 && !allowed[p.State] {
			continue
		}
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]model.User
}

func (m *memUsers) Insert(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return dao.ErrDuplicate
	}
	m.byEmail[u.Email] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type memItems struct {
	mu   sync.Mutex
	byID map[string]model.Item
}

func (m *memItems) Insert(_ context.Context, item *model.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[item.ID] = *item
	return nil
}

func (m *memItems) GetByID(_ context.Context, id string) (*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

type memNotifications struct {
	mu    sync.Mutex
	notes []model.Notification
}

func (m *memNotifications) Create(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, *n)
	return nil
}

func (m *memNotifications) ListByUser(_ context.Context, userID string, filter model.NotificationFilter) ([]model.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Notification
	for _, n := range m.notes {
		if n.UserID != userID || (filter.UnreadOnly && n.ReadAt != nil) {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (m *memNotifications) MarkAsRead(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notes {
		if n.ID == id && n.UserID == userID {
			if n.ReadAt == nil {
				now := time.Now()
				m.notes[i].ReadAt = &now
			}
			return nil
		}
	}
	return dao.ErrNotFound
}

// syncDispatcher delivers inline so tests can read the inbox right away.
type syncDispatcher struct {
	sender notify.Sender
}

func (d syncDispatcher) Dispatch(ctx context.Context, n model.Notification) {
	_ = d.sender.Send(ctx, n)
}
