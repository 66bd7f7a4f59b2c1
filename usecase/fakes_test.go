package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketplace-backend/dao"
	"marketplace-backend/model"
)

type memProfiles struct {
	mu        sync.Mutex
	byID      map[string]model.SellerProfile
	updateErr error
	writes    int
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byID: map[string]model.SellerProfile{}}
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
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.byID[p.ID]; !ok {
		return dao.ErrNotFound
	}
	m.writes++
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
	var out []model.SellerProfile
	for _, p := range m.byID {
		if len(filter.States) > 0 && !containsState(filter.States, p.State) {
			continue
		}
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func containsState(states []model.NegotiationState, s model.NegotiationState) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (d *recordingDispatcher) Dispatch(_ context.Context, n model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, n)
}

func (d *recordingDispatcher) types() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.sent))
	for i, n := range d.sent {
		out[i] = n.Type
	}
	return out
}

func (d *recordingDispatcher) last() model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sent[len(d.sent)-1]
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordTransition(operation, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[operation+"/"+result]++
}

func (r *countingRecorder) get(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}

type memUsers struct {
	byEmail map[string]model.User
}

func (m *memUsers) Insert(_ context.Context, u *model.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return dao.ErrDuplicate
	}
	m.byEmail[u.Email] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type memItems struct {
	byID map[string]model.Item
}

func (m *memItems) Insert(_ context.Context, item *model.Item) error {
	m.byID[item.ID] = *item
	return nil
}

func (m *memItems) GetByID(_ context.Context, id string) (*model.Item, error) {
	item, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

type memNotifications struct {
	notes []model.Notification
}

func (m *memNotifications) ListByUser(_ context.Context, userID string, _ model.NotificationFilter) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, n := range m.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memNotifications) MarkAsRead(_ context.Context, id, userID string) error {
	for i, n := range m.notes {
		if n.ID == id && n.UserID == userID {
			now := time.Now()
			m.notes[i].ReadAt = &now
			return nil
		}
	}
	return dao.ErrNotFound
}
