package services

import (
	"context"
	"sync"

	"healthnav-service/internal/domain"
	"healthnav-service/internal/ports"
)

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

var _ ports.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) CreateUser(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetUserByCNIC(ctx context.Context, cnic string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.CNIC == cnic {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) UpdateUser(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) ListUsers(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// memContactRepo is an in-memory ContactRepository for service tests.
type memContactRepo struct {
	mu       sync.Mutex
	contacts map[string]*domain.EmergencyContact
}

var _ ports.ContactRepository = (*memContactRepo)(nil)

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{contacts: make(map[string]*domain.EmergencyContact)}
}

func (r *memContactRepo) CreateContact(ctx context.Context, c *domain.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.contacts[c.ID] = &cp
	return nil
}

func (r *memContactRepo) ListContactsByUser(ctx context.Context, userID string) ([]*domain.EmergencyContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.EmergencyContact, 0)
	for _, c := range r.contacts {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memContactRepo) UpdateContact(ctx context.Context, c *domain.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.contacts[c.ID] = &cp
	return nil
}

func (r *memContactRepo) DeleteContact(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

func (r *memContactRepo) GetContact(ctx context.Context, id string) (*domain.EmergencyContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}
