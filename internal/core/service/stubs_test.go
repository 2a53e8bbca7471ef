package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slimmom/diet-service/internal/core/domain"
)

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	if u.DietProfile != nil {
		p := *u.DietProfile
		clone.DietProfile = &p
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("u%d", r.seq)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateDietProfile(_ context.Context, id string, profile domain.DietProfile, updatedAt time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.DietProfile = &profile
	u.UpdatedAt = updatedAt
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListCreatedBetween(_ context.Context, from, to time.Time) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if !u.CreatedAt.Before(from) && !u.CreatedAt.After(to) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type stubSessionRepo struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]*domain.Session

	// beforeCreate, when set, runs outside the lock on every Create with the
	// 1-based call number.
	beforeCreate func(call int)
	createCalls  int
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	r.mu.Lock()
	r.createCalls++
	call, hook := r.createCalls, r.beforeCreate
	r.mu.Unlock()
	if hook != nil {
		hook(call)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *s
	stored.ID = fmt.Sprintf("s%d", r.seq)
	r.sessions[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubSessionRepo) FindByAccessToken(_ context.Context, accessToken string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.AccessToken == accessToken {
			out := *s
			return &out, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (r *stubSessionRepo) ConsumeByRefreshToken(_ context.Context, refreshToken string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.RefreshToken == refreshToken {
			delete(r.sessions, id)
			return s, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (r *stubSessionRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *stubSessionRepo) DeleteByRefreshToken(_ context.Context, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.RefreshToken == refreshToken {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *stubSessionRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *stubSessionRepo) countFor(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type stubCatalog struct {
	categories map[int][]string
	products   []domain.Product
}

func (c *stubCatalog) NotAllowedCategories(bloodType int) []string {
	return c.categories[bloodType]
}

func (c *stubCatalog) Search(query string) []domain.Product {
	if query == "" {
		return nil
	}
	return c.products
}
