package memory

import (
	"sort"
	"sync"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
)

type UserRepository struct {
	mu sync.RWMutex
	m  map[entity.Principal]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{m: make(map[entity.Principal]entity.User)}
}

func (r *UserRepository) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[u.Principal]; ok {
		return repository.ErrDuplicate
	}
	r.m[u.Principal] = *u
	return nil
}

// GetByPrincipal returns a copy; changes are only stored through Update.
func (r *UserRepository) GetByPrincipal(p entity.Principal) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.m[p]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[u.Principal]; !ok {
		return repository.ErrNotFound
	}
	r.m[u.Principal] = *u
	return nil
}

// List returns users ordered by registration time, then principal.
func (r *UserRepository) List() []entity.User {
	r.mu.RLock()
	out := make([]entity.User, 0, len(r.m))
	for _, u := range r.m {
		out = append(out, u)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Principal < out[j].Principal
	})
	return out
}

func (r *UserRepository) Replace(users []entity.User) {
	m := make(map[entity.Principal]entity.User, len(users))
	for _, u := range users {
		m[u.Principal] = u
	}
	r.mu.Lock()
	r.m = m
	r.mu.Unlock()
}

var _ repository.UserRepository = (*UserRepository)(nil)
