package application

import (
	"context"
	"errors"
	"strings"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
)

type RegisterUserInput struct {
	Name    string
	Role    entity.UserRole
	Email   string
	Company string
}

// RegisterUser adds the caller to the directory. A principal can register once.
func (s *Service) RegisterUser(ctx context.Context, in RegisterUserInput) (u *entity.User, err error) {
	defer func() { s.record("register_user", err) }()

	p, ok := s.caller(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	if !in.Role.Valid() {
		return nil, newError(KindInvalidInput, "unknown role %q", in.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := &entity.User{
		Principal: p,
		Name:      strings.TrimSpace(in.Name),
		Role:      in.Role,
		Email:     strings.TrimSpace(in.Email),
		Company:   strings.TrimSpace(in.Company),
		IsActive:  true,
		CreatedAt: s.Now(),
	}
	if err := s.Users.Create(user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("principal", p).WithField("role", in.Role).Info("user registered")
	}
	return user, nil
}

// GetUser looks a principal up in the directory.
func (s *Service) GetUser(p entity.Principal) (*entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, err := s.Users.GetByPrincipal(p)
	if err != nil {
		return nil, false
	}
	return u, true
}

// GetCurrentUser returns the caller's own directory record.
func (s *Service) GetCurrentUser(ctx context.Context) (*entity.User, bool) {
	p, ok := s.caller(ctx)
	if !ok {
		return nil, false
	}
	return s.GetUser(p)
}

// UpdateUserRole changes the caller's own role.
func (s *Service) UpdateUserRole(ctx context.Context, role entity.UserRole) (*entity.User, error) {
	p, ok := s.caller(ctx)
	if !ok {
		s.record("update_user_role", ErrUserNotFound)
		return nil, ErrUserNotFound
	}
	return s.UpdateRole(p, role)
}

// UpdateRole overwrites the role of p. Nothing else on the record changes.
func (s *Service) UpdateRole(p entity.Principal, role entity.UserRole) (u *entity.User, err error) {
	defer func() { s.record("update_user_role", err) }()

	if !role.Valid() {
		return nil, newError(KindInvalidInput, "unknown role %q", role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.Users.GetByPrincipal(p)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user.Role = role
	if err := s.Users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
