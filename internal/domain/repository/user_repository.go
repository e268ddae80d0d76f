package repository

import "github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"

// UserRepository defines storage for the user directory.
type UserRepository interface {
	Create(u *entity.User) error
	GetByPrincipal(p entity.Principal) (*entity.User, error)
	Update(u *entity.User) error
	List() []entity.User
	Replace(users []entity.User)
}
