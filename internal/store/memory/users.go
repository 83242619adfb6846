package memory

import (
	"context"
	"slices"
	"strings"

	"anoa.com/edusphere/internal/entity"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
)

var _ userRepo.UserRepository = (*userRepository)(nil)

type userRepository struct {
	db *DB
}

func (r *userRepository) findByEmail(email string) *entity.User {
	for _, id := range r.db.users.order {
		if u := r.db.users.rows[id]; u.Email == email {
			return u
		}
	}
	return nil
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.findByEmail(user.Email) != nil {
		return apperror.ErrConflict
	}
	user.ID = newID(user.ID)
	user.CreatedAt = r.db.now()
	user.UpdatedAt = user.CreatedAt
	r.db.users.insert(user.ID, *user)
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users.get(id)
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u := r.findByEmail(email)
	if u == nil {
		return nil, apperror.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) FindAll(_ context.Context, search string) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	search = strings.ToLower(search)
	users := r.db.users.scan(func(u *entity.User) bool {
		return search == "" ||
			strings.Contains(strings.ToLower(u.Name), search) ||
			strings.Contains(strings.ToLower(u.Email), search)
	})
	slices.Reverse(users)
	return users, nil
}

func (r *userRepository) FindByRoles(_ context.Context, roles ...string) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.users.scan(func(u *entity.User) bool {
		return slices.Contains(roles, u.Role)
	}), nil
}

func (r *userRepository) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users.get(id)
	if !ok {
		return apperror.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = r.db.now()
	return nil
}

func (r *userRepository) UpsertRoleByEmail(_ context.Context, email, role string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if u := r.findByEmail(email); u != nil {
		u.Role = role
		u.UpdatedAt = r.db.now()
		return nil
	}
	now := r.db.now()
	u := entity.User{ID: uuid.New(), Email: email, Role: role, CreatedAt: now, UpdatedAt: now}
	r.db.users.insert(u.ID, u)
	return nil
}

func (r *userRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if !r.db.users.remove(id) {
		return apperror.ErrNotFound
	}
	return nil
}
