// Package access declares what each route requires of its caller.
package access

import (
	"context"
	"errors"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/pkg/apperror"
)

type Capability int

const (
	Public Capability = iota
	Authenticated
	Teacher
	Admin
)

func (c Capability) String() string {
	switch c {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Teacher:
		return "teacher"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// NeedsToken reports whether a verified token is required.
func (c Capability) NeedsToken() bool {
	return c != Public
}

// NeedsRole reports whether the caller's stored role must be looked up.
func (c Capability) NeedsRole() bool {
	return c == Teacher || c == Admin
}

// Allows reports whether a user with the given role holds the capability.
// Admins hold every capability.
func (c Capability) Allows(role string) bool {
	switch c {
	case Public, Authenticated:
		return true
	case Teacher:
		return role == entity.RoleTeacher || role == entity.RoleAdmin
	case Admin:
		return role == entity.RoleAdmin
	}
	return false
}

// RoleLookup is the part of the user store needed to resolve roles.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// IsAdmin reports whether email belongs to a stored admin. Unknown users are not admins.
func IsAdmin(ctx context.Context, users RoleLookup, email string) (bool, error) {
	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}
