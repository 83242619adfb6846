package dto

import (
	"time"

	"anoa.com/edusphere/internal/entity"
	"github.com/google/uuid"
)

type RegisterInput struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     string  `json:"name" binding:"max=100"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,url"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    *entity.User `json:"user"`
	Created bool         `json:"created"`
}

type UpdateRoleInput struct {
	Role string `json:"role" binding:"omitempty,oneof=admin teacher pending rejected"`
}

type RoleResponse struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Admin   bool   `json:"admin"`
	Teacher bool   `json:"teacher"`
}

// PublicUserResponse is the directory projection; emails are not exposed.
type PublicUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	PhotoURL *string   `json:"photo_url,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func ToPublicUser(u *entity.User) PublicUserResponse {
	return PublicUserResponse{
		ID:       u.ID,
		Name:     u.Name,
		PhotoURL: u.PhotoURL,
		Role:     u.Role,
		JoinedAt: u.CreatedAt,
	}
}
