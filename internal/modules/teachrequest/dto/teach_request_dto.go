package dto

import "anoa.com/edusphere/internal/entity"

const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

type CreateTeachRequestInput struct {
	Name       string  `json:"name" binding:"required,max=100"`
	PhotoURL   *string `json:"photo_url" binding:"omitempty,url"`
	Title      string  `json:"title" binding:"required,max=200"`
	Category   string  `json:"category" binding:"required,max=100"`
	Experience string  `json:"experience" binding:"required,oneof=beginner mid-level experienced"`
}

type ResolveInput struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

type TeachRequestFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending teacher rejected"`
}

// ResolveResponse reports the request after resolution. Changed is false when
// the request was already in the target state.
type ResolveResponse struct {
	Message string               `json:"message"`
	Changed bool                 `json:"changed"`
	Request *entity.TeachRequest `json:"request"`
}
