package dto

type CreateClassInput struct {
	Title       string  `json:"title" form:"title" binding:"required,max=200"`
	Price       float64 `json:"price" form:"price" binding:"required,gt=0"`
	Description string  `json:"description" form:"description" binding:"max=5000"`
	OwnerName   string  `json:"owner_name" form:"owner_name" binding:"max=100"`
	ImageURL    *string `json:"image_url" form:"image_url" binding:"omitempty,url"`
}

// UpdateClassInput carries only the fields to change.
type UpdateClassInput struct {
	Title       *string  `json:"title" form:"title" binding:"omitempty,max=200"`
	Price       *float64 `json:"price" form:"price" binding:"omitempty,gt=0"`
	Description *string  `json:"description" form:"description" binding:"omitempty,max=5000"`
	OwnerName   *string  `json:"owner_name" form:"owner_name" binding:"omitempty,max=100"`
	ImageURL    *string  `json:"image_url" form:"image_url" binding:"omitempty,url"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

type ClassListFilter struct {
	Owner  string `form:"owner"`
	Status string `form:"status" binding:"omitempty,oneof=pending accepted rejected"`
	Search string `form:"search"`
}

type SearchQuery struct {
	Query string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
