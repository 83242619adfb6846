package dto

type CreateFeedbackInput struct {
	ClassID     string  `json:"class_id" binding:"required,uuid"`
	Name        string  `json:"name" binding:"max=100"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,url"`
	Rating      int     `json:"rating" binding:"required,min=1,max=5"`
	Description string  `json:"description" binding:"required,max=2000"`
}
