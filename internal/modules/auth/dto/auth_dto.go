package dto

type TokenInput struct {
	Email string `json:"email" binding:"required,email"`
}

type TokenResponse struct {
	AccessToken string `json:"token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
