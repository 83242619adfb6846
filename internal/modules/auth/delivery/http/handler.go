package handler

import (
	"net/http"

	"anoa.com/edusphere/internal/modules/auth/dto"
	authService "anoa.com/edusphere/internal/modules/auth/service"
	"anoa.com/edusphere/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	tokens authService.TokenService
}

func NewAuthHandler(tokens authService.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

func (h *AuthHandler) IssueToken(c *gin.Context) {
	var input dto.TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(input.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt.Unix(),
	})
}
