package handler

import (
	"net/http"

	"anoa.com/edusphere/internal/modules/feedback/dto"
	feedbackService "anoa.com/edusphere/internal/modules/feedback/service"
	commonDto "anoa.com/edusphere/pkg/dto"
	"anoa.com/edusphere/pkg/response"
	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	service feedbackService.FeedbackService
}

func NewFeedbackHandler(service feedbackService.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var input dto.CreateFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	feedback, err := h.service.CreateFeedback(c.Request.Context(), email, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	feedback, err := h.service.GetFeedback(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(feedback))
}
