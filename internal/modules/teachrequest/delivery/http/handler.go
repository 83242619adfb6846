package handler

import (
	"net/http"

	"anoa.com/edusphere/internal/modules/teachrequest/dto"
	teachService "anoa.com/edusphere/internal/modules/teachrequest/service"
	commonDto "anoa.com/edusphere/pkg/dto"
	"anoa.com/edusphere/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeachRequestHandler struct {
	service teachService.TeachRequestService
}

func NewTeachRequestHandler(service teachService.TeachRequestService) *TeachRequestHandler {
	return &TeachRequestHandler{service: service}
}

func requestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *TeachRequestHandler) CreateRequest(c *gin.Context) {
	var input dto.CreateTeachRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	req, err := h.service.CreateRequest(c.Request.Context(), email, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, req)
}

func (h *TeachRequestHandler) GetRequests(c *gin.Context) {
	var filter dto.TeachRequestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	reqs, err := h.service.GetRequests(c.Request.Context(), filter.Status)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(reqs))
}

func (h *TeachRequestHandler) GetMyRequest(c *gin.Context) {
	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	req, err := h.service.GetMyRequest(c.Request.Context(), email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *TeachRequestHandler) Resolve(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var input dto.ResolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.service.Resolve(c.Request.Context(), id, input.Action)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TeachRequestHandler) Resubmit(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	req, err := h.service.Resubmit(c.Request.Context(), email, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}
