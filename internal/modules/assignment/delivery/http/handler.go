package handler

import (
	"net/http"

	"anoa.com/edusphere/internal/modules/assignment/dto"
	assignmentService "anoa.com/edusphere/internal/modules/assignment/service"
	commonDto "anoa.com/edusphere/pkg/dto"
	"anoa.com/edusphere/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	service assignmentService.AssignmentService
}

func NewAssignmentHandler(service assignmentService.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var input dto.CreateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.CreateAssignment(c.Request.Context(), email, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// GetClassAssignments lists the assignments of the class named by :id.
func (h *AssignmentHandler) GetClassAssignments(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}

	assignments, err := h.service.GetClassAssignments(c.Request.Context(), classID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(assignments))
}

func (h *AssignmentHandler) Submit(c *gin.Context) {
	var input dto.CreateSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Submit(c.Request.Context(), email, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}
