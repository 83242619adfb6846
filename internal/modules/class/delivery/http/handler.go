package handler

import (
	"net/http"

	"anoa.com/edusphere/internal/modules/class/dto"
	classService "anoa.com/edusphere/internal/modules/class/service"
	commonDto "anoa.com/edusphere/pkg/dto"
	"anoa.com/edusphere/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClassHandler struct {
	service classService.ClassService
}

func NewClassHandler(service classService.ClassService) *ClassHandler {
	return &ClassHandler{service: service}
}

func classID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return uuid.Nil, false
	}
	return id, true
}

// imageFile returns the optional "image" multipart file. The caller closes it.
func imageFile(c *gin.Context) (*commonDto.ImageFile, func(), bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil {
		return nil, func() {}, true
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return nil, nil, false
	}

	return &commonDto.ImageFile{Reader: file, FileName: fileHeader.Filename}, func() { file.Close() }, true
}

func (h *ClassHandler) CreateClass(c *gin.Context) {
	var input dto.CreateClassInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	image, closeImage, ok := imageFile(c)
	if !ok {
		return
	}
	defer closeImage()

	class, err := h.service.CreateClass(c.Request.Context(), email, input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) GetOwnedClasses(c *gin.Context) {
	var filter dto.ClassListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	classes, err := h.service.GetOwnedClasses(c.Request.Context(), email, filter.Owner)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(classes))
}

func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}

	class, err := h.service.GetClass(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}

	var input dto.UpdateClassInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	image, closeImage, ok := imageFile(c)
	if !ok {
		return
	}
	defer closeImage()

	class, err := h.service.UpdateClass(c.Request.Context(), email, id, input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteClass(c.Request.Context(), email, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.MessageResponse{Message: "class deleted successfully"})
}

func (h *ClassHandler) UpdateStatus(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}

	var input dto.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	class, err := h.service.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) GetAllClasses(c *gin.Context) {
	var filter dto.ClassListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	classes, err := h.service.GetAllClasses(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(classes))
}

func (h *ClassHandler) GetPublicClasses(c *gin.Context) {
	classes, err := h.service.GetPublicClasses(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(classes))
}

func (h *ClassHandler) GetHighlightedClasses(c *gin.Context) {
	classes, err := h.service.GetHighlightedClasses(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(classes))
}

func (h *ClassHandler) SearchClasses(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	classes, err := h.service.SearchClasses(c.Request.Context(), query.Query, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(classes))
}
