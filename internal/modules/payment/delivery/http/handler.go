package handler

import (
	"errors"
	"fmt"
	"net/http"

	"anoa.com/edusphere/internal/modules/payment/dto"
	paymentService "anoa.com/edusphere/internal/modules/payment/service"
	"anoa.com/edusphere/pkg/apperror"
	commonDto "anoa.com/edusphere/pkg/dto"
	"anoa.com/edusphere/pkg/ratelimit"
	"anoa.com/edusphere/pkg/response"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service paymentService.PaymentService
	limiter *ratelimit.Limiter
}

func NewPaymentHandler(service paymentService.PaymentService, limiter *ratelimit.Limiter) *PaymentHandler {
	return &PaymentHandler{service: service, limiter: limiter}
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var input dto.CreateIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.CreateIntent(c.Request.Context(), email, input.Price)
	if err != nil {
		if errors.Is(err, apperror.ErrRateLimitExceeded) {
			if ttl, terr := h.limiter.TTL(c.Request.Context(), email, "checkout"); terr == nil && ttl > 0 {
				c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			}
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var input dto.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.RecordPayment(c.Request.Context(), email, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *PaymentHandler) GetEnrollments(c *gin.Context) {
	var filter dto.EnrollmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	email, err := response.GetEmail(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.GetEnrollments(c.Request.Context(), email, filter.Student)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewListResponse(res))
}
