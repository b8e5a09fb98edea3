package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/binhminh2409/WebXeDapApi/internal/http/middleware"
	"github.com/binhminh2409/WebXeDapApi/internal/http/validation"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/orders"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/payments"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/users"
	"github.com/binhminh2409/WebXeDapApi/internal/shared/apperr"
)

type PaymentsHandler struct {
	svc *payments.Service
}

func NewPaymentsHandler(svc *payments.Service) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

type createPaymentRequest struct {
	UserID     uint            `json:"user_id" binding:"required"`
	OrderID    uint            `json:"order_id" binding:"required"`
	TotalPrice decimal.Decimal `json:"total_price" binding:"required"`
}

func (h *PaymentsHandler) Create(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Payment request is invalid.", validation.FromBindError(err, &req)))
		return
	}

	dto, err := h.svc.Create(c.Request.Context(), payments.CreateInput{
		UserID:     req.UserID,
		OrderID:    req.OrderID,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		failPayment(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": dto})
}

func (h *PaymentsHandler) Confirm(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Payment id is invalid.", nil))
		return
	}

	dto, err := h.svc.Confirm(c.Request.Context(), id)
	if err != nil {
		failPayment(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PaymentsHandler) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Payment id is invalid.", nil))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Status update request is invalid.", validation.FromBindError(err, &req)))
		return
	}

	dto, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		failPayment(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto})
}

func (h *PaymentsHandler) List(c *gin.Context) {
	items, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *PaymentsHandler) ListByUser(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("User id is invalid.", nil))
		return
	}

	items, err := h.svc.FindByUser(c.Request.Context(), userID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func failPayment(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payments.ErrBadRequest):
		middleware.Fail(c, apperr.InvalidErr("Payment request is invalid.", nil))
	case errors.Is(err, payments.ErrAmountMismatch):
		middleware.Fail(c, apperr.InvalidErr("The payment amount does not match the order total.", nil))
	case errors.Is(err, payments.ErrUnknownStatus):
		middleware.Fail(c, apperr.InvalidErr("Unknown payment status.", nil))
	case errors.Is(err, payments.ErrPaymentNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Payment not found."))
	case errors.Is(err, orders.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
	case errors.Is(err, orders.ErrLinesNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Order lines not found."))
	case errors.Is(err, users.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("User not found."))
	case errors.Is(err, payments.ErrOrderNotPayable),
		errors.Is(err, payments.ErrNotConfirmable),
		errors.Is(err, orders.ErrInvalidTransition):
		middleware.Fail(c, apperr.ConflictErr("Payment state does not allow this operation."))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
