package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binhminh2409/WebXeDapApi/internal/http/middleware"
	"github.com/binhminh2409/WebXeDapApi/internal/http/validation"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/comments"
	"github.com/binhminh2409/WebXeDapApi/internal/shared/apperr"
)

type CommentsHandler struct {
	svc *comments.Service
}

func NewCommentsHandler(svc *comments.Service) *CommentsHandler {
	return &CommentsHandler{svc: svc}
}

type createCommentRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	ProductID   uint   `json:"product_id" binding:"required"`
	Description string `json:"description" binding:"required,max=2000"`
}

func (h *CommentsHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Comment request is invalid.", validation.FromBindError(err, &req)))
		return
	}

	out, err := h.svc.Create(c.Request.Context(), comments.CreateInput{
		UserID:      req.UserID,
		ProductID:   req.ProductID,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, comments.ErrBadRequest):
			middleware.Fail(c, apperr.InvalidErr("Comment request is invalid.", nil))
		case errors.Is(err, comments.ErrProductNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": out})
}

func (h *CommentsHandler) List(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *CommentsHandler) ListByProduct(c *gin.Context) {
	productID, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Product id is invalid.", nil))
		return
	}
	items, err := h.svc.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *CommentsHandler) ListByUser(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("User id is invalid.", nil))
		return
	}
	items, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
