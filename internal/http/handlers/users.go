package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binhminh2409/WebXeDapApi/internal/http/middleware"
	"github.com/binhminh2409/WebXeDapApi/internal/http/validation"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/users"
	"github.com/binhminh2409/WebXeDapApi/internal/shared/apperr"
)

type UsersHandler struct {
	svc  *users.Service
	repo *users.Repo
}

func NewUsersHandler(svc *users.Service, repo *users.Repo) *UsersHandler {
	return &UsersHandler{svc: svc, repo: repo}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=128"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type userView struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *UsersHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Registration request is invalid.", validation.FromBindError(err, &req)))
		return
	}

	u, err := h.svc.Register(c.Request.Context(), users.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrBadRequest):
			middleware.Fail(c, apperr.InvalidErr("Registration request is invalid.", nil))
		case errors.Is(err, users.ErrEmailTaken):
			middleware.Fail(c, apperr.ConflictErr("Email is already registered."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": userView{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Phone: u.Phone}})
}

func (h *UsersHandler) Show(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("User id is invalid.", nil))
		return
	}
	u, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("User not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": userView{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Phone: u.Phone}})
}
