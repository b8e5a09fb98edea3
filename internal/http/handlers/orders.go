package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/binhminh2409/WebXeDapApi/internal/http/middleware"
	"github.com/binhminh2409/WebXeDapApi/internal/http/validation"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/orders"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/products"
	"github.com/binhminh2409/WebXeDapApi/internal/shared/apperr"
)

type OrdersHandler struct {
	svc *orders.Service
}

func NewOrdersHandler(svc *orders.Service) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

type orderLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type placeOrderRequest struct {
	UserID      uint               `json:"user_id" binding:"required"`
	ShipName    string             `json:"ship_name" binding:"required"`
	ShipAddress string             `json:"ship_address" binding:"required"`
	ShipEmail   string             `json:"ship_email" binding:"omitempty,email"`
	ShipPhone   string             `json:"ship_phone"`
	Cart        []orderLineRequest `json:"cart" binding:"required,min=1,dive"`
}

type orderResponse struct {
	ID          uint            `json:"id"`
	No          string          `json:"no"`
	UserID      uint            `json:"user_id"`
	ShipName    string          `json:"ship_name"`
	ShipAddress string          `json:"ship_address"`
	ShipEmail   string          `json:"ship_email"`
	ShipPhone   string          `json:"ship_phone"`
	Status      string          `json:"status"`
	Guid        string          `json:"guid"`
	Total       decimal.Decimal `json:"total"`
	Items       []orderItemView `json:"items,omitempty"`
}

type orderItemView struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func orderView(o orders.Order, items []orders.OrderItem) orderResponse {
	out := orderResponse{
		ID:          o.ID,
		No:          o.No,
		UserID:      o.UserID,
		ShipName:    o.ShipName,
		ShipAddress: o.ShipAddress,
		ShipEmail:   o.ShipEmail,
		ShipPhone:   o.ShipPhone,
		Status:      string(o.Status),
		Guid:        o.Guid,
		Total:       decimal.Zero,
	}
	for _, it := range items {
		out.Total = out.Total.Add(it.LineTotal)
		out.Items = append(out.Items, orderItemView{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return out
}

func (h *OrdersHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Order request is invalid.", validation.FromBindError(err, &req)))
		return
	}

	cart := make([]orders.CartLine, 0, len(req.Cart))
	for _, ln := range req.Cart {
		cart = append(cart, orders.CartLine{ProductID: ln.ProductID, Quantity: ln.Quantity})
	}

	o, items, err := h.svc.Place(c.Request.Context(), orders.PlaceInput{
		UserID:      req.UserID,
		ShipName:    req.ShipName,
		ShipAddress: req.ShipAddress,
		ShipEmail:   req.ShipEmail,
		ShipPhone:   req.ShipPhone,
		Cart:        cart,
	})
	if err != nil {
		failOrder(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": orderView(o, items)})
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Order id is invalid.", nil))
		return
	}

	o, items, err := h.svc.Repo().GetWithItems(c.Request.Context(), id)
	if err != nil {
		failOrder(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orderView(o, items)})
}

func (h *OrdersHandler) ListByUser(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("User id is invalid.", nil))
		return
	}

	res, err := h.svc.Repo().ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   userID,
		Page:     intQuery(c, "page", 1, 10000),
		PageSize: intQuery(c, "page_size", 20, 100),
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	views := make([]orderResponse, 0, len(res.Items))
	for _, o := range res.Items {
		views = append(views, orderView(o, nil))
	}
	c.JSON(http.StatusOK, gin.H{"data": views, "total": res.Total})
}

func failOrder(c *gin.Context, err error) {
	var oos *orders.OutOfStockError
	switch {
	case errors.Is(err, orders.ErrBadRequest), errors.Is(err, orders.ErrCartEmpty):
		middleware.Fail(c, apperr.InvalidErr("Order request is invalid.", nil))
	case errors.Is(err, orders.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
	case errors.Is(err, products.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
	case errors.As(err, &oos):
		middleware.Fail(c, apperr.ConflictErr(oos.Error()))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
