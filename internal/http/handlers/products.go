package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/binhminh2409/WebXeDapApi/internal/http/middleware"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/products"
	"github.com/binhminh2409/WebXeDapApi/internal/shared/apperr"
)

type ProductsHandler struct {
	svc *products.Service
}

func NewProductsHandler(svc *products.Service) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) List(c *gin.Context) {
	items, err := h.svc.Repo().List(c.Request.Context(), intQuery(c, "limit", 24, 100), intQuery(c, "offset", 0, 1<<30))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *ProductsHandler) Show(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Product id is invalid.", nil))
		return
	}
	p, err := h.svc.Repo().Get(c.Request.Context(), id)
	if err != nil {
		failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *ProductsHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		middleware.Fail(c, apperr.InvalidErr("Search keyword is required.", nil))
		return
	}
	items, err := h.svc.Repo().SearchKey(c.Request.Context(), q)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *ProductsHandler) ByBrand(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		middleware.Fail(c, apperr.InvalidErr("Brand keyword is required.", nil))
		return
	}
	items, err := h.svc.Repo().ByBrand(c.Request.Context(), q)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *ProductsHandler) ByCategory(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		middleware.Fail(c, apperr.InvalidErr("Category keyword is required.", nil))
		return
	}
	items, err := h.svc.Repo().ByCategory(c.Request.Context(), q, intQuery(c, "limit", 8, 100))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *ProductsHandler) ByCollection(c *gin.Context) {
	items, err := h.svc.Repo().ByCollection(c.Request.Context(), c.Param("name"))
	if err != nil {
		failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *ProductsHandler) ByPriceRange(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		middleware.Fail(c, apperr.InvalidErr("Category is required.", nil))
		return
	}
	lo, err1 := decimal.NewFromString(c.DefaultQuery("min", "0"))
	hi, err2 := decimal.NewFromString(c.DefaultQuery("max", "0"))
	if err1 != nil || err2 != nil || hi.LessThan(lo) {
		middleware.Fail(c, apperr.InvalidErr("Price range is invalid.", nil))
		return
	}

	items, err := h.svc.Repo().ByPriceRange(c.Request.Context(), products.PriceRangeParams{
		Category: category,
		Min:      lo,
		Max:      hi,
		Brand:    c.Query("brand"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *ProductsHandler) Discounted(c *gin.Context) {
	items, err := h.svc.Repo().Discounted(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *ProductsHandler) Create(c *gin.Context) {
	in, ferr := productCreateFromForm(c)
	if ferr != nil {
		middleware.Fail(c, ferr)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		failProduct(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": p})
}

func productCreateFromForm(c *gin.Context) (products.CreateInput, *apperr.AppError) {
	var in products.CreateInput
	fields := map[string]string{}

	in.Name = c.PostForm("name")
	if in.Name == "" {
		fields["name"] = "This field is required."
	}

	var err error
	if in.Price, err = decimal.NewFromString(c.PostForm("price")); err != nil || !in.Price.IsPositive() {
		fields["price"] = "Invalid value."
	}
	if v := c.PostForm("price_has_decreased"); v != "" {
		if in.PriceHasDecreased, err = decimal.NewFromString(v); err != nil || in.PriceHasDecreased.IsNegative() {
			fields["price_has_decreased"] = "Invalid value."
		}
	}
	in.Description = c.PostForm("description")
	in.Quantity = postInt(c, "quantity")
	in.Color = c.PostForm("color")
	in.Size = c.PostForm("size")
	in.CategoryID = uint(postInt(c, "category_id"))
	in.BrandID = uint(postInt(c, "brand_id"))
	if in.CategoryID == 0 {
		fields["category_id"] = "This field is required."
	}
	if in.BrandID == 0 {
		fields["brand_id"] = "This field is required."
	}

	file, err := c.FormFile("image")
	if err != nil {
		fields["image"] = "Image is required."
	}
	if len(fields) > 0 {
		return products.CreateInput{}, apperr.InvalidErr("Product request is invalid.", fields)
	}

	f, err := file.Open()
	if err != nil {
		return products.CreateInput{}, apperr.Wrap(err)
	}
	in.Image = f
	in.ImageFilename = file.Filename
	in.ImageType = file.Header.Get("Content-Type")
	return in, nil
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Product id is invalid.", nil))
		return
	}

	var in products.UpdateInput
	if v, set := c.GetPostForm("name"); set {
		in.Name = &v
	}
	if v, set := c.GetPostForm("price"); set {
		d, err := decimal.NewFromString(v)
		if err != nil {
			middleware.Fail(c, apperr.InvalidErr("Price is invalid.", nil))
			return
		}
		in.Price = &d
	}
	if v, set := c.GetPostForm("price_has_decreased"); set {
		d, err := decimal.NewFromString(v)
		if err != nil {
			middleware.Fail(c, apperr.InvalidErr("Discount price is invalid.", nil))
			return
		}
		in.PriceHasDecreased = &d
	}
	if v, set := c.GetPostForm("description"); set {
		in.Description = &v
	}
	if v, set := c.GetPostForm("quantity"); set {
		n := atoiOr(v, -1)
		if n < 0 {
			middleware.Fail(c, apperr.InvalidErr("Quantity is invalid.", nil))
			return
		}
		in.Quantity = &n
	}
	if v, set := c.GetPostForm("color"); set {
		in.Color = &v
	}
	if v, set := c.GetPostForm("size"); set {
		in.Size = &v
	}
	if v, set := c.GetPostForm("status"); set {
		in.Status = &v
	}
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		in.Image = f
		in.ImageFilename = file.Filename
		in.ImageType = file.Header.Get("Content-Type")
	}

	p, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Product id is invalid.", nil))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": id}})
}

func (h *ProductsHandler) Image(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Product id is invalid.", nil))
		return
	}
	p, err := h.svc.Repo().Get(c.Request.Context(), id)
	if err != nil {
		failProduct(c, err)
		return
	}
	b, err := h.svc.ImageBytes(c.Request.Context(), p.ImageKey)
	if err != nil {
		failProduct(c, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(b), b)
}

func failProduct(c *gin.Context, err error) {
	switch {
	case errors.Is(err, products.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
	case errors.Is(err, products.ErrCategoryNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Category not found."))
	case errors.Is(err, products.ErrBrandNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Brand not found."))
	case errors.Is(err, products.ErrImageNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Image not found."))
	case errors.Is(err, products.ErrImageRequired):
		middleware.Fail(c, apperr.InvalidErr("Image is required.", nil))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
