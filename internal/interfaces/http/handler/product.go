package handler

import (
	catalogapp "github.com/gearshop/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	products  *catalogapp.ProductService
	discounts *catalogapp.DiscountService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService, discounts *catalogapp.DiscountService) *ProductHandler {
	return &ProductHandler{
		products:  products,
		discounts: discounts,
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)
		products.GET("/slug/:slug", h.GetBySlug)
		products.POST("/:id/variants", h.AddVariant)
		products.POST("/:id/publish", h.Publish)
		products.POST("/:id/disable", h.Disable)
		products.DELETE("/:id", h.Delete)
	}
	variants := rg.Group("/variants")
	{
		variants.GET("/:id/discounts", h.ListDiscounts)
	}
	discounts := rg.Group("/discounts")
	{
		discounts.POST("", h.CreateDiscount)
		discounts.POST("/:id/deactivate", h.DeactivateDiscount)
	}
}

// Create creates a new draft product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// List retrieves a paginated product list
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID retrieves a product by ID
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetBySlug retrieves a product by slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.products.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// AddVariant adds a variant to a product
func (h *ProductHandler) AddVariant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.AddVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.products.AddVariant(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Publish makes a product visible in the catalog
func (h *ProductHandler) Publish(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.products.PublishProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Disable removes a product from sale
func (h *ProductHandler) Disable(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.products.DisableProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete soft-deletes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListDiscounts retrieves the discounts currently valid for a variant
func (h *ProductHandler) ListDiscounts(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	discounts, err := h.discounts.ListValidDiscounts(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, discounts)
}

// CreateDiscount creates a variant discount
func (h *ProductHandler) CreateDiscount(c *gin.Context) {
	var req catalogapp.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	discount, err := h.discounts.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, discount)
}

// DeactivateDiscount withdraws a discount
func (h *ProductHandler) DeactivateDiscount(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid discount ID")
		return
	}

	if err := h.discounts.DeactivateDiscount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
