package handler

import (
	promotionapp "github.com/gearshop/backend/internal/application/promotion"
	"github.com/gin-gonic/gin"
)

// CouponHandler handles coupon API endpoints
type CouponHandler struct {
	BaseHandler
	coupons *promotionapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(coupons *promotionapp.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

// RegisterRoutes registers coupon routes
func (h *CouponHandler) RegisterRoutes(rg *gin.RouterGroup) {
	coupons := rg.Group("/coupons")
	{
		coupons.POST("", h.Create)
		coupons.GET("", h.List)
		coupons.GET("/:id", h.GetByID)
		coupons.GET("/validate/:code", h.Validate)
		coupons.POST("/:id/deactivate", h.Deactivate)
		coupons.DELETE("/:id", h.Delete)
	}
}

// Create creates a new coupon
func (h *CouponHandler) Create(c *gin.Context) {
	var req promotionapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	coupon, err := h.coupons.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, coupon)
}

// List retrieves a paginated coupon list
func (h *CouponHandler) List(c *gin.Context) {
	var filter promotionapp.CouponListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.coupons.ListCoupons(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID retrieves a coupon by ID
func (h *CouponHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.coupons.GetCoupon(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// Validate checks whether a coupon code can currently be applied
func (h *CouponHandler) Validate(c *gin.Context) {
	result, err := h.coupons.ValidateCoupon(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate withdraws a coupon
func (h *CouponHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.coupons.DeactivateCoupon(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete soft-deletes a coupon
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.coupons.DeleteCoupon(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
