package handler

import (
	catalogapp "github.com/gearshop/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category tree API endpoints
type CategoryHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.POST("", h.Create)
		categories.GET("", h.ListRoots)
		categories.GET("/:id", h.GetByID)
		categories.GET("/slug/:slug", h.GetBySlug)
		categories.GET("/:id/children", h.ListChildren)
		categories.GET("/:id/subtree", h.ListSubtree)
		categories.POST("/:id/move", h.Move)
		categories.DELETE("/:id", h.Delete)
	}
}

// Create creates a root or child category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListRoots retrieves all root categories
func (h *CategoryHandler) ListRoots(c *gin.Context) {
	roots, err := h.categories.ListRoots(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roots)
}

// GetByID retrieves a category by ID
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// GetBySlug retrieves a category by slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.categories.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// ListChildren retrieves the direct children of a category
func (h *CategoryHandler) ListChildren(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	children, err := h.categories.ListChildren(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, children)
}

// ListSubtree retrieves a category with all of its descendants
func (h *CategoryHandler) ListSubtree(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	subtree, err := h.categories.ListSubtree(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subtree)
}

// Move re-parents a category
func (h *CategoryHandler) Move(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalogapp.MoveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.categories.MoveCategory(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete soft-deletes a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
