package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterPublicRoutes registers the unauthenticated read routes.
func (h *CategoryHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/categories", h.List)
}

// RegisterAdminRoutes registers the mutation routes; the caller wraps them
// in auth middleware.
func (h *CategoryHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/categories", h.Create)
	router.DELETE("/categories/:slug", h.Delete)
}

// List returns all categories, optionally filtered by name substring
// GET /api/v1/categories?search=
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Delete removes a category by slug
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), currentUser(c), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
