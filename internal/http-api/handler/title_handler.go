package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

func (h *TitleHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/titles", h.List)
	router.GET("/titles/:title_id", h.GetByID)
}

func (h *TitleHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/titles", h.Create)
	router.PATCH("/titles/:title_id", h.Update)
	router.DELETE("/titles/:title_id", h.Delete)
}

// List returns titles filtered by category, genre, year and name
// GET /api/v1/titles?category=&genre=&year=&name=&page=1&page_size=20
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	year, _ := strconv.Atoi(c.Query("year"))
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Year:         year,
		Name:         c.Query("name"),
	}

	titles, err := h.titleService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, titles)
}

// GetByID returns a single title with its aggregate rating
// GET /api/v1/titles/:title_id
func (h *TitleHandler) GetByID(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	title, err := h.titleService.GetByID(c.Request.Context(), titleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

// Create adds a title to the catalog
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, title)
}

// Update applies partial changes to a title
// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), currentUser(c), titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

// Delete removes a title and its reviews
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), currentUser(c), titleID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
