package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterPublicRoutes registers the unauthenticated read routes nested
// under a title.
func (h *ReviewHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/titles/:title_id/reviews", h.ListByTitle)
	router.GET("/titles/:title_id/reviews/:review_id", h.GetByID)
}

// RegisterAuthRoutes registers the mutation routes; the caller wraps them
// in auth middleware.
func (h *ReviewHandler) RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/titles/:title_id/reviews", h.Create)
	router.PATCH("/titles/:title_id/reviews/:review_id", h.Update)
	router.DELETE("/titles/:title_id/reviews/:review_id", h.Delete)
}

// ListByTitle returns a title's reviews with pagination
// GET /api/v1/titles/:title_id/reviews?page=1&page_size=20
func (h *ReviewHandler) ListByTitle(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)

	reviews, err := h.reviewService.GetTitleReviews(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// GetByID returns a single review scoped to its title
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) GetByID(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// Create submits a review for a title; one per author per title
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), titleID, currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// Update applies partial changes to a review
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), titleID, reviewID, currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// Delete removes a review
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), titleID, reviewID, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
