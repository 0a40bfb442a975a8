package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateTitleDTO for creating a title. Genres and category are referenced
// by slug, mirroring their external identifiers.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,min=1,max=300"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description" binding:"omitempty,max=5000"`
	Genres      []string `json:"genres" binding:"omitempty,dive,min=1,max=100"`
	Category    string   `json:"category" binding:"omitempty,min=1,max=100"`
}

// UpdateTitleDTO for partial title updates
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=300"`
	Year        *int      `json:"year"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	Genres      *[]string `json:"genres" binding:"omitempty,dive,min=1,max=100"`
	Category    *string   `json:"category" binding:"omitempty,min=1,max=100"`
}

// TitleResponse for returning title information. Rating is null until the
// title has at least one review.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description string            `json:"description,omitempty"`
	Rating      *int              `json:"rating"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Genres      []GenreResponse   `json:"genres"`
	CreatedAt   time.Time         `json:"created_at"`
}

// FromModelToTitleResponse converts a Title model to TitleResponse DTO
func FromModelToTitleResponse(t *models.Title) *TitleResponse {
	resp := &TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Rating:      t.Rating,
		Genres:      make([]GenreResponse, 0, len(t.Genres)),
		CreatedAt:   t.CreatedAt,
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	for _, g := range t.Genres {
		resp.Genres = append(resp.Genres, GenreFromModel(g))
	}
	return resp
}

// PaginatedTitleResponse for returning paginated titles
type PaginatedTitleResponse struct {
	Data       []TitleResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// NewPaginatedTitleResponse creates a paginated title response
func NewPaginatedTitleResponse(data []TitleResponse, total, page, pageSize int) *PaginatedTitleResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedTitleResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
