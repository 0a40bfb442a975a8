package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type GenreService interface {
	List(ctx context.Context, search string) ([]dto.GenreResponse, error)
	Create(ctx context.Context, actor *models.User, in dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(ctx context.Context, actor *models.User, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) List(ctx context.Context, search string) ([]dto.GenreResponse, error) {
	list, err := s.repo.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GenreResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, dto.GenreFromModel(g))
	}
	return resp, nil
}

func (s *genreService) Create(ctx context.Context, actor *models.User, in dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if !CanManageCatalog(actor) {
		return nil, ErrPermissionDenied
	}

	genre := &models.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.repo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}

	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, actor *models.User, slug string) error {
	if !CanManageCatalog(actor) {
		return ErrPermissionDenied
	}

	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
