package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context, search string) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, actor *models.User, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, actor *models.User, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	list, err := s.repo.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, dto.CategoryFromModel(c))
	}
	return resp, nil
}

func (s *categoryService) Create(ctx context.Context, actor *models.User, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if !CanManageCatalog(actor) {
		return nil, ErrPermissionDenied
	}

	category := &models.Category{Name: in.Name, Slug: in.Slug}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}

	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

// Delete removes a category; titles referencing it keep existing with a
// null category.
func (s *categoryService) Delete(ctx context.Context, actor *models.User, slug string) error {
	if !CanManageCatalog(actor) {
		return ErrPermissionDenied
	}

	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
