package service

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/http-api/cache"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, actor *models.User, in dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, actor *models.User, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, actor *models.User, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	titleCache   *cache.TitleCache
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	titleCache *cache.TitleCache,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		titleCache:   titleCache,
	}
}

func validateYear(year int) error {
	if year <= 100 || year > time.Now().Year() {
		return &ValidationError{Field: "year", Message: "year must be greater than 100 and not in the future"}
	}
	return nil
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error) {
	titles, total, err := s.titleRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	titleResponses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		titleResponses = append(titleResponses, *dto.FromModelToTitleResponse(&titles[i]))
	}

	return dto.NewPaginatedTitleResponse(titleResponses, int(total), page, pageSize), nil
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	if cached := s.titleCache.Get(ctx, id); cached != nil {
		return dto.FromModelToTitleResponse(cached), nil
	}

	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	s.titleCache.Set(ctx, title)
	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Create(ctx context.Context, actor *models.User, in dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if !CanManageCatalog(actor) {
		return nil, ErrPermissionDenied
	}
	if err := validateYear(in.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != "" {
		category, err := s.resolveCategory(ctx, in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Update(ctx context.Context, actor *models.User, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	if !CanManageCatalog(actor) {
		return nil, ErrPermissionDenied
	}

	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validateYear(*in.Year); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := s.resolveCategory(ctx, *in.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
			title.Category = category
		}
	}
	if in.Genres != nil {
		genres, err := s.resolveGenres(ctx, *in.Genres)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	s.titleCache.Invalidate(ctx, id)

	title, err = s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if !CanManageCatalog(actor) {
		return ErrPermissionDenied
	}

	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}

	s.titleCache.Invalidate(ctx, id)
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.genreRepo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGenreNotFound
			}
			return nil, err
		}
		genres = append(genres, *genre)
	}
	return genres, nil
}
