package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/cache"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, titleID int64, actor *models.User, in dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, titleID, reviewID int64, actor *models.User, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, titleID, reviewID int64, actor *models.User) error
	GetReview(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	GetTitleReviews(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	titleCache *cache.TitleCache
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, titleCache *cache.TitleCache) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		titleCache: titleCache,
	}
}

func validateScore(score int) error {
	if score < 1 || score > 10 {
		return &ValidationError{Field: "score", Message: "score must be between 1 and 10"}
	}
	return nil
}

// CreateReview persists a review and recomputes the title's rating. The
// existence check is a fast path; the unique index catches races and both
// surface as ErrReviewExists.
func (s *reviewService) CreateReview(ctx context.Context, titleID int64, actor *models.User, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := validateScore(in.Score); err != nil {
		return nil, err
	}

	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		TitleID: titleID,
		UserID:  actor.ID,
		Text:    in.Text,
		Score:   in.Score,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	s.titleCache.Invalidate(ctx, titleID)

	// Reload with author data
	review, err = s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

// UpdateReview re-validates a supplied score and recomputes the title
// rating on success. Gated to the author, moderators and admins.
func (s *reviewService) UpdateReview(ctx context.Context, titleID, reviewID int64, actor *models.User, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.loadTitleReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !CanMutateContent(actor, review.UserID) {
		return nil, ErrPermissionDenied
	}

	if in.Score != nil {
		if err := validateScore(*in.Score); err != nil {
			return nil, err
		}
		review.Score = *in.Score
	}
	if in.Text != nil {
		review.Text = *in.Text
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	s.titleCache.Invalidate(ctx, titleID)

	review, err = s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

// DeleteReview removes a review and recomputes the title rating, which
// goes back to null when the last review disappears.
func (s *reviewService) DeleteReview(ctx context.Context, titleID, reviewID int64, actor *models.User) error {
	review, err := s.loadTitleReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !CanMutateContent(actor, review.UserID) {
		return ErrPermissionDenied
	}

	if err := s.reviewRepo.Delete(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	s.titleCache.Invalidate(ctx, titleID)
	return nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.loadTitleReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) GetTitleReviews(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	reviewResponses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, *dto.FromModelToReviewResponse(&review))
	}

	return dto.NewPaginatedReviewResponse(reviewResponses, int(total), page, pageSize), nil
}

// loadTitleReview fetches a review scoped to its title; a review reached
// through the wrong title is not found.
func (s *reviewService) loadTitleReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}
