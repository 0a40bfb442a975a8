package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, titleID, reviewID int64, actor *models.User, text string) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User, text string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User) error
	GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	GetReviewComments(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// CreateComment attaches a comment to a review. Any authenticated actor
// may comment.
func (s *commentService) CreateComment(ctx context.Context, titleID, reviewID int64, actor *models.User, text string) (*dto.CommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		UserID:   actor.ID,
		Text:     text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// UpdateComment is gated to the author, moderators and admins.
func (s *commentService) UpdateComment(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User, text string) (*dto.CommentResponse, error) {
	comment, err := s.loadReviewComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !CanMutateContent(actor, comment.UserID) {
		return nil, ErrPermissionDenied
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	comment, err = s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// DeleteComment is gated to the author, moderators and admins.
func (s *commentService) DeleteComment(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User) error {
	comment, err := s.loadReviewComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !CanMutateContent(actor, comment.UserID) {
		return ErrPermissionDenied
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.loadReviewComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) GetReviewComments(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comment))
	}

	return dto.NewPaginatedCommentResponse(commentResponses, int(total), page, pageSize), nil
}

// checkReview verifies the review exists under the given title.
func (s *commentService) checkReview(ctx context.Context, titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.TitleID != titleID {
		return ErrReviewNotFound
	}
	return nil
}

// loadReviewComment fetches a comment scoped to its review and title.
func (s *commentService) loadReviewComment(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}
