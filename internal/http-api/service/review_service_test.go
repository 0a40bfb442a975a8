package service

import (
	"context"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newReviewServiceWithMocks() (ReviewService, *MockReviewRepository, *MockTitleRepository) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	svc := NewReviewService(mockReviewRepo, mockTitleRepo, nil)
	return svc, mockReviewRepo, mockTitleRepo
}

func TestCreateReview_Success(t *testing.T) {
	svc, mockReviewRepo, mockTitleRepo := newReviewServiceWithMocks()
	author := &models.User{ID: "author-id", Username: "alice", Role: models.RoleUser}

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("ExistsByTitleAndAuthor", mock.Anything, int64(1), "author-id").Return(false, nil)
	mockReviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = 7
		}).Return(nil)
	mockReviewRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Review{
		ID:      7,
		TitleID: 1,
		UserID:  "author-id",
		Text:    "great",
		Score:   9,
		User:    models.User{ID: "author-id", Username: "alice"},
	}, nil)

	review, err := svc.CreateReview(context.Background(), 1, author, dto.CreateReviewDTO{Text: "great", Score: 9})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), review.ID)
	assert.Equal(t, 9, review.Score)
	assert.Equal(t, "alice", review.Author)
	mockReviewRepo.AssertExpectations(t)
	mockTitleRepo.AssertExpectations(t)
}

func TestCreateReview_ScoreOutOfRange(t *testing.T) {
	svc, mockReviewRepo, _ := newReviewServiceWithMocks()
	author := &models.User{ID: "author-id", Role: models.RoleUser}

	for _, score := range []int{0, 11, -3} {
		review, err := svc.CreateReview(context.Background(), 1, author, dto.CreateReviewDTO{Text: "x", Score: score})

		assert.Nil(t, review)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "score", validationErr.Field)
	}
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_TitleNotFound(t *testing.T) {
	svc, _, mockTitleRepo := newReviewServiceWithMocks()
	author := &models.User{ID: "author-id", Role: models.RoleUser}

	mockTitleRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	review, err := svc.CreateReview(context.Background(), 42, author, dto.CreateReviewDTO{Text: "x", Score: 5})

	assert.Nil(t, review)
	assert.Equal(t, ErrTitleNotFound, err)
}

func TestCreateReview_AlreadyReviewed(t *testing.T) {
	svc, mockReviewRepo, mockTitleRepo := newReviewServiceWithMocks()
	author := &models.User{ID: "author-id", Role: models.RoleUser}

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("ExistsByTitleAndAuthor", mock.Anything, int64(1), "author-id").Return(true, nil)

	review, err := svc.CreateReview(context.Background(), 1, author, dto.CreateReviewDTO{Text: "x", Score: 5})

	assert.Nil(t, review)
	assert.Equal(t, ErrReviewExists, err)
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_DuplicateRace(t *testing.T) {
	svc, mockReviewRepo, mockTitleRepo := newReviewServiceWithMocks()
	author := &models.User{ID: "author-id", Role: models.RoleUser}

	// the existence check passes but a concurrent insert wins the unique index
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("ExistsByTitleAndAuthor", mock.Anything, int64(1), "author-id").Return(false, nil)
	mockReviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).Return(gorm.ErrDuplicatedKey)

	review, err := svc.CreateReview(context.Background(), 1, author, dto.CreateReviewDTO{Text: "x", Score: 5})

	assert.Nil(t, review)
	assert.Equal(t, ErrReviewExists, err)
	mockReviewRepo.AssertExpectations(t)
}

func TestUpdateReview_NotAuthor(t *testing.T) {
	svc, mockReviewRepo, _ := newReviewServiceWithMocks()
	stranger := &models.User{ID: "stranger-id", Role: models.RoleUser}

	mockReviewRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Review{
		ID: 7, TitleID: 1, UserID: "author-id",
	}, nil)

	newText := "rewritten"
	review, err := svc.UpdateReview(context.Background(), 1, 7, stranger, dto.UpdateReviewDTO{Text: &newText})

	assert.Nil(t, review)
	assert.Equal(t, ErrPermissionDenied, err)
	mockReviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateReview_ModeratorAllowed(t *testing.T) {
	svc, mockReviewRepo, _ := newReviewServiceWithMocks()
	moderator := &models.User{ID: "mod-id", Role: models.RoleModerator}

	stored := &models.Review{ID: 7, TitleID: 1, UserID: "author-id", Text: "old", Score: 3}
	mockReviewRepo.On("GetByID", mock.Anything, int64(7)).Return(stored, nil)
	mockReviewRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Review")).Return(nil)

	newScore := 8
	review, err := svc.UpdateReview(context.Background(), 1, 7, moderator, dto.UpdateReviewDTO{Score: &newScore})

	assert.NoError(t, err)
	assert.Equal(t, 8, review.Score)
	mockReviewRepo.AssertExpectations(t)
}

func TestUpdateReview_InvalidScore(t *testing.T) {
	svc, mockReviewRepo, _ := newReviewServiceWithMocks()
	author := &models.User{ID: "author-id", Role: models.RoleUser}

	mockReviewRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Review{
		ID: 7, TitleID: 1, UserID: "author-id", Score: 5,
	}, nil)

	badScore := 11
	review, err := svc.UpdateReview(context.Background(), 1, 7, author, dto.UpdateReviewDTO{Score: &badScore})

	assert.Nil(t, review)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	mockReviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteReview_WrongTitleScope(t *testing.T) {
	svc, mockReviewRepo, _ := newReviewServiceWithMocks()
	author := &models.User{ID: "author-id", Role: models.RoleUser}

	// the review exists but belongs to another title
	mockReviewRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Review{
		ID: 7, TitleID: 99, UserID: "author-id",
	}, nil)

	err := svc.DeleteReview(context.Background(), 1, 7, author)

	assert.Equal(t, ErrReviewNotFound, err)
	mockReviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteReview_AuthorAllowed(t *testing.T) {
	svc, mockReviewRepo, _ := newReviewServiceWithMocks()
	author := &models.User{ID: "author-id", Role: models.RoleUser}

	stored := &models.Review{ID: 7, TitleID: 1, UserID: "author-id"}
	mockReviewRepo.On("GetByID", mock.Anything, int64(7)).Return(stored, nil)
	mockReviewRepo.On("Delete", mock.Anything, stored).Return(nil)

	err := svc.DeleteReview(context.Background(), 1, 7, author)

	assert.NoError(t, err)
	mockReviewRepo.AssertExpectations(t)
}

func TestGetTitleReviews_Paginated(t *testing.T) {
	svc, mockReviewRepo, mockTitleRepo := newReviewServiceWithMocks()

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("GetByTitle", mock.Anything, int64(1), 2, 10).Return([]models.Review{
		{ID: 21, TitleID: 1, Score: 7, User: models.User{Username: "alice"}},
		{ID: 22, TitleID: 1, Score: 9, User: models.User{Username: "bob"}},
	}, int64(25), nil)

	page, err := svc.GetTitleReviews(context.Background(), 1, 2, 10)

	assert.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	mockReviewRepo.AssertExpectations(t)
}
