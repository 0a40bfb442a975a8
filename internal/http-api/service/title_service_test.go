package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTitleServiceWithMocks() (TitleService, *MockTitleRepository, *MockCategoryRepository, *MockGenreRepository) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	svc := NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo, nil)
	return svc, mockTitleRepo, mockCategoryRepo, mockGenreRepo
}

func TestTitleCreate_RequiresAdmin(t *testing.T) {
	svc, mockTitleRepo, _, _ := newTitleServiceWithMocks()
	regular := &models.User{ID: "user-id", Role: models.RoleUser}

	title, err := svc.Create(context.Background(), regular, dto.CreateTitleDTO{Name: "x", Year: 2000})

	assert.Nil(t, title)
	assert.Equal(t, ErrPermissionDenied, err)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleCreate_YearValidation(t *testing.T) {
	svc, mockTitleRepo, _, _ := newTitleServiceWithMocks()
	admin := &models.User{ID: "admin-id", Role: models.RoleAdmin}

	for _, year := range []int{0, 100, -50, time.Now().Year() + 1} {
		title, err := svc.Create(context.Background(), admin, dto.CreateTitleDTO{Name: "x", Year: year})

		assert.Nil(t, title)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "year", validationErr.Field)
	}
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleCreate_ResolvesSlugs(t *testing.T) {
	svc, mockTitleRepo, mockCategoryRepo, mockGenreRepo := newTitleServiceWithMocks()
	admin := &models.User{ID: "admin-id", Role: models.RoleAdmin}

	mockCategoryRepo.On("FindBySlug", mock.Anything, "movie").Return(&models.Category{ID: 1, Name: "Movie", Slug: "movie"}, nil)
	mockGenreRepo.On("FindBySlug", mock.Anything, "drama").Return(&models.Genre{ID: 2, Name: "Drama", Slug: "drama"}, nil)
	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Title).ID = 5
		}).Return(nil)

	title, err := svc.Create(context.Background(), admin, dto.CreateTitleDTO{
		Name:     "The Example",
		Year:     1999,
		Category: "movie",
		Genres:   []string{"drama"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), title.ID)
	assert.Equal(t, "movie", title.Category.Slug)
	assert.Len(t, title.Genres, 1)
	assert.Nil(t, title.Rating) // no reviews yet
	mockTitleRepo.AssertExpectations(t)
}

func TestTitleCreate_UnknownGenre(t *testing.T) {
	svc, mockTitleRepo, _, mockGenreRepo := newTitleServiceWithMocks()
	admin := &models.User{ID: "admin-id", Role: models.RoleAdmin}

	mockGenreRepo.On("FindBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	title, err := svc.Create(context.Background(), admin, dto.CreateTitleDTO{
		Name:   "x",
		Year:   2000,
		Genres: []string{"nope"},
	})

	assert.Nil(t, title)
	assert.Equal(t, ErrGenreNotFound, err)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleCreate_UnknownCategory(t *testing.T) {
	svc, mockTitleRepo, mockCategoryRepo, _ := newTitleServiceWithMocks()
	admin := &models.User{ID: "admin-id", Role: models.RoleAdmin}

	mockCategoryRepo.On("FindBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	title, err := svc.Create(context.Background(), admin, dto.CreateTitleDTO{
		Name:     "x",
		Year:     2000,
		Category: "nope",
	})

	assert.Nil(t, title)
	assert.Equal(t, ErrCategoryNotFound, err)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleGetByID_NotFound(t *testing.T) {
	svc, mockTitleRepo, _, _ := newTitleServiceWithMocks()

	mockTitleRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	title, err := svc.GetByID(context.Background(), 42)

	assert.Nil(t, title)
	assert.Equal(t, ErrTitleNotFound, err)
}

func TestTitleGetByID_Success(t *testing.T) {
	svc, mockTitleRepo, _, _ := newTitleServiceWithMocks()

	rating := 8
	mockTitleRepo.On("GetByID", mock.Anything, int64(5)).Return(&models.Title{
		ID:     5,
		Name:   "The Example",
		Year:   1999,
		Rating: &rating,
	}, nil)

	title, err := svc.GetByID(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, "The Example", title.Name)
	assert.NotNil(t, title.Rating)
	assert.Equal(t, 8, *title.Rating)
}

func TestTitleList_PassesFilter(t *testing.T) {
	svc, mockTitleRepo, _, _ := newTitleServiceWithMocks()

	filter := repository.TitleFilter{CategorySlug: "movie", Year: 1999}
	mockTitleRepo.On("GetAll", mock.Anything, filter, 1, 20).Return([]models.Title{
		{ID: 5, Name: "The Example", Year: 1999},
	}, int64(1), nil)

	page, err := svc.List(context.Background(), filter, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, page.Data, 1)
	mockTitleRepo.AssertExpectations(t)
}

func TestTitleUpdate_RequiresAdmin(t *testing.T) {
	svc, mockTitleRepo, _, _ := newTitleServiceWithMocks()
	moderator := &models.User{ID: "mod-id", Role: models.RoleModerator}

	name := "renamed"
	title, err := svc.Update(context.Background(), moderator, 5, dto.UpdateTitleDTO{Name: &name})

	assert.Nil(t, title)
	assert.Equal(t, ErrPermissionDenied, err)
	mockTitleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTitleDelete_Success(t *testing.T) {
	svc, mockTitleRepo, _, _ := newTitleServiceWithMocks()
	admin := &models.User{ID: "admin-id", Role: models.RoleAdmin}

	mockTitleRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.Delete(context.Background(), admin, 5)

	assert.NoError(t, err)
	mockTitleRepo.AssertExpectations(t)
}

func TestTitleDelete_NotFound(t *testing.T) {
	svc, mockTitleRepo, _, _ := newTitleServiceWithMocks()
	admin := &models.User{ID: "admin-id", Role: models.RoleAdmin}

	mockTitleRepo.On("Delete", mock.Anything, int64(42)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), admin, 42)

	assert.Equal(t, ErrTitleNotFound, err)
}
