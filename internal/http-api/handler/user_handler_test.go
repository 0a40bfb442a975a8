package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, actor *models.User, search string, page, pageSize int) (*dto.PaginatedUserResponse, error) {
	args := m.Called(ctx, actor, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedUserResponse), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, actor *models.User, in dto.AdminCreateUserDTO) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, actor *models.User, username string) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, actor *models.User, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, username, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actor *models.User, username string) error {
	args := m.Called(ctx, actor, username)
	return args.Error(0)
}

func setupUserRouter(svc service.UserService, claims *service.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(svc)

	authed := r.Group("/api/v1")
	authed.Use(fakeAuth(claims))
	h.RegisterRoutes(authed)
	return r
}

func TestUserGet_Me(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, testClaims())

	mockSvc.On("Get", mock.Anything, mock.AnythingOfType("*models.User"), "me").
		Return(&dto.UserResponse{ID: "user-id", Username: "alice", Role: "user"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	mockSvc.AssertExpectations(t)
}

func TestUserDelete_Self_MethodNotAllowed(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, testClaims())

	mockSvc.On("Delete", mock.Anything, mock.AnythingOfType("*models.User"), "me").
		Return(service.ErrMethodNotAllowed)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestUserList_Forbidden(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, testClaims())

	mockSvc.On("List", mock.Anything, mock.AnythingOfType("*models.User"), "", 1, 20).
		Return(nil, service.ErrPermissionDenied)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
