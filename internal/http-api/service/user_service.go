package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware/auth"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context, actor *models.User, search string, page, pageSize int) (*dto.PaginatedUserResponse, error)
	Create(ctx context.Context, actor *models.User, in dto.AdminCreateUserDTO) (*dto.UserResponse, error)
	Get(ctx context.Context, actor *models.User, username string) (*dto.UserResponse, error)
	Update(ctx context.Context, actor *models.User, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(ctx context.Context, actor *models.User, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, actor *models.User, search string, page, pageSize int) (*dto.PaginatedUserResponse, error) {
	if !CanAdministerUsers(actor) {
		return nil, ErrPermissionDenied
	}

	users, total, err := s.userRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	userResponses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		userResponses = append(userResponses, *dto.FromModelToUserResponse(&users[i]))
	}

	return dto.NewPaginatedUserResponse(userResponses, int(total), page, pageSize), nil
}

// Create lets an admin provision an account with an explicit role.
func (s *userService) Create(ctx context.Context, actor *models.User, in dto.AdminCreateUserDTO) (*dto.UserResponse, error) {
	if !CanAdministerUsers(actor) {
		return nil, ErrPermissionDenied
	}
	if in.Username == "me" {
		return nil, &ValidationError{Field: "username", Message: "this username is not allowed"}
	}

	if _, err := s.userRepo.FindByUsername(ctx, in.Username); err == nil {
		return nil, ErrNameInUse
	}
	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := models.Role(in.Role)
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: in.Username,
		Email:    in.Email,
		Password: hashedPassword,
		Role:     role,
		Bio:      in.Bio,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameInUse
		}
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

// Get resolves "me" (or the actor's own username) to the actor's record;
// any other username requires admin authority.
func (s *userService) Get(ctx context.Context, actor *models.User, username string) (*dto.UserResponse, error) {
	if IsSelf(actor, username) {
		user, err := s.userRepo.FindByID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		return dto.FromModelToUserResponse(user), nil
	}

	if !CanAdministerUsers(actor) {
		return nil, ErrPermissionDenied
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// Update applies partial changes. On the self-service path the role field
// is read-only; only admins may change roles.
func (s *userService) Update(ctx context.Context, actor *models.User, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error) {
	self := IsSelf(actor, username)
	if !self && !CanAdministerUsers(actor) {
		return nil, ErrPermissionDenied
	}

	var user *models.User
	var err error
	if self {
		user, err = s.userRepo.FindByID(ctx, actor.ID)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, username)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Password != nil {
		hashed, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if in.Role != nil && !self {
		user.Role = models.Role(*in.Role)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

// Delete removes an account. Deleting your own account through this
// endpoint is rejected as a disallowed method, even for admins.
func (s *userService) Delete(ctx context.Context, actor *models.User, username string) error {
	if IsSelf(actor, username) {
		return ErrMethodNotAllowed
	}
	if !CanAdministerUsers(actor) {
		return ErrPermissionDenied
	}

	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
