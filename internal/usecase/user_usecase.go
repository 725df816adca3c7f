package usecase

import (
	"context"
	"net/http"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"
)

type UserUsecase struct {
	users repo.UserRepository
}

// DI
func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

type UpdateProfileInput struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
}

type UserListOutput struct {
	Users      []UserDTO `json:"users"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Size       int       `json:"size"`
	TotalPages int64     `json:"total_pages"`
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID int64) (UserDTO, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

// UpdateProfile は本人のプロフィール更新。role/status/emailは触らない。
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UserDTO, error) {
	if in.FullName == "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "full_name is required")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.FullName = in.FullName
	user.PhoneNumber = in.PhoneNumber
	user.Gender = normalizeGender(in.Gender)
	user.Address = in.Address

	if err := u.users.Update(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

func (u *UserUsecase) ListUsers(ctx context.Context, page int, size int) (UserListOutput, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	users, total, err := u.users.List(ctx, page, size)
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, m := range users {
		dtos = append(dtos, toUserDTO(m))
	}

	return UserListOutput{
		Users:      dtos,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: (total + int64(size) - 1) / int64(size),
	}, nil
}

// UpdateUserStatus は管理者によるアカウント有効/無効の切替。
func (u *UserUsecase) UpdateUserStatus(ctx context.Context, targetUserID int64, status string) (UserDTO, error) {
	next := model.UserStatus(status)
	if next != model.UserStatusActive && next != model.UserStatusInactive {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	user, err := u.users.FindByID(ctx, targetUserID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.Status = next
	if err := u.users.Update(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}
