package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"stylestore/internal/config"
	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

type AuthUsecase struct {
	cfg config.Config
	tx  repo.TransactionManager
}

// DI
func NewAuthUsecase(cfg config.Config, tx repo.TransactionManager) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, tx: tx}
}

type RegisterInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

type LoginOutput struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
}

func toUserDTO(u model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Gender:      u.Gender,
		Address:     u.Address,
		Role:        string(u.Role),
		Status:      string(u.Status),
	}
}

// Register は会員登録。ユーザーとカートを同一トランザクションで作り、
// 登録後そのままログイン状態になるようトークンも返す。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (LoginOutput, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	if in.FullName == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "full_name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 6 {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var created model.User

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		exists, err := r.Users().ExistsByEmail(ctx, in.Email)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusConflict, "email already registered")
		}

		user, err := r.Users().Create(ctx, model.User{
			FullName:     in.FullName,
			Email:        in.Email,
			PasswordHash: string(pwHash),
			PhoneNumber:  in.PhoneNumber,
			Gender:       normalizeGender(in.Gender),
			Address:      in.Address,
			Role:         model.RoleUser,
			Status:       model.UserStatusActive,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//ユーザーと同時にカートも作る
		if _, err := r.Carts().Create(ctx, model.Cart{UserID: user.ID}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created = user
		return nil
	})

	if err != nil {
		return LoginOutput{}, err
	}

	token, expiresIn, err := u.issueAccessToken(created)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{
		User:        toUserDTO(created),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}

// Login はメール＋パスワード認証でJWTを返す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if in.Email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	var user model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		found, err := r.Users().FindByEmail(ctx, in.Email)
		if err == repo.ErrNotFound {
			//存在しないメールもパスワード誤りと同じ応答にする
			return NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		user = found
		return nil
	})
	if err != nil {
		return LoginOutput{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}

	//停止ユーザーはログイン不可
	if user.Status != model.UserStatusActive {
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "account is inactive")
	}

	token, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{
		User:        toUserDTO(user),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}

// jwt発行
func (u *AuthUsecase) issueAccessToken(user model.User) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  string(user.Role),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int(accessTokenTTL.Seconds()), nil
}

func normalizeGender(g string) string {
	switch strings.ToUpper(strings.TrimSpace(g)) {
	case "MALE":
		return "MALE"
	case "FEMALE":
		return "FEMALE"
	default:
		return "OTHER"
	}
}
