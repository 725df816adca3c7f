package usecase

import (
	"context"
	"net/http"
	"testing"

	"stylestore/internal/config"
	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FullName: "Taro Yamada",
		Email:    "taro@example.com",
		Password: "password123",
		Gender:   "male",
	}
}

func TestAuthUsecase_Register_CreatesUserAndCart(t *testing.T) {
	repos := newTxReposStub()
	uc := NewAuthUsecase(testConfig(), &txManagerStub{repos: repos})
	ctx := context.Background()

	repos.users.On("ExistsByEmail", ctx, "taro@example.com").Return(false, nil)
	repos.users.On("Create", ctx, mock.MatchedBy(func(u model.User) bool {
		//平文パスワードは保存されない
		return u.Email == "taro@example.com" &&
			u.Role == model.RoleUser &&
			u.Status == model.UserStatusActive &&
			u.Gender == "MALE" &&
			u.PasswordHash != "password123"
	})).Return(model.User{ID: 7, Email: "taro@example.com", FullName: "Taro Yamada", Role: model.RoleUser, Status: model.UserStatusActive}, nil)
	repos.carts.On("Create", ctx, model.Cart{UserID: 7}).Return(model.Cart{ID: 50, UserID: 7}, nil)

	out, err := uc.Register(ctx, validRegisterInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.User.ID)
	//登録直後からログイン済み扱いにできるトークンが付く
	assert.NotEmpty(t, out.AccessToken)
	repos.carts.AssertCalled(t, "Create", ctx, model.Cart{UserID: 7})
}

func TestAuthUsecase_Register_DuplicateEmailConflict(t *testing.T) {
	repos := newTxReposStub()
	uc := NewAuthUsecase(testConfig(), &txManagerStub{repos: repos})
	ctx := context.Background()

	repos.users.On("ExistsByEmail", ctx, "taro@example.com").Return(true, nil)

	_, err := uc.Register(ctx, validRegisterInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	repos.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repos.carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_ShortPasswordRejected(t *testing.T) {
	uc := NewAuthUsecase(testConfig(), &txManagerStub{repos: newTxReposStub()})

	in := validRegisterInput()
	in.Password = "abc"

	_, err := uc.Register(context.Background(), in)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	repos := newTxReposStub()
	uc := NewAuthUsecase(testConfig(), &txManagerStub{repos: repos})
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repos.users.On("FindByEmail", ctx, "taro@example.com").Return(model.User{
		ID:           7,
		Email:        "taro@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		Status:       model.UserStatusActive,
	}, nil)

	out, err := uc.Login(ctx, LoginInput{Email: "taro@example.com", Password: "password123"})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	//発行したトークンのclaimsを確認
	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["sub"])
	assert.Equal(t, "USER", claims["role"])
	assert.Equal(t, "taro@example.com", claims["email"])
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	repos := newTxReposStub()
	uc := NewAuthUsecase(testConfig(), &txManagerStub{repos: repos})
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repos.users.On("FindByEmail", ctx, "taro@example.com").Return(model.User{
		ID:           7,
		PasswordHash: string(hash),
		Status:       model.UserStatusActive,
	}, nil)

	_, err := uc.Login(ctx, LoginInput{Email: "taro@example.com", Password: "wrong"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func TestAuthUsecase_Login_UnknownEmailSameResponse(t *testing.T) {
	repos := newTxReposStub()
	uc := NewAuthUsecase(testConfig(), &txManagerStub{repos: repos})
	ctx := context.Background()

	repos.users.On("FindByEmail", ctx, "nobody@example.com").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	//存在しないメールもパスワード誤りと区別できない応答
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func TestAuthUsecase_Login_InactiveUserForbidden(t *testing.T) {
	repos := newTxReposStub()
	uc := NewAuthUsecase(testConfig(), &txManagerStub{repos: repos})
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repos.users.On("FindByEmail", ctx, "taro@example.com").Return(model.User{
		ID:           7,
		PasswordHash: string(hash),
		Status:       model.UserStatusInactive,
	}, nil)

	_, err := uc.Login(ctx, LoginInput{Email: "taro@example.com", Password: "password123"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
}
