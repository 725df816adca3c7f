package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":   float64(7),
		"role":  "USER",
		"email": "taro@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func TestJWTVerifier_VerifyClaims_Roundtrip(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	claims, err := v.VerifyClaims(signToken(t, "test-secret", validClaims()))

	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, "taro@example.com", claims.Email)
}

func TestJWTVerifier_VerifyClaims_WrongSecret(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	_, err := v.VerifyClaims(signToken(t, "other-secret", validClaims()))

	assert.Error(t, err)
}

func TestJWTVerifier_VerifyClaims_ExpiredToken(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	_, err := v.VerifyClaims(signToken(t, "test-secret", claims))

	assert.Error(t, err)
}

func TestJWTVerifier_VerifyClaims_WrongSigningMethod(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, validClaims())
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = v.VerifyClaims(signed)

	assert.Error(t, err)
}

func TestJWTVerifier_VerifyClaims_MissingRole(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	claims := validClaims()
	delete(claims, "role")

	_, err := v.VerifyClaims(signToken(t, "test-secret", claims))

	assert.Error(t, err)
}

func TestJWTVerifier_Verify_StringSub(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	claims := validClaims()
	claims["sub"] = "7"

	userID, role, err := v.Verify(signToken(t, "test-secret", claims))

	assert.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, "USER", role)
}

func callAuthJWT(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AuthJWT(NewJWTVerifier("test-secret"))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuthJWT_SetsContextValues(t *testing.T) {
	token := signToken(t, "test-secret", validClaims())

	rec, c, err := callAuthJWT(t, "Bearer "+token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(CtxUserIDKey))
	assert.Equal(t, "USER", c.Get(CtxUserRoleKey))
	assert.Equal(t, "taro@example.com", c.Get(CtxUserEmailKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _, err := callAuthJWT(t, "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	rec, _, err := callAuthJWT(t, "Token abcdef")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_InvalidToken(t *testing.T) {
	rec, _, err := callAuthJWT(t, "Bearer not-a-jwt")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard_AllowsAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxUserRoleKey, "ADMIN")

	err := AdminRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoleGuard_RejectsUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxUserRoleKey, "USER")

	err := AdminRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
