package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"app/internal/config"
	"app/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims)
	signed, err := tok.SignedString(key)
	assert.NoError(t, err)
	return signed
}

func validClaims(userID string, role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

// AuthJWTを通したリクエストを実行し、ハンドラまで届けばcontext値を返す
func runAuthJWT(t *testing.T, authz string) (*httptest.ResponseRecorder, interface{}, interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID, gotRole interface{}
	h := middleware.AuthJWT(config.Config{JWTSecret: testSecret})(func(c echo.Context) error {
		gotID = c.Get(middleware.CtxUserIDKey)
		gotRole = c.Get(middleware.CtxUserRoleKey)
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	return rec, gotID, gotRole
}

func TestAuthJWT_NoHeader(t *testing.T) {
	rec, _, _ := runAuthJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadScheme(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("1", "USER"))
	rec, _, _ := runAuthJWT(t, "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadSignature(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), validClaims("1", "USER"))
	rec, _, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// HS256以外のアルゴリズムは拒否する
func TestAuthJWT_WrongAlgorithm(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims("1", "USER"))
	rec, _, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims("1", "USER")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
	rec, _, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Success_SetsContext(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("42", "ADMIN"))
	rec, gotID, gotRole := runAuthJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotID)
	assert.Equal(t, "ADMIN", gotRole)
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()

	run := func(role interface{}) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(middleware.CtxUserRoleKey, role)
		}
		h := middleware.AdminRoleGuard()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, h(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run("ADMIN"))
	assert.Equal(t, http.StatusForbidden, run("USER"))
	assert.Equal(t, http.StatusForbidden, run(nil))
}
