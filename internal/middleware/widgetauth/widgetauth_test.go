package widgetauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func probe(router *gin.Engine, authorization string) (*httptest.ResponseRecorder, string) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w, w.Header().Get("X-Widget-User")
}

func routerEchoingUserID(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Decode(secret))
	router.GET("/probe", func(c *gin.Context) {
		c.Header("X-Widget-User", c.GetString(UserIDKey))
		c.Status(http.StatusOK)
	})
	return router
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestDecodeExtractsUserID(t *testing.T) {
	router := routerEchoingUserID(testSecret)

	raw := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": "partner-user-9",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w, userID := probe(router, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partner-user-9", userID)
}

func TestDecodeMissingHeaderStillServes(t *testing.T) {
	router := routerEchoingUserID(testSecret)

	w, userID := probe(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, userID)
}

func TestDecodeGarbageTokenStillServes(t *testing.T) {
	router := routerEchoingUserID(testSecret)

	w, userID := probe(router, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, userID)
}

func TestDecodeWrongSecretStillServesAnonymously(t *testing.T) {
	router := routerEchoingUserID(testSecret)

	raw := signedToken(t, "a-different-secret", jwt.MapClaims{
		"user_id": "partner-user-9",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w, userID := probe(router, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, userID, "a forged token must not attribute the request")
}

func TestDecodeExpiredTokenStillServesAnonymously(t *testing.T) {
	router := routerEchoingUserID(testSecret)

	raw := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": "partner-user-9",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	w, userID := probe(router, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, userID)
}
