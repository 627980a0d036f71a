package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
	"github.com/campusops/tpo-api/internal/service"
)

const testTokenSecret = "test-secret"

type tokenRepoStub struct{}

func (tokenRepoStub) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return nil, nil
}
func (tokenRepoStub) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	return nil, nil
}
func (tokenRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error { return nil }
func (tokenRepoStub) RevokeProfileRefreshTokens(ctx context.Context, profileID string) error {
	return nil
}
func (tokenRepoStub) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return nil
}
func (tokenRepoStub) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return nil, nil
}
func (tokenRepoStub) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	return nil
}

type auditStub struct{}

func (auditStub) Record(ctx context.Context, event models.AuditEvent) {}

func newTokenAuthService() *service.AuthService {
	return service.NewAuthService(tokenRepoStub{}, auditStub{}, nil, nil, service.AuthConfig{
		AccessTokenSecret: testTokenSecret,
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "tpo-api",
	})
}

func signTestToken(t *testing.T, profileID string) string {
	t.Helper()
	claims := &models.JWTClaims{
		ProfileID: profileID,
		Role:      models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testTokenSecret))
	require.NoError(t, err)
	return signed
}

func claimsEchoRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/resource", mw, func(c *gin.Context) {
		if value, ok := c.Get(ContextUserKey); ok {
			c.JSON(http.StatusOK, gin.H{"profile_id": value.(*models.JWTClaims).ProfileID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile_id": ""})
	})
	return router
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	router := claimsEchoRouter(JWT(newTokenAuthService()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAttachesClaims(t *testing.T) {
	router := claimsEchoRouter(JWT(newTokenAuthService()))

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "sp1"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profile_id":"sp1"`)
}

func TestOptionalJWTAllowsAnonymous(t *testing.T) {
	router := claimsEchoRouter(OptionalJWT(newTokenAuthService()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profile_id":""`)
}

func TestOptionalJWTIgnoresInvalidToken(t *testing.T) {
	router := claimsEchoRouter(OptionalJWT(newTokenAuthService()))

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profile_id":""`)
}

func TestOptionalJWTAttachesValidClaims(t *testing.T) {
	router := claimsEchoRouter(OptionalJWT(newTokenAuthService()))

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "sp7"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profile_id":"sp7"`)
}
