package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitecel/portfolio-api/internal/config"
	"github.com/sitecel/portfolio-api/internal/middleware"
	"github.com/sitecel/portfolio-api/internal/models"
	"github.com/sitecel/portfolio-api/internal/repository"
	"github.com/sitecel/portfolio-api/internal/service"
	"github.com/sitecel/portfolio-api/internal/testutil"
	"github.com/sitecel/portfolio-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerIntegrationSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	userRepo    *repository.UserRepository
	authService *service.AuthService
	router      *gin.Engine
}

func (s *AuthHandlerIntegrationSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	require.NoError(s.T(), logger.Init(false))

	s.testDB = testutil.SetupTestDatabase(s.T())
	s.userRepo = repository.NewUserRepository(s.testDB.DB)
	s.authService = service.NewAuthService(s.userRepo, &config.Config{
		SecretKey:      "auth-handler-test-secret",
		Algorithm:      "HS256",
		AccessTokenTTL: time.Hour,
	})

	authHandler := NewAuthHandler(s.authService)

	s.router = gin.New()
	v1 := s.router.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", middleware.AuthMiddleware(s.authService), authHandler.Me)
}

func (s *AuthHandlerIntegrationSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthHandlerIntegrationSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthHandlerIntegrationSuite) createUser(email, password string, isActive bool) *models.User {
	user, err := testutil.CreateTestUser(email, password, "Test User", true)
	require.NoError(s.T(), err)
	user.IsActive = isActive
	require.NoError(s.T(), s.userRepo.Create(user))
	return user
}

func (s *AuthHandlerIntegrationSuite) postLogin(username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerIntegrationSuite) TestLogin_Success() {
	// Arrange
	s.createUser("admin@sitecel.cl", "Admin123456", true)

	// Act
	w := s.postLogin("admin@sitecel.cl", "Admin123456")

	// Assert
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(s.T(), body["access_token"])
	assert.Equal(s.T(), "bearer", body["token_type"])
}

func (s *AuthHandlerIntegrationSuite) TestLogin_BadCredentialsAreIndistinguishable() {
	// Arrange
	s.createUser("admin@sitecel.cl", "Admin123456", true)

	// Act
	unknownEmail := s.postLogin("nobody@sitecel.cl", "Admin123456")
	wrongPassword := s.postLogin("admin@sitecel.cl", "WrongPassword")

	// Assert: byte-identical 401s, so nothing leaks about which part failed
	assert.Equal(s.T(), http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(s.T(), http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(s.T(), unknownEmail.Body.String(), wrongPassword.Body.String())
	assert.Equal(s.T(), "Bearer", unknownEmail.Header().Get("WWW-Authenticate"))
	assert.Contains(s.T(), unknownEmail.Body.String(), "Email o contraseña incorrectos")
}

func (s *AuthHandlerIntegrationSuite) TestLogin_InactiveAccount() {
	// Arrange
	s.createUser("former@sitecel.cl", "Former123456", false)

	// Act
	w := s.postLogin("former@sitecel.cl", "Former123456")

	// Assert
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Usuario inactivo")
}

func (s *AuthHandlerIntegrationSuite) TestLogin_MissingFields() {
	w := s.postLogin("", "")

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Contains(s.T(), w.Body.String(), "detail")
}

func (s *AuthHandlerIntegrationSuite) TestMe_Success() {
	// Arrange: log in and reuse the issued token
	user := s.createUser("admin@sitecel.cl", "Admin123456", true)
	login := s.postLogin("admin@sitecel.cl", "Admin123456")
	require.Equal(s.T(), http.StatusOK, login.Code)

	var loginBody map[string]string
	require.NoError(s.T(), json.Unmarshal(login.Body.Bytes(), &loginBody))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody["access_token"])

	// Act
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(s.T(), user.ID.String(), body["id"])
	assert.Equal(s.T(), "admin@sitecel.cl", body["email"])
	assert.Equal(s.T(), true, body["is_admin"])
	assert.NotContains(s.T(), w.Body.String(), "password", "Password hash must never be serialized")
}

func (s *AuthHandlerIntegrationSuite) TestMe_MissingToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerIntegrationSuite) TestMe_MalformedAuthorizationHeader() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Token abc123")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Bearer")
}

func (s *AuthHandlerIntegrationSuite) TestMe_InvalidToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Could not validate credentials")
}

func (s *AuthHandlerIntegrationSuite) TestMe_DeactivatedAfterIssue() {
	// Arrange
	user := s.createUser("admin@sitecel.cl", "Admin123456", true)
	login := s.postLogin("admin@sitecel.cl", "Admin123456")
	require.Equal(s.T(), http.StatusOK, login.Code)

	var loginBody map[string]string
	require.NoError(s.T(), json.Unmarshal(login.Body.Bytes(), &loginBody))

	require.NoError(s.T(), s.testDB.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("is_active", false).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody["access_token"])

	// Act
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Usuario inactivo")
}

func TestAuthHandlerIntegrationSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerIntegrationSuite))
}
