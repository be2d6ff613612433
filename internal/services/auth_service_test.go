package services_test

import (
	"testing"
	"time"

	"tasklist/internal/apperrors"
	"tasklist/internal/models"
	"tasklist/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) SetDisabled(id uint, disabled bool) error {
	args := m.Called(id, disabled)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) EmailExists(email string, excludeID uint) (bool, error) {
	args := m.Called(email, excludeID)
	return args.Bool(0), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func newTestAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, services.NewCredentialStore(), testJWTSecret, 12*time.Hour, 6*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	mockRepo.On("EmailExists", "test@example.com", uint(0)).Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("testuser", "Test@Example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email, "email must be stored lowercased")
	assert.NotEqual(t, "password123", user.Password, "raw password must never be persisted")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterEmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	mockRepo.On("EmailExists", "taken@example.com", uint(0)).Return(true, nil).Once()

	_, err := authService.Register("testuser", "Taken@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterInvalidInput(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	_, err := authService.Register("", "test@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUsernameRequired)

	_, err = authService.Register("testuser", "not-an-email", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	mockRepo.On("EmailExists", "test@example.com", uint(0)).Return(false, nil).Once()
	_, err = authService.Register("testuser", "test@example.com", "")
	assert.ErrorIs(t, err, apperrors.ErrEmptyPassword)

	// No Create call should ever have been made.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       1,
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashed),
	}

	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()

	loggedIn, token, err := authService.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "test@example.com", claims["sub"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginReenablesDisabledAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:         2,
		Username:   "disableduser",
		Email:      "disabled@example.com",
		Password:   string(hashed),
		IsDisabled: true,
	}

	mockRepo.On("GetByEmail", "disabled@example.com").Return(user, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(u *models.User) bool {
		return u.ID == 2 && !u.IsDisabled
	})).Return(nil).Once()

	loggedIn, token, err := authService.Login("disabled@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, loggedIn.IsDisabled)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginWrongCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       1,
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashed),
	}

	// Wrong password.
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	_, _, err := authService.Login("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrWrongCredentials)

	// Unknown email collapses into the same error.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()
	_, _, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrWrongCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	token, err := authService.IssueToken("test@example.com")
	assert.NoError(t, err)

	email, err := authService.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", email)

	// Garbage token.
	_, err = authService.VerifyToken("invalid.token.string")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.VerifyToken(expiredString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Token signed with a different secret.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("other_secret"))
	_, err = authService.VerifyToken(forgedString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_RefreshTokenOutlivesAccessToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	refresh, err := authService.IssueRefreshToken("test@example.com")
	assert.NoError(t, err)

	parsed, err := jwt.Parse(refresh, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.Greater(t, time.Until(exp), 5*24*time.Hour)
}
