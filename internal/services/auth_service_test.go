package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"manis/internal/models"
	"manis/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
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

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{
		Username: "opsadmin",
		Email:    "ops@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", user.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterAdmin(user)
	assert.NoError(t, err)
	// The stored password must be a bcrypt hash, not the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", user.Username).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterAdmin(user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginAndValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &models.User{ID: "user-1", Username: "opsadmin", Password: string(hashed)}

	// Successful login yields a token the service itself validates.
	mockRepo.On("GetByUsername", "opsadmin").Return(stored, nil).Once()
	token, err := authService.Login("opsadmin", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "opsadmin", claims["username"])
	mockRepo.AssertExpectations(t)

	// Wrong password fails with a generic error.
	mockRepo.On("GetByUsername", "opsadmin").Return(stored, nil).Once()
	_, err = authService.Login("opsadmin", "wrong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	// Unknown user fails with the same generic error.
	mockRepo.On("GetByUsername", "ghost").Return(nil, fmt.Errorf("user with username ghost not found")).Once()
	_, err = authService.Login("ghost", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), "test_jwt_secret")

	_, err := authService.ValidateToken("not.a.token")
	assert.Error(t, err)

	// A token signed with a different secret is rejected.
	mockRepo := new(MockUserRepository)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	mockRepo.On("GetByUsername", "opsadmin").Return(&models.User{ID: "u1", Username: "opsadmin", Password: string(hashed)}, nil).Once()
	foreign := services.NewAuthService(mockRepo, "other_secret")
	token, err := foreign.Login("opsadmin", "pw123456")
	assert.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.Error(t, err)
}
