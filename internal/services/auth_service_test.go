package services_test

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"recipeapi/internal/models"
	"recipeapi/internal/repositories"
	"recipeapi/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, services.AuthConfig{
		JWTSecret:  testJWTSecret,
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_CreateAccount(t *testing.T) {
	t.Run("normalizes email and hashes password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", "Test@fake.com").Return(nil, repositories.ErrNotFound).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			args.Get(0).(*models.User).ID = 1
		}).Return(nil).Once()

		user, err := authService.CreateAccount("  Test@FAKE.com ", "testpass", services.AccountFields{Name: "Test"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.Equal(t, "Test@fake.com", user.Email)
		assert.Equal(t, "Test", user.Name)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.NotEqual(t, "testpass", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("testpass")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := newAuthService(mockRepo)

		_, err := authService.CreateAccount("   ", "testpass", services.AccountFields{})
		assert.ErrorIs(t, err, services.ErrEmailRequired)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("email already taken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", "test@fake.com").Return(&models.User{ID: 1}, nil).Once()

		_, err := authService.CreateAccount("test@fake.com", "testpass", services.AccountFields{})
		assert.ErrorIs(t, err, services.ErrEmailTaken)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("unique index backstop", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", "test@fake.com").Return(nil, repositories.ErrNotFound).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate).Once()

		_, err := authService.CreateAccount("test@fake.com", "testpass", services.AccountFields{})
		assert.ErrorIs(t, err, services.ErrEmailTaken)
	})

	t.Run("empty password is unusable", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", "test@fake.com").Return(nil, repositories.ErrNotFound).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

		user, err := authService.CreateAccount("test@fake.com", "", services.AccountFields{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(user.Password, "!"))

		mockRepo.On("GetByEmail", "test@fake.com").Return(user, nil).Twice()
		_, err = authService.Authenticate("test@fake.com", "")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		_, err = authService.Authenticate("test@fake.com", user.Password)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestAuthService_CreateElevatedAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", "admin@fake.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(u *models.User) bool {
		return u.IsStaff && u.IsSuperuser
	})).Return(nil).Once()

	user, err := authService.CreateElevatedAccount("admin@fake.com", "adminpass")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	active := &models.User{ID: 1, Email: "test@fake.com", Password: hashed(t, "testpass"), IsActive: true}
	inactive := &models.User{ID: 2, Email: "off@fake.com", Password: hashed(t, "testpass"), IsActive: false}

	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	mockRepo.On("GetByEmail", "test@fake.com").Return(active, nil)
	mockRepo.On("GetByEmail", "off@fake.com").Return(inactive, nil)
	mockRepo.On("GetByEmail", "nobody@fake.com").Return(nil, repositories.ErrNotFound)

	user, err := authService.Authenticate("test@FAKE.COM", "testpass")
	require.NoError(t, err)
	assert.Equal(t, active.ID, user.ID)

	_, err = authService.Authenticate("test@fake.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = authService.Authenticate("nobody@fake.com", "testpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = authService.Authenticate("off@fake.com", "testpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_AuthenticateRepositoryFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	mockRepo.On("GetByEmail", "test@fake.com").Return(nil, errors.New("connection reset")).Once()

	_, err := authService.Authenticate("test@fake.com", "testpass")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_Login(t *testing.T) {
	user := &models.User{ID: 7, Email: "test@fake.com", Password: hashed(t, "testpass"), IsActive: true}

	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	mockRepo.On("GetByEmail", "test@fake.com").Return(user, nil)

	token, err := authService.Login("test@fake.com", "testpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "test@fake.com", claims["email"])
	assert.NotEmpty(t, claims["jti"])

	_, err = authService.Login("test@fake.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	sign := func(method jwt.SigningMethod, key interface{}, exp time.Time) string {
		token := jwt.NewWithClaims(method, jwt.MapClaims{
			"user_id": 1,
			"exp":     exp.Unix(),
		})
		s, err := token.SignedString(key)
		require.NoError(t, err)
		return s
	}

	claims, err := authService.ValidateToken(sign(jwt.SigningMethodHS256, []byte(testJWTSecret), time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, float64(1), claims["user_id"])

	tests := map[string]string{
		"garbage":      "invalid.token.string",
		"wrong secret": sign(jwt.SigningMethodHS256, []byte("other_secret"), time.Now().Add(time.Hour)),
		"expired":      sign(jwt.SigningMethodHS256, []byte(testJWTSecret), time.Now().Add(-time.Hour)),
		"alg none":     sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, time.Now().Add(time.Hour)),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := authService.ValidateToken(token)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid token")
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("name and password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := newAuthService(mockRepo)
		user := &models.User{ID: 1, Email: "test@fake.com", Name: "Old", Password: hashed(t, "oldpass"), IsActive: true}

		mockRepo.On("Update", user).Return(nil).Once()

		name, password := "New Name", "newpassword123"
		updated, err := authService.UpdateProfile(user, services.ProfileUpdate{Name: &name, Password: &password})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "test@fake.com", updated.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(password)))
		mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("email taken by another account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := newAuthService(mockRepo)
		user := &models.User{ID: 1, Email: "test@fake.com"}

		mockRepo.On("GetByEmail", "other@fake.com").Return(&models.User{ID: 2}, nil).Once()

		email := "other@FAKE.com"
		_, err := authService.UpdateProfile(user, services.ProfileUpdate{Email: &email})
		assert.ErrorIs(t, err, services.ErrEmailTaken)
		assert.Equal(t, "test@fake.com", user.Email)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("empty email", func(t *testing.T) {
		authService := newAuthService(new(MockUserRepository))
		email := ""
		_, err := authService.UpdateProfile(&models.User{ID: 1, Email: "test@fake.com"}, services.ProfileUpdate{Email: &email})
		assert.ErrorIs(t, err, services.ErrEmailRequired)
	})
}

func TestAuthService_BootstrapAdmin(t *testing.T) {
	t.Run("disabled without email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		require.NoError(t, newAuthService(mockRepo).BootstrapAdmin("", ""))
		mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
	})

	t.Run("existing account is left alone", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", "admin@fake.com").Return(&models.User{ID: 1}, nil).Once()

		require.NoError(t, newAuthService(mockRepo).BootstrapAdmin("admin@fake.com", "adminpass"))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("creates elevated account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", "admin@fake.com").Return(nil, repositories.ErrNotFound).Twice()
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
		mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

		require.NoError(t, newAuthService(mockRepo).BootstrapAdmin("admin@fake.com", "adminpass"))
		mockRepo.AssertExpectations(t)
	})
}
