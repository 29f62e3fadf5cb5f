package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"recipeapi/internal/models"
	"recipeapi/internal/repositories"
	"recipeapi/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// unusablePasswordPrefix marks a stored credential that no password matches.
// A bcrypt hash always starts with "$", so the two never collide.
const unusablePasswordPrefix = "!"

// AuthConfig holds the settings AuthService needs.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// AccountFields are the optional fields accepted when creating an account.
type AccountFields struct {
	Name string
}

// ProfileUpdate lists the profile fields to change. Nil fields are left as they are.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// AuthService handles business logic for accounts, authentication and tokens.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	dummyHash  []byte // compared against when the account does not exist
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)
	if err != nil {
		log.Printf("Failed to prepare dummy password hash: %v", err)
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
		dummyHash:  dummy,
	}
}

// normalizeEmail trims the address and lower-cases its domain part. The
// local part is kept as typed.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func (s *AuthService) hashPassword(password string) (string, error) {
	if password == "" {
		return unusablePasswordPrefix + uuid.NewString(), nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CreateAccount registers a new account with a normalized email and a hashed
// password. An empty password leaves the account unable to log in.
func (s *AuthService) CreateAccount(email, password string, fields AccountFields) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := s.ensureEmailFree(email); err != nil {
		return nil, err
	}

	hashed, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:    email,
		Name:     fields.Name,
		Password: hashed,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	log.Printf("Created account %d for %s", user.ID, logger.RedactEmail(email))
	return user, nil
}

// CreateElevatedAccount creates an account with staff and superuser rights.
func (s *AuthService) CreateElevatedAccount(email, password string) (*models.User, error) {
	user, err := s.CreateAccount(email, password, AccountFields{})
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to elevate account: %w", err)
	}
	return user, nil
}

func (s *AuthService) ensureEmailFree(email string) error {
	_, err := s.userRepo.GetByEmail(email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check email: %w", err)
	}
}

// Authenticate checks credentials and returns the matching active account.
// Every failure is reported as ErrInvalidCredentials.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up account: %w", err)
		}
		// Spend the same bcrypt time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if strings.HasPrefix(user.Password, unusablePasswordPrefix) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		log.Printf("Login attempt for inactive account %d", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the credentials and returns a signed token.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		return "", err
	}
	return s.IssueToken(user)
}

// IssueToken signs a JWT for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// GetAccount retrieves an account by id.
func (s *AuthService) GetAccount(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile applies the supplied fields to user and persists it.
func (s *AuthService) UpdateProfile(user *models.User, update ProfileUpdate) (*models.User, error) {
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		if email != user.Email {
			if err := s.ensureEmailFree(email); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		hashed, err := s.hashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// BootstrapAdmin creates the configured elevated account unless it already
// exists. An empty email disables it.
func (s *AuthService) BootstrapAdmin(email, password string) error {
	if email == "" {
		return nil
	}
	if _, err := s.userRepo.GetByEmail(normalizeEmail(email)); err == nil {
		log.Printf("Admin account %s already exists", logger.RedactEmail(email))
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	if _, err := s.CreateElevatedAccount(email, password); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	log.Printf("Admin account %s created", logger.RedactEmail(email))
	return nil
}
