package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"tasklist/internal/apperrors"
	"tasklist/internal/models"
	"tasklist/internal/repositories"

	"github.com/dgrijalva/jwt-go"
)

// AuthService handles registration, login and bearer token issuance.
type AuthService struct {
	userRepo        repositories.UserRepository
	creds           *CredentialStore
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, creds *CredentialStore, jwtSecret string, accessTokenTTL, refreshTokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		creds:           creds,
		jwtSecret:       []byte(jwtSecret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Register validates the new account fields, hashes the password and saves
// the user. The email is stored lowercased; uniqueness is checked against
// other users first and enforced again by the store's unique index on create.
func (s *AuthService) Register(username, email, rawPassword string) (*models.User, error) {
	if err := models.ValidateUsername(username); err != nil {
		return nil, err
	}

	normalized := models.NormalizeEmail(email)
	if err := models.ValidateEmail(normalized); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailExists(normalized, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if taken {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := s.creds.Hash(rawPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    normalized,
		Password: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user by email and password and issues an access
// token bound to their email. Lookup and verification failures collapse into
// the same wrong-credentials error so account existence is not revealed.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrWrongCredentials
		}
		return nil, "", err
	}

	if !s.creds.Verify(password, user.Password) {
		return nil, "", apperrors.ErrWrongCredentials
	}

	// A successful login always clears the disabled flag, re-enabling the
	// account. Carried over from the reference behavior; pending product
	// confirmation whether disabled accounts should stay locked out.
	if user.IsDisabled {
		user.IsDisabled = false
		if err := s.userRepo.Update(user); err != nil {
			return nil, "", fmt.Errorf("failed to re-enable account on login: %w", err)
		}
	}

	token, err := s.IssueToken(user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken creates a signed short-lived access token with the user's
// email as subject.
func (s *AuthService) IssueToken(email string) (string, error) {
	return s.signToken(email, s.accessTokenTTL)
}

// IssueRefreshToken creates a signed long-lived refresh token with the
// user's email as subject.
func (s *AuthService) IssueRefreshToken(email string) (string, error) {
	return s.signToken(email, s.refreshTokenTTL)
}

func (s *AuthService) signToken(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the email identity the
// token was issued for. Any parse or validation failure fails closed.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return "", apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", apperrors.ErrInvalidToken
	}
	return subject, nil
}
