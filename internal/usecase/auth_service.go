package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/Tedbot2000/todo-genie/internal/repository"
)

// PasswordHasher - хеширование и проверка паролей
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
}

// TokenIssuer - выпуск и проверка access token
type TokenIssuer interface {
	GenerateAccessToken(userID int, username string) (string, error)
	ValidateAccessToken(tokenString string) (*entity.JWTClaims, error)
}

type AuthService struct {
	userRepo        repository.IUserRepository
	passwordManager PasswordHasher
	jwtManager      TokenIssuer
}

func NewAuthService(
	userRepo repository.IUserRepository,
	passwordManager PasswordHasher,
	jwtManager TokenIssuer,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		passwordManager: passwordManager,
		jwtManager:      jwtManager,
	}
}

// CreateUser создает пользователя без выдачи токена
func (s *AuthService) CreateUser(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || utf8.RuneCountInString(username) > entity.MaxUsernameLength {
		return nil, entity.ErrInvalidUsername
	}
	if utf8.RuneCountInString(req.Password) < entity.MinPasswordLength {
		return nil, entity.ErrInvalidPassword
	}

	// Проверяем, что пользователь с таким логином не существует
	existingUser, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, entity.ErrUserExists
	}

	passwordHash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, username, passwordHash)
	if err != nil {
		if err == entity.ErrUserExists {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Register регистрирует нового пользователя и сразу логинит его
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.LoginResponse, error) {
	user, err := s.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login логинит пользователя
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrInvalidCredentials
	}

	if !s.passwordManager.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate проверяет токен и возвращает id пользователя
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, entity.ErrUnauthorized
	}

	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUnauthorized, err)
	}

	// пользователь мог быть удален после выдачи токена
	user, err := s.userRepo.GetById(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrUnauthorized
	}

	return user, nil
}

func (s *AuthService) issue(user *entity.User) (*entity.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &entity.LoginResponse{
		User:        user,
		AccessToken: accessToken,
	}, nil
}
