package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/Tedbot2000/todo-genie/internal/infrastructure/auth"
	"github.com/Tedbot2000/todo-genie/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository - мок для IUserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, username string, passwordHash string) (*entity.User, error)
	GetByIdFunc       func(ctx context.Context, id int) (*entity.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
}

var _ repository.IUserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, username string, passwordHash string) (*entity.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, username, passwordHash)
	}
	return nil, nil
}

func (m *MockUserRepository) GetById(ctx context.Context, id int) (*entity.User, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func memoryUserRepo() *MockUserRepository {
	users := make(map[string]*entity.User)
	byID := make(map[int]*entity.User)

	return &MockUserRepository{
		CreateFunc: func(ctx context.Context, username string, passwordHash string) (*entity.User, error) {
			if _, ok := users[username]; ok {
				return nil, entity.ErrUserExists
			}
			user := &entity.User{ID: len(users) + 1, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
			users[username] = user
			byID[user.ID] = user
			return user, nil
		},
		GetByIdFunc: func(ctx context.Context, id int) (*entity.User, error) {
			return byID[id], nil
		},
		GetByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
			return users[username], nil
		},
	}
}

func newTestAuthService(repo repository.IUserRepository) *AuthService {
	return NewAuthService(
		repo,
		auth.NewPasswordManagerWithCost(bcrypt.MinCost),
		auth.NewJWTManager("test-secret", time.Hour),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	service := newTestAuthService(memoryUserRepo())

	registered, err := service.Register(ctx, &entity.RegisterRequest{Username: "  alice ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "alice", registered.User.Username)
	assert.NotEqual(t, "correct horse", registered.User.PasswordHash)
	assert.NotEmpty(t, registered.AccessToken)

	loggedIn, err := service.Login(ctx, &entity.LoginRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	user, err := service.Authenticate(ctx, loggedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		req  entity.RegisterRequest
		want error
	}{
		{req: entity.RegisterRequest{Username: "", Password: "long enough"}, want: entity.ErrInvalidUsername},
		{req: entity.RegisterRequest{Username: strings.Repeat("u", 151), Password: "long enough"}, want: entity.ErrInvalidUsername},
		{req: entity.RegisterRequest{Username: "bob", Password: "short"}, want: entity.ErrInvalidPassword},
	}

	for _, tc := range cases {
		repo := &MockUserRepository{
			CreateFunc: func(ctx context.Context, username string, passwordHash string) (*entity.User, error) {
				t.Fatalf("Create must not be called for %+v", tc.req)
				return nil, nil
			},
		}
		service := newTestAuthService(repo)

		_, err := service.Register(ctx, &tc.req)
		assert.ErrorIs(t, err, tc.want)
		assert.True(t, entity.IsValidationError(err))
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	service := newTestAuthService(memoryUserRepo())

	_, err := service.Register(ctx, &entity.RegisterRequest{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	_, err = service.Register(ctx, &entity.RegisterRequest{Username: "alice", Password: "password2"})
	assert.ErrorIs(t, err, entity.ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	service := newTestAuthService(memoryUserRepo())

	_, err := service.Register(ctx, &entity.RegisterRequest{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	_, err = service.Login(ctx, &entity.LoginRequest{Username: "alice", Password: "wrong password"})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = service.Login(ctx, &entity.LoginRequest{Username: "nobody", Password: "password1"})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	repo := memoryUserRepo()
	service := newTestAuthService(repo)

	_, err := service.Authenticate(ctx, "")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	_, err = service.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	// токен, подписанный другим ключом
	other := auth.NewJWTManager("other-secret", time.Hour)
	token, err := other.GenerateAccessToken(1, "alice")
	require.NoError(t, err)
	_, err = service.Authenticate(ctx, token)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	ctx := context.Background()
	service := newTestAuthService(&MockUserRepository{})

	token, err := auth.NewJWTManager("test-secret", time.Hour).GenerateAccessToken(7, "ghost")
	require.NoError(t, err)

	_, err = service.Authenticate(ctx, token)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}
