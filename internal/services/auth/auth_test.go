package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rud356/RemindMeServer/internal/lib/password"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// MockUserRepository реализует интерфейс UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByAccessToken(ctx context.Context, accessToken string) (*models.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthService_Register(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newNoopLogger())

	var captured models.User
	repo.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(models.User)
		}).
		Return("some-uid", nil).Once()

	uid, err := service.Register(context.Background(), "newuser", "supersecret", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "some-uid", uid)

	// Пароль никогда не сохраняется в открытом виде
	assert.NotEmpty(t, captured.UID)
	assert.NotEmpty(t, captured.Salt)
	assert.NotEqual(t, "supersecret", captured.PasswordHash)
	assert.Equal(t, password.GetHash("supersecret", captured.Salt), captured.PasswordHash)
	assert.Equal(t, "new@example.com", captured.Email)

	repo.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newNoopLogger())

	repo.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
		Return("", models.ErrAlreadyExists).Once()

	_, err := service.Register(context.Background(), "occupied", "supersecret", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	salt, err := password.NewSalt()
	require.NoError(t, err)

	user := &models.User{
		UID:          "uid-1",
		Username:     "testuser",
		Salt:         salt,
		PasswordHash: password.GetHash("correct-password", salt),
		AccessToken:  "issued-token",
	}

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockUserRepository)
		wantToken string
		wantErr   error
	}{
		{
			name:     "успешный вход",
			username: "testuser",
			password: "correct-password",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil).Once()
			},
			wantToken: "issued-token",
		},
		{
			name:     "неверный пароль",
			username: "testuser",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil).Once()
			},
			wantErr: models.ErrUnauthenticated,
		},
		{
			name:     "неизвестное имя",
			username: "ghost",
			password: "whatever",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			service := NewAuthService(repo, newNoopLogger())

			token, err := service.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveToken(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		setupMock func(*MockUserRepository)
		wantUID   string
		wantErr   error
	}{
		{
			name:  "валидный токен",
			token: "known-token",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByAccessToken", mock.Anything, "known-token").
					Return(&models.User{UID: "uid-7"}, nil).Once()
			},
			wantUID: "uid-7",
		},
		{
			name:      "пустой токен не доходит до хранилища",
			token:     "",
			setupMock: func(_ *MockUserRepository) {},
			wantErr:   models.ErrInvalidCredentials,
		},
		{
			name:  "неизвестный токен",
			token: "unknown-token",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByAccessToken", mock.Anything, "unknown-token").
					Return(nil, models.ErrInvalidCredentials).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			service := NewAuthService(repo, newNoopLogger())

			uid, err := service.ResolveToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUID, uid)
			}

			repo.AssertExpectations(t)
		})
	}
}
