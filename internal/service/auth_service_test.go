package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"armentum/internal/auth"
	"armentum/internal/config"
	apperrors "armentum/internal/errors"
	"armentum/internal/mailer"
	"armentum/internal/model"
)

func newTestAuthService(users *MockUserRepository, roles *MockRoleRepository, tokens *MockTokenStore) (AuthService, *auth.JWTService) {
	cfg := &config.Config{
		Environment:        "development",
		AccessTokenMinutes: 30,
		AppURL:             "http://localhost:3000",
	}
	jwtService := auth.NewJWTService("test-secret", 30*time.Minute, 7*24*time.Hour, 24*time.Hour)
	return NewAuthService(users, roles, jwtService, tokens, mailer.New(cfg), cfg), jwtService
}

func TestAuthService_Register(t *testing.T) {
	coristaRole := &model.Role{ID: uuid.New(), Nombre: model.RoleCorista}

	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository, *MockRoleRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "nueva@example.com",
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository, tokens *MockTokenStore) {
				users.On("FindByEmail", mock.Anything, "nueva@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				roles.On("FindOrCreateByName", mock.Anything, model.RoleCorista, mock.Anything).Return(coristaRole, nil)
				roles.On("Assign", mock.Anything, mock.Anything, coristaRole.ID).Return(nil)
				roles.On("NamesForUser", mock.Anything, mock.Anything).Return([]string{model.RoleCorista}, nil)
				tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "email already registered",
			email: "existente@example.com",
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository, tokens *MockTokenStore) {
				users.On("FindByEmail", mock.Anything, "existente@example.com").Return(&model.User{Email: "existente@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			roles := new(MockRoleRepository)
			tokens := new(MockTokenStore)
			tt.setupMock(users, roles, tokens)

			svc, _ := newTestAuthService(users, roles, tokens)
			user, userRoles, pair, err := svc.Register(context.Background(), tt.email, "secreto123", "Nueva Corista", false)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.True(t, user.EmailVerified)
				assert.Equal(t, []string{model.RoleCorista}, userRoles)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
				assert.Equal(t, 30*60, pair.ExpiresIn)
			}

			users.AssertExpectations(t)
			roles.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), 10)
	userID := uuid.New()

	tests := []struct {
		name          string
		password      string
		setupMock     func(*MockUserRepository, *MockRoleRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			password: "secreto123",
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository, tokens *MockTokenStore) {
				users.On("FindByEmail", mock.Anything, "corista@example.com").Return(&model.User{
					ID:           userID,
					Email:        "corista@example.com",
					PasswordHash: string(hash),
					IsActive:     true,
				}, nil)
				roles.On("NamesForUser", mock.Anything, userID).Return([]string{model.RoleCorista}, nil)
				tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, userID, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			password: "incorrecta",
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository, tokens *MockTokenStore) {
				users.On("FindByEmail", mock.Anything, "corista@example.com").Return(&model.User{
					ID:           userID,
					Email:        "corista@example.com",
					PasswordHash: string(hash),
					IsActive:     true,
				}, nil)
			},
			expectedError: apperrors.ErrAuthentication,
		},
		{
			name:     "unknown email",
			password: "secreto123",
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository, tokens *MockTokenStore) {
				users.On("FindByEmail", mock.Anything, "corista@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAuthentication,
		},
		{
			name:     "inactive account with correct credentials",
			password: "secreto123",
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository, tokens *MockTokenStore) {
				users.On("FindByEmail", mock.Anything, "corista@example.com").Return(&model.User{
					ID:           userID,
					Email:        "corista@example.com",
					PasswordHash: string(hash),
					IsActive:     false,
				}, nil)
			},
			expectedError: apperrors.ErrInactiveUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			roles := new(MockRoleRepository)
			tokens := new(MockTokenStore)
			tt.setupMock(users, roles, tokens)

			svc, _ := newTestAuthService(users, roles, tokens)
			user, _, pair, err := svc.Login(context.Background(), "corista@example.com", tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, pair.AccessToken)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	userID := uuid.New()

	t.Run("rotates the pair", func(t *testing.T) {
		users := new(MockUserRepository)
		roles := new(MockRoleRepository)
		tokens := new(MockTokenStore)
		svc, jwtService := newTestAuthService(users, roles, tokens)

		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID)
		assert.NoError(t, err)

		tokens.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, nil)
		users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, IsActive: true}, nil)
		tokens.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
		roles.On("NamesForUser", mock.Anything, userID).Return([]string{model.RoleCorista}, nil)
		tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, userID, mock.Anything).Return(nil)

		pair, err := svc.Refresh(context.Background(), refreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEqual(t, refreshToken, pair.RefreshToken)
		tokens.AssertExpectations(t)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		roles := new(MockRoleRepository)
		tokens := new(MockTokenStore)
		svc, jwtService := newTestAuthService(users, roles, tokens)

		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID)
		assert.NoError(t, err)

		tokens.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.Nil, assert.AnError)

		_, err = svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		users := new(MockUserRepository)
		roles := new(MockRoleRepository)
		tokens := new(MockTokenStore)
		svc, jwtService := newTestAuthService(users, roles, tokens)

		accessToken, err := jwtService.GenerateAccessToken(userID, nil)
		assert.NoError(t, err)

		_, err = svc.Refresh(context.Background(), accessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Run("marks email verified", func(t *testing.T) {
		users := new(MockUserRepository)
		roles := new(MockRoleRepository)
		tokens := new(MockTokenStore)
		svc, jwtService := newTestAuthService(users, roles, tokens)

		token, err := jwtService.GenerateVerificationToken("corista@example.com")
		assert.NoError(t, err)

		user := &model.User{ID: uuid.New(), Email: "corista@example.com"}
		users.On("FindByEmail", mock.Anything, "corista@example.com").Return(user, nil)
		users.On("Update", mock.Anything, user).Return(nil)

		alreadyVerified, err := svc.VerifyEmail(context.Background(), token)
		assert.NoError(t, err)
		assert.False(t, alreadyVerified)
		assert.True(t, user.EmailVerified)
		users.AssertExpectations(t)
	})

	t.Run("second verification is a no-op", func(t *testing.T) {
		users := new(MockUserRepository)
		roles := new(MockRoleRepository)
		tokens := new(MockTokenStore)
		svc, jwtService := newTestAuthService(users, roles, tokens)

		token, err := jwtService.GenerateVerificationToken("corista@example.com")
		assert.NoError(t, err)

		users.On("FindByEmail", mock.Anything, "corista@example.com").Return(&model.User{
			Email:         "corista@example.com",
			EmailVerified: true,
		}, nil)

		alreadyVerified, err := svc.VerifyEmail(context.Background(), token)
		assert.NoError(t, err)
		assert.True(t, alreadyVerified)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Logout(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockRoleRepository)
	tokens := new(MockTokenStore)
	svc, jwtService := newTestAuthService(users, roles, tokens)

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(uuid.New())
	assert.NoError(t, err)

	tokens.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	tokens.AssertExpectations(t)

	err = svc.Logout(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
