package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "armentum/internal/errors"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret", 30*time.Minute, 7*24*time.Hour, 24*time.Hour)
}

func TestJWTService_AccessToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, []string{"admin", "corista"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token, TokenKindAccess)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, string(TokenKindAccess), claims.Kind)
	assert.Equal(t, []string{"admin", "corista"}, claims.Roles)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	tokenID, token, err := svc.GenerateRefreshToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.Verify(token, TokenKindRefresh)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Empty(t, claims.Roles)
}

func TestJWTService_VerificationToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateVerificationToken("corista@example.com")
	assert.NoError(t, err)

	claims, err := svc.Verify(token, TokenKindVerification)
	assert.NoError(t, err)
	assert.Equal(t, "corista@example.com", claims.Subject)
}

func TestJWTService_Verify_KindMismatch(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	access, err := svc.GenerateAccessToken(userID, nil)
	assert.NoError(t, err)
	_, refresh, err := svc.GenerateRefreshToken(userID)
	assert.NoError(t, err)

	// a refresh token never authorizes a request, and vice versa
	_, err = svc.Verify(access, TokenKindRefresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	_, err = svc.Verify(refresh, TokenKindAccess)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_Verify_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute, -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), nil)
	assert.NoError(t, err)

	_, err = svc.Verify(token, TokenKindAccess)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_Verify_Invalid(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	otherSvc := NewJWTService("other-secret", 30*time.Minute, time.Hour, time.Hour)
	foreign, err := otherSvc.GenerateAccessToken(userID, nil)
	assert.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Kind: string(TokenKindAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	noSubjectToken, err := noSubject.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"wrong signature", foreign},
		{"missing subject", noSubjectToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token, TokenKindAccess)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	}
}
