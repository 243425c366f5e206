package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "armentum/internal/errors"
)

// TokenKind discriminates the three token flavors the service issues.
type TokenKind string

const (
	// TokenKindAccess authorizes API requests; subject is the user id and
	// the claims carry the role list frozen at issuance time.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is used solely to mint a new token pair; subject is
	// the user id.
	TokenKindRefresh TokenKind = "refresh"
	// TokenKindVerification confirms email ownership; subject is the email.
	TokenKindVerification TokenKind = "verification"
)

// Claims represents the JWT payload for every token kind.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	Kind  string   `json:"typ"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 signed tokens. There is no
// revocation list for access tokens: a stolen token stays valid until its
// natural expiry.
type JWTService struct {
	secret          []byte
	accessTTL       time.Duration
	refreshTTL      time.Duration
	verificationTTL time.Duration
}

// NewJWTService creates a token service with the given secret and lifetimes.
func NewJWTService(secret string, accessTTL, refreshTTL, verificationTTL time.Duration) *JWTService {
	return &JWTService{
		secret:          []byte(secret),
		accessTTL:       accessTTL,
		refreshTTL:      refreshTTL,
		verificationTTL: verificationTTL,
	}
}

// RefreshTTL exposes the refresh lifetime so the token store can align its TTL.
func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// GenerateAccessToken issues an access token embedding the user's roles.
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, roles []string) (string, error) {
	return s.sign(&Claims{
		Roles: roles,
		Kind:  string(TokenKindAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// GenerateRefreshToken issues a refresh token. The token ID (JTI) is
// returned separately for storage in Redis.
func (s *JWTService) GenerateRefreshToken(userID uuid.UUID) (tokenID string, token string, err error) {
	tokenID = uuid.New().String()
	token, err = s.sign(&Claims{
		Kind: string(TokenKindRefresh),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return tokenID, token, err
}

// GenerateVerificationToken issues a one-time email verification token.
func (s *JWTService) GenerateVerificationToken(email string) (string, error) {
	return s.sign(&Claims{
		Kind: string(TokenKindVerification),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.verificationTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a token and checks signature, expiry, kind and subject.
// A well-formed but expired token fails with ErrTokenExpired; every other
// malformation collapses to ErrInvalidToken.
func (s *JWTService) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Kind != string(kind) {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
