package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armentum/internal/auth"
	"armentum/internal/config"
	apperrors "armentum/internal/errors"
	"armentum/internal/mailer"
	"armentum/internal/model"
	"armentum/internal/repository"
)

// TokenPair is an access/refresh token pair issued to a client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// AuthService handles registration, login, token refresh and email
// verification.
type AuthService interface {
	Register(ctx context.Context, email, password, nombre string, esAdmin bool) (*model.User, []string, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*model.User, []string, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	VerifyEmail(ctx context.Context, token string) (alreadyVerified bool, err error)
	Logout(ctx context.Context, refreshToken string) error
	RolesFor(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type authService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     *mailer.Mailer
	cfg        *config.Config
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mail *mailer.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:      users,
		roles:      roles,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     mail,
		cfg:        cfg,
	}
}

// Register creates a user with a hashed password and the default "corista"
// role, dispatches the verification email in the background, and issues a
// token pair.
func (s *authService) Register(ctx context.Context, email, password, nombre string, esAdmin bool) (*model.User, []string, *TokenPair, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, nil, nil, apperrors.ErrEmailAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, nil, nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Nombre:       nombre,
		IsActive:     true,
		// development skips the verification round-trip
		EmailVerified: s.cfg.Environment == "development",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.assignInitialRole(ctx, user.ID, esAdmin); err != nil {
		return nil, nil, nil, err
	}

	s.dispatchVerificationEmail(user.Email)

	roles, err := s.roles.NamesForUser(ctx, user.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load roles: %w", err)
	}
	pair, err := s.issueTokens(ctx, user.ID, roles)
	if err != nil {
		return nil, nil, nil, err
	}
	return user, roles, pair, nil
}

// assignInitialRole assigns "admin" when requested and it exists, falling
// back to "corista" which is created on first use if missing.
func (s *authService) assignInitialRole(ctx context.Context, userID uuid.UUID, esAdmin bool) error {
	if esAdmin {
		role, err := s.roles.FindByName(ctx, model.RoleAdmin)
		if err == nil {
			return s.roles.Assign(ctx, userID, role.ID)
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("find admin role: %w", err)
		}
	}

	role, err := s.roles.FindOrCreateByName(ctx, model.RoleCorista, "Rol corista")
	if err != nil {
		return fmt.Errorf("find corista role: %w", err)
	}
	return s.roles.Assign(ctx, userID, role.ID)
}

func (s *authService) dispatchVerificationEmail(email string) {
	token, err := s.jwtService.GenerateVerificationToken(email)
	if err != nil {
		log.Printf("generate verification token for %s: %v", email, err)
		return
	}
	// fire and forget: delivery failures never surface to the caller
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendVerificationEmail(ctx, email, token); err != nil {
			log.Printf("send verification email to %s: %v", email, err)
		}
	}()
}

// Login authenticates credentials and issues a token pair. Wrong email and
// wrong password are indistinguishable to the caller; a deactivated
// account with correct credentials is reported as inactive.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, []string, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, nil, apperrors.ErrAuthentication
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil, nil, apperrors.ErrAuthentication
	}
	if !user.IsActive {
		return nil, nil, nil, apperrors.ErrInactiveUser
	}

	roles, err := s.roles.NamesForUser(ctx, user.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load roles: %w", err)
	}
	pair, err := s.issueTokens(ctx, user.ID, roles)
	if err != nil {
		return nil, nil, nil, err
	}
	return user, roles, pair, nil
}

// Refresh rotates the token pair: the presented refresh token is validated
// against its stored JTI, revoked, and replaced along with a fresh access
// token carrying the user's current roles.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtService.Verify(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if storedUserID.String() != claims.Subject {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, storedUserID)
	if err != nil {
		return nil, apperrors.ErrAuthentication
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveUser
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	roles, err := s.roles.NamesForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	return s.issueTokens(ctx, user.ID, roles)
}

// VerifyEmail marks the token's subject email as verified. Verifying twice
// is harmless.
func (s *authService) VerifyEmail(ctx context.Context, token string) (bool, error) {
	claims, err := s.jwtService.Verify(token, auth.TokenKindVerification)
	if err != nil {
		return false, err
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, apperrors.ErrUserNotFound
		}
		return false, fmt.Errorf("find user: %w", err)
	}

	if user.EmailVerified {
		return true, nil
	}
	user.EmailVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	return false, nil
}

// Logout revokes the stored refresh token. Access tokens stay valid until
// expiry; there is no blacklist.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.Verify(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return err
	}
	return s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
}

// RolesFor returns the current role names for a user.
func (s *authService) RolesFor(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.roles.NamesForUser(ctx, userID)
}

func (s *authService) issueTokens(ctx context.Context, userID uuid.UUID, roles []string) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(userID, roles)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, userID, s.jwtService.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.AccessTokenMinutes * 60,
	}, nil
}
