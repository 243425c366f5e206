package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apperrors "armentum/internal/errors"
	"armentum/internal/model"
)

const (
	claimsContextKey = "user"
	userContextKey   = "current_user"
)

// UserResolver resolves a token subject to a stored identity.
type UserResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Gate authenticates requests and enforces role membership. Per request it
// holds no state beyond the validated token payload: the role check runs
// against the roles embedded in the access token, not the database.
type Gate struct {
	jwtService *JWTService
	users      UserResolver
}

// NewGate creates an authorization gate.
func NewGate(jwtService *JWTService, users UserResolver) *Gate {
	return &Gate{jwtService: jwtService, users: users}
}

// Authenticate validates the bearer access token and stores its claims in
// the request context. Missing or malformed tokens yield 401.
func (g *Gate) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: g.parseAccessToken,
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(err)
			if httpErr.StatusCode == http.StatusInternalServerError {
				// extraction failures (no token at all) are authentication errors
				httpErr = apperrors.MapErrorToHTTP(apperrors.ErrAuthentication)
			}
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// OptionalAuth behaves like Authenticate but yields no identity instead of
// failing when the token is absent or invalid.
func (g *Gate) OptionalAuth() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc:         g.parseAccessToken,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

func (g *Gate) parseAccessToken(c echo.Context, auth string) (interface{}, error) {
	return g.jwtService.Verify(auth, TokenKindAccess)
}

// ResolveUser loads the token subject from storage. A subject that no
// longer resolves to a user surfaces as 401; a deactivated account as 403.
func (g *Gate) ResolveUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return gateError(apperrors.ErrAuthentication)
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return gateError(apperrors.ErrInvalidToken)
			}

			user, err := g.users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return gateError(apperrors.ErrAuthentication)
				}
				return gateError(err)
			}
			if !user.IsActive {
				return gateError(apperrors.ErrInactiveUser)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// ResolveUserOptional attaches an identity when a valid token subject
// resolves to an active user, and proceeds anonymously otherwise.
func (g *Gate) ResolveUserOptional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return next(c)
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return next(c)
			}
			user, err := g.users.FindByID(c.Request().Context(), userID)
			if err == nil && user.IsActive {
				c.Set(userContextKey, user)
			}
			return next(c)
		}
	}
}

// RequireRoles grants access when the token-embedded role list contains any
// of the required roles. Roles revoked after issuance keep working until
// the access token expires.
func (g *Gate) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return gateError(apperrors.ErrAuthentication)
			}
			for _, have := range claims.Roles {
				for _, want := range roles {
					if have == want {
						return next(c)
					}
				}
			}
			return gateError(apperrors.ErrInsufficientPermissions)
		}
	}
}

// CurrentUser returns the resolved identity for the request, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}

// CurrentClaims returns the validated token claims for the request, if any.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok
}

func gateError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
