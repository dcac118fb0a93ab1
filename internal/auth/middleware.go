package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "shopkart/internal/errors"
	"shopkart/internal/model"
	"shopkart/internal/repository"
)

// actorContextKey is where the session middleware stores validated claims.
const actorContextKey = "user"

// SessionMiddleware verifies the session cookie and attaches the decoded
// claims to the request. Missing, invalid, expired and revoked tokens all
// short-circuit with a 401.
func SessionMiddleware(jwtService *JWTService, tokenStore TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  actorContextKey,
		TokenLookup: "cookie:" + SessionCookieName,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}
			if revoked, _ := tokenStore.IsTokenRevoked(c.Request().Context(), claims.ID); revoked {
				return nil, errors.New("token revoked")
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.NewAuthError("authentication required")
		},
	})
}

// ClaimsFromContext returns the claims attached by SessionMiddleware.
func ClaimsFromContext(c echo.Context) (*Claims, error) {
	claims, ok := c.Get(actorContextKey).(*Claims)
	if !ok {
		return nil, apperrors.NewAuthError("authentication required")
	}
	return claims, nil
}

// RequireAdmin allows only actors whose user record carries the admin role.
// The token holds just the user id, so the role is read from the database.
func RequireAdmin(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := ClaimsFromContext(c)
			if err != nil {
				return err
			}
			actorID, err := claims.ActorID()
			if err != nil {
				return apperrors.NewAuthError("authentication required")
			}
			user, err := users.FindByID(c.Request().Context(), actorID)
			if err != nil {
				return apperrors.NewAuthError("authentication required")
			}
			if user.Role != model.RoleAdmin {
				return apperrors.NewForbiddenError("admin access required")
			}
			return next(c)
		}
	}
}
