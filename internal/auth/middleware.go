package auth

import (
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"inkwell/internal/errors"
)

// identityKey is the echo context key under which verified claims are stored.
const identityKey = "identity"

// Gate returns middleware that extracts a bearer token from the
// Authorization header, verifies it through the JWT service, and attaches
// the resolved claims to the request context. Missing or invalid tokens
// short-circuit the chain. The gate never fetches the user record itself;
// that is left to handlers.
func Gate(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := errors.MapErrorToHTTP(errors.ErrInvalidToken)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// CurrentUserID returns the authenticated user id attached by Gate.
func CurrentUserID(c echo.Context) (uuid.UUID, bool) {
	claims, ok := c.Get(identityKey).(*Claims)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
