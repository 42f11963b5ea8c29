package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"social_cases_go/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyActor is the context key for the authenticated caller
	ContextKeyActor = "actor"
)

// Claims are the bearer token claims issued by the users service
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// RequireBearer is middleware that requires a valid HS256 bearer token.
// The raw token is kept on the actor so it can be forwarded to sibling services.
func RequireBearer(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := parseUserID(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextKeyActor, services.Actor{
				UserID:    userID,
				Token:     raw,
				IPAddress: c.RealIP(),
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
			})
			return next(c)
		}
	}
}

// GetActor returns the authenticated caller, or a zero Actor outside RequireBearer
func GetActor(c echo.Context) services.Actor {
	if actor, ok := c.Get(ContextKeyActor).(services.Actor); ok {
		return actor
	}
	return services.Actor{}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func parseUserID(raw, secret string) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("token is not valid")
	}

	if claims.UserID != 0 {
		return claims.UserID, nil
	}
	// Tokens without user_id carry the user in the subject
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("token has no user")
	}
	return uint(id), nil
}
