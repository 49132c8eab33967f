package auth

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/solekicks/storefront/internal/models"
)

const identityKey = "identity"

// Identity is the authenticated caller, resolved once by the middleware and
// passed explicitly into the engines. Domain code never reads ambient auth
// state. Profile fields mirror the provider's claims and may be empty.
type Identity struct {
	UserID    uuid.UUID
	Role      string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := m.identityFromCookie(c)
		if err != nil {
			return err
		}
		c.Set(identityKey, id)
		return next(c)
	}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := m.identityFromCookie(c)
		if err != nil {
			return err
		}
		if !id.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		c.Set(identityKey, id)
		return next(c)
	}
}

func FromContext(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

func (m *Middleware) identityFromCookie(c echo.Context) (Identity, error) {
	cookie, err := c.Cookie("accessToken")
	if err != nil || cookie.Value == "" {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleCustomer
	}

	email, _ := claims["email"].(string)
	firstName, _ := claims["given_name"].(string)
	lastName, _ := claims["family_name"].(string)
	picture, _ := claims["picture"].(string)

	return Identity{
		UserID:    userID,
		Role:      role,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Picture:   picture,
	}, nil
}
