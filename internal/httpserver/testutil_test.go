package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/solekicks/storefront/internal/events"
	authmw "github.com/solekicks/storefront/internal/middleware/auth"
	"github.com/solekicks/storefront/internal/models"
	"github.com/solekicks/storefront/internal/repo"
	"github.com/solekicks/storefront/internal/service"
)

type testEnv struct {
	E       *echo.Echo
	Repo    *repo.GormRepo
	Auth    *authmw.Middleware
	Cart    *CartHandler
	Order   *OrderHandler
	Product *ProductHandler
	User    *UserHandler
	secret  []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))

	r := repo.NewGormRepo(db)
	secret := []byte("test-jwt-secret")
	producer := events.NewProducer(nil)

	return &testEnv{
		E:       echo.New(),
		Repo:    r,
		Auth:    authmw.New(secret),
		Cart:    &CartHandler{Svc: &service.CartService{Repo: r}, Producer: producer},
		Order:   &OrderHandler{Svc: &service.OrderService{Repo: r}, Producer: producer},
		Product: &ProductHandler{Svc: &service.CatalogService{Repo: r}, Producer: producer},
		User:    &UserHandler{Svc: &service.UserService{Repo: r}},
		secret:  secret,
	}
}

func (env *testEnv) seedUser(t *testing.T, email, role string) *models.User {
	t.Helper()

	user := models.User{Email: email, Role: role}
	require.NoError(t, env.Repo.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) seedProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Category:    models.CategoryCasual,
		Stock:       stock,
	}
	require.NoError(t, env.Repo.DB.Create(&product).Error)
	return &product
}

func (env *testEnv) accessCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"role":  user.Role,
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(env.secret)
	require.NoError(t, err)

	return &http.Cookie{Name: "accessToken", Value: signed, Path: "/"}
}

func (env *testEnv) doJSON(t *testing.T, method, target string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}
