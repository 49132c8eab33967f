package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solekicks/storefront/internal/logging"
	"github.com/solekicks/storefront/internal/models"
	"github.com/solekicks/storefront/internal/service"
)

type UserHandler struct {
	Svc *service.UserService
}

// Me returns the caller's profile, provisioning the row from token claims on
// first sight so cart and order foreign keys always resolve.
func (h *UserHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.SyncUser(ctx, &models.User{
		ID:              id.UserID,
		Email:           id.Email,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.Picture,
		Role:            id.Role,
	})
	if err != nil {
		logging.FromContext(ctx).Warn("sync user failed", "user_id", id.UserID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}
