package httpserver

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/solekicks/storefront/internal/events"
	"github.com/solekicks/storefront/internal/logging"
	"github.com/solekicks/storefront/internal/service"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetOrCreateCart(ctx, id.UserID)
	if err != nil {
		logging.FromContext(ctx).Error("get cart failed", "user_id", id.UserID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
		Size      string    `json:"size"`
		Color     string    `json:"color"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.GetOrCreateCart(ctx, id.UserID)
	if err != nil {
		logging.FromContext(ctx).Error("get cart failed", "user_id", id.UserID, "error", err)
		return httpError(err)
	}

	item, err := h.Svc.AddItem(ctx, cart.ID, req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		logging.FromContext(ctx).Warn("add cart item failed", "user_id", id.UserID, "product_id", req.ProductID, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":       "cart_item_added",
		"user_id":    id.UserID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateItemQuantity(ctx, itemID, req.Quantity)
	if err != nil {
		logging.FromContext(ctx).Warn("update cart item failed", "item_id", itemID, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":     "cart_item_updated",
		"user_id":  id.UserID,
		"item_id":  item.ID,
		"quantity": item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetOrCreateCart(ctx, id.UserID)
	if err != nil {
		logging.FromContext(ctx).Error("get cart failed", "user_id", id.UserID, "error", err)
		return httpError(err)
	}

	if err := h.Svc.ClearCart(ctx, cart.ID); err != nil {
		logging.FromContext(ctx).Error("clear cart failed", "cart_id", cart.ID, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":    "cart_cleared",
		"user_id": id.UserID,
		"cart_id": cart.ID,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.RemoveItem(ctx, itemID); err != nil {
		logging.FromContext(ctx).Error("remove cart item failed", "item_id", itemID, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":    "cart_item_removed",
		"user_id": id.UserID,
		"item_id": itemID,
	})
	return c.NoContent(http.StatusNoContent)
}
