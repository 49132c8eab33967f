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

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["order_id"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req struct {
		ShippingAddress string `json:"shipping_address"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, id.UserID, req.ShippingAddress)
	if err != nil {
		logging.FromContext(ctx).Warn("place order failed", "user_id", id.UserID, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":     "order_placed",
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount,
	})
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListOrders(ctx, id.UserID, id.Role)
	if err != nil {
		logging.FromContext(ctx).Error("list orders failed", "user_id", id.UserID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := identity(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Svc.GetOrder(ctx, orderID, id.UserID, id.Role)
	if err != nil {
		logging.FromContext(ctx).Warn("get order failed", "order_id", orderID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SetStatus(ctx, orderID, req.Status)
	if err != nil {
		logging.FromContext(ctx).Warn("update order status failed", "order_id", orderID, "status", req.Status, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":     "order_status_changed",
		"order_id": order.ID,
		"status":   order.Status,
	})
	return c.JSON(http.StatusOK, order)
}
