package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront-service/internal/entity"
	"storefront-service/internal/service"
)

type OrderHandler struct {
	orderService    *service.OrderService
	checkoutService *service.CheckoutService
}

func NewOrderHandler(orderService *service.OrderService, checkoutService *service.CheckoutService) *OrderHandler {
	return &OrderHandler{orderService: orderService, checkoutService: checkoutService}
}

// ListOrders serves orders newest first, optionally scoped to one user
// and one status --> GET /orders?userId=&status=
func (h *OrderHandler) ListOrders(c echo.Context) error {
	filter := service.OrderFilter{
		Status: entity.OrderStatus(c.QueryParam("status")),
	}
	if raw := c.QueryParam("userId"); raw != "" {
		userID, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid user ID")
		}
		filter.UserID = userID
	}

	orders, err := h.orderService.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return jsonError(c, err)
	}
	if orders == nil {
		orders = []*entity.Order{}
	}

	return c.JSON(200, orders)
}

// GetOrder serves one order with item details backfilled from the
// catalog --> GET /orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, order)
}

// CreateOrder stores a pre-built order document --> POST /orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	order := entity.Order{}
	if err := c.Bind(&order); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	created, err := h.orderService.CreateOrder(c.Request().Context(), &order)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, created)
}

// UpdateStatus moves an order along pending, shipping, delivered
// --> PUT /orders/:id
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	body := struct {
		Status string `json:"status"`
	}{}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), id, entity.OrderStatus(body.Status))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, order)
}

// Checkout turns a user's cart into an order --> POST /checkout
func (h *OrderHandler) Checkout(c echo.Context) error {
	body := struct {
		UserID int `json:"userId"`
		service.CheckoutForm
	}{}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if body.UserID == 0 {
		return badRequest(c, "userId is required")
	}

	order, err := h.checkoutService.PlaceOrder(c.Request().Context(), body.UserID, body.CheckoutForm)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, order)
}
