package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront-service/internal/entity"
	"storefront-service/internal/service"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func userIDParam(c echo.Context) (int, error) {
	return strconv.Atoi(c.QueryParam("userId"))
}

// ListItems serves a user's raw cart rows --> GET /cart?userId=
func (h *CartHandler) ListItems(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	items, err := h.cartService.GetItems(c.Request().Context(), userID)
	if err != nil {
		return jsonError(c, err)
	}
	if items == nil {
		items = []*entity.CartItem{}
	}

	return c.JSON(200, items)
}

// Summary serves the joined cart with line totals --> GET /cart/summary?userId=
func (h *CartHandler) Summary(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	view, err := h.cartService.GetCartView(c.Request().Context(), userID)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, view)
}

// Count serves the cart badge number --> GET /cart/count?userId=
func (h *CartHandler) Count(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	count, err := h.cartService.BadgeCount(c.Request().Context(), userID)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]int{"count": count})
}

// AddItem adds a product to the cart, merging quantities when the same
// product, size and color is already there --> POST /cart
func (h *CartHandler) AddItem(c echo.Context) error {
	item := entity.CartItem{}
	if err := c.Bind(&item); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if item.UserID == 0 || item.ProductID == 0 {
		return badRequest(c, "userId and productId are required")
	}

	added, err := h.cartService.AddItem(c.Request().Context(), &item)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, added)
}

// UpdateQuantity sets one row's quantity --> PATCH /cart/:id
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	body := struct {
		Quantity int `json:"quantity"`
	}{}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	item, err := h.cartService.SetQuantity(c.Request().Context(), id, body.Quantity)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, item)
}

// RemoveItem deletes one row --> DELETE /cart/:id
func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	if err := h.cartService.RemoveItem(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{"message": "Item removed"})
}

// Clear empties a user's cart --> DELETE /cart?userId=
func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.cartService.Clear(c.Request().Context(), userID); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{"message": "Cart cleared"})
}
