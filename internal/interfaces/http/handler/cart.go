package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// CartHandler serves the visitor's cart. The cart id comes from the
// session cookie, so no sign-in is needed.
type CartHandler struct {
	BaseHandler
	cart *cartapp.Service
}

// NewCartHandler creates a CartHandler
func NewCartHandler(svc *cartapp.Service) *CartHandler {
	return &CartHandler{cart: svc}
}

func (h *CartHandler) cartID(c *gin.Context) (string, bool) {
	id := middleware.CartID(c)
	if id == "" {
		h.BadRequest(c, "No cart session")
		return "", false
	}
	return id, true
}

func (h *CartHandler) summary(c *gin.Context, cartID string) {
	summary, err := h.cart.Summary(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Show godoc
// @Summary      Show the cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Router       /cart [get]
func (h *CartHandler) Show(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}
	h.summary(c, cartID)
}

// Add godoc
// @Summary      Add a product to the cart
// @Description  Adds to the quantity when the product is already in the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.AddItemRequest true "Product and quantity"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}
	var req cartapp.AddItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.cart.AddToCart(c.Request.Context(), cartID, req.ProductID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.summary(c, cartID)
}

// Update godoc
// @Summary      Change the quantity of a cart line
// @Description  A quantity of zero removes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        product_id path int true "Product ID"
// @Param        request body cartapp.UpdateItemRequest true "New quantity"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items/{product_id} [put]
func (h *CartHandler) Update(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	var req cartapp.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.cart.UpdateQuantityInCart(c.Request.Context(), cartID, productID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.summary(c, cartID)
}

// Remove godoc
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        product_id path int true "Product ID"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Router       /cart/items/{product_id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	if err := h.cart.RemoveFromCart(c.Request.Context(), cartID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.summary(c, cartID)
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Success      204
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}
	if err := h.cart.ClearCart(c.Request.Context(), cartID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
