package handler

import (
	apptrade "github.com/campusmarket/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// CartHandler handles the buyer's cart and checkout
type CartHandler struct {
	BaseHandler
	carts *apptrade.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *apptrade.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Add puts a listing in the caller's cart. Adding it again reports already_in_cart.
func (h *CartHandler) Add(c *gin.Context) {
	buyer, ok := h.currentAccountID(c)
	if !ok {
		return
	}
	listingID, ok := h.pathID(c, "id", "Listing")
	if !ok {
		return
	}

	result, err := h.carts.AddToCart(c.Request.Context(), buyer, listingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.AlreadyInCart {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// View returns the caller's cart with its total
func (h *CartHandler) View(c *gin.Context) {
	buyer, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	cart, err := h.carts.View(c.Request.Context(), buyer)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Remove deletes one entry from the caller's cart
func (h *CartHandler) Remove(c *gin.Context) {
	buyer, ok := h.currentAccountID(c)
	if !ok {
		return
	}
	entryID, ok := h.pathID(c, "id", "Cart entry")
	if !ok {
		return
	}

	if err := h.carts.Remove(c.Request.Context(), entryID, buyer); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DeletedResponse{Deleted: true})
}

// Checkout empties the caller's cart and reports the total
func (h *CartHandler) Checkout(c *gin.Context) {
	buyer, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	result, err := h.carts.Checkout(c.Request.Context(), buyer)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
