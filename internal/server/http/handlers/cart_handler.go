package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virebo/lanthandel/internal/server/http/dto"
)

// CartHandler syncs the customer's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Update handles POST /api/cart/update.
func (h *CartHandler) Update(c *gin.Context) {
	var req dto.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}

	cart, err := h.facade.UpdateCart(c.Request.Context(), CurrentUserID(c), req.CartItems)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Response: dto.OK("varukorg uppdaterad"), CartItems: cart})
}
