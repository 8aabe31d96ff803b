package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virebo/lanthandel/internal/server/http/dto"
)

// AddressHandler manages customer delivery addresses.
type AddressHandler struct {
	facade AddressFacade
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// Add handles POST /api/address/add.
func (h *AddressHandler) Add(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}

	address, err := h.facade.AddAddress(c.Request.Context(), CurrentUserID(c), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AddressResponse{Response: dto.OK("adress sparad"), Address: dto.NewAddressPayload(address)})
}

// List handles GET /api/address/get.
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.facade.Addresses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	payloads := make([]dto.AddressPayload, 0, len(addresses))
	for i := range addresses {
		payloads = append(payloads, *dto.NewAddressPayload(&addresses[i]))
	}
	c.JSON(http.StatusOK, dto.AddressListResponse{Response: dto.OK(""), Addresses: payloads})
}
