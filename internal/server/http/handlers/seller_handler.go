package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virebo/lanthandel/internal/server/http/dto"
	"github.com/virebo/lanthandel/internal/server/http/middleware"
)

// SellerHandler processes the backoffice session endpoints.
type SellerHandler struct {
	facade AuthFacade
}

// NewSellerHandler creates SellerHandler instance.
func NewSellerHandler(facade AuthFacade) *SellerHandler {
	return &SellerHandler{facade: facade}
}

// Login handles POST /api/seller/login.
func (h *SellerHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}

	token, err := h.facade.SellerLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetSellerCookie(c, token)
	c.JSON(http.StatusOK, dto.OK("inloggad"))
}

// IsAuth handles GET /api/seller/is-auth.
func (h *SellerHandler) IsAuth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK(""))
}

// Logout handles GET /api/seller/logout.
func (h *SellerHandler) Logout(c *gin.Context) {
	middleware.ClearSellerCookie(c)
	c.JSON(http.StatusOK, dto.OK("utloggad"))
}
