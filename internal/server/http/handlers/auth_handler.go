package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/server/http/dto"
	"github.com/virebo/lanthandel/internal/server/http/middleware"
)

// AuthHandler processes customer registration, login and session checks.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Response: dto.OK("konto skapat"), User: userPayload(user)})
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Response: dto.OK("inloggad"), User: userPayload(user)})
}

// IsAuth handles GET /api/user/is-auth.
func (h *AuthHandler) IsAuth(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Response: dto.OK(""), User: userPayload(user)})
}

// Logout handles GET /api/user/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.JSON(http.StatusOK, dto.OK("utloggad"))
}

func userPayload(user *model.User) *dto.UserPayload {
	cart := user.Cart
	if cart == nil {
		cart = model.Cart{}
	}
	return &dto.UserPayload{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Cart:  cart,
	}
}
