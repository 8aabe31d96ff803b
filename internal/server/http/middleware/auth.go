package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgAuth "github.com/virebo/lanthandel/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for the authenticated customer id.
	UserIDContextKey = "userID"
	// SellerContextKey is a gin context key marking a seller session.
	SellerContextKey = "seller"

	customerCookieName = "lanthandel_token"
	sellerCookieName   = "lanthandel_seller_token"
)

// TokenParser validates session tokens and returns their subject and role.
type TokenParser interface {
	ParseToken(token string) (string, pkgAuth.Role, error)
}

// AuthRequired ensures a customer session before accessing the handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, role, ok := parseSession(c, parser, customerCookieName)
		if !ok || role != pkgAuth.RoleCustomer {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, err := uuid.Parse(subject)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// SellerRequired ensures a seller session before accessing the handler.
func SellerRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, role, ok := parseSession(c, parser, sellerCookieName)
		if !ok || role != pkgAuth.RoleSeller {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(SellerContextKey, subject)
		c.Next()
	}
}

func parseSession(c *gin.Context, parser TokenParser, cookieName string) (string, pkgAuth.Role, bool) {
	token := extractToken(c, cookieName)
	if token == "" {
		return "", "", false
	}
	subject, role, err := parser.ParseToken(token)
	if err != nil {
		return "", "", false
	}
	return subject, role, true
}

func extractToken(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes the customer session cookie to the response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(customerCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearAuthCookie expires the customer session cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(customerCookieName, "", -1, "/", "", false, true)
}

// SetSellerCookie writes the seller session cookie to the response.
func SetSellerCookie(c *gin.Context, token string) {
	c.SetCookie(sellerCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearSellerCookie expires the seller session cookie.
func ClearSellerCookie(c *gin.Context) {
	c.SetCookie(sellerCookieName, "", -1, "/", "", false, true)
}
