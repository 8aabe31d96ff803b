package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/server/http/dto"
	"github.com/virebo/lanthandel/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated customer id from context.
func CurrentUserID(c *gin.Context) uuid.UUID {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := val.(uuid.UUID)
	return id
}

// respondError answers a failed operation. Business failures keep HTTP 200
// with success=false and a customer-facing message; unexpected errors are 500.
func respondError(c *gin.Context, err error) {
	var (
		stockErr   *domainErrors.InsufficientStockError
		missingErr *domainErrors.MissingFieldsError
		missing    *domainErrors.ProductNotFoundError
	)
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusOK, dto.Fail(stockErr.Error()))
	case errors.As(err, &missingErr):
		c.JSON(http.StatusOK, dto.Fail(missingErr.Error()))
	case errors.As(err, &missing):
		c.JSON(http.StatusOK, dto.Fail(missing.Error()))
	case errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusOK, dto.Fail("hittades inte"))
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusOK, dto.Fail("kontot finns redan"))
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusOK, dto.Fail("felaktig e-post eller lösenord"))
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		c.JSON(http.StatusOK, dto.Fail("ogiltig status"))
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		c.JSON(http.StatusOK, dto.Fail("otillräckligt lagersaldo"))
	case errors.Is(err, domainErrors.ErrPaymentProvider):
		c.JSON(http.StatusOK, dto.Fail("betalningen kunde inte startas"))
	default:
		c.Status(http.StatusInternalServerError)
	}
}

// bindUUID parses an id from a request field, answering a validation failure
// on malformed input.
func bindUUID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltigt id"))
		return uuid.Nil, false
	}
	return id, true
}
