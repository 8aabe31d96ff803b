package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/server/http/dto"
)

// ProductHandler manages the product catalog endpoints.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// Add handles POST /api/product/add.
func (h *ProductHandler) Add(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}

	product, err := h.facade.AddProduct(c.Request.Context(), productFromRequest(&req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductResponse{Response: dto.OK("produkt tillagd"), Product: dto.NewProductPayload(product)})
}

// Get handles GET /api/product/id/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := bindUUID(c, c.Param("id"))
	if !ok {
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductResponse{Response: dto.OK(""), Product: dto.NewProductPayload(product)})
}

// List handles GET /api/product/list.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	payloads := make([]dto.ProductPayload, 0, len(products))
	for i := range products {
		payloads = append(payloads, *dto.NewProductPayload(&products[i]))
	}
	c.JSON(http.StatusOK, dto.ProductListResponse{Response: dto.OK(""), Products: payloads})
}

// Update handles POST /api/product/update.
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}
	id, ok := bindUUID(c, req.ID)
	if !ok {
		return
	}

	product := productFromRequest(&req)
	product.ID = id
	updated, err := h.facade.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductResponse{Response: dto.OK("produkt uppdaterad"), Product: dto.NewProductPayload(updated)})
}

// ChangeStock handles POST /api/product/stock.
func (h *ProductHandler) ChangeStock(c *gin.Context) {
	var req dto.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}
	id, ok := bindUUID(c, req.ID)
	if !ok {
		return
	}

	product, err := h.facade.ChangeStock(c.Request.Context(), id, req.InStock, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductResponse{Response: dto.OK("lagersaldo uppdaterat"), Product: dto.NewProductPayload(product)})
}

// Delete handles POST /api/product/delete.
func (h *ProductHandler) Delete(c *gin.Context) {
	var req dto.ProductDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}
	id, ok := bindUUID(c, req.ID)
	if !ok {
		return
	}

	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("produkt borttagen"))
}

func productFromRequest(req *dto.ProductRequest) *model.Product {
	return &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		OfferPrice:  req.OfferPrice,
		Quantity:    req.Quantity,
		Image:       req.Image,
	}
}
