package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/server/http/dto"
	"github.com/virebo/lanthandel/internal/usecase"
)

// OrderHandler covers checkout and order management endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// PlaceCOD handles POST /api/order/cod.
func (h *OrderHandler) PlaceCOD(c *gin.Context) {
	req, items, addressID, ok := h.bindPlacement(c)
	if !ok {
		return
	}

	order, err := h.facade.PlaceCODOrder(c.Request.Context(), CurrentUserID(c), items, addressID, req.DeliveryDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderResponse{Response: dto.OK("beställning mottagen"), Order: dto.NewOrderPayload(order)})
}

// PlaceOnline handles POST /api/order/stripe.
func (h *OrderHandler) PlaceOnline(c *gin.Context) {
	req, items, addressID, ok := h.bindPlacement(c)
	if !ok {
		return
	}

	result, err := h.facade.PlaceOnlineOrder(c.Request.Context(), CurrentUserID(c), items, addressID, req.DeliveryDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderResponse{
		Response: dto.OK("betalning startad"),
		Order:    dto.NewOrderPayload(result.Order),
		URL:      result.RedirectURL,
	})
}

// UserOrders handles GET /api/order/user.
func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.facade.UserOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Response: dto.OK(""), Orders: dto.NewOrderListPayload(orders)})
}

// OrderState handles GET /api/order/status/:orderId.
func (h *OrderHandler) OrderState(c *gin.Context) {
	id, ok := bindUUID(c, c.Param("orderId"))
	if !ok {
		return
	}

	state, err := h.facade.OrderState(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderStateResponse{Response: dto.OK(""), Status: state.Status, IsPaid: state.IsPaid})
}

// SellerOrders handles GET /api/order/seller.
func (h *OrderHandler) SellerOrders(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Response: dto.OK(""), Orders: dto.NewOrderListPayload(orders)})
}

// UpdateStatus handles PUT /api/order/:orderId.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := bindUUID(c, c.Param("orderId"))
	if !ok {
		return
	}
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderResponse{Response: dto.OK("status uppdaterad"), Order: dto.NewOrderPayload(order)})
}

// UpdateCODStatus handles PUT /api/order/:orderId/cod-status.
func (h *OrderHandler) UpdateCODStatus(c *gin.Context) {
	id, ok := bindUUID(c, c.Param("orderId"))
	if !ok {
		return
	}
	var req dto.CODStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return
	}

	order, err := h.facade.UpdateCODStatus(c.Request.Context(), id, model.CODStatus(req.CODStatus))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderResponse{Response: dto.OK("leveransstatus uppdaterad"), Order: dto.NewOrderPayload(order)})
}

// Delete handles DELETE /api/order/:orderId.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := bindUUID(c, c.Param("orderId"))
	if !ok {
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("beställning borttagen"))
}

func (h *OrderHandler) bindPlacement(c *gin.Context) (*dto.PlaceOrderRequest, []usecase.CheckoutItem, uuid.UUID, bool) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Fail("ogiltiga uppgifter"))
		return nil, nil, uuid.Nil, false
	}
	addressID, ok := bindUUID(c, req.AddressID)
	if !ok {
		return nil, nil, uuid.Nil, false
	}

	items := make([]usecase.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, ok := bindUUID(c, item.ProductID)
		if !ok {
			return nil, nil, uuid.Nil, false
		}
		items = append(items, usecase.CheckoutItem{ProductID: productID, Quantity: item.Quantity})
	}
	return &req, items, addressID, true
}
