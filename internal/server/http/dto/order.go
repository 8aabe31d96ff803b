package dto

import (
	"time"

	"github.com/virebo/lanthandel/internal/domain/model"
)

// OrderItemRequest is one requested checkout line.
type OrderItemRequest struct {
	ProductID string `json:"product"`
	Quantity  int64  `json:"quantity"`
}

// PlaceOrderRequest carries a checkout submission. The payment mode comes
// from the route.
type PlaceOrderRequest struct {
	Items        []OrderItemRequest `json:"items"`
	AddressID    string             `json:"address"`
	DeliveryDate time.Time          `json:"deliveryDate"`
}

// StatusUpdateRequest sets a new fulfillment status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// CODStatusUpdateRequest advances COD hand-off progress.
type CODStatusUpdateRequest struct {
	CODStatus string `json:"codStatus"`
}

// OrderItemPayload is an order line as returned to the UI.
type OrderItemPayload struct {
	ProductID string `json:"product"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// CODPayload is the delivery-tracking block of cash-on-delivery orders.
type CODPayload struct {
	TrackingNumber    string    `json:"trackingNumber"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	Amount            int64     `json:"amount"`
	Status            string    `json:"status"`
}

// OrderPayload is the order shape returned to the UI.
type OrderPayload struct {
	ID           string             `json:"id"`
	UserID       string             `json:"userId"`
	Items        []OrderItemPayload `json:"items"`
	Amount       int64              `json:"amount"`
	AddressID    string             `json:"address"`
	PaymentType  string             `json:"paymentType"`
	DeliveryDate time.Time          `json:"deliveryDate"`
	IsPaid       bool               `json:"isPaid"`
	Status       string             `json:"status"`
	COD          *CODPayload        `json:"codDetails,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// OrderResponse wraps a single order result. URL carries the provider
// redirect for online checkouts.
type OrderResponse struct {
	Response
	Order *OrderPayload `json:"order,omitempty"`
	URL   string        `json:"url,omitempty"`
}

// OrderListResponse wraps order listings.
type OrderListResponse struct {
	Response
	Orders []OrderPayload `json:"orders"`
}

// OrderStateResponse answers UI status polling.
type OrderStateResponse struct {
	Response
	Status string `json:"status,omitempty"`
	IsPaid bool   `json:"isPaid"`
}

// NewOrderPayload maps a domain order to its UI shape.
func NewOrderPayload(o *model.Order) *OrderPayload {
	items := make([]OrderItemPayload, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemPayload{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	payload := &OrderPayload{
		ID:           o.ID.String(),
		UserID:       o.UserID.String(),
		Items:        items,
		Amount:       o.Amount,
		AddressID:    o.AddressID.String(),
		PaymentType:  string(o.PaymentType),
		DeliveryDate: o.DeliveryDate,
		IsPaid:       o.IsPaid,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
	}
	if o.COD != nil {
		payload.COD = &CODPayload{
			TrackingNumber:    o.COD.TrackingNumber,
			EstimatedDelivery: o.COD.EstimatedDelivery,
			Amount:            o.COD.Amount,
			Status:            string(o.COD.Status),
		}
	}
	return payload
}

// NewOrderListPayload maps a slice of orders.
func NewOrderListPayload(orders []model.Order) []OrderPayload {
	out := make([]OrderPayload, 0, len(orders))
	for i := range orders {
		out = append(out, *NewOrderPayload(&orders[i]))
	}
	return out
}
