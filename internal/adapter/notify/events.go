package notify

import (
	"encoding/json"
	"time"
)

// EventOrderConfirmation identifies the order-confirmation event type.
const EventOrderConfirmation = "OrderConfirmation"

// Envelope wraps every published event with delivery metadata.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

// ConfirmationItem is one order line in a confirmation event.
type ConfirmationItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// OrderConfirmationPayload is consumed by the mail worker that renders and
// sends the customer confirmation.
type OrderConfirmationPayload struct {
	OrderID        string             `json:"order_id"`
	UserID         string             `json:"user_id"`
	AddressID      string             `json:"address_id"`
	Amount         int64              `json:"amount"`
	PaymentType    string             `json:"payment_type"`
	DeliveryDate   time.Time          `json:"delivery_date"`
	TrackingNumber string             `json:"tracking_number,omitempty"`
	Items          []ConfirmationItem `json:"items"`
}
