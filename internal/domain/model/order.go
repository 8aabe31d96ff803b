package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentType selects how an order is paid.
type PaymentType string

const (
	PaymentTypeCOD    PaymentType = "COD"
	PaymentTypeOnline PaymentType = "Online"
)

// OrderStatus describes order fulfillment lifecycle. Values are the
// customer-facing Swedish strings persisted with the order.
type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "Väntar på betalning"
	OrderStatusPaymentReceived OrderStatus = "Betalning mottagen"
	OrderStatusProcessing      OrderStatus = "Under behandling"
	OrderStatusShipped         OrderStatus = "Skickad"
	OrderStatusDelivered       OrderStatus = "Levererad"
	OrderStatusCancelled       OrderStatus = "Avbruten"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusAwaitingPayment: {},
	OrderStatusPaymentReceived: {},
	OrderStatusProcessing:      {},
	OrderStatusShipped:         {},
	OrderStatusDelivered:       {},
	OrderStatusCancelled:       {},
}

// Valid reports whether s is one of the six known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := validOrderStatuses[s]
	return ok
}

// CODStatus tracks physical hand-off progress of a cash-on-delivery order.
type CODStatus string

const (
	CODStatusNotShipped     CODStatus = "Ej skickad"
	CODStatusSentToAgent    CODStatus = "Skickad till ombud"
	CODStatusAtAgent        CODStatus = "Hos ombud"
	CODStatusReadyForPickup CODStatus = "Redo för upphämtning"
	CODStatusPickedUp       CODStatus = "Upphämtad"
	CODStatusReturned       CODStatus = "Returnerad"
)

var validCODStatuses = map[CODStatus]struct{}{
	CODStatusNotShipped:     {},
	CODStatusSentToAgent:    {},
	CODStatusAtAgent:        {},
	CODStatusReadyForPickup: {},
	CODStatusPickedUp:       {},
	CODStatusReturned:       {},
}

// Valid reports whether s is one of the six known COD statuses.
func (s CODStatus) Valid() bool {
	_, ok := validCODStatuses[s]
	return ok
}

type codDerivation struct {
	status OrderStatus
	paid   bool
}

// codEffects is the closed derivation table from COD sub-status to the parent
// order status and paid flag. Sub-statuses absent from the table keep the
// current order status and mark the order unpaid.
var codEffects = map[CODStatus]codDerivation{
	CODStatusPickedUp:       {status: OrderStatusDelivered, paid: true},
	CODStatusReturned:       {status: OrderStatusCancelled, paid: false},
	CODStatusReadyForPickup: {status: OrderStatusShipped, paid: false},
}

// DeriveFromCODStatus returns the order status and paid flag implied by a COD
// sub-status change. current is returned unchanged when the sub-status has no
// derivation effect.
func DeriveFromCODStatus(current OrderStatus, cod CODStatus) (OrderStatus, bool) {
	if effect, ok := codEffects[cod]; ok {
		return effect.status, effect.paid
	}
	return current, false
}

// OrderItem is a single order line. Name and UnitPrice are snapshots of the
// product at placement time.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int64
	UnitPrice int64
}

// CODDetails carries delivery-tracking data for cash-on-delivery orders.
type CODDetails struct {
	TrackingNumber    string
	EstimatedDelivery time.Time
	Amount            int64
	Status            CODStatus
}

// Order represents a checkout attempt and its fulfillment lifecycle.
// Amount is tax inclusive, in the smallest charged currency unit.
type Order struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Items        []OrderItem
	Amount       int64
	AddressID    uuid.UUID
	PaymentType  PaymentType
	DeliveryDate time.Time
	IsPaid       bool
	Status       OrderStatus
	COD          *CODDetails
	SessionID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
