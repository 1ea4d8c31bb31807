// Package contracts defines public event contracts for inter-module communication.
// Modules should import event types from here, NOT from other module's domain packages.
package contracts

import "github.com/rai/fooddelivery-go/modules/shared/events"

const (
	OrderPlacedEventType events.EventType = "orders.OrderPlaced"
)

// OrderPlacedEvent is published when a customer places an order.
type OrderPlacedEvent struct {
	events.BaseEvent
	OrderID      string
	OrderNumber  string
	UserID       string
	RestaurantID string
	TotalAmount  int64
	Currency     string
}

func NewOrderPlacedEvent(orderID, orderNumber, userID, restaurantID string, totalAmount int64, currency string) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseEvent:    events.NewBaseEvent(OrderPlacedEventType, orderID),
		OrderID:      orderID,
		OrderNumber:  orderNumber,
		UserID:       userID,
		RestaurantID: restaurantID,
		TotalAmount:  totalAmount,
		Currency:     currency,
	}
}
