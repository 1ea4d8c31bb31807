package domain

import (
	"github.com/rai/fooddelivery-go/modules/shared/events"
	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
)

const (
	// OrderStatusChangedEventType signals a fulfillment status transition.
	OrderStatusChangedEventType events.EventType = "orders.OrderStatusChanged"
	// OrderCancelledEventType signals an order cancellation.
	OrderCancelledEventType events.EventType = "orders.OrderCancelled"
)

// NewOrderPlacedEvent builds the cross-module OrderPlaced event for an order.
func NewOrderPlacedEvent(o *Order) *contracts.OrderPlacedEvent {
	return contracts.NewOrderPlacedEvent(
		o.ID().String(),
		o.OrderNumber(),
		o.UserID().String(),
		o.RestaurantID().String(),
		o.TotalAmount().Amount(),
		o.TotalAmount().Currency(),
	)
}

// OrderStatusChangedEvent records a transition between fulfillment statuses.
type OrderStatusChangedEvent struct {
	events.BaseEvent
	OrderID     string
	OrderNumber string
	From        Status
	To          Status
}

func NewOrderStatusChangedEvent(o *Order, from Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent:   events.NewBaseEvent(OrderStatusChangedEventType, o.ID().String()),
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber(),
		From:        from,
		To:          o.Status(),
	}
}

// OrderCancelledEvent records an order cancellation.
type OrderCancelledEvent struct {
	events.BaseEvent
	OrderID     string
	OrderNumber string
	UserID      string
}

func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseEvent:   events.NewBaseEvent(OrderCancelledEventType, o.ID().String()),
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber(),
		UserID:      o.UserID().String(),
	}
}
