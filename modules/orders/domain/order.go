package domain

import (
	"time"

	shareddomain "github.com/rai/fooddelivery-go/modules/shared/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

// OrderItem is an immutable snapshot of a menu item at ordering time.
// Later catalog edits never change what the customer agreed to pay.
type OrderItem struct {
	MenuItemID          string
	MenuItemName        string
	Quantity            int
	UnitPrice           types.Money
	TotalPrice          types.Money
	SpecialInstructions string
}

// Order is the aggregate root of the orders module. All state changes go
// through its methods, which enforce the status machine and keep the
// derived amounts consistent.
type Order struct {
	shareddomain.AggregateRoot

	id          OrderID
	orderNumber string
	userID      UserRef

	restaurantID   RestaurantRef
	restaurantName string

	items []OrderItem

	subtotal    types.Money
	deliveryFee types.Money
	tax         types.Money
	totalAmount types.Money

	status        Status
	paymentStatus PaymentStatus
	paymentMethod string

	deliveryAddress      string
	deliveryPhone        string
	deliveryInstructions string
	deliveryPersonName   string
	deliveryPersonPhone  string

	estimatedDeliveryTime time.Time
	actualDeliveryTime    time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewOrderParams carries the validated inputs of order creation. The quote
// comes from ComputeTotals; the restaurant view from the catalog port.
type NewOrderParams struct {
	UserID               UserRef
	Restaurant           RestaurantView
	Quote                Quote
	DeliveryAddress      string
	DeliveryPhone        string
	DeliveryInstructions string
	PaymentMethod        string
	Now                  time.Time
}

// NewOrder creates an order in PENDING status with payment PENDING. It
// records an OrderPlaced event for the notification side.
func NewOrder(p NewOrderParams) (*Order, error) {
	if p.DeliveryAddress == "" {
		return nil, ErrDeliveryAddressRequired
	}
	if p.DeliveryPhone == "" {
		return nil, ErrDeliveryPhoneRequired
	}
	if p.PaymentMethod == "" {
		return nil, ErrPaymentMethodRequired
	}
	if len(p.Quote.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	o := &Order{
		id:                    NewOrderID(),
		orderNumber:           NewOrderNumber(now),
		userID:                p.UserID,
		restaurantID:          p.Restaurant.ID,
		restaurantName:        p.Restaurant.Name,
		items:                 p.Quote.Items,
		subtotal:              p.Quote.Subtotal,
		deliveryFee:           p.Quote.DeliveryFee,
		tax:                   p.Quote.Tax,
		totalAmount:           p.Quote.Total,
		status:                StatusPending,
		paymentStatus:         PaymentStatusPending,
		paymentMethod:         p.PaymentMethod,
		deliveryAddress:       p.DeliveryAddress,
		deliveryPhone:         p.DeliveryPhone,
		deliveryInstructions:  p.DeliveryInstructions,
		estimatedDeliveryTime: now.Add(time.Duration(p.Restaurant.DeliveryTimeMinutes) * time.Minute),
		createdAt:             now,
		updatedAt:             now,
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// RegenerateOrderNumber assigns a fresh order number. Used when the store
// reports a duplicate on insert.
func (o *Order) RegenerateOrderNumber(now time.Time) {
	o.orderNumber = NewOrderNumber(now)
}

// TransitionTo moves the order to the next fulfillment status, enforcing
// the status machine. Reaching DELIVERED stamps the actual delivery time.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !o.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	from := o.status
	o.status = next
	o.updatedAt = now
	if next == StatusDelivered {
		o.actualDeliveryTime = now
	}
	if next == StatusCancelled {
		o.AddDomainEvent(NewOrderCancelledEvent(o))
	} else {
		o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	}
	return nil
}

// Cancel is a convenience wrapper over TransitionTo(CANCELLED).
func (o *Order) Cancel(now time.Time) error {
	return o.TransitionTo(StatusCancelled, now)
}

// MarkPaymentCompleted moves the payment axis PENDING -> COMPLETED.
// COMPLETED and REFUNDED are final on this axis; FAILED may be retried,
// so a completed retry after an earlier failure is allowed.
func (o *Order) MarkPaymentCompleted(now time.Time) error {
	if o.paymentStatus == PaymentStatusCompleted || o.paymentStatus == PaymentStatusRefunded {
		return ErrPaymentStatusFinal
	}
	o.paymentStatus = PaymentStatusCompleted
	o.updatedAt = now
	return nil
}

// MarkPaymentFailed records a failed payment attempt. A completed or
// refunded order never moves back to FAILED.
func (o *Order) MarkPaymentFailed(now time.Time) error {
	if o.paymentStatus == PaymentStatusCompleted || o.paymentStatus == PaymentStatusRefunded {
		return ErrPaymentStatusFinal
	}
	o.paymentStatus = PaymentStatusFailed
	o.updatedAt = now
	return nil
}

// AssignDeliveryPerson attaches delivery personnel details to the order.
func (o *Order) AssignDeliveryPerson(name, phone string, now time.Time) error {
	if name == "" {
		return ErrDeliveryPersonRequired
	}
	if o.status.IsTerminal() {
		return ErrInvalidTransition
	}
	o.deliveryPersonName = name
	o.deliveryPersonPhone = phone
	o.updatedAt = now
	return nil
}

func (o *Order) ID() OrderID                  { return o.id }
func (o *Order) OrderNumber() string          { return o.orderNumber }
func (o *Order) UserID() UserRef              { return o.userID }
func (o *Order) RestaurantID() RestaurantRef  { return o.restaurantID }
func (o *Order) RestaurantName() string       { return o.restaurantName }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) PaymentMethod() string        { return o.paymentMethod }
func (o *Order) Subtotal() types.Money        { return o.subtotal }
func (o *Order) DeliveryFee() types.Money     { return o.deliveryFee }
func (o *Order) Tax() types.Money             { return o.tax }
func (o *Order) TotalAmount() types.Money     { return o.totalAmount }

func (o *Order) DeliveryAddress() string          { return o.deliveryAddress }
func (o *Order) DeliveryPhone() string            { return o.deliveryPhone }
func (o *Order) DeliveryInstructions() string     { return o.deliveryInstructions }
func (o *Order) DeliveryPersonName() string       { return o.deliveryPersonName }
func (o *Order) DeliveryPersonPhone() string      { return o.deliveryPersonPhone }
func (o *Order) EstimatedDeliveryTime() time.Time { return o.estimatedDeliveryTime }
func (o *Order) ActualDeliveryTime() time.Time    { return o.actualDeliveryTime }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }

// Items returns a copy of the order's item snapshots.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// ReconstituteOrderParams carries persisted state back into an aggregate.
type ReconstituteOrderParams struct {
	ID                    OrderID
	OrderNumber           string
	UserID                UserRef
	RestaurantID          RestaurantRef
	RestaurantName        string
	Items                 []OrderItem
	Subtotal              types.Money
	DeliveryFee           types.Money
	Tax                   types.Money
	TotalAmount           types.Money
	Status                Status
	PaymentStatus         PaymentStatus
	PaymentMethod         string
	DeliveryAddress       string
	DeliveryPhone         string
	DeliveryInstructions  string
	DeliveryPersonName    string
	DeliveryPersonPhone   string
	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Reconstitute rebuilds an order from persistence without validation or
// event emission.
func Reconstitute(p ReconstituteOrderParams) *Order {
	return &Order{
		id:                    p.ID,
		orderNumber:           p.OrderNumber,
		userID:                p.UserID,
		restaurantID:          p.RestaurantID,
		restaurantName:        p.RestaurantName,
		items:                 p.Items,
		subtotal:              p.Subtotal,
		deliveryFee:           p.DeliveryFee,
		tax:                   p.Tax,
		totalAmount:           p.TotalAmount,
		status:                p.Status,
		paymentStatus:         p.PaymentStatus,
		paymentMethod:         p.PaymentMethod,
		deliveryAddress:       p.DeliveryAddress,
		deliveryPhone:         p.DeliveryPhone,
		deliveryInstructions:  p.DeliveryInstructions,
		deliveryPersonName:    p.DeliveryPersonName,
		deliveryPersonPhone:   p.DeliveryPersonPhone,
		estimatedDeliveryTime: p.EstimatedDeliveryTime,
		actualDeliveryTime:    p.ActualDeliveryTime,
		createdAt:             p.CreatedAt,
		updatedAt:             p.UpdatedAt,
	}
}
