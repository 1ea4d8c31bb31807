package domain

import "errors"

var (
	// ErrOrderNotFound indicates the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber indicates the generated order number already exists.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
	// ErrInvalidTransition indicates the requested status change is not allowed
	// from the order's current status.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrInvalidStatus indicates an unknown order status value.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrPaymentStatusFinal indicates the order's payment status has already
	// reached a final state and cannot move again.
	ErrPaymentStatusFinal = errors.New("order payment status is already final")

	// ErrRestaurantNotFound indicates the referenced restaurant does not exist.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrMenuItemNotFound indicates a referenced menu item does not exist.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrEmptyOrder indicates an order was placed with no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrInvalidQuantity indicates an item quantity below one.
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	// ErrMenuItemUnavailable indicates a referenced menu item is not orderable.
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	// ErrCrossRestaurantItem indicates an item belonging to another restaurant.
	ErrCrossRestaurantItem = errors.New("menu item does not belong to the order's restaurant")
	// ErrRestaurantUnavailable indicates the restaurant is not accepting orders.
	ErrRestaurantUnavailable = errors.New("restaurant is not accepting orders")
	// ErrCurrencyMismatch indicates mixed currencies within one order.
	ErrCurrencyMismatch = errors.New("order items must share a single currency")

	// ErrDeliveryAddressRequired indicates a missing delivery address.
	ErrDeliveryAddressRequired = errors.New("delivery address is required")
	// ErrDeliveryPhoneRequired indicates a missing delivery phone number.
	ErrDeliveryPhoneRequired = errors.New("delivery phone is required")
	// ErrPaymentMethodRequired indicates a missing payment method.
	ErrPaymentMethodRequired = errors.New("payment method is required")
	// ErrInstructionsTooLong indicates special instructions over the limit.
	ErrInstructionsTooLong = errors.New("special instructions exceed maximum length")
	// ErrDeliveryPersonRequired indicates a missing delivery person name.
	ErrDeliveryPersonRequired = errors.New("delivery person name is required")
)

// ParseStatus validates and converts a raw status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
