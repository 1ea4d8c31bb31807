package domain

import "github.com/rai/fooddelivery-go/modules/shared/types"

// MaxSpecialInstructionsLen bounds per-item special instructions.
const MaxSpecialInstructionsLen = 200

// DefaultTaxRateBasisPoints is the tax rate applied when no policy override
// is configured (10%).
const DefaultTaxRateBasisPoints int64 = 1000

// PricingPolicy carries the tunable inputs of order pricing.
type PricingPolicy struct {
	TaxRateBasisPoints int64
}

// DefaultPricingPolicy returns the standard pricing policy.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{TaxRateBasisPoints: DefaultTaxRateBasisPoints}
}

// Line pairs a resolved menu item with the requested quantity and
// per-item instructions.
type Line struct {
	Item                MenuItemView
	Quantity            int
	SpecialInstructions string
}

// Quote is the priced outcome of an order: the immutable item snapshots and
// the derived amounts. Total is exactly Subtotal + DeliveryFee + Tax.
type Quote struct {
	Items       []OrderItem
	Subtotal    types.Money
	DeliveryFee types.Money
	Tax         types.Money
	Total       types.Money
}

// ComputeTotals prices an order against the given restaurant. It validates
// every line (quantity, availability, restaurant ownership, instruction
// length, currency) and produces the item snapshots and derived amounts.
// It is a pure function: same inputs, same quote.
func ComputeTotals(policy PricingPolicy, restaurant RestaurantView, lines []Line) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, ErrEmptyOrder
	}
	if !restaurant.Active {
		return Quote{}, ErrRestaurantUnavailable
	}

	items := make([]OrderItem, 0, len(lines))
	var subtotal types.Money
	for i, line := range lines {
		if line.Quantity < 1 {
			return Quote{}, ErrInvalidQuantity
		}
		if !line.Item.Available {
			return Quote{}, ErrMenuItemUnavailable
		}
		if line.Item.RestaurantID != restaurant.ID {
			return Quote{}, ErrCrossRestaurantItem
		}
		if len(line.SpecialInstructions) > MaxSpecialInstructionsLen {
			return Quote{}, ErrInstructionsTooLong
		}

		lineTotal := line.Item.Price.Multiply(int64(line.Quantity))
		items = append(items, OrderItem{
			MenuItemID:          line.Item.ID,
			MenuItemName:        line.Item.Name,
			Quantity:            line.Quantity,
			UnitPrice:           line.Item.Price,
			TotalPrice:          lineTotal,
			SpecialInstructions: line.SpecialInstructions,
		})

		if i == 0 {
			subtotal = lineTotal
			continue
		}
		sum, err := subtotal.Add(lineTotal)
		if err != nil {
			return Quote{}, ErrCurrencyMismatch
		}
		subtotal = sum
	}

	if restaurant.DeliveryFee.Currency() != subtotal.Currency() {
		return Quote{}, ErrCurrencyMismatch
	}

	tax := subtotal.ApplyBasisPoints(policy.TaxRateBasisPoints)
	total, err := subtotal.Add(restaurant.DeliveryFee)
	if err != nil {
		return Quote{}, ErrCurrencyMismatch
	}
	total, err = total.Add(tax)
	if err != nil {
		return Quote{}, ErrCurrencyMismatch
	}

	return Quote{
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: restaurant.DeliveryFee,
		Tax:         tax,
		Total:       total,
	}, nil
}
