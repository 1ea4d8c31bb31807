// Package queries contains read operations for the orders module.
package queries

import (
	"context"
	"time"

	"github.com/rai/fooddelivery-go/modules/orders/domain"
)

// MoneyDTO carries an amount in the smallest currency unit.
type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// OrderItemDTO is the API representation of an order line.
type OrderItemDTO struct {
	MenuItemID          string   `json:"menu_item_id"`
	MenuItemName        string   `json:"menu_item_name"`
	Quantity            int      `json:"quantity"`
	UnitPrice           MoneyDTO `json:"unit_price"`
	TotalPrice          MoneyDTO `json:"total_price"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// OrderDTO is the API representation of an order.
type OrderDTO struct {
	ID                    string         `json:"id"`
	OrderNumber           string         `json:"order_number"`
	UserID                string         `json:"user_id"`
	RestaurantID          string         `json:"restaurant_id"`
	RestaurantName        string         `json:"restaurant_name"`
	Items                 []OrderItemDTO `json:"items"`
	Subtotal              MoneyDTO       `json:"subtotal"`
	DeliveryFee           MoneyDTO       `json:"delivery_fee"`
	Tax                   MoneyDTO       `json:"tax"`
	TotalAmount           MoneyDTO       `json:"total_amount"`
	Status                string         `json:"status"`
	PaymentStatus         string         `json:"payment_status"`
	PaymentMethod         string         `json:"payment_method"`
	DeliveryAddress       string         `json:"delivery_address"`
	DeliveryPhone         string         `json:"delivery_phone"`
	DeliveryInstructions  string         `json:"delivery_instructions,omitempty"`
	DeliveryPersonName    string         `json:"delivery_person_name,omitempty"`
	DeliveryPersonPhone   string         `json:"delivery_person_phone,omitempty"`
	EstimatedDeliveryTime time.Time      `json:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time     `json:"actual_delivery_time,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// GetOrderQuery retrieves a single order by ID.
type GetOrderQuery struct {
	OrderID string
}

// GetOrderHandler handles order retrieval.
type GetOrderHandler struct {
	orders domain.Repository
}

func NewGetOrderHandler(orders domain.Repository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

func (h *GetOrderHandler) Handle(ctx context.Context, q GetOrderQuery) (*OrderDTO, error) {
	orderID, err := domain.ParseOrderID(q.OrderID)
	if err != nil {
		return nil, err
	}
	order, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

func toOrderDTO(o *domain.Order) *OrderDTO {
	items := o.Items()
	itemDTOs := make([]OrderItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = OrderItemDTO{
			MenuItemID:          item.MenuItemID,
			MenuItemName:        item.MenuItemName,
			Quantity:            item.Quantity,
			UnitPrice:           MoneyDTO{Amount: item.UnitPrice.Amount(), Currency: item.UnitPrice.Currency()},
			TotalPrice:          MoneyDTO{Amount: item.TotalPrice.Amount(), Currency: item.TotalPrice.Currency()},
			SpecialInstructions: item.SpecialInstructions,
		}
	}

	dto := &OrderDTO{
		ID:                    o.ID().String(),
		OrderNumber:           o.OrderNumber(),
		UserID:                o.UserID().String(),
		RestaurantID:          o.RestaurantID().String(),
		RestaurantName:        o.RestaurantName(),
		Items:                 itemDTOs,
		Subtotal:              MoneyDTO{Amount: o.Subtotal().Amount(), Currency: o.Subtotal().Currency()},
		DeliveryFee:           MoneyDTO{Amount: o.DeliveryFee().Amount(), Currency: o.DeliveryFee().Currency()},
		Tax:                   MoneyDTO{Amount: o.Tax().Amount(), Currency: o.Tax().Currency()},
		TotalAmount:           MoneyDTO{Amount: o.TotalAmount().Amount(), Currency: o.TotalAmount().Currency()},
		Status:                o.Status().String(),
		PaymentStatus:         o.PaymentStatus().String(),
		PaymentMethod:         o.PaymentMethod(),
		DeliveryAddress:       o.DeliveryAddress(),
		DeliveryPhone:         o.DeliveryPhone(),
		DeliveryInstructions:  o.DeliveryInstructions(),
		DeliveryPersonName:    o.DeliveryPersonName(),
		DeliveryPersonPhone:   o.DeliveryPersonPhone(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
	}
	if actual := o.ActualDeliveryTime(); !actual.IsZero() {
		dto.ActualDeliveryTime = &actual
	}
	return dto
}
