// Package queries contains read operations for the payments module.
package queries

import (
	"context"
	"time"

	"github.com/rai/fooddelivery-go/modules/payments/domain"
)

// PaymentDTO is the API representation of a payment attempt.
type PaymentDTO struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"order_id"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	GatewayOrderID   string     `json:"gateway_order_id"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
	PaymentTime      *time.Time `json:"payment_time,omitempty"`
	ErrorCode        string     `json:"error_code,omitempty"`
	ErrorDescription string     `json:"error_description,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// GetOrderPaymentQuery retrieves the latest payment attempt for an order.
type GetOrderPaymentQuery struct {
	OrderID string
}

// GetOrderPaymentHandler handles payment retrieval by order.
type GetOrderPaymentHandler struct {
	payments domain.Repository
}

func NewGetOrderPaymentHandler(payments domain.Repository) *GetOrderPaymentHandler {
	return &GetOrderPaymentHandler{payments: payments}
}

func (h *GetOrderPaymentHandler) Handle(ctx context.Context, q GetOrderPaymentQuery) (*PaymentDTO, error) {
	payment, err := h.payments.FindLatestByOrderID(ctx, q.OrderID)
	if err != nil {
		return nil, err
	}
	return toPaymentDTO(payment), nil
}

func toPaymentDTO(p *domain.Payment) *PaymentDTO {
	dto := &PaymentDTO{
		ID:               p.ID().String(),
		OrderID:          p.OrderID(),
		Amount:           p.Amount().Amount(),
		Currency:         p.Amount().Currency(),
		Status:           p.Status().String(),
		GatewayOrderID:   p.GatewayOrderID(),
		GatewayPaymentID: p.GatewayPaymentID(),
		PaymentMethod:    p.PaymentMethod(),
		ErrorCode:        p.ErrorCode(),
		ErrorDescription: p.ErrorDescription(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
	if t := p.PaymentTime(); !t.IsZero() {
		dto.PaymentTime = &t
	}
	return dto
}
