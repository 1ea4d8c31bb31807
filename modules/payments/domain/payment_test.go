package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rai/fooddelivery-go/modules/shared/events/contracts"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

func pendingPayment() *Payment {
	return NewPayment(uuid.New().String(), types.MustNewMoney(3358, "INR"), "order_Nxy123", time.Now().UTC())
}

func TestNewPayment(t *testing.T) {
	p := pendingPayment()
	if p.Status() != StatusPending {
		t.Errorf("status = %s, want PENDING", p.Status())
	}
	if p.GatewayOrderID() != "order_Nxy123" {
		t.Errorf("gateway order id = %q", p.GatewayOrderID())
	}
	if len(p.DomainEvents()) != 0 {
		t.Error("creation should not emit events")
	}
}

func TestMarkCompleted(t *testing.T) {
	p := pendingPayment()
	now := time.Now().UTC()

	if err := p.MarkCompleted("pay_0001", "sig", "UPI", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status() != StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", p.Status())
	}
	if p.PaymentMethod() != "UPI" {
		t.Errorf("payment method = %q, want UPI", p.PaymentMethod())
	}
	if !p.PaymentTime().Equal(now) {
		t.Errorf("payment time = %v, want %v", p.PaymentTime(), now)
	}

	events := p.DomainEvents()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	completed, ok := events[0].(*contracts.PaymentCompletedEvent)
	if !ok {
		t.Fatalf("unexpected event type %T", events[0])
	}
	if completed.OrderID != p.OrderID() || completed.Amount != 3358 {
		t.Errorf("unexpected event payload: %+v", completed)
	}

	if err := p.MarkCompleted("pay_0002", "sig2", "UPI", now); !errors.Is(err, ErrPaymentAlreadyProcessed) {
		t.Errorf("err = %v, want ErrPaymentAlreadyProcessed", err)
	}
}

func TestMarkFailed(t *testing.T) {
	p := pendingPayment()
	now := time.Now().UTC()

	if err := p.MarkFailed("DECLINED", "card declined", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status() != StatusFailed {
		t.Errorf("status = %s, want FAILED", p.Status())
	}
	if p.Status().IsLive() {
		t.Error("failed payment should not be live")
	}
	if !p.PaymentTime().IsZero() {
		t.Error("failed payment should not carry a payment time")
	}

	if err := p.MarkCompleted("pay_0001", "sig", "UPI", now); !errors.Is(err, ErrPaymentAlreadyProcessed) {
		t.Errorf("err = %v, want ErrPaymentAlreadyProcessed", err)
	}
	if err := p.MarkFailed("DECLINED", "again", now); !errors.Is(err, ErrPaymentAlreadyProcessed) {
		t.Errorf("err = %v, want ErrPaymentAlreadyProcessed", err)
	}
}

func TestStatusIsLive(t *testing.T) {
	if !StatusPending.IsLive() || !StatusCompleted.IsLive() {
		t.Error("PENDING and COMPLETED should be live")
	}
	if StatusFailed.IsLive() || StatusRefunded.IsLive() {
		t.Error("FAILED and REFUNDED should not be live")
	}
}
