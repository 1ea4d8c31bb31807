package domain

import "errors"

var (
	// ErrPaymentNotFound indicates no payment matches the lookup.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrDuplicatePayment indicates the order already has a live payment
	// (pending or completed).
	ErrDuplicatePayment = errors.New("order already has an active payment")
	// ErrPaymentAlreadyProcessed indicates the payment has already reached
	// a final state.
	ErrPaymentAlreadyProcessed = errors.New("payment already processed")
	// ErrVerificationFailed indicates the gateway signature did not match.
	ErrVerificationFailed = errors.New("payment signature verification failed")
	// ErrVerificationFieldsMissing indicates a verification request missing
	// the order id or one of the three gateway fields.
	ErrVerificationFieldsMissing = errors.New("order id, gateway order id, payment id and signature are required")
	// ErrOrderMismatch indicates the callback's claimed order is not the
	// order the referenced payment belongs to.
	ErrOrderMismatch = errors.New("callback order does not match the payment")
	// ErrGatewayUnavailable indicates the payment gateway could not be reached
	// or returned an unexpected response.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrOrderNotPayable indicates the referenced order cannot accept a payment.
	ErrOrderNotPayable = errors.New("order cannot accept a payment")
)
