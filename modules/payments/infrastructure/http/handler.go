// Package http provides HTTP handlers for the payments module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rai/fooddelivery-go/modules/payments/application/commands"
	"github.com/rai/fooddelivery-go/modules/payments/application/queries"
	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

type Handler struct {
	createIntent    *commands.CreateIntentHandler
	verifyPayment   *commands.VerifyPaymentHandler
	getOrderPayment *queries.GetOrderPaymentHandler
}

// RegisterRoutes registers the payments module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	createIntent *commands.CreateIntentHandler,
	verifyPayment *commands.VerifyPaymentHandler,
	getOrderPayment *queries.GetOrderPaymentHandler,
) {
	h := &Handler{
		createIntent:    createIntent,
		verifyPayment:   verifyPayment,
		getOrderPayment: getOrderPayment,
	}

	mux.HandleFunc("POST /payments/create-order/{orderId}", h.handleCreateIntent)
	mux.HandleFunc("POST /payments/verify", h.handleVerifyPayment)
	mux.HandleFunc("GET /payments/order/{orderId}", h.handleGetOrderPayment)
}

type createIntentResponse struct {
	PaymentID      string `json:"payment_id"`
	GatewayOrderID string `json:"id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

type verifyPaymentRequest struct {
	OrderID          string `json:"order_id"`
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
	PaymentMethod    string `json:"payment_method"`
}

type verifyPaymentResponse struct {
	Status           string    `json:"status"`
	PaymentID        string    `json:"payment_id"`
	OrderID          string    `json:"order_id"`
	GatewayOrderID   string    `json:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	PaymentMethod    string    `json:"payment_method,omitempty"`
	PaymentTime      time.Time `json:"payment_time"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	result, err := h.createIntent.Handle(r.Context(), commands.CreateIntentCommand{
		OrderID: r.PathValue("orderId"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createIntentResponse{
		PaymentID:      result.PaymentID,
		GatewayOrderID: result.GatewayOrderID,
		Amount:         result.Amount,
		Currency:       result.Currency,
		KeyID:          result.KeyID,
	})
}

func (h *Handler) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.verifyPayment.Handle(r.Context(), commands.VerifyPaymentCommand{
		OrderID:          req.OrderID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
		PaymentMethod:    req.PaymentMethod,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyPaymentResponse{
		Status:           result.Status,
		PaymentID:        result.PaymentID,
		OrderID:          result.OrderID,
		GatewayOrderID:   result.GatewayOrderID,
		GatewayPaymentID: result.GatewayPaymentID,
		Amount:           result.Amount,
		Currency:         result.Currency,
		PaymentMethod:    result.PaymentMethod,
		PaymentTime:      result.PaymentTime,
	})
}

func (h *Handler) handleGetOrderPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.getOrderPayment.Handle(r.Context(), queries.GetOrderPaymentQuery{
		OrderID: r.PathValue("orderId"),
	})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicatePayment),
		errors.Is(err, domain.ErrPaymentAlreadyProcessed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrVerificationFailed),
		errors.Is(err, domain.ErrVerificationFieldsMissing),
		errors.Is(err, domain.ErrOrderMismatch),
		errors.Is(err, domain.ErrOrderNotPayable),
		errors.Is(err, types.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrGatewayUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
