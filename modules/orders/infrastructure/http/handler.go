// Package http provides HTTP handlers for the orders module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rai/fooddelivery-go/modules/orders/application/commands"
	"github.com/rai/fooddelivery-go/modules/orders/application/queries"
	"github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

type Handler struct {
	placeOrder           *commands.PlaceOrderHandler
	updateStatus         *commands.UpdateStatusHandler
	cancelOrder          *commands.CancelOrderHandler
	assignDeliveryPerson *commands.AssignDeliveryPersonHandler
	getOrder             *queries.GetOrderHandler
	listUserOrders       *queries.ListUserOrdersHandler
	listRestaurantOrders *queries.ListRestaurantOrdersHandler
}

// RegisterRoutes registers the orders module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	placeOrder *commands.PlaceOrderHandler,
	updateStatus *commands.UpdateStatusHandler,
	cancelOrder *commands.CancelOrderHandler,
	assignDeliveryPerson *commands.AssignDeliveryPersonHandler,
	getOrder *queries.GetOrderHandler,
	listUserOrders *queries.ListUserOrdersHandler,
	listRestaurantOrders *queries.ListRestaurantOrdersHandler,
) {
	h := &Handler{
		placeOrder:           placeOrder,
		updateStatus:         updateStatus,
		cancelOrder:          cancelOrder,
		assignDeliveryPerson: assignDeliveryPerson,
		getOrder:             getOrder,
		listUserOrders:       listUserOrders,
		listRestaurantOrders: listRestaurantOrders,
	}

	mux.HandleFunc("POST /orders", h.handlePlaceOrder)
	mux.HandleFunc("GET /orders/{id}", h.handleGetOrder)
	mux.HandleFunc("PUT /orders/{id}/status", h.handleUpdateStatus)
	mux.HandleFunc("POST /orders/{id}/cancel", h.handleCancelOrder)
	mux.HandleFunc("PUT /orders/{id}/delivery-person", h.handleAssignDeliveryPerson)
	mux.HandleFunc("GET /users/{id}/orders", h.handleListUserOrders)
	mux.HandleFunc("GET /restaurants/{id}/orders", h.handleListRestaurantOrders)
}

type placeOrderItemRequest struct {
	MenuItemID          string `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type placeOrderRequest struct {
	UserID               string                  `json:"user_id"`
	RestaurantID         string                  `json:"restaurant_id"`
	Items                []placeOrderItemRequest `json:"items"`
	DeliveryAddress      string                  `json:"delivery_address"`
	DeliveryPhone        string                  `json:"delivery_phone"`
	DeliveryInstructions string                  `json:"delivery_instructions"`
	PaymentMethod        string                  `json:"payment_method"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type assignDeliveryPersonRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]commands.PlaceOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = commands.PlaceOrderItem{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		}
	}

	result, err := h.placeOrder.Handle(r.Context(), commands.PlaceOrderCommand{
		UserID:               req.UserID,
		RestaurantID:         req.RestaurantID,
		Items:                items,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryPhone:        req.DeliveryPhone,
		DeliveryInstructions: req.DeliveryInstructions,
		PaymentMethod:        req.PaymentMethod,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	h.writeOrder(w, r, http.StatusCreated, result.OrderID)
}

// writeOrder responds with the order's full representation, so clients
// never need a follow-up GET after a mutation.
func (h *Handler) writeOrder(w http.ResponseWriter, r *http.Request, status int, orderID string) {
	order, err := h.getOrder.Handle(r.Context(), queries.GetOrderQuery{OrderID: orderID})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, status, order)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.getOrder.Handle(r.Context(), queries.GetOrderQuery{OrderID: r.PathValue("id")})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	// The status normally rides on the query string; a JSON body is the
	// fallback for clients that cannot set query parameters.
	status := r.URL.Query().Get("status")
	if status == "" {
		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		status = req.Status
	}

	orderID := r.PathValue("id")
	err := h.updateStatus.Handle(r.Context(), commands.UpdateStatusCommand{
		OrderID: orderID,
		Status:  status,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	h.writeOrder(w, r, http.StatusOK, orderID)
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	err := h.cancelOrder.Handle(r.Context(), commands.CancelOrderCommand{OrderID: r.PathValue("id")})
	if err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAssignDeliveryPerson(w http.ResponseWriter, r *http.Request) {
	var req assignDeliveryPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.assignDeliveryPerson.Handle(r.Context(), commands.AssignDeliveryPersonCommand{
		OrderID:             r.PathValue("id"),
		DeliveryPersonName:  req.Name,
		DeliveryPersonPhone: req.Phone,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListUserOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listUserOrders.Handle(r.Context(), queries.ListUserOrdersQuery{
		UserID: r.PathValue("id"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listRestaurantOrders.Handle(r.Context(), queries.ListRestaurantOrdersQuery{
		RestaurantID: r.PathValue("id"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPaymentStatusFinal):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidUserRef),
		errors.Is(err, domain.ErrInvalidRestaurantRef),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMenuItemUnavailable),
		errors.Is(err, domain.ErrCrossRestaurantItem),
		errors.Is(err, domain.ErrRestaurantUnavailable),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrDeliveryAddressRequired),
		errors.Is(err, domain.ErrDeliveryPhoneRequired),
		errors.Is(err, domain.ErrPaymentMethodRequired),
		errors.Is(err, domain.ErrInstructionsTooLong),
		errors.Is(err, domain.ErrDeliveryPersonRequired):
		writeError(w, http.StatusBadRequest, err.Error())
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
