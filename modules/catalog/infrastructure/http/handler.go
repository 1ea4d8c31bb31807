// Package http provides HTTP handlers for the catalog module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rai/fooddelivery-go/modules/catalog/application/commands"
	"github.com/rai/fooddelivery-go/modules/catalog/application/queries"
	"github.com/rai/fooddelivery-go/modules/catalog/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

type Handler struct {
	createRestaurant *commands.CreateRestaurantHandler
	createMenuItem   *commands.CreateMenuItemHandler
	createCategory   *commands.CreateCategoryHandler
	getRestaurant    *queries.GetRestaurantHandler
	listRestaurants  *queries.ListRestaurantsHandler
	listMenuItems    *queries.ListMenuItemsHandler
	listCategories   *queries.ListCategoriesHandler
}

// RegisterRoutes registers the catalog module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	createRestaurant *commands.CreateRestaurantHandler,
	createMenuItem *commands.CreateMenuItemHandler,
	createCategory *commands.CreateCategoryHandler,
	getRestaurant *queries.GetRestaurantHandler,
	listRestaurants *queries.ListRestaurantsHandler,
	listMenuItems *queries.ListMenuItemsHandler,
	listCategories *queries.ListCategoriesHandler,
) {
	h := &Handler{
		createRestaurant: createRestaurant,
		createMenuItem:   createMenuItem,
		createCategory:   createCategory,
		getRestaurant:    getRestaurant,
		listRestaurants:  listRestaurants,
		listMenuItems:    listMenuItems,
		listCategories:   listCategories,
	}

	mux.HandleFunc("POST /restaurants", h.handleCreateRestaurant)
	mux.HandleFunc("GET /restaurants", h.handleListRestaurants)
	mux.HandleFunc("GET /restaurants/{id}", h.handleGetRestaurant)
	mux.HandleFunc("GET /restaurants/{id}/menu-items", h.handleListMenuItems)
	mux.HandleFunc("POST /menu-items", h.handleCreateMenuItem)
	mux.HandleFunc("POST /categories", h.handleCreateCategory)
	mux.HandleFunc("GET /categories", h.handleListCategories)
}

// Request/Response DTOs

type createRestaurantRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	Address             string `json:"address"`
	Phone               string `json:"phone"`
	Cuisine             string `json:"cuisine"`
	DeliveryTimeMinutes int    `json:"delivery_time_minutes"`
	DeliveryFee         int64  `json:"delivery_fee"`
	MinimumOrder        int64  `json:"minimum_order"`
	Currency            string `json:"currency"`
}

type createMenuItemRequest struct {
	RestaurantID string `json:"restaurant_id"`
	CategoryID   string `json:"category_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
	Vegetarian   bool   `json:"vegetarian"`
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleCreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req createRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.createRestaurant.Handle(r.Context(), commands.CreateRestaurantCommand{
		Name:                req.Name,
		Description:         req.Description,
		Address:             req.Address,
		Phone:               req.Phone,
		Cuisine:             req.Cuisine,
		DeliveryTimeMinutes: req.DeliveryTimeMinutes,
		DeliveryFee:         req.DeliveryFee,
		MinimumOrder:        req.MinimumOrder,
		Currency:            req.Currency,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) handleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	restaurant, err := h.getRestaurant.Handle(r.Context(), queries.GetRestaurantQuery{RestaurantID: id})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.listRestaurants.Handle(r.Context(), queries.ListRestaurantsQuery{Offset: offset, Limit: limit})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListMenuItems(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	items, err := h.listMenuItems.Handle(r.Context(), queries.ListMenuItemsQuery{RestaurantID: id})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req createMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.createMenuItem.Handle(r.Context(), commands.CreateMenuItemCommand{
		RestaurantID: req.RestaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Currency:     req.Currency,
		Vegetarian:   req.Vegetarian,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.createCategory.Handle(r.Context(), commands.CreateCategoryCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategories.Handle(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, domain.ErrRestaurantNameRequired),
		errors.Is(err, domain.ErrRestaurantAddressRequired),
		errors.Is(err, domain.ErrInvalidDeliveryTime),
		errors.Is(err, domain.ErrMenuItemNameRequired),
		errors.Is(err, domain.ErrInvalidPrice):
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
