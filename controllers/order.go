package controllers

import (
	"net/http"
	"strings"

	"go-showcase/models"
	"go-showcase/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

// OrderController handles order-related requests
type OrderController struct {
	Orders   OrderStore
	Notifier Notifier
}

// NewOrderController creates a new OrderController
func NewOrderController(orders OrderStore, notifier Notifier) *OrderController {
	return &OrderController{
		Orders:   orders,
		Notifier: notifier,
	}
}

// parseStatus accepts a status name case-insensitively.
func parseStatus(raw string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", utils.ValidationError("Invalid status: " + raw)
	}
	return status, nil
}

// CreateOrder records an order for a product snapshot. No account is needed.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	order := &models.Order{
		Product:  req.Product,
		Customer: req.Customer,
	}
	if err := oc.Orders.Create(r.Context(), order); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	// Notify the shop owner
	logger := hlog.FromRequest(r)
	go func(o models.Order) {
		if err := oc.Notifier.SendOrderNotification(o); err != nil {
			logger.Error().Err(err).Str("order_id", o.ID.Hex()).Msg("Failed to send order notification")
		}
	}(*order)

	utils.WriteJSON(w, http.StatusCreated, order)
}

// GetOrders lists orders, newest first, optionally filtered by ?status= (Admin only)
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	var status models.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		var err error
		if status, err = parseStatus(raw); err != nil {
			utils.WriteError(w, r, err)
			return
		}
	}
	oc.writeOrders(w, r, status)
}

// GetOrdersByStatus lists the orders in one status (Admin only)
func (oc *OrderController) GetOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := parseStatus(mux.Vars(r)["status"])
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	oc.writeOrders(w, r, status)
}

func (oc *OrderController) writeOrders(w http.ResponseWriter, r *http.Request, status models.OrderStatus) {
	orders, err := oc.Orders.List(r.Context(), status)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

// GetOrder retrieves a single order by ID (Admin only)
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid order ID")
	if !ok {
		return
	}

	order, err := oc.Orders.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, storeError(err, "Order not found"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// UpdateOrder replaces the customer record of an order (Admin only)
func (oc *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid order ID")
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	order, err := oc.Orders.UpdateCustomer(r.Context(), id, req.Customer)
	if err != nil {
		utils.WriteError(w, r, storeError(err, "Order not found"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status (Admin only)
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid order ID")
	if !ok {
		return
	}

	var req models.StatusRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	status, err := parseStatus(string(req.Status))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	order, err := oc.Orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		utils.WriteError(w, r, storeError(err, "Order not found"))
		return
	}

	hlog.FromRequest(r).Info().Str("order_id", id.Hex()).Str("status", string(status)).Msg("order status changed")
	utils.WriteJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order (Admin only)
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid order ID")
	if !ok {
		return
	}

	if err := oc.Orders.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, r, storeError(err, "Order not found"))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Order deleted successfully")
}
