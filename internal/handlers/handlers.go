package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/noraraghay/central-catalunya/internal/database"
	"github.com/noraraghay/central-catalunya/internal/service"
	"github.com/noraraghay/central-catalunya/internal/websocket"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	fields   service.FieldService
	bookings service.BookingService
	stock    service.StockService
	orders   service.OrderService
	members  service.MemberService
	payments service.PaymentService
	hub      *websocket.Hub
	logger   *logrus.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(
	fields service.FieldService,
	bookings service.BookingService,
	stock service.StockService,
	orders service.OrderService,
	members service.MemberService,
	payments service.PaymentService,
	hub *websocket.Hub,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		fields:   fields,
		bookings: bookings,
		stock:    stock,
		orders:   orders,
		members:  members,
		payments: payments,
		hub:      hub,
		logger:   logger,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain errors to HTTP status codes.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrSlotUnavailable),
		errors.Is(err, database.ErrProductUnavailable),
		errors.Is(err, database.ErrOrderDelivered):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.WithError(err).Error("request failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// --- Fields ---

// CreateField handles POST /api/fields
func (h *Handler) CreateField(w http.ResponseWriter, r *http.Request) {
	var req service.CreateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Field name is required")
		return
	}

	field, err := h.fields.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, field)
}

// GetFields handles GET /api/fields
func (h *Handler) GetFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.fields.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fields)
}

// GetField handles GET /api/fields/{id}
func (h *Handler) GetField(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field ID")
		return
	}
	field, err := h.fields.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, field)
}

// DeleteField handles DELETE /api/fields/{id}
func (h *Handler) DeleteField(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field ID")
		return
	}
	if err := h.fields.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// UpdateFieldStatus handles PUT /api/fields/{id}/status
func (h *Handler) UpdateFieldStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field ID")
		return
	}

	var req struct {
		Status database.FieldStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch req.Status {
	case database.FieldStatusAvailable, database.FieldStatusOccupied,
		database.FieldStatusMaintenance, database.FieldStatusReserved:
	default:
		respondError(w, http.StatusBadRequest, "Invalid field status")
		return
	}

	field, err := h.fields.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.hub.BroadcastFieldStatus(field.ID.String(), string(field.Status))
	respondJSON(w, http.StatusOK, field)
}

// GetFieldAvailability handles GET /api/fields/{id}/availability?date=&start=&end=
func (h *Handler) GetFieldAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field ID")
		return
	}
	q := r.URL.Query()
	date, start, end := q.Get("date"), q.Get("start"), q.Get("end")
	if date == "" || start == "" || end == "" {
		respondError(w, http.StatusBadRequest, "date, start and end are required")
		return
	}

	available, err := h.fields.IsAvailable(r.Context(), id, date, start, end)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// GetFieldSlots handles GET /api/fields/{id}/slots?date=
func (h *Handler) GetFieldSlots(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field ID")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		respondError(w, http.StatusBadRequest, "date is required")
		return
	}

	slots, err := h.fields.AvailableSlots(r.Context(), id, date)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, slots)
}

// QuoteFieldPrice handles POST /api/fields/{id}/price
func (h *Handler) QuoteFieldPrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field ID")
		return
	}
	var req service.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	price, err := h.fields.Quote(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"price": price})
}

// GetFieldBookings handles GET /api/fields/{id}/bookings
func (h *Handler) GetFieldBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field ID")
		return
	}
	bookings, err := h.bookings.ListForField(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// --- Bookings ---

// CreateBooking handles POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FieldID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "Field ID is required")
		return
	}
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		respondError(w, http.StatusBadRequest, "date, startTime and endTime are required")
		return
	}
	if req.BookedBy == "" {
		respondError(w, http.StatusBadRequest, "bookedBy is required")
		return
	}
	if req.IsExternal && req.ExternalContact == nil {
		respondError(w, http.StatusBadRequest, "External bookings require contact info")
		return
	}

	booking, err := h.bookings.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.hub.BroadcastSlotBooked(booking.FieldID.String(), booking.ID.String(),
		booking.Date, booking.StartTime, booking.EndTime)
	respondJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	booking, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// ConfirmBooking handles POST /api/bookings/{id}/confirm
func (h *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	booking, err := h.bookings.Confirm(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// CancelBooking handles DELETE /api/bookings/{id}
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional on cancel.
	_ = json.NewDecoder(r.Body).Decode(&req)

	booking, err := h.bookings.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.hub.BroadcastSlotReleased(booking.FieldID.String(), booking.ID.String(),
		booking.Date, booking.StartTime, booking.EndTime)
	respondJSON(w, http.StatusOK, booking)
}

// CompleteBooking handles POST /api/bookings/{id}/complete
func (h *Handler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	booking, err := h.bookings.Complete(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// PayBooking handles POST /api/bookings/{id}/pay
func (h *Handler) PayBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	var req struct {
		PaymentRef string `json:"paymentId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	booking, err := h.bookings.MarkAsPaid(r.Context(), id, req.PaymentRef)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// --- Products ---

// CreateProduct handles POST /api/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	product, err := h.stock.CreateProduct(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// GetProducts handles GET /api/products
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.stock.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := h.stock.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// CheckProductAvailability handles GET /api/products/{id}/availability?quantity=&size=
func (h *Handler) CheckProductAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	quantity := 1
	if q := r.URL.Query().Get("quantity"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil || quantity < 1 {
			respondError(w, http.StatusBadRequest, "Invalid quantity")
			return
		}
	}

	available, err := h.stock.CheckAvailability(r.Context(), id, quantity, r.URL.Query().Get("size"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// UpdateProductStock handles PUT /api/products/{id}/stock
func (h *Handler) UpdateProductStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "Quantity must not be negative")
		return
	}

	product, err := h.stock.UpdateStock(r.Context(), id, req.Quantity)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// --- Orders ---

// CreateOrder handles POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}
	for _, item := range req.Items {
		if item.ProductID == uuid.Nil || item.Quantity < 1 {
			respondError(w, http.StatusBadRequest, "Each item needs a product ID and a positive quantity")
			return
		}
	}

	order, err := h.orders.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// CancelOrder handles DELETE /api/orders/{id}
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	order, err := h.orders.Cancel(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /api/orders/{id}/status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	var req struct {
		Status database.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var order *database.Order
	switch req.Status {
	case database.OrderStatusConfirmed:
		order, err = h.orders.Confirm(r.Context(), id)
	case database.OrderStatusPreparing:
		order, err = h.orders.MarkPreparing(r.Context(), id)
	case database.OrderStatusReady:
		order, err = h.orders.MarkReady(r.Context(), id)
	case database.OrderStatusDelivered:
		order, err = h.orders.MarkDelivered(r.Context(), id)
	case database.OrderStatusCancelled:
		order, err = h.orders.Cancel(r.Context(), id)
	default:
		respondError(w, http.StatusBadRequest, "Invalid order status")
		return
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// ApplyOrderDiscount handles POST /api/orders/{id}/discount
func (h *Handler) ApplyOrderDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	var req struct {
		Discount float64 `json:"discount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Discount < 0 {
		respondError(w, http.StatusBadRequest, "Discount must not be negative")
		return
	}

	order, err := h.orders.ApplyDiscount(r.Context(), id, req.Discount)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// --- Members ---

// CreateMember handles POST /api/members
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		respondError(w, http.StatusBadRequest, "First and last name are required")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	member, err := h.members.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

// GetMembers handles GET /api/members?page=&limit=
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	page, limit := 1, 20
	if p := r.URL.Query().Get("page"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v < 1 {
			respondError(w, http.StatusBadRequest, "Invalid page")
			return
		}
		page = v
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = v
	}

	members, total, err := h.members.List(r.Context(), page, limit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"members": members,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetMember handles GET /api/members/{id}
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid member ID")
		return
	}
	member, err := h.members.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// FindMemberByNumber handles GET /api/members/by-number/{number}
func (h *Handler) FindMemberByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	member, err := h.members.FindByNumber(r.Context(), number)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// --- Payments ---

// CreatePayment handles POST /api/payments
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MemberID == "" {
		respondError(w, http.StatusBadRequest, "Member ID is required")
		return
	}
	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	payment, err := h.payments.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// GetPayment handles GET /api/payments/{id}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}
	payment, err := h.payments.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// PayPayment handles POST /api/payments/{id}/pay
func (h *Handler) PayPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}
	var req struct {
		Method        string `json:"paymentMethod"`
		TransactionID string `json:"transactionId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	payment, err := h.payments.MarkPaid(r.Context(), id, req.Method, req.TransactionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}
