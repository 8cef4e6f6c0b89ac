package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/noraraghay/central-catalunya/internal/handlers"
	"github.com/noraraghay/central-catalunya/internal/websocket"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, hub *websocket.Hub) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Fields
	api.HandleFunc("/fields", h.CreateField).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/fields", h.GetFields).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/fields/{id}", h.GetField).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/fields/{id}", h.DeleteField).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/fields/{id}/status", h.UpdateFieldStatus).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/fields/{id}/availability", h.GetFieldAvailability).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/fields/{id}/slots", h.GetFieldSlots).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/fields/{id}/price", h.QuoteFieldPrice).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/fields/{id}/bookings", h.GetFieldBookings).Methods(http.MethodGet, http.MethodOptions)

	// Bookings
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/{id}", h.GetBooking).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bookings/{id}", h.CancelBooking).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/bookings/{id}/confirm", h.ConfirmBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/{id}/complete", h.CompleteBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/{id}/pay", h.PayBooking).Methods(http.MethodPost, http.MethodOptions)

	// Products
	api.HandleFunc("/products", h.CreateProduct).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/products", h.GetProducts).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/products/{id}", h.GetProduct).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/products/{id}/availability", h.CheckProductAvailability).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/products/{id}/stock", h.UpdateProductStock).Methods(http.MethodPut, http.MethodOptions)

	// Orders
	api.HandleFunc("/orders", h.CreateOrder).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/orders/{id}", h.GetOrder).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/orders/{id}", h.CancelOrder).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/orders/{id}/discount", h.ApplyOrderDiscount).Methods(http.MethodPost, http.MethodOptions)

	// Members
	api.HandleFunc("/members", h.CreateMember).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/members", h.GetMembers).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/members/{id}", h.GetMember).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/members/by-number/{number}", h.FindMemberByNumber).Methods(http.MethodGet, http.MethodOptions)

	// Payments
	api.HandleFunc("/payments", h.CreatePayment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/payments/{id}", h.GetPayment).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/payments/{id}/pay", h.PayPayment).Methods(http.MethodPost, http.MethodOptions)

	// WebSocket for real-time availability updates
	api.HandleFunc("/fields/{fieldId}/ws", hub.HandleWebSocket)

	// Health check
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
