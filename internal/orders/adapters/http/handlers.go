package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	cartdomain "github.com/SouravDn-p/mobile-canvas-api/internal/cart/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/app"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/app/commands"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
)

// CartService is the slice of the cart context the checkout flow needs.
type CartService interface {
	GetCart(ctx context.Context, userID string) ([]cartdomain.ItemLine, error)
	ClearCart(ctx context.Context, userID string) error
}

// Handler exposes HTTP endpoints for checkout and order operations.
type Handler struct {
	service *app.Service
	cart    CartService
}

// NewHandler constructs a Handler. The cart service may be nil when checkout
// payloads always carry explicit items.
func NewHandler(service *app.Service, cart CartService) *Handler {
	return &Handler{service: service, cart: cart}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/checkout", h.handleCheckout)
	mux.HandleFunc("/v1/orders", h.handleOrders)
	mux.HandleFunc("/v1/orders/", h.handleOrderSubroutes)
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.checkout(w, r)
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.listOrders(w, r)
}

func (h *Handler) handleOrderSubroutes(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/orders/"), "/")
	if trimmed == "" {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	if trimmed == "summary" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.summarizeOrders(w, r)
		return
	}

	if id, ok := strings.CutSuffix(trimmed, "/status"); ok {
		if id == "" {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.transitionOrder(w, r, id)
		return
	}

	if id, ok := strings.CutSuffix(trimmed, "/items"); ok {
		if id == "" {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.updateOrderItems(w, r, id)
		return
	}

	if strings.Contains(trimmed, "/") {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.getOrder(w, r, trimmed)
}

type checkoutRequest struct {
	UserID          string                 `json:"userId"`
	Email           string                 `json:"email"`
	Items           []domain.Item          `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod"`
	Notes           string                 `json:"notes,omitempty"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey == "" {
		writeError(w, http.StatusBadRequest, "Idempotency-Key header required")
		return
	}

	if stored, err := h.service.GetIdempotentResponse(ctx, idemKey); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	} else if stored != nil {
		for key, values := range restoreHeaders(stored.StatusCode) {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}
		w.WriteHeader(stored.StatusCode)
		_, _ = w.Write(stored.Body)
		return
	}

	var payload checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	items := payload.Items
	if len(items) == 0 {
		if payload.UserID == "" || h.cart == nil {
			writeError(w, http.StatusBadRequest, "items or userId required")
			return
		}
		lines, err := h.cart.GetCart(ctx, payload.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(lines) == 0 {
			writeError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		items = itemsFromCart(lines)
	}

	order, err := h.service.PlaceOrder(ctx, app.PlaceOrderInput{
		Email:           payload.Email,
		Items:           items,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   payload.PaymentMethod,
		Notes:           payload.Notes,
	})
	var pubErr *commands.EventPublishError
	if err != nil && !errors.As(err, &pubErr) {
		writeDomainError(w, err)
		return
	}

	// The order is placed at this point; a stale cart is tolerable.
	if payload.UserID != "" && h.cart != nil {
		_ = h.cart.ClearCart(ctx, payload.UserID)
	}

	response := map[string]any{"order": presentOrder(order)}
	body, err := json.Marshal(response)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stored := ports.StoredResponse{
		StatusCode: http.StatusAccepted,
		Body:       body,
		OrderID:    order.ID,
	}

	if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write(body)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": presentOrder(order)})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := ports.ListFilter{}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := domain.Status(statusParam)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "unknown status: "+statusParam)
			return
		}
		filter.Status = &status
	}

	if paymentParam := r.URL.Query().Get("payment"); paymentParam != "" {
		payment := domain.PaymentStatus(paymentParam)
		if !payment.Valid() {
			writeError(w, http.StatusBadRequest, "unknown payment status: "+paymentParam)
			return
		}
		filter.Payment = &payment
	}

	filter.Email = r.URL.Query().Get("email")

	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			filter.Page = page
		}
	}

	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if pageSize, err := strconv.Atoi(pageSizeParam); err == nil {
			filter.PageSize = pageSize
		}
	}

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	presented := make([]domain.Order, len(orders))
	for i := range orders {
		presented[i] = presentOrder(&orders[i])
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": presented})
}

func (h *Handler) summarizeOrders(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.SummarizeOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary.Revenue = domain.Round2(summary.Revenue)
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

type transitionRequest struct {
	Status  *domain.Status        `json:"status,omitempty"`
	Payment *domain.PaymentStatus `json:"payment,omitempty"`
}

func (h *Handler) transitionOrder(w http.ResponseWriter, r *http.Request, id string) {
	var payload transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.TransitionOrder(r.Context(), id, payload.Status, payload.Payment)
	var pubErr *commands.EventPublishError
	if err != nil && !errors.As(err, &pubErr) {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": presentOrder(order)})
}

type updateItemsRequest struct {
	Items []domain.Item `json:"items"`
	Notes *string       `json:"notes,omitempty"`
}

func (h *Handler) updateOrderItems(w http.ResponseWriter, r *http.Request, id string) {
	var payload updateItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateOrderItems(r.Context(), id, payload.Items, payload.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": presentOrder(order)})
}

func itemsFromCart(lines []cartdomain.ItemLine) []domain.Item {
	items := make([]domain.Item, len(lines))
	for i, line := range lines {
		items[i] = domain.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
	}
	return items
}

// presentOrder rounds money fields for the wire. Stored amounts stay unrounded.
func presentOrder(order *domain.Order) domain.Order {
	presented := *order
	presented.Totals = presented.Totals.Rounded()
	presented.Total = domain.Round2(presented.Total)
	return presented
}

func writeDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var ite *domain.InvalidTransitionError
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &ite):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// restoreHeaders is a hook for replayed responses. For now it only sets content-type.
func restoreHeaders(_ int) http.Header {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return header
}
