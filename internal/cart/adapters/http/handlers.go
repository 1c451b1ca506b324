package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/SouravDn-p/mobile-canvas-api/internal/cart/app"
	"github.com/SouravDn-p/mobile-canvas-api/internal/cart/domain"
)

// Handler exposes HTTP endpoints for cart and wishlist operations.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the cart handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/users/", h.handleUserItems)
}

// handleUserItems routes /v1/users/{userID}/cart[...] and
// /v1/users/{userID}/wishlist by hand.
func (h *Handler) handleUserItems(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/users/"), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	userID := parts[0]
	switch parts[1] {
	case "cart":
		h.routeCart(w, r, userID, parts[2:])
	case "wishlist":
		h.routeWishlist(w, r, userID, parts[2:])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) routeCart(w http.ResponseWriter, r *http.Request, userID string, rest []string) {
	switch len(rest) {
	case 0:
		switch r.Method {
		case http.MethodGet:
			h.getCart(w, r, userID)
		case http.MethodPost:
			h.addToCart(w, r, userID)
		case http.MethodDelete:
			h.clearCart(w, r, userID)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case 1:
		if rest[0] == "merge" {
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, "method not allowed")
				return
			}
			h.mergeCart(w, r, userID)
			return
		}
		switch r.Method {
		case http.MethodPut:
			h.updateQuantity(w, r, userID, rest[0])
		case http.MethodDelete:
			h.removeFromCart(w, r, userID, rest[0])
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) routeWishlist(w http.ResponseWriter, r *http.Request, userID string, rest []string) {
	if len(rest) != 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getWishlist(w, r, userID)
	case http.MethodPost:
		h.toggleWishlist(w, r, userID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request, userID string) {
	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

type addItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request, userID string) {
	var payload addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	qty := payload.Quantity
	if qty == 0 {
		qty = 1
	}

	snap := domain.Snapshot{Name: payload.Name, Image: payload.Image, Price: payload.Price}
	cart, err := h.service.AddToCart(r.Context(), userID, payload.ProductID, snap, qty)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request, userID, productID string) {
	var payload updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cart, err := h.service.UpdateCartQuantity(r.Context(), userID, productID, payload.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request, userID, productID string) {
	cart, err := h.service.RemoveFromCart(r.Context(), userID, productID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": []domain.ItemLine{}})
}

type mergeCartRequest struct {
	Items []domain.ItemLine `json:"items"`
}

func (h *Handler) mergeCart(w http.ResponseWriter, r *http.Request, userID string) {
	var payload mergeCartRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cart, err := h.service.MergeCart(r.Context(), userID, payload.Items)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request, userID string) {
	wishlist, err := h.service.GetWishlist(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wishlist": wishlist})
}

type toggleWishlistRequest struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Image         string  `json:"image,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Discount      float64 `json:"discount,omitempty"`
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request, userID string) {
	var payload toggleWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	snap := domain.Snapshot{
		Name:          payload.Name,
		Image:         payload.Image,
		Price:         payload.Price,
		OriginalPrice: payload.OriginalPrice,
		Discount:      payload.Discount,
	}

	wishlist, added, err := h.service.ToggleWishlist(r.Context(), userID, payload.ProductID, snap)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"wishlist": wishlist, "added": added})
}

func writeDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var nfe *domain.NotFoundError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &nfe):
		writeError(w, http.StatusNotFound, err.Error())
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
