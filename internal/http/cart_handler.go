package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/germanaqua/Psychovoystore/internal/cart"
	"github.com/germanaqua/Psychovoystore/internal/domain"
)

// CartService is the slice of the cart engine the handlers need.
// Consumers define this interface, not the engine implementation.
type CartService interface {
	GetCart(ctx context.Context, ownerID string) *domain.Cart
	AddItem(ctx context.Context, ownerID string, product domain.Product) (*domain.Cart, error)
	RemoveItem(ctx context.Context, ownerID string, productID int64) *domain.Cart
	UpdateQuantity(ctx context.Context, ownerID string, productID int64, quantity int) *domain.Cart
	Clear(ctx context.Context, ownerID string) *domain.Cart
}

// ProductSource resolves the product snapshot to copy into the cart entry.
type ProductSource interface {
	Get(id int64) (domain.Product, bool)
}

type CartHandler struct {
	service  CartService
	products ProductSource
	timeout  time.Duration
}

func NewCartHandler(service CartService, products ProductSource, timeout time.Duration) *CartHandler {
	return &CartHandler{
		service:  service,
		products: products,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Cart   *domain.Cart  `json:"cart"`
	Totals domain.Totals `json:"totals"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := getOwnerID(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	c := h.service.GetCart(ctx, ownerID)
	respondJSON(w, http.StatusOK, CartResponse{Cart: c, Totals: c.Totals()})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := getOwnerID(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, ok := h.products.Get(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	c, err := h.service.AddItem(ctx, ownerID, product)
	if err != nil {
		if errors.Is(err, cart.ErrDuplicateItem) {
			respondError(w, http.StatusConflict, "already_exists", "This stock is already in your cart!")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, CartResponse{Cart: c, Totals: c.Totals()})
}

// RemoveItem reports success even for an absent id; removal is idempotent.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := getOwnerID(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	c := h.service.RemoveItem(ctx, ownerID, productID)
	respondJSON(w, http.StatusOK, CartResponse{Cart: c, Totals: c.Totals()})
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := getOwnerID(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not be negative")
		return
	}

	c := h.service.UpdateQuantity(ctx, ownerID, productID, req.Quantity)
	respondJSON(w, http.StatusOK, CartResponse{Cart: c, Totals: c.Totals()})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := getOwnerID(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	c := h.service.Clear(ctx, ownerID)
	respondJSON(w, http.StatusOK, CartResponse{Cart: c, Totals: c.Totals()})
}

func parseProductID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}
