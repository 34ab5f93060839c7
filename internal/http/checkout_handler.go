package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/germanaqua/Psychovoystore/internal/checkout"
)

type CheckoutHandler struct {
	service CartService
	handle  string
	timeout time.Duration
}

func NewCheckoutHandler(service CartService, handle string, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		handle:  handle,
		timeout: timeout,
	}
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// Checkout hands the order off as a pre-filled chat link. The transaction is
// complete once the caller opens the link; nothing is observed downstream.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := getOwnerID(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	c := h.service.GetCart(ctx, ownerID)
	link, err := checkout.BuildLink(h.handle, c)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, nothing to checkout")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponse{URL: link})
}
