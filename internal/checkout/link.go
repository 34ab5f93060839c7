package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/germanaqua/Psychovoystore/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// BuildLink maps a cart snapshot to the pre-filled Telegram deep link.
// Spaces are encoded as %20 rather than +, so the chat opens with the
// message rendered verbatim.
func BuildLink(handle string, cart *domain.Cart) (string, error) {
	if len(cart.Items) == 0 {
		return "", ErrEmptyCart
	}

	message := BuildMessage(cart)
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://t.me/%s?text=%s", handle, encoded), nil
}
