package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/germanaqua/Psychovoystore/internal/domain"
)

// The message layout is fixed: the receiving operator parses these lines by
// hand, so borders, title and the total line must not drift.
const (
	border      = "═══════════════════"
	title       = "💎 *ORDER REQUEST* 💎"
	itemsHeader = "📋 *Selected Stocks:*"
)

var stockRef = regexp.MustCompile(`^#(\d+)`)

// itemLabel renders "Stock #<digits>" for names carrying a leading catalog
// index, and the name verbatim otherwise.
func itemLabel(name string) string {
	if m := stockRef.FindStringSubmatch(name); m != nil {
		return "Stock #" + m[1]
	}
	return name
}

// BuildMessage renders the human-readable order summary for a cart snapshot.
// Same cart, same message: there is no clock, locale or timezone input.
func BuildMessage(cart *domain.Cart) string {
	totals := cart.Totals()

	var b strings.Builder
	b.WriteString(border + "\n")
	b.WriteString(title + "\n")
	b.WriteString(border + "\n\n")

	b.WriteString(itemsHeader + "\n")
	for i, item := range cart.Items {
		fmt.Fprintf(&b, "   %d. %s\n", i+1, itemLabel(item.Name))
	}

	b.WriteString("\n")
	b.WriteString(border + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL: $%.2f*\n", totals.Total)
	b.WriteString(border + "\n")

	return b.String()
}
