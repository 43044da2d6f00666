package bidding

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BuildBidResultMessage renders the user-facing outcome of an accepted bid.
func BuildBidResultMessage(result *BidResult) string {
	var baseMessage string

	switch {
	case result.ProductSold && result.IsWinning():
		baseMessage = fmt.Sprintf("Congratulations! You won the product with Buy Now price: %s VND. Please proceed to payment.",
			formatAmount(result.NewCurrentPrice))
	case result.ProductSold:
		baseMessage = fmt.Sprintf("Product has been sold to another bidder at Buy Now price: %s VND. Your bid helped reach the Buy Now threshold.",
			formatAmount(result.NewCurrentPrice))
	case result.IsWinning():
		baseMessage = fmt.Sprintf("Bid placed successfully! Current price: %s VND (Your max: %s VND)",
			formatAmount(result.NewCurrentPrice), formatAmount(result.BidAmount))
	default:
		baseMessage = fmt.Sprintf("Bid placed! Another bidder is currently winning at %s VND",
			formatAmount(result.NewCurrentPrice))
	}

	if result.AutoExtended && result.NewEndTime != nil {
		baseMessage += " | Auction extended to " + result.NewEndTime.Format("02/01/2006 15:04")
	}

	return baseMessage
}

// formatAmount renders a price with thousands separators. VND carries no
// minor unit, so fractions are dropped.
func formatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(0)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
