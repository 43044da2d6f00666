package bidnotify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/bidding"
)

// formatVND renders an amount with comma thousands grouping, no minor unit.
func formatVND(d decimal.Decimal) string {
	s := d.Truncate(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func emailFooter() string {
	return `<p style="color: #888; font-size: 12px; text-align: center; margin-top: 20px;">This is an automated message from AuctionFox.</p>`
}

func emailHeader(title, color string) string {
	return fmt.Sprintf(`<div style="background: %s; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;"><h1 style="color: white; margin: 0;">%s</h1></div>`, color, title)
}

// buildSellerBidEmail is sent to the seller whenever their listing receives a bid.
func buildSellerBidEmail(seller *models.User, result *bidding.BidResult, productURL string) (subject, body string) {
	subject = fmt.Sprintf("New bid on your product: %s", result.ProductName)

	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	sb.WriteString(emailHeader("New Bid Received!", "#72AEC8"))
	sb.WriteString(`<div style="background-color: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">`)
	sb.WriteString(fmt.Sprintf(`<p>Dear <strong>%s</strong>,</p><p>Your product has received a new bid:</p>`, seller.FullName))
	sb.WriteString(fmt.Sprintf(`<div style="background-color: white; padding: 20px; border-radius: 10px; margin: 20px 0; border-left: 4px solid #72AEC8;"><h3 style="margin: 0 0 15px 0; color: #333;">%s</h3><p style="margin: 5px 0;"><strong>Current Price:</strong></p><p style="font-size: 28px; color: #72AEC8; margin: 5px 0; font-weight: bold;">%s VND</p>`, result.ProductName, formatVND(result.NewCurrentPrice)))
	if result.PriceChanged() {
		sb.WriteString(fmt.Sprintf(`<p style="margin: 5px 0; color: #666; font-size: 14px;"><i>Previous: %s VND</i></p>`, formatVND(result.PreviousPrice)))
	}
	sb.WriteString(`</div>`)
	if result.ProductSold {
		sb.WriteString(`<div style="background-color: #d4edda; padding: 15px; border-radius: 5px; margin: 15px 0;"><p style="margin: 0; color: #155724;"><strong>Buy Now price reached!</strong> Auction has ended.</p></div>`)
	}
	sb.WriteString(fmt.Sprintf(`<div style="text-align: center; margin: 30px 0;"><a href="%s" style="display: inline-block; background: #72AEC8; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; font-weight: bold;">View Product</a></div></div>`, productURL))
	sb.WriteString(emailFooter())
	sb.WriteString(`</div>`)
	return subject, sb.String()
}

// buildBidderBidEmail is sent to the bidder who just placed the bid.
func buildBidderBidEmail(bidder *models.User, result *bidding.BidResult, productURL string) (subject, body string) {
	isWinning := result.IsWinning()
	if isWinning {
		subject = fmt.Sprintf("You're winning: %s", result.ProductName)
	} else {
		subject = fmt.Sprintf("Bid placed: %s", result.ProductName)
	}

	color := "#28a745"
	intro := "Congratulations! Your bid has been placed and you are currently the highest bidder!"
	if !isWinning {
		color = "#ffc107"
		intro = "Your bid has been placed. However, another bidder has a higher maximum bid."
	}

	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	if isWinning {
		sb.WriteString(emailHeader("You're Winning!", color))
	} else {
		sb.WriteString(emailHeader("Bid Placed", color))
	}
	sb.WriteString(`<div style="background-color: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">`)
	sb.WriteString(fmt.Sprintf(`<p>Dear <strong>%s</strong>,</p><p>%s</p>`, bidder.FullName, intro))
	sb.WriteString(fmt.Sprintf(`<div style="background-color: white; padding: 20px; border-radius: 10px; margin: 20px 0; border-left: 4px solid %s;"><h3 style="margin: 0 0 15px 0; color: #333;">%s</h3><p style="margin: 5px 0;"><strong>Your Max Bid:</strong> %s VND</p><p style="margin: 5px 0;"><strong>Current Price:</strong></p><p style="font-size: 28px; color: %s; margin: 5px 0; font-weight: bold;">%s VND</p></div>`,
		color, result.ProductName, formatVND(result.BidAmount), color, formatVND(result.NewCurrentPrice)))
	if result.ProductSold && isWinning {
		sb.WriteString(`<div style="background-color: #d4edda; padding: 15px; border-radius: 5px; margin: 15px 0;"><p style="margin: 0; color: #155724;"><strong>Congratulations! You won this product!</strong></p><p style="margin: 10px 0 0 0; color: #155724;">Please proceed to complete your payment.</p></div>`)
	}
	if !isWinning {
		sb.WriteString(`<div style="background-color: #fff3cd; padding: 15px; border-radius: 5px; margin: 15px 0;"><p style="margin: 0; color: #856404;"><strong>Tip:</strong> Consider increasing your maximum bid to improve your chances of winning.</p></div>`)
	}
	label := "View Auction"
	if result.ProductSold && isWinning {
		label = "Complete Payment"
	}
	sb.WriteString(fmt.Sprintf(`<div style="text-align: center; margin: 30px 0;"><a href="%s" style="display: inline-block; background: #72AEC8; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; font-weight: bold;">%s</a></div></div>`, productURL, label))
	sb.WriteString(emailFooter())
	sb.WriteString(`</div>`)
	return subject, sb.String()
}

// buildPreviousBidderEmail is sent to the prior leader when the price moves:
// either they were outbid or their proxy defended the lead at a higher price.
func buildPreviousBidderEmail(prev *models.User, result *bidding.BidResult, productURL string, wasOutbid bool) (subject, body string) {
	if wasOutbid {
		subject = fmt.Sprintf("You've been outbid: %s", result.ProductName)
	} else {
		subject = fmt.Sprintf("Price updated: %s", result.ProductName)
	}

	color := "#ffc107"
	title := "Price Updated"
	intro := "Good news! You're still the highest bidder, but the current price has been updated due to a new bid:"
	if wasOutbid {
		color = "#dc3545"
		title = "You've Been Outbid!"
		intro = "Unfortunately, another bidder has placed a higher bid on the product you were winning:"
	}

	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	sb.WriteString(emailHeader(title, color))
	sb.WriteString(`<div style="background-color: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">`)
	sb.WriteString(fmt.Sprintf(`<p>Dear <strong>%s</strong>,</p><p>%s</p>`, prev.FullName, intro))
	sb.WriteString(fmt.Sprintf(`<div style="background-color: white; padding: 20px; border-radius: 10px; margin: 20px 0; border-left: 4px solid %s;"><h3 style="margin: 0 0 15px 0; color: #333;">%s</h3>`, color, result.ProductName))
	if !wasOutbid {
		sb.WriteString(`<p style="margin: 5px 0; color: #28a745;"><strong>You're still winning!</strong></p>`)
	}
	sb.WriteString(fmt.Sprintf(`<p style="margin: 5px 0;"><strong>New Current Price:</strong></p><p style="font-size: 28px; color: %s; margin: 5px 0; font-weight: bold;">%s VND</p><p style="margin: 10px 0 0 0; color: #666; font-size: 14px;"><i>Previous price: %s VND</i></p></div>`,
		color, formatVND(result.NewCurrentPrice), formatVND(result.PreviousPrice)))
	if wasOutbid {
		sb.WriteString(`<div style="background-color: #fff3cd; padding: 15px; border-radius: 5px; margin: 15px 0;"><p style="margin: 0; color: #856404;"><strong>Don't miss out!</strong> Place a new bid to regain the lead.</p></div>`)
	} else {
		sb.WriteString(`<div style="background-color: #d4edda; padding: 15px; border-radius: 5px; margin: 15px 0;"><p style="margin: 0; color: #155724;"><strong>Tip:</strong> Your automatic bidding is working! Consider increasing your max bid if you want more protection.</p></div>`)
	}
	label := "View Auction"
	if wasOutbid {
		label = "Place New Bid"
	}
	sb.WriteString(fmt.Sprintf(`<div style="text-align: center; margin: 30px 0;"><a href="%s" style="display: inline-block; background: #72AEC8; color: white; padding: 15px 40px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px;">%s</a></div></div>`, productURL, label))
	sb.WriteString(emailFooter())
	sb.WriteString(`</div>`)
	return subject, sb.String()
}

// buildRejectedBidderEmail informs a bidder the seller removed them from a listing.
func buildRejectedBidderEmail(rejected *models.User, product *models.Product, sellerName, homeURL string) (subject, body string) {
	subject = fmt.Sprintf("Your bid has been rejected: %s", product.Name)

	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	sb.WriteString(emailHeader("Bid Rejected", "#dc3545"))
	sb.WriteString(`<div style="background-color: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">`)
	sb.WriteString(fmt.Sprintf(`<p>Dear <strong>%s</strong>,</p><p>We regret to inform you that the seller has rejected your bid on the following product:</p>`, rejected.FullName))
	sb.WriteString(fmt.Sprintf(`<div style="background-color: white; padding: 20px; border-radius: 10px; margin: 20px 0; border-left: 4px solid #dc3545;"><h3 style="margin: 0 0 10px 0; color: #333;">%s</h3><p style="margin: 5px 0; color: #666;"><strong>Seller:</strong> %s</p></div>`, product.Name, sellerName))
	sb.WriteString(`<p style="color: #666;">This means you can no longer place bids on this specific product. Your previous bids on this product have been removed.</p>`)
	sb.WriteString(`<p style="color: #666;">You can still participate in other auctions on our platform.</p>`)
	sb.WriteString(fmt.Sprintf(`<div style="text-align: center; margin: 30px 0;"><a href="%s" style="display: inline-block; background: #72AEC8; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; font-weight: bold;">Browse Other Auctions</a></div>`, homeURL))
	sb.WriteString(`<p style="color: #888; font-size: 13px;">If you believe this was done in error, please contact our support team.</p></div>`)
	sb.WriteString(emailFooter())
	sb.WriteString(`</div>`)
	return subject, sb.String()
}
