package bidding

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

// AutoExtendSettings are the process-wide auto-extend parameters: a bid
// arriving within TriggerMinutes of the close pushes it back by ExtendMinutes.
type AutoExtendSettings struct {
	TriggerMinutes int
	ExtendMinutes  int
}

// PriceOutcome is the result of resolving one proxy bid against the current
// listing state. It is pure data; the coordinator persists it.
type PriceOutcome struct {
	NewCurrentPrice     decimal.Decimal
	NewHighestBidderID  uint
	NewHighestMaxPrice  decimal.Decimal
	BuyNowTriggered     bool
	ShouldCreateHistory bool
}

// BidResult captures the before/after state of an accepted bid for
// user-facing messaging and notification dispatch.
type BidResult struct {
	ProductID               uint
	ProductName             string
	SellerID                uint
	UserID                  uint
	BidAmount               decimal.Decimal
	NewCurrentPrice         decimal.Decimal
	NewHighestBidderID      uint
	PreviousHighestBidderID *uint
	PreviousPrice           decimal.Decimal
	ProductSold             bool
	AutoExtended            bool
	NewEndTime              *time.Time
}

// IsWinning reports whether the bidder who placed this bid now leads.
func (r *BidResult) IsWinning() bool {
	return r.NewHighestBidderID == r.UserID
}

// PriceChanged reports whether the public price moved with this bid.
func (r *BidResult) PriceChanged() bool {
	return !r.PreviousPrice.Equal(r.NewCurrentPrice)
}

// RejectResult carries the parties of a completed bidder rejection so the
// caller can notify the rejected user.
type RejectResult struct {
	RejectedUser *models.User
	Product      *models.Product
	Seller       *models.User
}

// RemainingBid is one surviving proxy bid during reconciliation. Slices of
// RemainingBid are always ordered descending by ceiling.
type RemainingBid struct {
	BidderID uint
	MaxPrice decimal.Decimal
}

// Notifier is the fire-and-forget notification boundary. Implementations
// must return immediately and never fail the calling operation.
type Notifier interface {
	NotifyBidPlaced(result *BidResult, productURL string)
	NotifyBidderRejected(rejected *models.User, product *models.Product, sellerName, homeURL string)
}
