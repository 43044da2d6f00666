package bidding

import (
	"github.com/shopspring/decimal"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

// ReconcileOutcome is the recomputed listing state after a bidder's proxy bid
// and history were removed. Unchanged means the removal did not affect the
// outcome and nothing needs persisting.
type ReconcileOutcome struct {
	Unchanged       bool
	HighestBidderID *uint
	CurrentPrice    decimal.Decimal
	HighestMaxPrice *decimal.Decimal
	AppendHistory   bool
	HistoryBidderID uint
}

// Reconcile re-derives leader and price from the proxy bids that survive a
// rejection. This is a recomputation over the remaining ceilings (top-2 order
// statistics), not a replay of the bid sequence.
//
// remaining must be ordered descending by ceiling. wasLeader states whether
// the rejected bidder held the lead; lastHistoryPrice is the price of the
// most recent surviving history entry, nil when the ladder is empty.
func Reconcile(product *models.Product, remaining []RemainingBid, wasLeader bool, lastHistoryPrice *decimal.Decimal) ReconcileOutcome {
	switch {
	case len(remaining) == 0:
		// Nobody left: the listing reverts to its unbid state.
		return ReconcileOutcome{
			HighestBidderID: nil,
			CurrentPrice:    product.StartingPrice,
			HighestMaxPrice: nil,
		}

	case len(remaining) == 1:
		// A single surviving proxy bid mirrors the first-bid rule: leader at
		// the starting price. A ladder rung is appended when the rejected
		// bidder led or the public price actually moved.
		winner := remaining[0]
		appendHistory := wasLeader || !product.EffectiveCurrentPrice().Equal(product.StartingPrice)
		return ReconcileOutcome{
			HighestBidderID: &winner.BidderID,
			CurrentPrice:    product.StartingPrice,
			HighestMaxPrice: &winner.MaxPrice,
			AppendHistory:   appendHistory,
			HistoryBidderID: winner.BidderID,
		}

	case wasLeader:
		// The rejected leader is replaced by the highest remaining ceiling at
		// one step above the runner-up, capped at the new leader's ceiling.
		first, second := remaining[0], remaining[1]
		newPrice := second.MaxPrice.Add(product.StepPrice)
		if newPrice.GreaterThan(first.MaxPrice) {
			newPrice = first.MaxPrice
		}
		appendHistory := lastHistoryPrice == nil || !lastHistoryPrice.Equal(newPrice)
		return ReconcileOutcome{
			HighestBidderID: &first.BidderID,
			CurrentPrice:    newPrice,
			HighestMaxPrice: &first.MaxPrice,
			AppendHistory:   appendHistory,
			HistoryBidderID: first.BidderID,
		}

	default:
		// The rejected bidder was not leading and at least two proxy bids
		// survive; their removal cannot change leader or price.
		return ReconcileOutcome{Unchanged: true}
	}
}
