package bidding

import (
	"github.com/shopspring/decimal"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

// ResolvePrice applies one proxy bid to the current listing state and returns
// the resulting price, leader and ceiling (ascending second-price proxy
// bidding). Pure and deterministic; callers must have validated the bid
// amount against current price and step price first.
//
// Decision order:
//  1. existing leader's hidden ceiling already covers the buy-now price and
//     someone else bids: the sale triggers for the existing leader
//  2. leader raises their own ceiling: public price unchanged, no new ladder
//     rung
//  3. first bid on the listing: leader at starting price
//  4. challenger at or below the leader's ceiling: leader stays, public price
//     rises to the challenger's ceiling (ties keep the earlier leader)
//  5. challenger above the leader's ceiling: challenger leads at old ceiling
//     plus one step
//  6. the computed price reaching the buy-now price clamps to it and triggers
//     the sale
func ResolvePrice(product *models.Product, bidderID uint, bidAmount decimal.Decimal) PriceOutcome {
	outcome := PriceOutcome{ShouldCreateHistory: true}

	if product.BuyNowPrice != nil && product.HighestBidderID != nil && product.HighestMaxPrice != nil &&
		*product.HighestBidderID != bidderID && product.HighestMaxPrice.GreaterThanOrEqual(*product.BuyNowPrice) {
		outcome.NewCurrentPrice = *product.BuyNowPrice
		outcome.NewHighestBidderID = *product.HighestBidderID
		outcome.NewHighestMaxPrice = *product.HighestMaxPrice
		outcome.BuyNowTriggered = true
		return outcome
	}

	switch {
	case product.HighestBidderID != nil && *product.HighestBidderID == bidderID:
		// Re-bid by the current leader only raises their private ceiling.
		outcome.NewCurrentPrice = product.EffectiveCurrentPrice()
		outcome.NewHighestBidderID = bidderID
		outcome.NewHighestMaxPrice = bidAmount
		outcome.ShouldCreateHistory = false

	case product.HighestBidderID == nil || product.HighestMaxPrice == nil:
		// First bid: the listing opens at the starting price, not the bid.
		outcome.NewCurrentPrice = product.StartingPrice
		outcome.NewHighestBidderID = bidderID
		outcome.NewHighestMaxPrice = bidAmount

	case bidAmount.LessThanOrEqual(*product.HighestMaxPrice):
		// Challenger does not beat the leader's ceiling; their bid becomes
		// the public floor the leader is held at.
		outcome.NewCurrentPrice = bidAmount
		outcome.NewHighestBidderID = *product.HighestBidderID
		outcome.NewHighestMaxPrice = *product.HighestMaxPrice

	default:
		// Challenger outbids the leader: price is old ceiling plus one step,
		// never above the challenger's own ceiling.
		outcome.NewCurrentPrice = product.HighestMaxPrice.Add(product.StepPrice)
		if outcome.NewCurrentPrice.GreaterThan(bidAmount) {
			outcome.NewCurrentPrice = bidAmount
		}
		outcome.NewHighestBidderID = bidderID
		outcome.NewHighestMaxPrice = bidAmount
	}

	if product.BuyNowPrice != nil && outcome.NewCurrentPrice.GreaterThanOrEqual(*product.BuyNowPrice) {
		outcome.NewCurrentPrice = *product.BuyNowPrice
		outcome.BuyNowTriggered = true
	}

	return outcome
}

// ValidateBidAmount enforces the minimum increment: a bid must exceed the
// current price by at least one step.
func ValidateBidAmount(product *models.Product, bidAmount decimal.Decimal) error {
	currentPrice := product.EffectiveCurrentPrice()

	if bidAmount.LessThanOrEqual(currentPrice) {
		return newBidError(ErrBidTooLow, "Bid must be higher than current price ("+formatAmount(currentPrice)+" VND)")
	}
	if bidAmount.LessThan(currentPrice.Add(product.StepPrice)) {
		return newBidError(ErrBidTooLow, "Bid must be at least "+formatAmount(product.StepPrice)+" VND higher than current price")
	}
	return nil
}
