package bidding

import (
	"time"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

// ratingPassThreshold is the reputation score a rated bidder must strictly
// exceed to participate.
const ratingPassThreshold = 0.8

// EligibilityInput is everything the eligibility check needs, gathered by the
// coordinator inside the locked transaction so nothing changes mid-bid.
type EligibilityInput struct {
	Product    *models.Product
	BidderID   uint
	Rating     models.RatingPoint
	IsRejected bool
	Now        time.Time
}

// CheckEligibility decides whether the bidder may bid on or buy the listing.
// Checks run in order and short-circuit on the first failure; each failure is
// a distinct BidError and causes no side effects.
func CheckEligibility(in EligibilityInput) error {
	p := in.Product

	if p.IsSold != nil && *p.IsSold {
		return newBidError(ErrAlreadyDecided, "This product has already been sold")
	}
	if p.SellerID == in.BidderID {
		return newBidError(ErrSelfBidding, "You cannot bid on your own product")
	}
	if in.IsRejected {
		return newBidError(ErrBidderRejected, "You have been rejected from bidding on this product by the seller")
	}
	if err := checkRating(p, in.Rating); err != nil {
		return err
	}
	if in.Now.After(p.EndAt) {
		return newBidError(ErrAuctionClosed, "Auction has ended")
	}
	return nil
}

func checkRating(p *models.Product, rating models.RatingPoint) error {
	if rating.ReviewCount == 0 {
		if !p.AllowUnratedBidder {
			return newBidError(ErrIneligibleReputation, "This seller does not allow unrated bidders to bid on this product.")
		}
		return nil
	}
	if rating.Score <= 0 {
		return newBidError(ErrIneligibleReputation, "You are not eligible to place bids due to your rating.")
	}
	if rating.Score <= ratingPassThreshold {
		return newBidError(ErrIneligibleReputation, "Your rating point is not greater than 80%. You cannot place bids.")
	}
	return nil
}
