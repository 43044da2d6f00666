package bidding

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

// Service is the transactional bidding engine: it accepts proxy bids,
// executes buy-now purchases, and reconciles listing state when the seller
// rejects a bidder. Every mutating operation runs as one database
// transaction holding an exclusive lock on the product row, so concurrent
// operations on the same listing apply in lock-acquisition order.
type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

// NewService creates a bidding service from an injected repository. notifier
// may be nil; notifications are best-effort and never gate the outcome.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// NewServiceFromDB creates a bidding service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, notifier Notifier) *Service {
	return NewService(NewRepository(db), notifier)
}

// PlaceBid submits a proxy bid: bidAmount is the bidder's private ceiling.
// On success the listing's price, leader, history and the bidder's proxy-bid
// record are updated atomically; the returned BidResult captures the
// before/after state. Validation failures return a BidError with no writes.
func (s *Service) PlaceBid(productID, bidderID uint, bidAmount decimal.Decimal, productURL string) (*BidResult, error) {
	var result *BidResult

	err := s.repo.Transaction(func(tx Repository) error {
		product, err := s.lockProduct(tx, productID)
		if err != nil {
			return err
		}
		now := s.now()

		if err := s.checkEligibility(tx, product, bidderID, now); err != nil {
			return err
		}
		if err := ValidateBidAmount(product, bidAmount); err != nil {
			return err
		}

		previousLeader := product.HighestBidderID
		previousPrice := product.EffectiveCurrentPrice()

		settings, err := tx.AutoExtendSettings()
		if err != nil {
			return fmt.Errorf("load auto-extend settings: %w", err)
		}
		extendedEnd := EvaluateAutoExtend(product, settings, now)
		if extendedEnd != nil {
			product.EndAt = *extendedEnd
		}

		outcome := ResolvePrice(product, bidderID, bidAmount)

		fields := map[string]interface{}{
			"current_price":     outcome.NewCurrentPrice,
			"highest_bidder_id": outcome.NewHighestBidderID,
			"highest_max_price": outcome.NewHighestMaxPrice,
		}
		if outcome.BuyNowTriggered {
			fields["end_at"] = now
			fields["closed_at"] = now
		} else if extendedEnd != nil {
			fields["end_at"] = *extendedEnd
		}
		if err := tx.UpdateProduct(productID, fields); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		if outcome.ShouldCreateHistory {
			entry := &models.BiddingHistory{
				ProductID:    productID,
				BidderID:     outcome.NewHighestBidderID,
				CurrentPrice: outcome.NewCurrentPrice,
			}
			if err := tx.AppendHistory(entry); err != nil {
				return fmt.Errorf("append bidding history: %w", err)
			}
		}

		if err := tx.UpsertAutoBid(productID, bidderID, bidAmount); err != nil {
			return fmt.Errorf("upsert auto bid: %w", err)
		}

		result = &BidResult{
			ProductID:               productID,
			ProductName:             product.Name,
			SellerID:                product.SellerID,
			UserID:                  bidderID,
			BidAmount:               bidAmount,
			NewCurrentPrice:         outcome.NewCurrentPrice,
			NewHighestBidderID:      outcome.NewHighestBidderID,
			PreviousHighestBidderID: previousLeader,
			PreviousPrice:           previousPrice,
			ProductSold:             outcome.BuyNowTriggered,
			AutoExtended:            extendedEnd != nil,
			NewEndTime:              extendedEnd,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: dispatched after commit, never fails the bid.
	if s.notifier != nil && productURL != "" {
		s.notifier.NotifyBidPlaced(result, productURL)
	}

	return result, nil
}

// RejectBidder removes a bidder from a listing: denylists them, erases their
// history and proxy bid, then re-derives leader and price from the remaining
// proxy bids. Only the seller may reject, and only while the auction is open
// and undecided.
func (s *Service) RejectBidder(productID, bidderID, sellerID uint, homeURL string) (*RejectResult, error) {
	var result *RejectResult

	err := s.repo.Transaction(func(tx Repository) error {
		product, err := s.lockProductForSeller(tx, productID, sellerID)
		if err != nil {
			return err
		}

		autoBid, err := tx.GetAutoBid(productID, bidderID)
		if err != nil {
			return fmt.Errorf("load auto bid: %w", err)
		}
		if autoBid == nil {
			return newBidError(ErrNoPriorBid, "This bidder has not placed a bid on this product")
		}

		rejectedUser, err := tx.GetUser(bidderID)
		if err != nil {
			return fmt.Errorf("load rejected bidder: %w", err)
		}
		seller, err := tx.GetUser(sellerID)
		if err != nil {
			return fmt.Errorf("load seller: %w", err)
		}

		wasLeader := product.HighestBidderID != nil && *product.HighestBidderID == bidderID

		if err := tx.InsertRejection(productID, bidderID, sellerID); err != nil {
			return fmt.Errorf("insert rejection: %w", err)
		}
		if err := tx.DeleteHistoryByBidder(productID, bidderID); err != nil {
			return fmt.Errorf("delete bidding history: %w", err)
		}
		if err := tx.DeleteAutoBid(productID, bidderID); err != nil {
			return fmt.Errorf("delete auto bid: %w", err)
		}

		autoBids, err := tx.ListAutoBidsDesc(productID)
		if err != nil {
			return fmt.Errorf("list auto bids: %w", err)
		}
		remaining := make([]RemainingBid, len(autoBids))
		for i, ab := range autoBids {
			remaining[i] = RemainingBid{BidderID: ab.BidderID, MaxPrice: ab.MaxPrice}
		}

		var lastPrice *decimal.Decimal
		if last, err := tx.GetLatestHistory(productID); err != nil {
			return fmt.Errorf("load latest history: %w", err)
		} else if last != nil {
			lastPrice = &last.CurrentPrice
		}

		outcome := Reconcile(product, remaining, wasLeader, lastPrice)
		if !outcome.Unchanged {
			fields := map[string]interface{}{
				"highest_bidder_id": outcome.HighestBidderID,
				"current_price":     outcome.CurrentPrice,
				"highest_max_price": outcome.HighestMaxPrice,
			}
			if err := tx.UpdateProduct(productID, fields); err != nil {
				return fmt.Errorf("update product: %w", err)
			}
			if outcome.AppendHistory {
				entry := &models.BiddingHistory{
					ProductID:    productID,
					BidderID:     outcome.HistoryBidderID,
					CurrentPrice: outcome.CurrentPrice,
				}
				if err := tx.AppendHistory(entry); err != nil {
					return fmt.Errorf("append bidding history: %w", err)
				}
			}
		}

		result = &RejectResult{RejectedUser: rejectedUser, Product: product, Seller: seller}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		sellerName := "N/A"
		if result.Seller != nil {
			sellerName = result.Seller.FullName
		}
		s.notifier.NotifyBidderRejected(result.RejectedUser, result.Product, sellerName, homeURL)
	}

	return result, nil
}

// UnrejectBidder removes the denylist entry only. Erased history and proxy
// bids are not restored; the bidder starts over.
func (s *Service) UnrejectBidder(productID, bidderID, sellerID uint) error {
	return s.repo.Transaction(func(tx Repository) error {
		if _, err := s.lockProductForSeller(tx, productID, sellerID); err != nil {
			return err
		}
		if err := tx.DeleteRejection(productID, bidderID); err != nil {
			return fmt.Errorf("delete rejection: %w", err)
		}
		return nil
	})
}

// BuyNow closes the listing immediately at its fixed buy-now price. The
// buyer passes the same eligibility gate as the bidding path, including the
// full reputation check.
func (s *Service) BuyNow(productID, userID uint) error {
	return s.repo.Transaction(func(tx Repository) error {
		product, err := s.lockProduct(tx, productID)
		if err != nil {
			return err
		}
		now := s.now()

		if err := s.checkEligibility(tx, product, userID, now); err != nil {
			return err
		}
		if product.BuyNowPrice == nil {
			return newBidError(ErrBuyNowUnavailable, "Buy Now option is not available for this product")
		}

		buyNowPrice := *product.BuyNowPrice
		fields := map[string]interface{}{
			"current_price":       buyNowPrice,
			"highest_bidder_id":   userID,
			"highest_max_price":   buyNowPrice,
			"end_at":              now,
			"closed_at":           now,
			"is_buy_now_purchase": true,
		}
		if err := tx.UpdateProduct(productID, fields); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		entry := &models.BiddingHistory{
			ProductID:    productID,
			BidderID:     userID,
			CurrentPrice: buyNowPrice,
			IsBuyNow:     true,
		}
		if err := tx.AppendHistory(entry); err != nil {
			return fmt.Errorf("append bidding history: %w", err)
		}
		return nil
	})
}

// GetBiddingHistory returns the public price ladder of a product, newest
// first, with bidder names masked.
func (s *Service) GetBiddingHistory(productID uint) ([]models.PublicEntry, error) {
	entries, err := s.repo.ListHistory(productID)
	if err != nil {
		return nil, fmt.Errorf("list bidding history: %w", err)
	}

	public := make([]models.PublicEntry, len(entries))
	for i, entry := range entries {
		public[i] = models.PublicEntry{
			BidderName:   models.MaskName(entry.Bidder.FullName),
			CurrentPrice: entry.CurrentPrice,
			IsBuyNow:     entry.IsBuyNow,
			CreatedAt:    entry.CreatedAt,
		}
	}
	return public, nil
}

func (s *Service) lockProduct(tx Repository, productID uint) (*models.Product, error) {
	product, err := tx.GetProductForUpdate(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newBidError(ErrNotFound, "Product not found")
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return product, nil
}

// lockProductForSeller locks the product and verifies the seller may still
// manage its bidders: caller owns the listing, outcome undecided, auction
// open.
func (s *Service) lockProductForSeller(tx Repository, productID, sellerID uint) (*models.Product, error) {
	product, err := s.lockProduct(tx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, newBidError(ErrForbidden, "Only the seller can reject bidders")
	}
	if product.IsDecided() {
		return nil, newBidError(ErrAlreadyDecided, "This auction has already been decided")
	}
	if product.IsEnded(s.now()) {
		return nil, newBidError(ErrAuctionClosed, "Can only reject bidders for active auctions")
	}
	return product, nil
}

// checkEligibility gathers the denylist and reputation inputs inside the
// locked transaction so eligibility cannot change mid-bid.
func (s *Service) checkEligibility(tx Repository, product *models.Product, bidderID uint, now time.Time) error {
	rejected, err := tx.IsRejected(product.ID, bidderID)
	if err != nil {
		return fmt.Errorf("check rejection list: %w", err)
	}
	rating, err := tx.CalculateRatingPoint(bidderID)
	if err != nil {
		return fmt.Errorf("calculate rating point: %w", err)
	}
	return CheckEligibility(EligibilityInput{
		Product:    product,
		BidderID:   bidderID,
		Rating:     rating,
		IsRejected: rejected,
		Now:        now,
	})
}
