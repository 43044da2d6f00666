package models

import "time"

// RejectedBidder is a per-product denylist entry. Once present, the bidder
// cannot place proxy bids on the product until the seller unrejects them.
type RejectedBidder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"uniqueIndex:idx_rejected_product_bidder;not null" json:"product_id"`
	BidderID  uint      `gorm:"uniqueIndex:idx_rejected_product_bidder;not null" json:"bidder_id"`
	SellerID  uint      `gorm:"index;not null" json:"seller_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RejectedBidder) TableName() string {
	return "rejected_bidders"
}
