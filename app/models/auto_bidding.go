package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AutoBidding stores one proxy bid per (product, bidder): the private
// maximum price the system bids up to on the bidder's behalf. Repeat bids
// by the same bidder overwrite MaxPrice in place.
type AutoBidding struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"uniqueIndex:idx_auto_bidding_product_bidder;not null" json:"product_id"`
	BidderID  uint            `gorm:"uniqueIndex:idx_auto_bidding_product_bidder;not null" json:"bidder_id"`
	Bidder    User            `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
	MaxPrice  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"-"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AutoBidding) TableName() string {
	return "auto_bidding"
}
