package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BiddingHistory is the public price ladder of a product. Rows are append-only
// and never updated; the rejection flow may delete a specific bidder's rows.
type BiddingHistory struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ProductID    uint            `gorm:"index;not null" json:"product_id"`
	BidderID     uint            `gorm:"index;not null" json:"bidder_id"`
	Bidder       User            `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"current_price"`
	IsBuyNow     bool            `gorm:"default:false" json:"is_buy_now"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (BiddingHistory) TableName() string {
	return "bidding_history"
}

// PublicEntry is a bidding history row prepared for the public API: the
// bidder name is masked so ladder watchers cannot identify competitors.
type PublicEntry struct {
	BidderName   string          `json:"bidder_name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	IsBuyNow     bool            `json:"is_buy_now"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MaskName hides every second rune of a display name ("Alice" -> "A*i*e").
func MaskName(name string) string {
	runes := []rune(name)
	for i := range runes {
		if i%2 == 1 {
			runes[i] = '*'
		}
	}
	return string(runes)
}
