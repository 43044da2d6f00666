package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PRODUCT_STATUS_ACTIVE     = "active"
	PRODUCT_STATUS_PENDING    = "pending"
	PRODUCT_STATUS_SOLD       = "sold"
	PRODUCT_STATUS_CANCELLED  = "cancelled"
	PRODUCT_STATUS_NO_BIDDERS = "no_bidders"
)

type Product struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	SellerID           uint             `gorm:"index;not null" json:"seller_id"`
	Seller             User             `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CategoryID         uint             `gorm:"index" json:"category_id"`
	Name               string           `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=3,max=255"`
	Description        string           `gorm:"type:text" json:"description"`
	StartingPrice      decimal.Decimal  `gorm:"type:decimal(20,2);not null" json:"starting_price"`
	StepPrice          decimal.Decimal  `gorm:"type:decimal(20,2);not null" json:"step_price"`
	CurrentPrice       decimal.Decimal  `gorm:"type:decimal(20,2);not null" json:"current_price"`
	BuyNowPrice        *decimal.Decimal `gorm:"type:decimal(20,2);default:null" json:"buy_now_price,omitempty"`
	HighestBidderID    *uint            `gorm:"index;default:null" json:"-"`
	HighestMaxPrice    *decimal.Decimal `gorm:"type:decimal(20,2);default:null" json:"-"` // private proxy ceiling, never exposed
	EndAt              time.Time        `gorm:"type:timestamp;not null;index" json:"end_at"`
	ClosedAt           *time.Time       `gorm:"type:timestamp;default:null" json:"closed_at,omitempty"`
	IsSold             *bool            `gorm:"default:null" json:"is_sold,omitempty"` // nil = undecided, true = sold, false = cancelled
	IsBuyNowPurchase   bool             `gorm:"default:false" json:"is_buy_now_purchase"`
	AllowUnratedBidder bool             `gorm:"default:false" json:"allow_unrated_bidder"`
	AutoExtend         bool             `gorm:"default:false" json:"auto_extend"`
	ViewCount          uint64           `gorm:"default:0" json:"view_count"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (p *Product) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// Status derives the lifecycle state from is_sold, end_at, closed_at and the
// presence of a highest bidder. It is never stored.
func (p *Product) Status(now time.Time) string {
	switch {
	case p.IsSold != nil && *p.IsSold:
		return PRODUCT_STATUS_SOLD
	case p.IsSold != nil && !*p.IsSold:
		return PRODUCT_STATUS_CANCELLED
	case p.IsEnded(now) && p.HighestBidderID != nil:
		return PRODUCT_STATUS_PENDING
	case p.IsEnded(now):
		return PRODUCT_STATUS_NO_BIDDERS
	default:
		return PRODUCT_STATUS_ACTIVE
	}
}

// IsEnded reports whether the auction has reached its scheduled or early close.
func (p *Product) IsEnded(now time.Time) bool {
	return !p.EndAt.After(now) || p.ClosedAt != nil
}

// IsDecided reports whether the listing outcome is final (sold or cancelled).
func (p *Product) IsDecided() bool {
	return p.IsSold != nil
}

// EffectiveCurrentPrice falls back to the starting price for listings that
// never received a bid and still carry a zero current price.
func (p *Product) EffectiveCurrentPrice() decimal.Decimal {
	if p.CurrentPrice.IsZero() {
		return p.StartingPrice
	}
	return p.CurrentPrice
}
