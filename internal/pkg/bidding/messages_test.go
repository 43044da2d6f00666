package bidding

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildBidResultMessage(t *testing.T) {
	tests := []struct {
		name   string
		result BidResult
		want   string
	}{
		{
			name: "winning bid",
			result: BidResult{
				UserID:             2,
				NewHighestBidderID: 2,
				BidAmount:          dec(200000),
				NewCurrentPrice:    dec(160000),
			},
			want: "Bid placed successfully! Current price: 160,000 VND (Your max: 200,000 VND)",
		},
		{
			name: "outbid",
			result: BidResult{
				UserID:             2,
				NewHighestBidderID: 3,
				BidAmount:          dec(150000),
				NewCurrentPrice:    dec(150000),
			},
			want: "Bid placed! Another bidder is currently winning at 150,000 VND",
		},
		{
			name: "buy now reached by the bidder",
			result: BidResult{
				UserID:             2,
				NewHighestBidderID: 2,
				NewCurrentPrice:    dec(500000),
				ProductSold:        true,
			},
			want: "Congratulations! You won the product with Buy Now price: 500,000 VND. Please proceed to payment.",
		},
		{
			name: "buy now reached for someone else",
			result: BidResult{
				UserID:             2,
				NewHighestBidderID: 3,
				NewCurrentPrice:    dec(500000),
				ProductSold:        true,
			},
			want: "Product has been sold to another bidder at Buy Now price: 500,000 VND. Your bid helped reach the Buy Now threshold.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildBidResultMessage(&tt.result))
		})
	}
}

func TestBuildBidResultMessageAutoExtendSuffix(t *testing.T) {
	end := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	result := BidResult{
		UserID:             2,
		NewHighestBidderID: 2,
		BidAmount:          dec(120000),
		NewCurrentPrice:    dec(110000),
		AutoExtended:       true,
		NewEndTime:         &end,
	}

	msg := BuildBidResultMessage(&result)
	assert.Contains(t, msg, "Auction extended to 01/03/2026 18:30")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"950", "950"},
		{"1000", "1,000"},
		{"2550000", "2,550,000"},
		{"100000.40", "100,000"},
		{"-15000", "-15,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(decimal.RequireFromString(tt.in)), "formatAmount(%s)", tt.in)
	}
}
