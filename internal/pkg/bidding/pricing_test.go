package bidding

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func uintPtr(v uint) *uint {
	return &v
}

func testProduct() *models.Product {
	return &models.Product{
		ID:            1,
		SellerID:      99,
		Name:          "Vintage camera",
		StartingPrice: dec(100),
		StepPrice:     dec(10),
		CurrentPrice:  dec(100),
		EndAt:         time.Now().Add(24 * time.Hour),
	}
}

func TestResolvePriceFirstBid(t *testing.T) {
	product := testProduct()

	outcome := ResolvePrice(product, 2, dec(150))

	assert.True(t, outcome.NewCurrentPrice.Equal(dec(100)), "first bid opens at starting price")
	assert.Equal(t, uint(2), outcome.NewHighestBidderID)
	assert.True(t, outcome.NewHighestMaxPrice.Equal(dec(150)))
	assert.False(t, outcome.BuyNowTriggered)
	assert.True(t, outcome.ShouldCreateHistory)
}

func TestResolvePriceChallengerBelowCeiling(t *testing.T) {
	product := testProduct()
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(150)

	outcome := ResolvePrice(product, 3, dec(130))

	assert.True(t, outcome.NewCurrentPrice.Equal(dec(130)), "challenger ceiling becomes the public price")
	assert.Equal(t, uint(2), outcome.NewHighestBidderID, "leader keeps the lead")
	assert.True(t, outcome.NewHighestMaxPrice.Equal(dec(150)), "leader ceiling unchanged")
	assert.True(t, outcome.ShouldCreateHistory)
}

func TestResolvePriceChallengerAboveCeiling(t *testing.T) {
	product := testProduct()
	product.CurrentPrice = dec(130)
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(150)

	outcome := ResolvePrice(product, 3, dec(200))

	assert.True(t, outcome.NewCurrentPrice.Equal(dec(160)), "old ceiling plus one step")
	assert.Equal(t, uint(3), outcome.NewHighestBidderID)
	assert.True(t, outcome.NewHighestMaxPrice.Equal(dec(200)))
}

func TestResolvePriceStepOvershootCapsAtChallengerCeiling(t *testing.T) {
	product := testProduct()
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(150)

	outcome := ResolvePrice(product, 3, dec(155))

	assert.True(t, outcome.NewCurrentPrice.Equal(dec(155)), "price never exceeds the new leader's ceiling")
	assert.Equal(t, uint(3), outcome.NewHighestBidderID)
}

// A bid exactly equal to the leader's ceiling must not unseat the leader.
func TestResolvePriceTieKeepsLeader(t *testing.T) {
	product := testProduct()
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(150)

	outcome := ResolvePrice(product, 3, dec(150))

	assert.Equal(t, uint(2), outcome.NewHighestBidderID)
	assert.True(t, outcome.NewCurrentPrice.Equal(dec(150)))
}

func TestResolvePriceLeaderRebidRaisesCeilingOnly(t *testing.T) {
	product := testProduct()
	product.CurrentPrice = dec(130)
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(150)

	outcome := ResolvePrice(product, 2, dec(300))

	assert.True(t, outcome.NewCurrentPrice.Equal(dec(130)), "public price unchanged")
	assert.Equal(t, uint(2), outcome.NewHighestBidderID)
	assert.True(t, outcome.NewHighestMaxPrice.Equal(dec(300)))
	assert.False(t, outcome.ShouldCreateHistory, "no new ladder rung for a self re-bid")
}

func TestResolvePriceHiddenCeilingTriggersBuyNowForLeader(t *testing.T) {
	product := testProduct()
	product.BuyNowPrice = decPtr(500)
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(600)

	outcome := ResolvePrice(product, 3, dec(300))

	assert.True(t, outcome.BuyNowTriggered)
	assert.Equal(t, uint(2), outcome.NewHighestBidderID, "existing leader wins, not the new bidder")
	assert.True(t, outcome.NewCurrentPrice.Equal(dec(500)))
	assert.True(t, outcome.NewHighestMaxPrice.Equal(dec(600)))
	assert.True(t, outcome.ShouldCreateHistory)
}

func TestResolvePriceComputedPriceClampsToBuyNow(t *testing.T) {
	product := testProduct()
	product.BuyNowPrice = decPtr(155)
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(150)

	outcome := ResolvePrice(product, 3, dec(200))

	assert.True(t, outcome.BuyNowTriggered)
	assert.True(t, outcome.NewCurrentPrice.Equal(dec(155)), "price clamps to the buy-now price")
	assert.Equal(t, uint(3), outcome.NewHighestBidderID)
}

// Replay of an accepted-bid sequence: the public price never decreases.
func TestResolvePriceMonotonicOverSequence(t *testing.T) {
	product := testProduct()

	bids := []struct {
		bidder uint
		amount int64
	}{
		{2, 150},
		{3, 130},
		{3, 200},
		{4, 250},
		{2, 400},
	}

	lastPrice := product.StartingPrice
	for _, bid := range bids {
		outcome := ResolvePrice(product, bid.bidder, dec(bid.amount))

		assert.True(t, outcome.NewCurrentPrice.GreaterThanOrEqual(lastPrice),
			"price decreased after bid %d by bidder %d", bid.amount, bid.bidder)
		assert.True(t, outcome.NewCurrentPrice.LessThanOrEqual(outcome.NewHighestMaxPrice),
			"price exceeded the leader's ceiling")

		lastPrice = outcome.NewCurrentPrice
		product.CurrentPrice = outcome.NewCurrentPrice
		product.HighestBidderID = &outcome.NewHighestBidderID
		product.HighestMaxPrice = &outcome.NewHighestMaxPrice
	}
}

func TestValidateBidAmount(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		step    int64
		bid     int64
		wantErr bool
	}{
		{"Exactly current price", 100, 10, 100, true},
		{"Above current but below step", 100, 10, 105, true},
		{"Exactly one step above", 100, 10, 110, false},
		{"Well above", 100, 10, 500, false},
		{"Below current", 100, 10, 90, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := testProduct()
			product.CurrentPrice = dec(tt.current)
			product.StepPrice = dec(tt.step)

			err := ValidateBidAmount(product, dec(tt.bid))
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsKind(err, ErrBidTooLow))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
