package bidding

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

type bidKey struct {
	productID uint
	bidderID  uint
}

// fakeRepo is an in-memory Repository with snapshot-rollback transactions:
// a failed transaction leaves the committed state untouched.
type fakeRepo struct {
	product  *models.Product
	users    map[uint]*models.User
	ratings  map[uint]models.RatingPoint
	rejected map[bidKey]bool
	autoBids map[bidKey]decimal.Decimal
	history  []models.BiddingHistory
	settings AutoExtendSettings
	nextID   uint
}

func newFakeRepo(product *models.Product) *fakeRepo {
	return &fakeRepo{
		product:  product,
		users:    map[uint]*models.User{},
		ratings:  map[uint]models.RatingPoint{},
		rejected: map[bidKey]bool{},
		autoBids: map[bidKey]decimal.Decimal{},
		settings: AutoExtendSettings{TriggerMinutes: 5, ExtendMinutes: 10},
		nextID:   1,
	}
}

func (f *fakeRepo) clone() *fakeRepo {
	c := *f
	p := *f.product
	c.product = &p
	c.rejected = make(map[bidKey]bool, len(f.rejected))
	for k, v := range f.rejected {
		c.rejected[k] = v
	}
	c.autoBids = make(map[bidKey]decimal.Decimal, len(f.autoBids))
	for k, v := range f.autoBids {
		c.autoBids[k] = v
	}
	c.history = append([]models.BiddingHistory(nil), f.history...)
	return &c
}

func (f *fakeRepo) Transaction(fn func(tx Repository) error) error {
	tx := f.clone()
	if err := fn(tx); err != nil {
		return err
	}
	*f = *tx
	return nil
}

func (f *fakeRepo) GetProductForUpdate(productID uint) (*models.Product, error) {
	if f.product == nil || f.product.ID != productID {
		return nil, gorm.ErrRecordNotFound
	}
	p := *f.product
	return &p, nil
}

func (f *fakeRepo) UpdateProduct(productID uint, fields map[string]interface{}) error {
	for key, value := range fields {
		switch key {
		case "current_price":
			f.product.CurrentPrice = value.(decimal.Decimal)
		case "highest_bidder_id":
			switch v := value.(type) {
			case uint:
				f.product.HighestBidderID = &v
			case *uint:
				f.product.HighestBidderID = v
			}
		case "highest_max_price":
			switch v := value.(type) {
			case decimal.Decimal:
				f.product.HighestMaxPrice = &v
			case *decimal.Decimal:
				f.product.HighestMaxPrice = v
			}
		case "end_at":
			f.product.EndAt = value.(time.Time)
		case "closed_at":
			v := value.(time.Time)
			f.product.ClosedAt = &v
		case "is_buy_now_purchase":
			f.product.IsBuyNowPurchase = value.(bool)
		}
	}
	return nil
}

func (f *fakeRepo) GetUser(userID uint) (*models.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return &models.User{ID: userID, FullName: "user"}, nil
}

func (f *fakeRepo) CalculateRatingPoint(userID uint) (models.RatingPoint, error) {
	return f.ratings[userID], nil
}

func (f *fakeRepo) IsRejected(productID, bidderID uint) (bool, error) {
	return f.rejected[bidKey{productID, bidderID}], nil
}

func (f *fakeRepo) InsertRejection(productID, bidderID, sellerID uint) error {
	f.rejected[bidKey{productID, bidderID}] = true
	return nil
}

func (f *fakeRepo) DeleteRejection(productID, bidderID uint) error {
	delete(f.rejected, bidKey{productID, bidderID})
	return nil
}

func (f *fakeRepo) GetAutoBid(productID, bidderID uint) (*models.AutoBidding, error) {
	max, ok := f.autoBids[bidKey{productID, bidderID}]
	if !ok {
		return nil, nil
	}
	return &models.AutoBidding{ProductID: productID, BidderID: bidderID, MaxPrice: max}, nil
}

func (f *fakeRepo) UpsertAutoBid(productID, bidderID uint, maxPrice decimal.Decimal) error {
	f.autoBids[bidKey{productID, bidderID}] = maxPrice
	return nil
}

func (f *fakeRepo) DeleteAutoBid(productID, bidderID uint) error {
	delete(f.autoBids, bidKey{productID, bidderID})
	return nil
}

func (f *fakeRepo) ListAutoBidsDesc(productID uint) ([]models.AutoBidding, error) {
	var bids []models.AutoBidding
	for key, max := range f.autoBids {
		if key.productID == productID {
			bids = append(bids, models.AutoBidding{ProductID: productID, BidderID: key.bidderID, MaxPrice: max})
		}
	}
	for i := 0; i < len(bids); i++ {
		for j := i + 1; j < len(bids); j++ {
			if bids[j].MaxPrice.GreaterThan(bids[i].MaxPrice) {
				bids[i], bids[j] = bids[j], bids[i]
			}
		}
	}
	return bids, nil
}

func (f *fakeRepo) AppendHistory(entry *models.BiddingHistory) error {
	entry.ID = f.nextID
	f.nextID++
	entry.CreatedAt = time.Now()
	f.history = append(f.history, *entry)
	return nil
}

func (f *fakeRepo) DeleteHistoryByBidder(productID, bidderID uint) error {
	kept := f.history[:0]
	for _, entry := range f.history {
		if !(entry.ProductID == productID && entry.BidderID == bidderID) {
			kept = append(kept, entry)
		}
	}
	f.history = append([]models.BiddingHistory(nil), kept...)
	return nil
}

func (f *fakeRepo) GetLatestHistory(productID uint) (*models.BiddingHistory, error) {
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].ProductID == productID {
			entry := f.history[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListHistory(productID uint) ([]models.BiddingHistory, error) {
	var entries []models.BiddingHistory
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].ProductID == productID {
			entries = append(entries, f.history[i])
		}
	}
	return entries, nil
}

func (f *fakeRepo) AutoExtendSettings() (AutoExtendSettings, error) {
	return f.settings, nil
}

type fakeNotifier struct {
	bidResults []*BidResult
	rejections int
}

func (n *fakeNotifier) NotifyBidPlaced(result *BidResult, productURL string) {
	n.bidResults = append(n.bidResults, result)
}

func (n *fakeNotifier) NotifyBidderRejected(rejected *models.User, product *models.Product, sellerName, homeURL string) {
	n.rejections++
}

func newTestService(repo *fakeRepo) (*Service, *fakeNotifier) {
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)
	return svc, notifier
}

func ratedBidder(repo *fakeRepo, ids ...uint) {
	for _, id := range ids {
		repo.ratings[id] = models.RatingPoint{Score: 1.0, ReviewCount: 5}
	}
}

func TestPlaceBidSequence(t *testing.T) {
	repo := newFakeRepo(testProduct())
	ratedBidder(repo, 2, 3)
	svc, notifier := newTestService(repo)

	// A opens with ceiling 150: price stays at starting price.
	result, err := svc.PlaceBid(1, 2, dec(150), "https://example.com/p/1")
	require.NoError(t, err)
	assert.True(t, result.NewCurrentPrice.Equal(dec(100)))
	assert.Equal(t, uint(2), result.NewHighestBidderID)
	assert.True(t, repo.product.CurrentPrice.Equal(dec(100)))
	assert.Len(t, repo.history, 1)

	// B challenges below A's ceiling: A stays leader, price rises to 130.
	result, err = svc.PlaceBid(1, 3, dec(130), "https://example.com/p/1")
	require.NoError(t, err)
	assert.Equal(t, uint(2), result.NewHighestBidderID)
	assert.True(t, result.NewCurrentPrice.Equal(dec(130)))
	assert.False(t, result.IsWinning())

	// B rebids above A's ceiling: B leads at 150+10.
	result, err = svc.PlaceBid(1, 3, dec(200), "https://example.com/p/1")
	require.NoError(t, err)
	assert.Equal(t, uint(3), result.NewHighestBidderID)
	assert.True(t, result.NewCurrentPrice.Equal(dec(160)))
	assert.True(t, result.IsWinning())

	assert.True(t, repo.autoBids[bidKey{1, 3}].Equal(dec(200)), "proxy record keeps the latest ceiling")
	assert.Len(t, repo.history, 3)
	assert.Len(t, notifier.bidResults, 3, "every accepted bid dispatches a notification")
}

func TestPlaceBidRejectedLeavesNoWrites(t *testing.T) {
	repo := newFakeRepo(testProduct())
	// Bidder 2 has no reviews and the listing forbids unrated bidders.
	svc, notifier := newTestService(repo)

	_, err := svc.PlaceBid(1, 2, dec(150), "https://example.com/p/1")

	assert.True(t, IsKind(err, ErrIneligibleReputation))
	assert.Empty(t, repo.history)
	assert.Empty(t, repo.autoBids)
	assert.Nil(t, repo.product.HighestBidderID)
	assert.Empty(t, notifier.bidResults, "failed bids never notify")
}

func TestPlaceBidNotFound(t *testing.T) {
	repo := newFakeRepo(testProduct())
	svc, _ := newTestService(repo)

	_, err := svc.PlaceBid(42, 2, dec(150), "")
	assert.True(t, IsKind(err, ErrNotFound))
}

func TestPlaceBidHiddenCeilingBuyNow(t *testing.T) {
	product := testProduct()
	product.BuyNowPrice = decPtr(500)
	product.CurrentPrice = dec(100)
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(600)
	repo := newFakeRepo(product)
	repo.autoBids[bidKey{1, 2}] = dec(600)
	ratedBidder(repo, 3)
	svc, _ := newTestService(repo)

	result, err := svc.PlaceBid(1, 3, dec(300), "")
	require.NoError(t, err)

	assert.True(t, result.ProductSold)
	assert.Equal(t, uint(2), result.NewHighestBidderID, "hidden ceiling wins for the existing leader")
	assert.True(t, repo.product.CurrentPrice.Equal(dec(500)))
	assert.NotNil(t, repo.product.ClosedAt, "sale closes the listing")
	assert.False(t, repo.product.EndAt.After(time.Now()))
}

func TestPlaceBidAutoExtends(t *testing.T) {
	product := testProduct()
	product.AutoExtend = true
	product.EndAt = time.Now().Add(3 * time.Minute)
	oldEnd := product.EndAt
	repo := newFakeRepo(product)
	ratedBidder(repo, 2)
	svc, _ := newTestService(repo)

	result, err := svc.PlaceBid(1, 2, dec(150), "")
	require.NoError(t, err)

	assert.True(t, result.AutoExtended)
	require.NotNil(t, result.NewEndTime)
	assert.Equal(t, oldEnd.Add(10*time.Minute), *result.NewEndTime)
	assert.Equal(t, oldEnd.Add(10*time.Minute), repo.product.EndAt)
}

func TestRejectBidderRecomputesFromSurvivors(t *testing.T) {
	// Three proxy bids A:150, B:200, C:300; C leads at 210.
	product := testProduct()
	product.CurrentPrice = dec(210)
	product.HighestBidderID = uintPtr(4)
	product.HighestMaxPrice = decPtr(300)
	repo := newFakeRepo(product)
	repo.autoBids[bidKey{1, 2}] = dec(150)
	repo.autoBids[bidKey{1, 3}] = dec(200)
	repo.autoBids[bidKey{1, 4}] = dec(300)
	repo.history = []models.BiddingHistory{
		{ID: 1, ProductID: 1, BidderID: 2, CurrentPrice: dec(100)},
		{ID: 2, ProductID: 1, BidderID: 3, CurrentPrice: dec(160)},
		{ID: 3, ProductID: 1, BidderID: 4, CurrentPrice: dec(210)},
	}
	svc, notifier := newTestService(repo)

	result, err := svc.RejectBidder(1, 4, 99, "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, uint(3), *repo.product.HighestBidderID, "highest survivor leads")
	assert.True(t, repo.product.CurrentPrice.Equal(dec(160)), "min(150+10, 200)")
	assert.True(t, repo.product.HighestMaxPrice.Equal(dec(200)))
	assert.True(t, repo.rejected[bidKey{1, 4}], "denylist entry created")
	_, stillThere := repo.autoBids[bidKey{1, 4}]
	assert.False(t, stillThere, "proxy bid removed")
	assert.NotNil(t, result.RejectedUser)
	assert.Equal(t, 1, notifier.rejections)

	for _, entry := range repo.history {
		assert.NotEqual(t, uint(4), entry.BidderID, "rejected bidder's rungs erased")
	}
}

func TestRejectBidderSingleSurvivorRevertsToStartingPrice(t *testing.T) {
	// Scenario: A max 150, B max 200, B leads at 160. Seller rejects A.
	product := testProduct()
	product.CurrentPrice = dec(160)
	product.HighestBidderID = uintPtr(3)
	product.HighestMaxPrice = decPtr(200)
	repo := newFakeRepo(product)
	repo.autoBids[bidKey{1, 2}] = dec(150)
	repo.autoBids[bidKey{1, 3}] = dec(200)
	repo.history = []models.BiddingHistory{
		{ID: 1, ProductID: 1, BidderID: 3, CurrentPrice: dec(100)},
		{ID: 2, ProductID: 1, BidderID: 3, CurrentPrice: dec(160)},
	}
	svc, _ := newTestService(repo)

	_, err := svc.RejectBidder(1, 2, 99, "")
	require.NoError(t, err)

	assert.Equal(t, uint(3), *repo.product.HighestBidderID)
	assert.True(t, repo.product.CurrentPrice.Equal(dec(100)), "single survivor mirrors the first-bid rule")
	latest := repo.history[len(repo.history)-1]
	assert.True(t, latest.CurrentPrice.Equal(dec(100)), "price change appends a rung")
}

func TestRejectBidderLastBidderClearsLeader(t *testing.T) {
	product := testProduct()
	product.CurrentPrice = dec(100)
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(150)
	repo := newFakeRepo(product)
	repo.autoBids[bidKey{1, 2}] = dec(150)
	repo.history = []models.BiddingHistory{
		{ID: 1, ProductID: 1, BidderID: 2, CurrentPrice: dec(100)},
	}
	svc, _ := newTestService(repo)

	_, err := svc.RejectBidder(1, 2, 99, "")
	require.NoError(t, err)

	assert.Nil(t, repo.product.HighestBidderID)
	assert.Nil(t, repo.product.HighestMaxPrice)
	assert.True(t, repo.product.CurrentPrice.Equal(dec(100)))
	assert.Empty(t, repo.history)
}

func TestRejectBidderGuards(t *testing.T) {
	ended := time.Now().Add(-time.Hour)

	tests := []struct {
		name     string
		mutate   func(p *models.Product, repo *fakeRepo)
		sellerID uint
		wantKind ErrorKind
	}{
		{
			name:     "Not the seller",
			mutate:   func(p *models.Product, repo *fakeRepo) { repo.autoBids[bidKey{1, 2}] = dec(150) },
			sellerID: 50,
			wantKind: ErrForbidden,
		},
		{
			name: "Auction ended",
			mutate: func(p *models.Product, repo *fakeRepo) {
				p.EndAt = ended
				repo.autoBids[bidKey{1, 2}] = dec(150)
			},
			sellerID: 99,
			wantKind: ErrAuctionClosed,
		},
		{
			name: "Already decided",
			mutate: func(p *models.Product, repo *fakeRepo) {
				sold := true
				p.IsSold = &sold
				repo.autoBids[bidKey{1, 2}] = dec(150)
			},
			sellerID: 99,
			wantKind: ErrAlreadyDecided,
		},
		{
			name:     "No prior bid",
			mutate:   func(p *models.Product, repo *fakeRepo) {},
			sellerID: 99,
			wantKind: ErrNoPriorBid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := testProduct()
			repo := newFakeRepo(product)
			tt.mutate(product, repo)
			svc, _ := newTestService(repo)

			_, err := svc.RejectBidder(1, 2, tt.sellerID, "")
			assert.True(t, IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestRejectBidderIdempotentDenylist(t *testing.T) {
	product := testProduct()
	repo := newFakeRepo(product)
	repo.autoBids[bidKey{1, 2}] = dec(150)
	product.HighestBidderID = uintPtr(2)
	product.HighestMaxPrice = decPtr(150)
	svc, _ := newTestService(repo)

	_, err := svc.RejectBidder(1, 2, 99, "")
	require.NoError(t, err)

	// A second rejection fails on the missing proxy bid, not on the
	// denylist insert, and the denylist entry survives.
	_, err = svc.RejectBidder(1, 2, 99, "")
	assert.True(t, IsKind(err, ErrNoPriorBid))
	assert.True(t, repo.rejected[bidKey{1, 2}])
}

func TestUnrejectBidder(t *testing.T) {
	product := testProduct()
	repo := newFakeRepo(product)
	repo.rejected[bidKey{1, 2}] = true
	svc, _ := newTestService(repo)

	err := svc.UnrejectBidder(1, 2, 99)
	require.NoError(t, err)
	assert.False(t, repo.rejected[bidKey{1, 2}], "denylist entry removed")

	err = svc.UnrejectBidder(1, 2, 50)
	assert.True(t, IsKind(err, ErrForbidden))
}

func TestBuyNow(t *testing.T) {
	product := testProduct()
	product.BuyNowPrice = decPtr(500)
	repo := newFakeRepo(product)
	ratedBidder(repo, 2)
	svc, _ := newTestService(repo)

	err := svc.BuyNow(1, 2)
	require.NoError(t, err)

	assert.True(t, repo.product.CurrentPrice.Equal(dec(500)))
	assert.Equal(t, uint(2), *repo.product.HighestBidderID)
	assert.True(t, repo.product.HighestMaxPrice.Equal(dec(500)))
	assert.NotNil(t, repo.product.ClosedAt)
	assert.False(t, repo.product.EndAt.After(time.Now()))
	assert.True(t, repo.product.IsBuyNowPurchase)

	require.Len(t, repo.history, 1)
	assert.True(t, repo.history[0].IsBuyNow)
	assert.True(t, repo.history[0].CurrentPrice.Equal(dec(500)))
}

func TestBuyNowGuards(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *models.Product, repo *fakeRepo)
		userID   uint
		wantKind ErrorKind
	}{
		{
			name:     "No buy-now price",
			mutate:   func(p *models.Product, repo *fakeRepo) { p.BuyNowPrice = nil },
			userID:   2,
			wantKind: ErrBuyNowUnavailable,
		},
		{
			name:     "Seller buying own product",
			mutate:   func(p *models.Product, repo *fakeRepo) {},
			userID:   99,
			wantKind: ErrSelfBidding,
		},
		{
			name: "Denylisted buyer",
			mutate: func(p *models.Product, repo *fakeRepo) {
				repo.rejected[bidKey{1, 2}] = true
			},
			userID:   2,
			wantKind: ErrBidderRejected,
		},
		{
			name: "Reputation below threshold",
			mutate: func(p *models.Product, repo *fakeRepo) {
				repo.ratings[2] = models.RatingPoint{Score: 0.5, ReviewCount: 4}
			},
			userID:   2,
			wantKind: ErrIneligibleReputation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := testProduct()
			product.BuyNowPrice = decPtr(500)
			repo := newFakeRepo(product)
			ratedBidder(repo, 2)
			tt.mutate(product, repo)
			svc, _ := newTestService(repo)

			err := svc.BuyNow(1, tt.userID)
			assert.True(t, IsKind(err, tt.wantKind), "got %v", err)
			assert.Empty(t, repo.history, "failed buy-now writes nothing")
		})
	}
}

func TestGetBiddingHistoryMasksNames(t *testing.T) {
	product := testProduct()
	repo := newFakeRepo(product)
	repo.history = []models.BiddingHistory{
		{ID: 1, ProductID: 1, BidderID: 2, CurrentPrice: dec(100),
			Bidder: models.User{ID: 2, FullName: "Alice"}},
	}
	svc, _ := newTestService(repo)

	entries, err := svc.GetBiddingHistory(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A*i*e", entries[0].BidderName)
}
