package bidnotify

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/bidding"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/jobqueue"
)

type capturedJob struct {
	jobType jobqueue.JobType
	payload map[string]interface{}
}

type fakeEnqueuer struct {
	mu   sync.Mutex
	jobs []capturedJob
	done chan struct{}
}

func newFakeEnqueuer(expect int) *fakeEnqueuer {
	return &fakeEnqueuer{done: make(chan struct{}, expect)}
}

func (f *fakeEnqueuer) EnqueueJob(jobType jobqueue.JobType, payload map[string]interface{}) (*jobqueue.Job, error) {
	f.mu.Lock()
	f.jobs = append(f.jobs, capturedJob{jobType: jobType, payload: payload})
	f.mu.Unlock()
	f.done <- struct{}{}
	return &jobqueue.Job{Type: jobType}, nil
}

func (f *fakeEnqueuer) wait(t *testing.T, n int) []capturedJob {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for job %d of %d", i+1, n)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]capturedJob(nil), f.jobs...)
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) Create(user *models.User) error { return nil }
func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, assert.AnError
}
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error)  { return nil, assert.AnError }
func (f *fakeUserRepo) Update(user *models.User) error                 { return nil }
func (f *fakeUserRepo) Delete(id uint) error                           { return nil }
func (f *fakeUserRepo) List(offset, limit int) ([]models.User, error)  { return nil, nil }
func (f *fakeUserRepo) Count() (int64, error)                          { return 0, nil }

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func uintPtr(v uint) *uint { return &v }

func testResult() *bidding.BidResult {
	return &bidding.BidResult{
		ProductID:               7,
		ProductName:             "Vintage Camera",
		SellerID:                1,
		UserID:                  2,
		BidAmount:               dec("200000"),
		NewCurrentPrice:         dec("160000"),
		NewHighestBidderID:      2,
		PreviousHighestBidderID: uintPtr(3),
		PreviousPrice:           dec("150000"),
	}
}

func TestNotifyBidPlacedQueuesAllRecipients(t *testing.T) {
	users := &fakeUserRepo{users: map[uint]*models.User{
		1: {FullName: "Sam Seller", Email: "seller@example.com"},
		2: {FullName: "Beth Bidder", Email: "bidder@example.com"},
		3: {FullName: "Paula Prior", Email: "prior@example.com"},
	}}
	queue := newFakeEnqueuer(3)
	d := NewDispatcher(users, queue)

	d.NotifyBidPlaced(testResult(), "https://auctionfox.test/products/7")

	jobs := queue.wait(t, 3)
	require.Len(t, jobs, 3)

	recipients := map[string]bool{}
	for _, j := range jobs {
		assert.Equal(t, jobqueue.JobTypeEmailNotification, j.jobType)
		p, err := jobqueue.EmailNotificationJobPayloadFromMap(j.payload)
		require.NoError(t, err)
		recipients[p.To] = true
		assert.Contains(t, p.Subject, "Vintage Camera")
		assert.Contains(t, p.Body, "160,000 VND")
	}
	assert.True(t, recipients["seller@example.com"])
	assert.True(t, recipients["bidder@example.com"])
	assert.True(t, recipients["prior@example.com"])
}

func TestNotifyBidPlacedSkipsPreviousBidderWhenPriceUnchanged(t *testing.T) {
	users := &fakeUserRepo{users: map[uint]*models.User{
		1: {FullName: "Sam Seller", Email: "seller@example.com"},
		2: {FullName: "Beth Bidder", Email: "bidder@example.com"},
		3: {FullName: "Paula Prior", Email: "prior@example.com"},
	}}
	queue := newFakeEnqueuer(2)
	d := NewDispatcher(users, queue)

	result := testResult()
	result.PreviousPrice = result.NewCurrentPrice
	d.NotifyBidPlaced(result, "https://auctionfox.test/products/7")

	jobs := queue.wait(t, 2)
	for _, j := range jobs {
		p, err := jobqueue.EmailNotificationJobPayloadFromMap(j.payload)
		require.NoError(t, err)
		assert.NotEqual(t, "prior@example.com", p.To)
	}
}

func TestNotifyBidderRejected(t *testing.T) {
	queue := newFakeEnqueuer(1)
	d := NewDispatcher(&fakeUserRepo{}, queue)

	rejected := &models.User{FullName: "Beth Bidder", Email: "bidder@example.com"}
	product := &models.Product{Name: "Vintage Camera"}
	product.ID = 7
	d.NotifyBidderRejected(rejected, product, "Sam Seller", "https://auctionfox.test")

	jobs := queue.wait(t, 1)
	p, err := jobqueue.EmailNotificationJobPayloadFromMap(jobs[0].payload)
	require.NoError(t, err)
	assert.Equal(t, "bidder@example.com", p.To)
	assert.Equal(t, "Your bid has been rejected: Vintage Camera", p.Subject)
	assert.Contains(t, p.Body, "Sam Seller")
}

func TestNotifyBidderRejectedNoEmail(t *testing.T) {
	queue := newFakeEnqueuer(1)
	d := NewDispatcher(&fakeUserRepo{}, queue)

	d.NotifyBidderRejected(&models.User{FullName: "No Mail"}, &models.Product{Name: "X"}, "S", "https://auctionfox.test")

	select {
	case <-queue.done:
		t.Fatal("expected no job for a bidder without an email address")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"150000", "150,000"},
		{"1234567", "1,234,567"},
		{"150000.75", "150,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVND(dec(tt.in)), "formatVND(%s)", tt.in)
	}
}

func TestBuildBidderBidEmailOutbid(t *testing.T) {
	result := testResult()
	result.NewHighestBidderID = 3
	bidder := &models.User{FullName: "Beth Bidder", Email: "bidder@example.com"}

	subject, body := buildBidderBidEmail(bidder, result, "https://auctionfox.test/products/7")
	assert.Equal(t, "Bid placed: Vintage Camera", subject)
	assert.Contains(t, body, "another bidder has a higher maximum bid")
	assert.Contains(t, body, "200,000 VND")
}
