package bidnotify

import (
	"log"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"github.com/khoadanwneee/AuctionFox/app/repository"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/bidding"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/jobqueue"
)

// Enqueuer is the slice of the job queue the dispatcher needs.
type Enqueuer interface {
	EnqueueJob(jobType jobqueue.JobType, payload map[string]interface{}) (*jobqueue.Job, error)
}

// Dispatcher implements bidding.Notifier by enqueueing email jobs onto the
// background queue. All methods return immediately; user lookups and
// enqueueing run on a goroutine and failures are only logged.
type Dispatcher struct {
	users repository.UserRepository
	queue Enqueuer
}

func NewDispatcher(users repository.UserRepository, queue Enqueuer) *Dispatcher {
	return &Dispatcher{users: users, queue: queue}
}

// NotifyBidPlaced fans out up to three emails: seller, the bidder who just
// bid, and the previous leader when the public price moved.
func (d *Dispatcher) NotifyBidPlaced(result *bidding.BidResult, productURL string) {
	go func() {
		seller, err := d.users.GetByID(result.SellerID)
		if err != nil {
			log.Printf("[BidNotify] Seller lookup failed for product %d: %v", result.ProductID, err)
		}
		bidder, err := d.users.GetByID(result.UserID)
		if err != nil {
			log.Printf("[BidNotify] Bidder lookup failed for product %d: %v", result.ProductID, err)
		}

		var prev *models.User
		if result.PreviousHighestBidderID != nil && *result.PreviousHighestBidderID != result.UserID {
			prev, err = d.users.GetByID(*result.PreviousHighestBidderID)
			if err != nil {
				log.Printf("[BidNotify] Previous bidder lookup failed for product %d: %v", result.ProductID, err)
			}
		}

		sent := 0
		if seller != nil && seller.Email != "" {
			subject, body := buildSellerBidEmail(seller, result, productURL)
			sent += d.enqueue(seller.Email, subject, body)
		}
		if bidder != nil && bidder.Email != "" {
			subject, body := buildBidderBidEmail(bidder, result, productURL)
			sent += d.enqueue(bidder.Email, subject, body)
		}
		if prev != nil && prev.Email != "" && result.PriceChanged() {
			wasOutbid := result.NewHighestBidderID != *result.PreviousHighestBidderID
			subject, body := buildPreviousBidderEmail(prev, result, productURL, wasOutbid)
			sent += d.enqueue(prev.Email, subject, body)
		}
		if sent > 0 {
			log.Printf("[BidNotify] %d bid notification email(s) queued for product %d", sent, result.ProductID)
		}
	}()
}

// NotifyBidderRejected emails the rejected bidder.
func (d *Dispatcher) NotifyBidderRejected(rejected *models.User, product *models.Product, sellerName, homeURL string) {
	if rejected == nil || rejected.Email == "" || product == nil {
		return
	}
	go func() {
		subject, body := buildRejectedBidderEmail(rejected, product, sellerName, homeURL)
		if d.enqueue(rejected.Email, subject, body) > 0 {
			log.Printf("[BidNotify] Rejection email queued for %s on product %d", rejected.Email, product.ID)
		}
	}()
}

func (d *Dispatcher) enqueue(to, subject, body string) int {
	payload := jobqueue.EmailNotificationJobPayload{
		To:      to,
		Subject: subject,
		Body:    body,
	}
	if _, err := d.queue.EnqueueJob(jobqueue.JobTypeEmailNotification, payload.ToMap()); err != nil {
		log.Printf("[BidNotify] Failed to enqueue email to %s: %v", to, err)
		return 0
	}
	return 1
}
