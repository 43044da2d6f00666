package bidding

import (
	"time"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

// EvaluateAutoExtend decides whether a bid arriving now pushes the close time
// back. Returns the new end time, or nil when no extension applies. The
// extension is anchored to the scheduled end, not to the bid time.
func EvaluateAutoExtend(product *models.Product, settings AutoExtendSettings, now time.Time) *time.Time {
	if !product.AutoExtend {
		return nil
	}

	minutesRemaining := product.EndAt.Sub(now).Minutes()
	if minutesRemaining <= float64(settings.TriggerMinutes) {
		extended := product.EndAt.Add(time.Duration(settings.ExtendMinutes) * time.Minute)
		return &extended
	}

	return nil
}
