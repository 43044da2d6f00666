package repository

import (
	"github.com/khoadanwneee/AuctionFox/app/models"
	"gorm.io/gorm"
)

// rejectedBidderRepository implements the RejectedBidderRepository interface
type rejectedBidderRepository struct {
	db *gorm.DB
}

// NewRejectedBidderRepository creates a new rejected bidder repository instance
func NewRejectedBidderRepository(db *gorm.DB) RejectedBidderRepository {
	return &rejectedBidderRepository{db: db}
}

func (r *rejectedBidderRepository) GetByProductID(productID uint) ([]models.RejectedBidder, error) {
	var entries []models.RejectedBidder
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *rejectedBidderRepository) IsRejected(productID, bidderID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.RejectedBidder{}).
		Where("product_id = ? AND bidder_id = ?", productID, bidderID).
		Count(&count).Error
	return count > 0, err
}
