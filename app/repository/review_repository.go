package repository

import (
	"errors"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"gorm.io/gorm"
)

// reviewRepository implements the ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateOrUpdate stores a review, overwriting an existing one by the same
// reviewer for the same product.
func (r *reviewRepository) CreateOrUpdate(review *models.Review) error {
	var existing models.Review
	err := r.db.Where("reviewer_id = ? AND product_id = ?", review.ReviewerID, review.ProductID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(review).Error
	} else if err != nil {
		return err
	}

	existing.Rating = review.Rating
	existing.Comment = review.Comment
	return r.db.Save(&existing).Error
}

func (r *reviewRepository) GetByUserID(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("reviewed_user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// CalculateRatingPoint aggregates a user's reviews into a reputation score.
func (r *reviewRepository) CalculateRatingPoint(userID uint) (models.RatingPoint, error) {
	var counts struct {
		Total    int64
		Positive int64
	}
	err := r.db.Model(&models.Review{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN rating = 1 THEN 1 ELSE 0 END), 0) AS positive").
		Where("reviewed_user_id = ?", userID).
		Scan(&counts).Error
	if err != nil {
		return models.RatingPoint{}, err
	}
	if counts.Total == 0 {
		return models.RatingPoint{}, nil
	}
	return models.RatingPoint{
		Score:       float64(counts.Positive) / float64(counts.Total),
		ReviewCount: int(counts.Total),
	}, nil
}
