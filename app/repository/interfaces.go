package repository

import (
	"time"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// ProductRepository defines the interface for listing-related database operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetBySellerID(sellerID uint, offset, limit int) ([]models.Product, error)
	GetActive(offset, limit int) ([]models.Product, error)
	GetEndingSoon(within time.Duration, limit int) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	Count() (int64, error)
	CountBids(productID uint) (int64, error)
}

// ReviewRepository defines the interface for rating-related database operations
type ReviewRepository interface {
	CreateOrUpdate(review *models.Review) error
	GetByUserID(userID uint) ([]models.Review, error)
	CalculateRatingPoint(userID uint) (models.RatingPoint, error)
}

// RejectedBidderRepository defines the interface for the per-listing denylist
type RejectedBidderRepository interface {
	GetByProductID(productID uint) ([]models.RejectedBidder, error)
	IsRejected(productID, bidderID uint) (bool, error)
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User           UserRepository
	Product        ProductRepository
	Review         ReviewRepository
	RejectedBidder RejectedBidderRepository
	Setting        SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:           NewUserRepository(db),
		Product:        NewProductRepository(db),
		Review:         NewReviewRepository(db),
		RejectedBidder: NewRejectedBidderRepository(db),
		Setting:        NewSettingRepository(db),
	}
}
