package bidding

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/khoadanwneee/AuctionFox/app/models"
)

// Repository provides the storage operations the bidding service performs.
// Transaction yields a Repository bound to one database transaction; every
// mutating flow runs entirely inside such a transaction, serialized on the
// product row via GetProductForUpdate.
type Repository interface {
	Transaction(fn func(tx Repository) error) error

	GetProductForUpdate(productID uint) (*models.Product, error)
	UpdateProduct(productID uint, fields map[string]interface{}) error

	GetUser(userID uint) (*models.User, error)
	CalculateRatingPoint(userID uint) (models.RatingPoint, error)

	IsRejected(productID, bidderID uint) (bool, error)
	InsertRejection(productID, bidderID, sellerID uint) error
	DeleteRejection(productID, bidderID uint) error

	GetAutoBid(productID, bidderID uint) (*models.AutoBidding, error)
	UpsertAutoBid(productID, bidderID uint, maxPrice decimal.Decimal) error
	DeleteAutoBid(productID, bidderID uint) error
	ListAutoBidsDesc(productID uint) ([]models.AutoBidding, error)

	AppendHistory(entry *models.BiddingHistory) error
	DeleteHistoryByBidder(productID, bidderID uint) error
	GetLatestHistory(productID uint) (*models.BiddingHistory, error)
	ListHistory(productID uint) ([]models.BiddingHistory, error)

	AutoExtendSettings() (AutoExtendSettings, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a bidding repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(fn func(tx Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

// GetProductForUpdate reads the product row under an exclusive lock
// (SELECT ... FOR UPDATE); concurrent bids on the same product block here
// until the holding transaction commits.
func (r *gormRepository) GetProductForUpdate(productID uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) UpdateProduct(productID uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Product{}).Where("id = ?", productID).Updates(fields).Error
}

func (r *gormRepository) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CalculateRatingPoint aggregates a user's reviews into a reputation score:
// the share of positive reviews over all reviews.
func (r *gormRepository) CalculateRatingPoint(userID uint) (models.RatingPoint, error) {
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

func (r *gormRepository) IsRejected(productID, bidderID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.RejectedBidder{}).
		Where("product_id = ? AND bidder_id = ?", productID, bidderID).
		Count(&count).Error
	return count > 0, err
}

// InsertRejection is idempotent: a conflicting insert for the same
// (product, bidder) pair is ignored.
func (r *gormRepository) InsertRejection(productID, bidderID, sellerID uint) error {
	entry := models.RejectedBidder{
		ProductID: productID,
		BidderID:  bidderID,
		SellerID:  sellerID,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "product_id"},
			{Name: "bidder_id"},
		},
		DoNothing: true,
	}).Create(&entry).Error
}

func (r *gormRepository) DeleteRejection(productID, bidderID uint) error {
	return r.db.Where("product_id = ? AND bidder_id = ?", productID, bidderID).
		Delete(&models.RejectedBidder{}).Error
}

func (r *gormRepository) GetAutoBid(productID, bidderID uint) (*models.AutoBidding, error) {
	var autoBid models.AutoBidding
	err := r.db.Where("product_id = ? AND bidder_id = ?", productID, bidderID).
		First(&autoBid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &autoBid, nil
}

// UpsertAutoBid inserts the bidder's proxy bid or overwrites its ceiling,
// preserving the one-row-per-(product,bidder) invariant.
func (r *gormRepository) UpsertAutoBid(productID, bidderID uint, maxPrice decimal.Decimal) error {
	autoBid := models.AutoBidding{
		ProductID: productID,
		BidderID:  bidderID,
		MaxPrice:  maxPrice,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "product_id"},
			{Name: "bidder_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"max_price", "updated_at"}),
	}).Create(&autoBid).Error
}

func (r *gormRepository) DeleteAutoBid(productID, bidderID uint) error {
	return r.db.Where("product_id = ? AND bidder_id = ?", productID, bidderID).
		Delete(&models.AutoBidding{}).Error
}

func (r *gormRepository) ListAutoBidsDesc(productID uint) ([]models.AutoBidding, error) {
	var autoBids []models.AutoBidding
	err := r.db.Where("product_id = ?", productID).
		Order("max_price DESC").
		Find(&autoBids).Error
	return autoBids, err
}

func (r *gormRepository) AppendHistory(entry *models.BiddingHistory) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) DeleteHistoryByBidder(productID, bidderID uint) error {
	return r.db.Where("product_id = ? AND bidder_id = ?", productID, bidderID).
		Delete(&models.BiddingHistory{}).Error
}

func (r *gormRepository) GetLatestHistory(productID uint) (*models.BiddingHistory, error) {
	var entry models.BiddingHistory
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *gormRepository) ListHistory(productID uint) ([]models.BiddingHistory, error) {
	var entries []models.BiddingHistory
	err := r.db.Preload("Bidder").
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

// AutoExtendSettings reads the configured extension window from the cached
// application settings, falling back to built-in defaults.
func (r *gormRepository) AutoExtendSettings() (AutoExtendSettings, error) {
	settings := models.GetAppSettings()
	if settings == nil {
		return AutoExtendSettings{TriggerMinutes: 5, ExtendMinutes: 10}, nil
	}
	trigger, extend := settings.AutoExtendSettings()
	return AutoExtendSettings{TriggerMinutes: trigger, ExtendMinutes: extend}, nil
}
