package repository

import (
	"time"

	"github.com/khoadanwneee/AuctionFox/app/models"
	"gorm.io/gorm"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Seller").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetBySellerID(sellerID uint, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("seller_id = ?", sellerID).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// GetActive returns listings that are still open: not past end_at and not
// closed early.
func (r *productRepository) GetActive(offset, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("end_at > ? AND closed_at IS NULL", time.Now()).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetEndingSoon(within time.Duration, limit int) ([]models.Product, error) {
	now := time.Now()
	var products []models.Product
	err := r.db.Where("end_at > ? AND end_at <= ? AND closed_at IS NULL", now, now.Add(within)).
		Limit(limit).
		Order("end_at ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) CountBids(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.BiddingHistory{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}
