package services

import (
	"errors"
	"time"

	"breakage-exchange-api/models"

	"gorm.io/gorm"
)

// ErrProductInUse means at least one item still references the product, so
// deletion is refused to keep the reports readable.
var ErrProductInUse = errors.New("product is referenced by existing items")

// ProductService owns catalog rules that outlive a single handler.
type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// Delete soft deletes a product unless an item references it. Returns the
// deleted product so callers can audit its code.
func (s *ProductService) Delete(productID int) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("product_id = ? AND delete_at IS NULL", productID).
		First(&product).Error; err != nil {
		return nil, err
	}

	var itemCount int64
	if err := s.db.Model(&models.Item{}).
		Where("product_id = ?", productID).
		Count(&itemCount).Error; err != nil {
		return nil, err
	}
	if itemCount > 0 {
		return nil, ErrProductInUse
	}

	if err := s.db.Model(&models.Product{}).
		Where("product_id = ?", productID).
		Update("delete_at", time.Now()).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
