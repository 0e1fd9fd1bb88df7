package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"gorm.io/gorm"
)

type ProductRepo struct {
	dbDao *DbDao
}

func NewProductRepo(dbDao *DbDao) *ProductRepo {
	return &ProductRepo{dbDao: dbDao}
}

// Create - 創建商品
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.dbDao.WithContext(ctx).Create(product).Error
}

// Read - 根據ID查詢商品
func (s *ProductRepo) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.dbDao.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Read - 查詢所有商品
func (s *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.dbDao.WithContext(ctx).Find(&products).Error
	return products, err
}

// Read - 根據分類查詢商品，分類不分大小寫
func (s *ProductRepo) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var products []model.Product
	err := s.dbDao.WithContext(ctx).Where("LOWER(category) = LOWER(?)", category).Find(&products).Error
	return products, err
}

// Read - 查詢所有商品分類
func (s *ProductRepo) GetAllCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.dbDao.WithContext(ctx).Model(&model.Product{}).Distinct().Pluck("category", &categories).Error
	return categories, err
}

// Read - 檢查商品名稱是否已存在
func (s *ProductRepo) ExistsProductByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := s.dbDao.WithContext(ctx).Model(&model.Product{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update - 更新商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.dbDao.WithContext(ctx).Save(product).Error
}

// Delete - 刪除商品
func (s *ProductRepo) DeleteProduct(ctx context.Context, productID uint) error {
	result := s.dbDao.WithContext(ctx).Delete(&model.Product{}, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeductProductStock 條件式扣庫存
// 單一UPDATE帶stock >= quantity條件，由affected rows判斷是否扣減成功
// 兩個並發請求搶最後一件庫存時，row lock會讓後到的UPDATE affected 0
func (s *ProductRepo) DeductProductStock(ctx context.Context, productID uint, quantity int) error {
	result := s.dbDao.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductStockNotEnough
	}
	return nil
}
