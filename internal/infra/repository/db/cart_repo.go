package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo struct {
	dbDao *DbDao
}

func NewCartRepo(dbDao *DbDao) *CartRepo {
	return &CartRepo{dbDao: dbDao}
}

// Read - 查詢用戶購物車全部明細
func (s *CartRepo) GetCartItemsByUserID(ctx context.Context, userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := s.dbDao.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// Read - 查詢單一購物車明細，不存在回傳nil
func (s *CartRepo) GetCartItem(ctx context.Context, userID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.dbDao.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert - 寫入購物車明細，同 (user_id, product_id) 已存在時覆蓋數量
func (s *CartRepo) UpsertCartItem(ctx context.Context, item *model.CartItem) error {
	return s.dbDao.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(item).Error
}

// Delete - 清空用戶購物車
func (s *CartRepo) DeleteCartItemsByUserID(ctx context.Context, userID uint) error {
	return s.dbDao.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}
