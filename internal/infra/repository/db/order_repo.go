package db

import (
	"context"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
)

type OrderRepo struct {
	dbDao *DbDao
}

func NewOrderRepo(dbDao *DbDao) *OrderRepo {
	return &OrderRepo{dbDao: dbDao}
}

// Create - 創建訂單，OrderItems一併寫入
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.dbDao.WithContext(ctx).Create(order).Error
}

// Create - 寫入訂單明細
func (s *OrderRepo) CreateOrderItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.dbDao.WithContext(ctx).Create(&items).Error
}

// Read - 根據用戶ID查詢訂單，新訂單在前
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.dbDao.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
