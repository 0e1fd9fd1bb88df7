package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// IProductStockCache 定義 Redis 商品庫存快取的介面
type IProductStockCache interface {
	// SetProductStock 寫入商品庫存快取
	SetProductStock(ctx context.Context, productID uint, stock uint) error

	// GetProductStock 取得商品庫存快取
	GetProductStock(ctx context.Context, productID uint) (int, error)

	// DeleteProductStock 刪除商品庫存快取
	DeleteProductStock(ctx context.Context, productID uint) error

	// DeleteProductStocks 批次刪除商品庫存快取
	DeleteProductStocks(ctx context.Context, productIDs ...uint) error
}

type StockCacheError error

// ErrStockNotCached 快取內沒有該商品庫存，呼叫端應回源DB
var ErrStockNotCached StockCacheError = errors.New("product stock not cached")

/*	redis 專注商品庫存快取
	DB才是真相來源，快取不一致時以invalidate處理
	結構:
	product:{id}:stock -> int*/

type ProductStockRepo struct {
	productCache *redis.Client
}

func NewProductStockRepo(productCache *redis.Client) *ProductStockRepo {
	return &ProductStockRepo{productCache: productCache}
}

func generateProductStockKey(productID uint) string {
	return fmt.Sprintf("product:%d:stock", productID)
}

func (s *ProductStockRepo) SetProductStock(ctx context.Context, productID uint, stock uint) error {
	redisKey := generateProductStockKey(productID)
	return s.productCache.Set(ctx, redisKey, stock, 0).Err()
}

// 取得商品庫存快取
// 錯誤:
//   - ErrStockNotCached: 快取不存在
//   - err: 其他錯誤
func (s *ProductStockRepo) GetProductStock(ctx context.Context, productID uint) (int, error) {
	redisKey := generateProductStockKey(productID)
	stock, err := s.productCache.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrStockNotCached
	}
	if err != nil {
		return 0, err
	}

	stockInt, err := strconv.ParseInt(stock, 10, 64)
	if err != nil {
		return 0, err
	}

	return int(stockInt), nil
}

func (s *ProductStockRepo) DeleteProductStock(ctx context.Context, productID uint) error {
	redisKey := generateProductStockKey(productID)
	return s.productCache.Del(ctx, redisKey).Err()
}

func (s *ProductStockRepo) DeleteProductStocks(ctx context.Context, productIDs ...uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = generateProductStockKey(id)
	}
	return s.productCache.Del(ctx, keys...).Err()
}

var _ IProductStockCache = (*ProductStockRepo)(nil)
