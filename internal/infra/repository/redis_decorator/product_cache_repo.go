package redis_decorator

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
)

/*
redis 專注商品庫存，所以只有跟商品庫存有關操作，才需要連動redis
庫存快取不同步時寧可刪除快取讓讀取回源DB
*/
type CacheAsideProductRepo struct {
	db.IProductRepository
	cache redis_repo.IProductStockCache
}

func NewCacheAsideProductRepo(dbRepo db.IProductRepository, cache redis_repo.IProductStockCache) db.IProductRepository {
	return &CacheAsideProductRepo{IProductRepository: dbRepo, cache: cache}
}

func (p *CacheAsideProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	err := p.IProductRepository.CreateProduct(ctx, product)
	if err != nil {
		return err
	}
	if err := p.cache.SetProductStock(ctx, product.ProductID, product.Stock); err != nil {
		log.Warn().Err(err).Uint("product_id", product.ProductID).Msg("failed to seed stock cache")
	}
	return nil
}

func (p *CacheAsideProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	err := p.IProductRepository.UpdateProduct(ctx, product)
	if err != nil {
		return err
	}

	err = p.cache.SetProductStock(ctx, product.ProductID, product.Stock)
	if err != nil {
		log.Warn().Err(err).Uint("product_id", product.ProductID).Msg("failed to refresh stock cache")
		// 快取寫入失敗就延遲刪除，避免留下舊值
		go func() {
			time.Sleep(500 * time.Millisecond)
			p.cache.DeleteProductStock(context.Background(), product.ProductID)
		}()
	}
	return nil
}

func (p *CacheAsideProductRepo) DeleteProduct(ctx context.Context, productID uint) error {
	err := p.IProductRepository.DeleteProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := p.cache.DeleteProductStock(context.Background(), productID); err != nil {
		log.Warn().Err(err).Uint("product_id", productID).Msg("failed to drop stock cache")
	}
	return nil
}

// DeductProductStock 扣庫存後直接刪快取，下次讀取回源DB
func (p *CacheAsideProductRepo) DeductProductStock(ctx context.Context, productID uint, quantity int) error {
	err := p.IProductRepository.DeductProductStock(ctx, productID, quantity)
	if err != nil {
		return err
	}
	if err := p.cache.DeleteProductStock(ctx, productID); err != nil {
		log.Warn().Err(err).Uint("product_id", productID).Msg("failed to drop stock cache")
	}
	return nil
}

var _ db.IProductRepository = (*CacheAsideProductRepo)(nil)
