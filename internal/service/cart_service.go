package service

import (
	"context"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/redis_repo"
	"github.com/shopspring/decimal"
)

type ICartService interface {
	AddToCart(ctx context.Context, userEmail string, productID uint, quantity int) (*model.CartItemView, error)
	GetCart(ctx context.Context, userEmail string) (*model.CartView, error)
}

// CartService 購物車
// 加入購物車只做建議性的庫存檢查，真正的庫存保護在下訂時的條件式扣減
type CartService struct {
	store      db.Store
	stockCache redis_repo.IProductStockCache
}

func NewCartService(store db.Store, stockCache redis_repo.IProductStockCache) *CartService {
	if store == nil {
		panic("store cannot be nil")
	}
	return &CartService{store: store, stockCache: stockCache}
}

// AddToCart 加入購物車
// 同商品重複加入時數量累加，庫存檢查用累加後的總量，不是本次的增量
func (c *CartService) AddToCart(ctx context.Context, userEmail string, productID uint, quantity int) (*model.CartItemView, error) {
	user, err := c.store.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	product, err := c.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	newQuantity := quantity
	existing, err := c.store.GetCartItem(ctx, user.UserID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		newQuantity += existing.Quantity
	}

	available := c.availableStock(ctx, product)
	if available < newQuantity {
		return nil, &InsufficientStockError{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Available:   available,
			Requested:   newQuantity,
		}
	}

	item := &model.CartItem{
		UserID:    user.UserID,
		ProductID: productID,
		Quantity:  newQuantity,
	}
	if err := c.store.UpsertCartItem(ctx, item); err != nil {
		return nil, err
	}

	view := composeCartItemView(item, product)
	return &view, nil
}

// GetCart 查詢購物車，totals用當前商品單價計算
func (c *CartService) GetCart(ctx context.Context, userEmail string) (*model.CartView, error) {
	user, err := c.store.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	items, err := c.store.GetCartItemsByUserID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	view := &model.CartView{
		Items:       make([]model.CartItemView, 0, len(items)),
		TotalAmount: decimal.NewFromInt(0),
	}
	for _, item := range items {
		product, err := c.store.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		iv := composeCartItemView(&item, product)
		view.Items = append(view.Items, iv)
		view.TotalAmount = view.TotalAmount.Add(iv.LineAmount)
		view.TotalItems += iv.Quantity
	}
	return view, nil
}

// availableStock 先讀快取，沒有就回源DB的商品資料
// 快取可能落後DB，這裡只做建議性檢查所以可以接受
func (c *CartService) availableStock(ctx context.Context, product *model.Product) int {
	if c.stockCache != nil {
		if cached, err := c.stockCache.GetProductStock(ctx, product.ProductID); err == nil {
			return cached
		}
	}
	return int(product.Stock)
}

func composeCartItemView(item *model.CartItem, product *model.Product) model.CartItemView {
	return model.CartItemView{
		ProductID:   item.ProductID,
		ProductName: product.Name,
		Price:       product.Price,
		Category:    product.Category,
		Quantity:    item.Quantity,
		LineAmount:  product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

var _ ICartService = (*CartService)(nil)
