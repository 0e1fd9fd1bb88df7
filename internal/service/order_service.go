package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model/event"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/producer"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrCartEmpty = errors.New("cart is empty, cannot create order")
)

// InsufficientStockError 庫存不足，帶有可用/需求數量細節
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s. available: %d, requested: %d",
		e.ProductName, e.Available, e.Requested)
}

// ItemRequest 下訂請求的單行 (商品, 數量)
type ItemRequest struct {
	ProductID uint
	Quantity  int
}

type IOrderService interface {
	CreateOrder(ctx context.Context, userEmail string, items []ItemRequest) (*model.OrderView, error)
	CreateOrderFromCart(ctx context.Context, userEmail string) (*model.OrderView, error)
	GetUserOrders(ctx context.Context, userEmail string) ([]model.OrderView, error)
}

// OrderService 訂單組裝
// 下訂的完整流程(用戶解析 → 逐行保留庫存 → 訂單落地 → 清購物車)在單一交易內完成
// 事件發布與快取失效只在commit後執行
type OrderService struct {
	store      db.Store
	evtProd    producer.IOrderEventProducer
	stockCache redis_repo.IProductStockCache
}

func NewOrderService(store db.Store, evtProd producer.IOrderEventProducer, stockCache redis_repo.IProductStockCache) *OrderService {
	if store == nil {
		panic("store cannot be nil")
	}
	return &OrderService{store: store, evtProd: evtProd, stockCache: stockCache}
}

// CreateOrder 用明確的商品清單下訂
// 交易內任一行失敗，訂單、明細、庫存扣減、清購物車全部回滾
func (o *OrderService) CreateOrder(ctx context.Context, userEmail string, items []ItemRequest) (*model.OrderView, error) {
	var view *model.OrderView

	err := o.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		user, err := tx.GetUserByEmail(ctx, userEmail)
		if err != nil {
			return err
		}

		view, err = o.placeOrder(ctx, tx, user, items)
		return err
	})
	if err != nil {
		return nil, err
	}

	o.afterCommit(ctx, view)
	return view, nil
}

// CreateOrderFromCart 用當前購物車內容下訂
// 購物車為空直接失敗，不產生任何變動
func (o *OrderService) CreateOrderFromCart(ctx context.Context, userEmail string) (*model.OrderView, error) {
	var view *model.OrderView

	err := o.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		user, err := tx.GetUserByEmail(ctx, userEmail)
		if err != nil {
			return err
		}

		cartItems, err := tx.GetCartItemsByUserID(ctx, user.UserID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		items := make([]ItemRequest, 0, len(cartItems))
		for _, ci := range cartItems {
			items = append(items, ItemRequest{ProductID: ci.ProductID, Quantity: ci.Quantity})
		}

		view, err = o.placeOrder(ctx, tx, user, items)
		return err
	})
	if err != nil {
		return nil, err
	}

	o.afterCommit(ctx, view)
	return view, nil
}

// GetUserOrders 查詢用戶歷史訂單，新訂單在前
// 金額用明細內的快照單價計算，商品名稱/分類則取當前商品資料
func (o *OrderService) GetUserOrders(ctx context.Context, userEmail string) ([]model.OrderView, error) {
	user, err := o.store.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	orders, err := o.store.GetOrdersByUserID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	products := map[uint]*model.Product{}
	views := make([]model.OrderView, 0, len(orders))
	for _, order := range orders {
		itemViews := make([]model.OrderItemView, 0, len(order.OrderItems))
		for _, item := range order.OrderItems {
			product, ok := products[item.ProductID]
			if !ok {
				product, err = o.store.GetProductByID(ctx, item.ProductID)
				if errors.Is(err, db.ErrProductNotFound) {
					// 歷史訂單引用的商品已下架，名稱留空、金額仍用快照
					product = &model.Product{ProductID: item.ProductID}
				} else if err != nil {
					return nil, err
				}
				products[item.ProductID] = product
			}
			itemViews = append(itemViews, composeOrderItemView(&item, product))
		}
		views = append(views, composeOrderView(&order, itemViews))
	}
	return views, nil
}

// placeOrder 下訂核心，必須在交易內呼叫
// 流程: 建立訂單header取得ID → 逐行保留庫存 → 明細落地 → 無條件清購物車
func (o *OrderService) placeOrder(ctx context.Context, tx db.UnifiedDB, user *model.User, items []ItemRequest) (*model.OrderView, error) {
	order := &model.Order{
		UserID:    user.UserID,
		OrderDate: time.Now(),
	}
	if err := tx.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	orderItems, itemViews, err := o.reserveItems(ctx, tx, order.OrderID, items)
	if err != nil {
		return nil, err
	}

	order.OrderItems = orderItems
	if err := tx.CreateOrderItems(ctx, orderItems); err != nil {
		return nil, err
	}

	// 下訂成功一律清空購物車，即使訂單不是從購物車來的
	if err := tx.DeleteCartItemsByUserID(ctx, user.UserID); err != nil {
		return nil, err
	}

	view := composeOrderView(order, itemViews)
	return &view, nil
}

// reserveItems 逐行驗證庫存並扣減，產生帶價格快照的訂單明細
// 同一商品重複出現時依輸入順序獨立處理，後面的行看到的是前面扣減後的庫存
func (o *OrderService) reserveItems(ctx context.Context, tx db.UnifiedDB, orderID uint, reqs []ItemRequest) ([]model.OrderItem, []model.OrderItemView, error) {
	orderItems := make([]model.OrderItem, 0, len(reqs))
	itemViews := make([]model.OrderItemView, 0, len(reqs))

	for i, req := range reqs {
		product, err := tx.GetProductByID(ctx, req.ProductID)
		if err != nil {
			return nil, nil, err
		}

		if err := tx.DeductProductStock(ctx, req.ProductID, req.Quantity); err != nil {
			if errors.Is(err, db.ErrProductStockNotEnough) {
				return nil, nil, &InsufficientStockError{
					ProductID:   product.ProductID,
					ProductName: product.Name,
					Available:   int(product.Stock),
					Requested:   req.Quantity,
				}
			}
			return nil, nil, err
		}

		item := model.OrderItem{
			OrderID:   orderID,
			LineNo:    i + 1,
			ProductID: product.ProductID,
			Quantity:  req.Quantity,
			Price:     product.Price, // 保留當下單價快照
		}
		orderItems = append(orderItems, item)
		itemViews = append(itemViews, composeOrderItemView(&item, product))
	}
	return orderItems, itemViews, nil
}

// afterCommit 交易成功後的副作用: 發布訂單事件、讓庫存快取失效
// 這些失敗不影響已成立的訂單，只記log
func (o *OrderService) afterCommit(ctx context.Context, view *model.OrderView) {
	if o.stockCache != nil {
		ids := make([]uint, 0, len(view.Items))
		seen := map[uint]struct{}{}
		for _, item := range view.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
		if err := o.stockCache.DeleteProductStocks(ctx, ids...); err != nil {
			log.Warn().Err(err).Uint("order_id", view.OrderID).Msg("failed to drop stock cache after order")
		}
	}

	if o.evtProd != nil {
		evt := &event.OrderCreatedEvent{
			OrderID:   view.OrderID,
			UserID:    view.UserID,
			OrderDate: view.OrderDate,
			Amount:    view.TotalAmount,
		}
		for _, item := range view.Items {
			evt.Items = append(evt.Items, event.OrderItemData{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Amount:      item.LineAmount,
			})
		}
		if err := o.evtProd.ProduceOrderCreatedEvent(ctx, evt); err != nil {
			log.Warn().Err(err).Uint("order_id", view.OrderID).Msg("failed to produce order created event")
		}
	}
}

func composeOrderItemView(item *model.OrderItem, product *model.Product) model.OrderItemView {
	return model.OrderItemView{
		ProductID:   item.ProductID,
		ProductName: product.Name,
		Price:       item.Price,
		Category:    product.Category,
		Quantity:    item.Quantity,
		LineAmount:  item.LineAmount(),
	}
}

func composeOrderView(order *model.Order, itemViews []model.OrderItemView) model.OrderView {
	totalAmount := decimal.NewFromInt(0)
	totalItems := 0
	for _, iv := range itemViews {
		totalAmount = totalAmount.Add(iv.LineAmount)
		totalItems += iv.Quantity
	}
	return model.OrderView{
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		OrderDate:   order.OrderDate,
		Items:       itemViews,
		TotalAmount: totalAmount,
		TotalItems:  totalItems,
	}
}

var _ IOrderService = (*OrderService)(nil)
