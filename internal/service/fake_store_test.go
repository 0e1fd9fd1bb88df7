package service

import (
	"context"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/redis_repo"
)

// fakeStore 記憶體版Store，交易用快照還原模擬回滾
// ExecTx之間互斥，模擬DB的row lock序列化效果
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users    map[uint]*model.User
	products map[uint]*model.Product
	carts    map[uint]map[uint]*model.CartItem
	orders   []*model.Order

	nextUserID    uint
	nextProductID uint
	nextOrderID   uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[uint]*model.User{},
		products: map[uint]*model.Product{},
		carts:    map[uint]map[uint]*model.CartItem{},
	}
}

type storeSnapshot struct {
	users    map[uint]*model.User
	products map[uint]*model.Product
	carts    map[uint]map[uint]*model.CartItem
	orders   []*model.Order

	nextUserID    uint
	nextProductID uint
	nextOrderID   uint
}

func (s *fakeStore) snapshot() *storeSnapshot {
	snap := &storeSnapshot{
		users:         map[uint]*model.User{},
		products:      map[uint]*model.Product{},
		carts:         map[uint]map[uint]*model.CartItem{},
		nextUserID:    s.nextUserID,
		nextProductID: s.nextProductID,
		nextOrderID:   s.nextOrderID,
	}
	for id, u := range s.users {
		cp := *u
		snap.users[id] = &cp
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for userID, items := range s.carts {
		cart := map[uint]*model.CartItem{}
		for pid, item := range items {
			cp := *item
			cart[pid] = &cp
		}
		snap.carts[userID] = cart
	}
	for _, o := range s.orders {
		cp := *o
		cp.OrderItems = append([]model.OrderItem(nil), o.OrderItems...)
		snap.orders = append(snap.orders, &cp)
	}
	return snap
}

func (s *fakeStore) restore(snap *storeSnapshot) {
	s.users = snap.users
	s.products = snap.products
	s.carts = snap.carts
	s.orders = snap.orders
	s.nextUserID = snap.nextUserID
	s.nextProductID = snap.nextProductID
	s.nextOrderID = snap.nextOrderID
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(db.UnifiedDB) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) InitMigrate() error {
	return nil
}

// ---- IUserRepository ----

func (s *fakeStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	user.UserID = s.nextUserID
	cp := *user
	s.users[user.UserID] = &cp
	return user, nil
}

func (s *fakeStore) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserEmail == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, db.ErrUserNotFound
}

func (s *fakeStore) ExistsUserByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserEmail == email {
			return true, nil
		}
	}
	return false, nil
}

// ---- IProductRepository ----

func (s *fakeStore) CreateProduct(ctx context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProductID++
	product.ProductID = s.nextProductID
	cp := *product
	s.products[product.ProductID] = &cp
	return nil
}

func (s *fakeStore) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, db.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })
	return products, nil
}

func (s *fakeStore) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []model.Product
	for _, p := range s.products {
		if p.Category == category {
			products = append(products, *p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })
	return products, nil
}

func (s *fakeStore) GetAllCategories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	var categories []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *fakeStore) ExistsProductByName(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) UpdateProduct(ctx context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ProductID]; !ok {
		return db.ErrProductNotFound
	}
	cp := *product
	s.products[product.ProductID] = &cp
	return nil
}

func (s *fakeStore) DeleteProduct(ctx context.Context, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return db.ErrProductNotFound
	}
	delete(s.products, productID)
	return nil
}

// DeductProductStock 條件式扣減，庫存不足不改資料直接回錯誤
func (s *fakeStore) DeductProductStock(ctx context.Context, productID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return db.ErrProductStockNotEnough
	}
	if int(p.Stock) < quantity {
		return db.ErrProductStockNotEnough
	}
	p.Stock -= uint(quantity)
	return nil
}

// ---- ICartRepository ----

func (s *fakeStore) GetCartItemsByUserID(ctx context.Context, userID uint) ([]model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []model.CartItem
	for _, item := range s.carts[userID] {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

func (s *fakeStore) GetCartItem(ctx context.Context, userID, productID uint) (*model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.carts[userID][productID]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *fakeStore) UpsertCartItem(ctx context.Context, item *model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[item.UserID]
	if !ok {
		cart = map[uint]*model.CartItem{}
		s.carts[item.UserID] = cart
	}
	cp := *item
	cart[item.ProductID] = &cp
	return nil
}

func (s *fakeStore) DeleteCartItemsByUserID(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// ---- IOrderRepository ----

func (s *fakeStore) CreateOrder(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrderID++
	order.OrderID = s.nextOrderID
	cp := *order
	cp.OrderItems = append([]model.OrderItem(nil), order.OrderItems...)
	s.orders = append(s.orders, &cp)
	return nil
}

func (s *fakeStore) CreateOrderItems(ctx context.Context, items []model.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(items) == 0 {
		return nil
	}
	for _, o := range s.orders {
		if o.OrderID == items[0].OrderID {
			o.OrderItems = append(o.OrderItems, items...)
			return nil
		}
	}
	return nil
}

// GetOrdersByUserID 新訂單在前
func (s *fakeStore) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []model.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		o := s.orders[i]
		if o.UserID != userID {
			continue
		}
		cp := *o
		cp.OrderItems = append([]model.OrderItem(nil), o.OrderItems...)
		orders = append(orders, cp)
	}
	return orders, nil
}

var _ db.Store = (*fakeStore)(nil)

// fakeStockCache 記憶體版庫存快取
type fakeStockCache struct {
	mu     sync.Mutex
	stocks map[uint]int
}

func newFakeStockCache() *fakeStockCache {
	return &fakeStockCache{stocks: map[uint]int{}}
}

func (c *fakeStockCache) SetProductStock(ctx context.Context, productID uint, stock uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stocks[productID] = int(stock)
	return nil
}

func (c *fakeStockCache) GetProductStock(ctx context.Context, productID uint) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stock, ok := c.stocks[productID]
	if !ok {
		return 0, redis_repo.ErrStockNotCached
	}
	return stock, nil
}

func (c *fakeStockCache) DeleteProductStock(ctx context.Context, productID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stocks, productID)
	return nil
}

func (c *fakeStockCache) DeleteProductStocks(ctx context.Context, productIDs ...uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range productIDs {
		delete(c.stocks, id)
	}
	return nil
}

var _ redis_repo.IProductStockCache = (*fakeStockCache)(nil)
