package db

import (
	"context"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"gorm.io/gorm"
)

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID uint) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	GetAllCategories(ctx context.Context) ([]string, error)
	ExistsProductByName(ctx context.Context, name string) (bool, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID uint) error
	DeductProductStock(ctx context.Context, productID uint, quantity int) error
}

// ICartRepository Cart 相關操作介面
type ICartRepository interface {
	GetCartItemsByUserID(ctx context.Context, userID uint) ([]model.CartItem, error)
	GetCartItem(ctx context.Context, userID, productID uint) (*model.CartItem, error)
	UpsertCartItem(ctx context.Context, item *model.CartItem) error
	DeleteCartItemsByUserID(ctx context.Context, userID uint) error
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	CreateOrderItems(ctx context.Context, items []model.OrderItem) error
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
}

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	IUserRepository
	IProductRepository
	ICartRepository
	IOrderRepository
}

// Store 在UnifiedDB之上提供交易邊界
// ExecTx內所有repo操作共用同一個交易，fn回傳錯誤則全部回滾
type Store interface {
	UnifiedDB
	ExecTx(ctx context.Context, fn func(UnifiedDB) error) error
	InitMigrate() error
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*UserRepo
	*ProductRepo
	*CartRepo
	*OrderRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:          db,
		dbDao:       dbDao,
		UserRepo:    NewUserRepo(dbDao),
		ProductRepo: NewProductRepo(dbDao),
		CartRepo:    NewCartRepo(dbDao),
		OrderRepo:   NewOrderRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

// GetDB 獲取資料庫連接
func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

// ExecTx 執行一個交易
// fn拿到的UnifiedDB綁定在交易上，fn回傳nil才會commit
func (u *UnifiedDBImpl) ExecTx(ctx context.Context, fn func(UnifiedDB) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnifiedDB(tx))
	})
}

var (
	_ UnifiedDB          = (*UnifiedDBImpl)(nil)
	_ Store              = (*UnifiedDBImpl)(nil)
	_ IUserRepository    = (*UnifiedDBImpl)(nil)
	_ IProductRepository = (*UnifiedDBImpl)(nil)
	_ ICartRepository    = (*UnifiedDBImpl)(nil)
	_ IOrderRepository   = (*UnifiedDBImpl)(nil)
)
