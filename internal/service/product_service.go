package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNameExists = errors.New("product with same name already exists")
	ErrInvalidPrice      = errors.New("price cannot be negative")
)

// ProductUpdateParams 部分更新用，nil欄位不更新
type ProductUpdateParams struct {
	Name     *string
	Price    *decimal.Decimal
	Stock    *uint
	Category *string
}

type IProductService interface {
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	GetProductByID(ctx context.Context, productID uint) (*model.Product, error)
	GetAllCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID uint, params ProductUpdateParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID uint) error
}

// ProductService 商品目錄
// productRepo注入的是帶redis快取的decorator，庫存異動會連動快取
type ProductService struct {
	productRepo db.IProductRepository
}

func NewProductService(productRepo db.IProductRepository) *ProductService {
	if productRepo == nil {
		panic("productRepo cannot be nil")
	}
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.GetAllProducts(ctx)
}

func (s *ProductService) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return s.productRepo.GetProductsByCategory(ctx, category)
}

func (s *ProductService) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	return s.productRepo.GetProductByID(ctx, productID)
}

func (s *ProductService) GetAllCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.GetAllCategories(ctx)
}

// CreateProduct 創建商品，名稱不可重複
func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	exists, err := s.productRepo.ExistsProductByName(ctx, product.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProductNameExists
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 部分更新商品，改名時要檢查新名稱沒被其他商品用掉
func (s *ProductService) UpdateProduct(ctx context.Context, productID uint, params ProductUpdateParams) (*model.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil && *params.Name != product.Name {
		exists, err := s.productRepo.ExistsProductByName(ctx, *params.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrProductNameExists
		}
		product.Name = *params.Name
	}
	if params.Price != nil {
		if params.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		product.Price = *params.Price
	}
	if params.Stock != nil {
		product.Stock = *params.Stock
	}
	if params.Category != nil {
		product.Category = *params.Category
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID uint) error {
	return s.productRepo.DeleteProduct(ctx, productID)
}

var _ IProductService = (*ProductService)(nil)
