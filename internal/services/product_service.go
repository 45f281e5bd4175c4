package services

import (
	"context"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/repositories"
)

type ProductService struct {
	Products *repositories.ProductRepository
	Currency *CurrencyService
}

func (s *ProductService) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	return s.Products.CreateProduct(ctx, product)
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.Products.GetAllProducts(ctx)
}

// GetProduct скрывает товары из служебной категории: для витрины их нет.
func (s *ProductService) GetProduct(ctx context.Context, id int) (models.ProductResponse, error) {
	product, err := s.Products.GetProductByID(ctx, id)
	if err != nil {
		return models.ProductResponse{}, err
	}
	if product.Subcategory != nil && product.Subcategory.CategoryID == repositories.HiddenCategoryID {
		return models.ProductResponse{}, models.ErrProductNotFound
	}

	return models.ProductResponse{
		Data:       product,
		Success:    true,
		Currencies: s.Currency.Snapshot(),
	}, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	return s.Products.UpdateProduct(ctx, product)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	return s.Products.DeleteProduct(ctx, id)
}

// UpsertOptions сливает опции по option_name и возвращает товар целиком.
func (s *ProductService) UpsertOptions(ctx context.Context, productID int, options []models.ProductOption) (models.Product, error) {
	if _, err := s.Products.GetProductByID(ctx, productID); err != nil {
		return models.Product{}, err
	}
	if err := s.Products.UpsertOptions(ctx, productID, options); err != nil {
		return models.Product{}, err
	}
	return s.Products.GetProductByID(ctx, productID)
}

func (s *ProductService) GetAllAliases(ctx context.Context) ([]models.Alias, error) {
	return s.Products.GetAllAliases(ctx)
}

func (s *ProductService) GetGifts(ctx context.Context) ([]models.Product, error) {
	return s.Products.GetGifts(ctx)
}

// GetGift в отличие от GetProduct не прячет служебную категорию.
func (s *ProductService) GetGift(ctx context.Context, id int) (models.GiftResponse, error) {
	product, err := s.Products.GetProductByID(ctx, id)
	if err != nil {
		return models.GiftResponse{}, err
	}
	return models.GiftResponse{
		Data:       product,
		Success:    true,
		Currencies: s.Currency.Snapshot(),
	}, nil
}

func (s *ProductService) BatchCreateGifts(ctx context.Context, gifts []models.BatchGift) ([]int, error) {
	return s.Products.BatchCreateGifts(ctx, gifts)
}
