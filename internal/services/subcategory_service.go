package services

import (
	"context"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/repositories"
)

type SubcategoryService struct {
	Subcategories *repositories.SubcategoryRepository
	Products      *repositories.ProductRepository
}

func (s *SubcategoryService) UpdateSubcategory(ctx context.Context, sub models.Subcategory) (models.Subcategory, error) {
	return s.Subcategories.UpdateSubcategory(ctx, sub)
}

func (s *SubcategoryService) DeleteSubcategory(ctx context.Context, id int) error {
	return s.Subcategories.DeleteSubcategory(ctx, id)
}

func (s *SubcategoryService) GetProducts(ctx context.Context, subcategoryID int) ([]models.Product, error) {
	if _, err := s.Subcategories.GetSubcategoryByID(ctx, subcategoryID); err != nil {
		return nil, err
	}
	return s.Products.GetProductsBySubcategory(ctx, subcategoryID)
}

func (s *SubcategoryService) CreateProduct(ctx context.Context, subcategoryID int, product models.Product) (models.Product, error) {
	if _, err := s.Subcategories.GetSubcategoryByID(ctx, subcategoryID); err != nil {
		return models.Product{}, err
	}
	product.SubcategoryID = subcategoryID
	return s.Products.CreateProduct(ctx, product)
}
