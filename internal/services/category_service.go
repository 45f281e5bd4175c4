package services

import (
	"context"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/repositories"
)

type CategoryService struct {
	Categories    *repositories.CategoryRepository
	Subcategories *repositories.SubcategoryRepository
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.Categories.GetAllCategories(ctx)
}

func (s *CategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	return s.Categories.CreateCategory(ctx, category)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	return s.Categories.UpdateCategory(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.Categories.DeleteCategory(ctx, id)
}

// GetSubcategories отдаёт подкатегории категории; несуществующая категория
// это 404, а не пустой список.
func (s *CategoryService) GetSubcategories(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	if _, err := s.Categories.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.Subcategories.GetByCategory(ctx, categoryID)
}

func (s *CategoryService) CreateSubcategory(ctx context.Context, categoryID int, sub models.Subcategory) (models.Subcategory, error) {
	if _, err := s.Categories.GetCategoryByID(ctx, categoryID); err != nil {
		return models.Subcategory{}, err
	}
	sub.CategoryID = categoryID
	return s.Subcategories.CreateSubcategory(ctx, sub)
}
