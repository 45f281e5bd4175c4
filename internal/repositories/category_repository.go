package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	query := `INSERT INTO categories (name, description) VALUES (?, ?)`
	result, err := r.DB.ExecContext(ctx, query, category.Name, category.Description)
	if err != nil {
		return models.Category{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Category{}, err
	}
	category.ID = int(id)

	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	var category models.Category

	query := `SELECT id, name, description FROM categories WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, models.ErrCategoryNotFound
		}
		return models.Category{}, err
	}

	return category, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ? WHERE id = ?`,
		category.Name, category.Description, category.ID)
	if err != nil {
		return models.Category{}, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return models.Category{}, err
	}
	if rows == 0 {
		if _, err := r.GetCategoryByID(ctx, category.ID); err != nil {
			return models.Category{}, err
		}
	}
	return category, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, description FROM categories`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
