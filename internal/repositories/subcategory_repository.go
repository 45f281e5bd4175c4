package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

type SubcategoryRepository struct {
	DB *sql.DB
}

func (r *SubcategoryRepository) CreateSubcategory(ctx context.Context, subcategory models.Subcategory) (models.Subcategory, error) {
	query := `INSERT INTO subcategories (category_id, name, description) VALUES (?, ?, ?)`
	result, err := r.DB.ExecContext(ctx, query, subcategory.CategoryID, subcategory.Name, subcategory.Description)
	if err != nil {
		return models.Subcategory{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Subcategory{}, err
	}
	subcategory.ID = int(id)

	return subcategory, nil
}

func (r *SubcategoryRepository) GetSubcategoryByID(ctx context.Context, id int) (models.Subcategory, error) {
	var sub models.Subcategory

	query := `SELECT id, category_id, name, description FROM subcategories WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Subcategory{}, models.ErrSubcategoryNotFound
		}
		return models.Subcategory{}, err
	}

	return sub, nil
}

func (r *SubcategoryRepository) GetByCategory(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	query := `
		SELECT s.id, s.category_id, s.name, s.description, c.id, c.name, c.description
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.category_id = ?
	`
	rows, err := r.DB.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subcategories []models.Subcategory
	for rows.Next() {
		var sub models.Subcategory
		var cat models.Category
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description,
			&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, err
		}
		sub.Category = &cat
		subcategories = append(subcategories, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subcategories, nil
}

func (r *SubcategoryRepository) UpdateSubcategory(ctx context.Context, sub models.Subcategory) (models.Subcategory, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE subcategories SET name = ?, description = ? WHERE id = ?`,
		sub.Name, sub.Description, sub.ID)
	if err != nil {
		return models.Subcategory{}, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return models.Subcategory{}, err
	}
	if rows == 0 {
		if _, err := r.GetSubcategoryByID(ctx, sub.ID); err != nil {
			return models.Subcategory{}, err
		}
	}
	return sub, nil
}

func (r *SubcategoryRepository) DeleteSubcategory(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM subcategories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrSubcategoryNotFound
	}
	return nil
}
