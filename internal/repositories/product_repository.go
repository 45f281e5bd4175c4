package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

// Витринные константы каталога: подарки живут в своих подкатегориях, а
// категория 2 скрыта из публичной выдачи товаров.
const (
	GiftSubcategoryID      = 2
	GiftBatchSubcategoryID = 7
	HiddenCategoryID       = 2
)

type ProductRepository struct {
	DB *sql.DB
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, err
	}

	query := `
		INSERT INTO products (subcategory_id, name, price, description, image_url, preview_image_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		product.SubcategoryID, product.Name, product.Price, product.Description,
		product.ImageURL, product.PreviewImageURL)
	if err != nil {
		tx.Rollback()
		return models.Product{}, err
	}

	productID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return models.Product{}, err
	}
	product.ID = int(productID)

	for i, opt := range product.Options {
		opt.ProductID = product.ID
		id, err := insertOption(ctx, tx, opt)
		if err != nil {
			tx.Rollback()
			return models.Product{}, err
		}
		product.Options[i].ID = id
		product.Options[i].ProductID = product.ID
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, err
	}

	return product, nil
}

func insertOption(ctx context.Context, tx *sql.Tx, opt models.ProductOption) (int, error) {
	query := `
		INSERT INTO product_options
			(product_id, type, option_name, title, cols, items, item, default_value,
			 label, tooltip, description, child_group_name, is_required, icon, can_be_disabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		opt.ProductID, opt.Type, opt.OptionName, opt.Title, opt.Cols,
		[]byte(opt.Items), []byte(opt.Item), []byte(opt.DefaultValue),
		opt.Label, opt.Tooltip, opt.Description, opt.ChildGroupName,
		opt.IsRequired, opt.Icon, opt.CanBeDisabled)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (models.Product, error) {
	var product models.Product
	var sub models.Subcategory
	var cat models.Category

	query := `
		SELECT p.id, p.subcategory_id, p.name, p.price, p.description, p.image_url, p.preview_image_url,
		       s.id, s.category_id, s.name, s.description,
		       c.id, c.name, c.description
		FROM products p
		JOIN subcategories s ON s.id = p.subcategory_id
		JOIN categories c ON c.id = s.category_id
		WHERE p.id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.SubcategoryID, &product.Name, &product.Price,
		&product.Description, &product.ImageURL, &product.PreviewImageURL,
		&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description,
		&cat.ID, &cat.Name, &cat.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, models.ErrProductNotFound
		}
		return models.Product{}, err
	}
	sub.Category = &cat
	product.Subcategory = &sub

	if product.Options, err = r.loadOptions(ctx, product.ID); err != nil {
		return models.Product{}, err
	}
	if product.DeliveryInputs, err = r.loadDeliveryInputs(ctx, product.ID); err != nil {
		return models.Product{}, err
	}
	if product.Faq, err = r.loadFaq(ctx, product.ID); err != nil {
		return models.Product{}, err
	}
	if product.Aliases, err = r.loadAliases(ctx, product.ID); err != nil {
		return models.Product{}, err
	}

	return product, nil
}

func (r *ProductRepository) loadOptions(ctx context.Context, productID int) ([]models.ProductOption, error) {
	query := `
		SELECT id, product_id, type, option_name, title, cols, items, item, default_value,
		       label, tooltip, description, child_group_name, is_required, icon, can_be_disabled
		FROM product_options
		WHERE product_id = ?
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []models.ProductOption
	for rows.Next() {
		var opt models.ProductOption
		var items, item, defaultValue []byte
		if err := rows.Scan(&opt.ID, &opt.ProductID, &opt.Type, &opt.OptionName, &opt.Title, &opt.Cols,
			&items, &item, &defaultValue,
			&opt.Label, &opt.Tooltip, &opt.Description, &opt.ChildGroupName,
			&opt.IsRequired, &opt.Icon, &opt.CanBeDisabled); err != nil {
			return nil, err
		}
		opt.Items = items
		opt.Item = item
		opt.DefaultValue = defaultValue
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (r *ProductRepository) loadDeliveryInputs(ctx context.Context, productID int) ([]models.ProductDelivery, error) {
	query := `
		SELECT id, product_id, type, ` + "`key`" + `, is_required, label, placeholder, value, tooltip, description
		FROM product_delivery
		WHERE product_id = ?
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inputs []models.ProductDelivery
	for rows.Next() {
		var d models.ProductDelivery
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Type, &d.Key, &d.IsRequired,
			&d.Label, &d.Placeholder, &d.Value, &d.Tooltip, &d.Description); err != nil {
			return nil, err
		}
		inputs = append(inputs, d)
	}
	return inputs, rows.Err()
}

func (r *ProductRepository) loadFaq(ctx context.Context, productID int) ([]models.Faq, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, product_id, question, answer FROM faq WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faq []models.Faq
	for rows.Next() {
		var f models.Faq
		if err := rows.Scan(&f.ID, &f.ProductID, &f.Question, &f.Answer); err != nil {
			return nil, err
		}
		faq = append(faq, f)
	}
	return faq, rows.Err()
}

func (r *ProductRepository) loadAliases(ctx context.Context, productID int) ([]models.Alias, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, product_id, alias FROM aliases WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aliases []models.Alias
	for rows.Next() {
		var a models.Alias
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Alias); err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

func (r *ProductRepository) listProducts(ctx context.Context, where string, args ...interface{}) ([]models.Product, error) {
	query := `
		SELECT p.id, p.subcategory_id, p.name, p.price, p.description, p.image_url, p.preview_image_url,
		       s.id, s.category_id, s.name, s.description,
		       c.id, c.name, c.description
		FROM products p
		JOIN subcategories s ON s.id = p.subcategory_id
		JOIN categories c ON c.id = s.category_id
	` + where
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		var sub models.Subcategory
		var cat models.Category
		if err := rows.Scan(
			&product.ID, &product.SubcategoryID, &product.Name, &product.Price,
			&product.Description, &product.ImageURL, &product.PreviewImageURL,
			&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description,
			&cat.ID, &cat.Name, &cat.Description,
		); err != nil {
			return nil, err
		}
		sub.Category = &cat
		product.Subcategory = &sub
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].Aliases, err = r.loadAliases(ctx, products[i].ID); err != nil {
			return nil, err
		}
		if products[i].Options, err = r.loadOptions(ctx, products[i].ID); err != nil {
			return nil, err
		}
	}

	return products, nil
}

func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return r.listProducts(ctx, ``)
}

func (r *ProductRepository) GetGifts(ctx context.Context) ([]models.Product, error) {
	return r.listProducts(ctx, `WHERE p.subcategory_id = ?`, GiftSubcategoryID)
}

func (r *ProductRepository) GetProductsBySubcategory(ctx context.Context, subcategoryID int) ([]models.Product, error) {
	query := `
		SELECT id, subcategory_id, name, price, description, image_url, preview_image_url
		FROM products
		WHERE subcategory_id = ?
	`
	rows, err := r.DB.QueryContext(ctx, query, subcategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.SubcategoryID, &p.Name, &p.Price,
			&p.Description, &p.ImageURL, &p.PreviewImageURL); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE products
		SET subcategory_id = ?, name = ?, price = ?, description = ?, image_url = ?, preview_image_url = ?
		WHERE id = ?
	`, product.SubcategoryID, product.Name, product.Price, product.Description,
		product.ImageURL, product.PreviewImageURL, product.ID)
	if err != nil {
		return models.Product{}, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return models.Product{}, err
	}
	if rows == 0 {
		var exists int
		err := r.DB.QueryRowContext(ctx, `SELECT id FROM products WHERE id = ?`, product.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, models.ErrProductNotFound
		}
		if err != nil {
			return models.Product{}, err
		}
	}
	return product, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// UpsertOptions сливает пришедшие опции с существующими по option_name:
// совпавшие обновляются, новые добавляются.
func (r *ProductRepository) UpsertOptions(ctx context.Context, productID int, options []models.ProductOption) error {
	existing, err := r.loadOptions(ctx, productID)
	if err != nil {
		return err
	}
	byName := make(map[string]int, len(existing))
	for _, opt := range existing {
		byName[opt.OptionName] = opt.ID
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, opt := range options {
		opt.ProductID = productID
		if id, ok := byName[opt.OptionName]; ok {
			_, err = tx.ExecContext(ctx, `
				UPDATE product_options
				SET type = ?, title = ?, cols = ?, items = ?, item = ?, default_value = ?,
				    label = ?, tooltip = ?, description = ?, child_group_name = ?,
				    is_required = ?, icon = ?, can_be_disabled = ?
				WHERE id = ?
			`, opt.Type, opt.Title, opt.Cols,
				[]byte(opt.Items), []byte(opt.Item), []byte(opt.DefaultValue),
				opt.Label, opt.Tooltip, opt.Description, opt.ChildGroupName,
				opt.IsRequired, opt.Icon, opt.CanBeDisabled, id)
		} else {
			_, err = insertOption(ctx, tx, opt)
		}
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *ProductRepository) GetAllAliases(ctx context.Context) ([]models.Alias, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, product_id, alias FROM aliases`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aliases []models.Alias
	for rows.Next() {
		var a models.Alias
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Alias); err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

// BatchCreateGifts создаёт подарки вместе с опциями и алиасами одной
// транзакцией: либо весь батч, либо ничего.
func (r *ProductRepository) BatchCreateGifts(ctx context.Context, gifts []models.BatchGift) ([]int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	createdIDs := make([]int, 0, len(gifts))
	for _, gift := range gifts {
		imageURL := fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%d/library_600x900.jpg", gift.SteamGameID)
		previewURL := fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%d/capsule_616x353.jpg", gift.SteamGameID)

		result, err := tx.ExecContext(ctx, `
			INSERT INTO products (subcategory_id, name, price, description, image_url, preview_image_url)
			VALUES (?, ?, NULL, ?, ?, ?)
		`, GiftBatchSubcategoryID, gift.Name, gift.Description, imageURL, previewURL)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		productID, err := result.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		createdIDs = append(createdIDs, int(productID))

		for _, opt := range gift.Options {
			opt.ProductID = int(productID)
			if _, err := insertOption(ctx, tx, opt); err != nil {
				tx.Rollback()
				return nil, err
			}
		}

		for _, alias := range gift.Aliases {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO aliases (product_id, alias) VALUES (?, ?)`, productID, alias); err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return createdIDs, nil
}
