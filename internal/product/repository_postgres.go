package product

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	productColumns = `product_id, name, description, price, stock, image_url, category, local_pickup_only, display_order, weight, length, width, height, is_archived, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_archived = FALSE
		ORDER BY display_order, product_id
	`
	listAllProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY display_order, product_id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price, stock, image_url, category, local_pickup_only, display_order, weight, length, width, height, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			stock = $4,
			image_url = $5,
			category = $6,
			local_pickup_only = $7,
			display_order = $8,
			weight = $9,
			length = $10,
			width = $11,
			height = $12,
			updated_at = $13
		WHERE product_id = $14
	`
	archiveProductQuery = `UPDATE products SET is_archived = $1, updated_at = $2 WHERE product_id = $3`
	deleteProductQuery  = `DELETE FROM products WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(includeArchived bool) []Product {
	query := listProductsQuery
	if includeArchived {
		query = listAllProductsQuery
	}

	rows, err := r.db.Query(query)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, p)
	}

	return products
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}

	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var id int
	err := r.db.QueryRow(
		insertProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.ImageURL,
		p.Category,
		p.LocalPickupOnly,
		p.DisplayOrder,
		p.Weight,
		p.Length,
		p.Width,
		p.Height,
		p.IsArchived,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Product{}, err
	}

	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	result, err := r.db.Exec(
		updateProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.ImageURL,
		p.Category,
		p.LocalPickupOnly,
		p.DisplayOrder,
		p.Weight,
		p.Length,
		p.Width,
		p.Height,
		p.UpdatedAt,
		id,
	)
	if err != nil {
		return Product{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) SetArchived(id int, archived bool) error {
	result, err := r.db.Exec(archiveProductQuery, archived, nowRFC3339(), id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var category sql.NullString
	var createdAt sql.NullString
	var updatedAt sql.NullString

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.ImageURL,
		&category,
		&p.LocalPickupOnly,
		&p.DisplayOrder,
		&p.Weight,
		&p.Length,
		&p.Width,
		&p.Height,
		&p.IsArchived,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Product{}, err
	}

	if category.Valid {
		p.Category = category.String
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.String
	}

	return p, nil
}
