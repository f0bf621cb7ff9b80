package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	inErrors "github.com/Alturino/nayarn/internal/errors"
)

const selectProduct = `
SELECT p.id, p.name, p.description, p.price, p.collection_id, p.sizes, p.is_featured,
       p.created_at, p.updated_at,
       c.id, c.name, c.slug,
       COALESCE(
           (SELECT json_agg(json_build_object(
                       'id', i.id,
                       'product_id', i.product_id,
                       'image_url', i.image_url,
                       'is_primary', i.is_primary,
                       'display_order', i.display_order
                   ) ORDER BY i.display_order)
            FROM product_images i
            WHERE i.product_id = p.id),
           '[]'
       ) AS product_images
FROM products p
LEFT JOIN collections c ON c.id = p.collection_id
`

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p              Product
		price          pgtype.Numeric
		collectionID   *uuid.UUID
		collectionName *string
		collectionSlug *string
		images         []byte
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&price,
		&p.CollectionID,
		&p.Sizes,
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
		&collectionID,
		&collectionName,
		&collectionSlug,
		&images,
	)
	if err != nil {
		return Product{}, err
	}
	p.Price = decimalFromNumeric(price)
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if collectionID != nil && collectionSlug != nil {
		p.Collection = &CollectionRef{ID: *collectionID, Slug: *collectionSlug}
		if collectionName != nil {
			p.Collection.Name = *collectionName
		}
	}
	p.Images = []ProductImage{}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return Product{}, fmt.Errorf("failed unmarshaling product_images with error=%w", err)
	}
	return p, nil
}

func (q *Queries) listProducts(c context.Context, query string, args ...interface{}) ([]Product, error) {
	rows, err := q.db.Query(c, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (q *Queries) ListProducts(c context.Context) ([]Product, error) {
	return q.listProducts(c, selectProduct+`ORDER BY p.created_at DESC`)
}

func (q *Queries) ListProductsByCollectionSlug(c context.Context, slug string) ([]Product, error) {
	return q.listProducts(c, selectProduct+`WHERE c.slug = $1 ORDER BY p.created_at DESC`, slug)
}

func (q *Queries) ListFeaturedProducts(c context.Context, limit int32) ([]Product, error) {
	return q.listProducts(
		c,
		selectProduct+`WHERE p.is_featured = TRUE ORDER BY p.created_at DESC LIMIT $1`,
		limit,
	)
}

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	p, err := scanProduct(q.db.QueryRow(c, selectProduct+`WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, fmt.Errorf("product id=%s: %w", id, inErrors.ErrNotFound)
	}
	return p, err
}

type InsertProductParams struct {
	Name         string
	Description  *string
	Price        decimal.Decimal
	CollectionID *uuid.UUID
	Sizes        []string
	IsFeatured   bool
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (uuid.UUID, error) {
	const query = `
INSERT INTO products (name, description, price, collection_id, sizes, is_featured)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	sizes := arg.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	var id uuid.UUID
	err := q.db.QueryRow(
		c,
		query,
		arg.Name,
		arg.Description,
		numericFromDecimal(arg.Price),
		arg.CollectionID,
		sizes,
		arg.IsFeatured,
	).Scan(&id)
	return id, err
}

type UpdateProductParams struct {
	ID uuid.UUID
	InsertProductParams
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) error {
	const query = `
UPDATE products
SET name = $2,
    description = $3,
    price = $4,
    collection_id = $5,
    sizes = $6,
    is_featured = $7,
    updated_at = NOW()
WHERE id = $1
`
	sizes := arg.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	tag, err := q.db.Exec(
		c,
		query,
		arg.ID,
		arg.Name,
		arg.Description,
		numericFromDecimal(arg.Price),
		arg.CollectionID,
		sizes,
		arg.IsFeatured,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product id=%s: %w", arg.ID, inErrors.ErrNotFound)
	}
	return nil
}

func (q *Queries) DeleteProduct(c context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(c, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product id=%s: %w", id, inErrors.ErrNotFound)
	}
	return nil
}

type InsertProductImageParams struct {
	ProductID    uuid.UUID
	ImageURL     string
	IsPrimary    bool
	DisplayOrder int32
}

func (q *Queries) InsertProductImage(c context.Context, arg InsertProductImageParams) (ProductImage, error) {
	const query = `
INSERT INTO product_images (product_id, image_url, is_primary, display_order)
VALUES ($1, $2, $3, $4)
RETURNING id, product_id, image_url, is_primary, display_order
`
	var i ProductImage
	err := q.db.QueryRow(c, query, arg.ProductID, arg.ImageURL, arg.IsPrimary, arg.DisplayOrder).
		Scan(&i.ID, &i.ProductID, &i.ImageURL, &i.IsPrimary, &i.DisplayOrder)
	return i, err
}

// ClearPrimaryImage unflags every image of the product.
func (q *Queries) ClearPrimaryImage(c context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(
		c,
		`UPDATE product_images SET is_primary = FALSE WHERE product_id = $1 AND is_primary`,
		productID,
	)
	return err
}

func (q *Queries) DeleteProductImage(c context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(c, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product image id=%s: %w", id, inErrors.ErrNotFound)
	}
	return nil
}
