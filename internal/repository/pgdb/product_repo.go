package pgdb

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, name, description, price_cents, image, category, stock, featured, created_at, updated_at, is_archived`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает все неархивные товары, новые первыми.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE NOT is_archived
		ORDER BY created_at DESC, id`

	rows, err := conn(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND NOT is_archived`

	model, err := scanProduct(conn(ctx, p.pool).QueryRow(ctx, query, uid))
	if err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m := p.conv.ToModel(product)
	query := `
		INSERT INTO products (name, description, price_cents, image, category, stock, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns

	model, err := scanProduct(conn(ctx, p.pool).QueryRow(ctx, query,
		m.Name, m.Description, m.PriceCents, m.Image, m.Category, m.Stock, m.Featured,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m := p.conv.ToModel(product)
	query := `
		UPDATE products SET
			name = $2,
			description = $3,
			price_cents = $4,
			image = $5,
			category = $6,
			stock = $7,
			featured = $8,
			updated_at = NOW()
		WHERE id = $1 AND NOT is_archived
		RETURNING ` + productColumns

	model, err := scanProduct(conn(ctx, p.pool).QueryRow(ctx, query,
		m.ID, m.Name, m.Description, m.PriceCents, m.Image, m.Category, m.Stock, m.Featured,
	))
	if err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Delete архивирует товар: строки заказов продолжают на него ссылаться.
func (p *ProductRepo) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	tag, err := conn(ctx, p.pool).Exec(ctx,
		`UPDATE products SET is_archived = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_archived`, uid)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	if err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.PriceCents, &model.Image,
		&model.Category, &model.Stock, &model.Featured, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	); err != nil {
		return nil, err
	}

	return &model, nil
}
