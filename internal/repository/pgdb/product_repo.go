package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, product_number, type, selling_status, name, price, created_at, updated_at`

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

// Create добавляет товар. Занятый номер возвращает e.ErrProductNumberTaken.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (product_number, type, selling_status, name, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	var saved converter.ProductModel
	err := q.QueryRow(ctx, query, model.ProductNumber, model.Type, model.SellingStatus, model.Name, model.Price).
		Scan(scanProduct(&saved)...)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNumberTaken)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&saved), nil
}

// FindLatestProductNumber возвращает наибольший номер товара или "" для пустого каталога.
func (p *ProductRepo) FindLatestProductNumber(ctx context.Context) (string, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	query := `SELECT product_number FROM products ORDER BY id DESC LIMIT 1`

	var number string
	if err := q.QueryRow(ctx, query).Scan(&number); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return number, nil
}

func (p *ProductRepo) FindAllBySellingStatusIn(ctx context.Context, statuses []domain.SellingStatus) ([]domain.Product, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE selling_status = ANY($1) ORDER BY product_number`
	return p.queryProducts(ctx, query, values)
}

// FindAllByProductNumberIn возвращает товары с указанными номерами; отсутствующие номера пропускаются.
func (p *ProductRepo) FindAllByProductNumberIn(ctx context.Context, numbers []string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_number = ANY($1)`
	return p.queryProducts(ctx, query, numbers)
}

func (p *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(scanProduct(&model)...); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func scanProduct(m *converter.ProductModel) []any {
	return []any{
		&m.ID, &m.ProductNumber, &m.Type, &m.SellingStatus, &m.Name, &m.Price, &m.CreatedAt, &m.UpdatedAt,
	}
}
