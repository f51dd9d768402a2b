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

// StockRepo реализует журнал остатков поверх PostgreSQL.
type StockRepo struct {
	pool *pgxpool.Pool
	conv converter.StockConverter
}

func NewStockRepo(pool *pgxpool.Pool, conv converter.StockConverter) *StockRepo {
	return &StockRepo{
		pool: pool,
		conv: conv,
	}
}

// FindAllByProductNumberInForUpdate блокирует строки остатков в порядке номеров до конца транзакции.
func (s *StockRepo) FindAllByProductNumberInForUpdate(ctx context.Context, numbers []string) ([]domain.Stock, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, product_number, quantity
		FROM stocks
		WHERE product_number = ANY($1)
		ORDER BY product_number
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, numbers)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Stock, 0, len(numbers))
	for rows.Next() {
		var model converter.StockModel
		if err := rows.Scan(&model.ID, &model.ProductNumber, &model.Quantity); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *s.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Decrease списывает quantity единиц. Если остатка не хватает, строка не меняется
// и возвращается *e.InsufficientStockError.
func (s *StockRepo) Decrease(ctx context.Context, productNumber string, quantity int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE stocks
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE product_number = $1 AND quantity >= $2
	`

	tag, err := tx.Exec(ctx, query, productNumber, quantity)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		var available int64
		err := tx.QueryRow(ctx, `SELECT quantity FROM stocks WHERE product_number = $1`, productNumber).Scan(&available)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		return e.NewInsufficientStockError(productNumber, quantity, available)
	}

	return nil
}

// Upsert задаёт остаток товара, создавая строку при необходимости.
func (s *StockRepo) Upsert(ctx context.Context, stock *domain.Stock) (*domain.Stock, error) {
	q := tr.QuerierFromCtx(ctx, s.pool)

	model := s.conv.ToModel(stock)
	query := `
		INSERT INTO stocks (product_number, quantity)
		VALUES ($1, $2)
		ON CONFLICT (product_number)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, product_number, quantity
	`

	var saved converter.StockModel
	if err := q.QueryRow(ctx, query, model.ProductNumber, model.Quantity).
		Scan(&saved.ID, &saved.ProductNumber, &saved.Quantity); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&saved), nil
}

func (s *StockRepo) FindByProductNumber(ctx context.Context, productNumber string) (*domain.Stock, error) {
	q := tr.QuerierFromCtx(ctx, s.pool)

	query := `SELECT id, product_number, quantity FROM stocks WHERE product_number = $1`

	var model converter.StockModel
	if err := q.QueryRow(ctx, query, productNumber).Scan(&model.ID, &model.ProductNumber, &model.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrStockNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&model), nil
}
