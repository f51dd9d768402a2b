package pgdb

import (
	"context"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo хранит заказы и их позиции в PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

// Save сохраняет заказ и все его позиции в транзакции из контекста.
func (o *OrderRepo) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (order_status, total_price, registered_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := tx.QueryRow(ctx, query, model.Status, model.TotalPrice, model.RegisteredAt).
		Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	lines := o.conv.ToLineModels(order)
	if len(lines) == 0 {
		return o.conv.ToEntity(model, lines), nil
	}

	batch := &pgx.Batch{}
	for i := range lines {
		lines[i].OrderID = model.ID
		batch.Queue(`
			INSERT INTO order_products (order_id, product_id, product_number, product_name, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			lines[i].OrderID, lines[i].ProductID, lines[i].ProductNumber, lines[i].ProductName, lines[i].Price,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range lines {
		if err := br.QueryRow().Scan(&lines[i].ID); err != nil {
			_ = br.Close()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model, lines), nil
}

// FindOrdersBy возвращает заказы с from <= registered_at < to и указанным статусом вместе с позициями.
func (o *OrderRepo) FindOrdersBy(ctx context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)

	query := `
		SELECT id, order_status, total_price, registered_at, created_at, updated_at
		FROM orders
		WHERE registered_at >= $1 AND registered_at < $2 AND order_status = $3
		ORDER BY registered_at, id
	`

	rows, err := q.Query(ctx, query, from, to, string(status))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var (
		models []converter.OrderModel
		ids    []int64
	)
	for rows.Next() {
		var m converter.OrderModel
		if err := rows.Scan(&m.ID, &m.Status, &m.TotalPrice, &m.RegisteredAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			rows.Close()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, m)
		ids = append(ids, m.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(models) == 0 {
		return []domain.Order{}, nil
	}

	lines, err := o.findLines(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Order, 0, len(models))
	for i := range models {
		result = append(result, *o.conv.ToEntity(&models[i], lines[models[i].ID]))
	}

	return result, nil
}

func (o *OrderRepo) findLines(ctx context.Context, q tr.Querier, orderIDs []int64) (map[int64][]converter.OrderLineModel, error) {
	query := `
		SELECT id, order_id, product_id, product_number, product_name, price
		FROM order_products
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`

	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make(map[int64][]converter.OrderLineModel, len(orderIDs))
	for rows.Next() {
		var l converter.OrderLineModel
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductNumber, &l.ProductName, &l.Price); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result[l.OrderID] = append(result[l.OrderID], l)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (o *OrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	q := tr.QuerierFromCtx(ctx, o.pool)

	query := `UPDATE orders SET order_status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, string(status))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
	}

	return nil
}
