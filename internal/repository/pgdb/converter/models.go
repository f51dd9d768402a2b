package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            int64      `db:"id"`
	ProductNumber string     `db:"product_number"`
	Type          string     `db:"type"`
	SellingStatus string     `db:"selling_status"`
	Name          string     `db:"name"`
	Price         int64      `db:"price"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// StockModel представляет запись таблицы stocks в PostgreSQL.
type StockModel struct {
	ID            int64  `db:"id"`
	ProductNumber string `db:"product_number"`
	Quantity      int64  `db:"quantity"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID           int64      `db:"id"`
	Status       string     `db:"order_status"`
	TotalPrice   int64      `db:"total_price"`
	RegisteredAt time.Time  `db:"registered_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// OrderLineModel представляет запись таблицы order_products в PostgreSQL.
type OrderLineModel struct {
	ID            int64  `db:"id"`
	OrderID       int64  `db:"order_id"`
	ProductID     int64  `db:"product_id"`
	ProductNumber string `db:"product_number"`
	ProductName   string `db:"product_name"`
	Price         int64  `db:"price"`
}

// MailHistoryModel представляет запись таблицы mail_send_history в PostgreSQL.
type MailHistoryModel struct {
	ID        int64     `db:"id"`
	From      string    `db:"from_email"`
	To        string    `db:"to_email"`
	Subject   string    `db:"subject"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
