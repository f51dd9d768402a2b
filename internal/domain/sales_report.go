package domain

import (
	"fmt"
	"time"
)

const reportDateLayout = "2006-01-02"

// SalesReport итог продаж за день по оплаченным заказам
type SalesReport struct {
	Date        time.Time
	OrderCount  int
	TotalAmount int64
}

func NewSalesReport(date time.Time, orders []Order) *SalesReport {
	var total int64
	for _, o := range orders {
		total += o.TotalPrice
	}

	return &SalesReport{
		Date:        date,
		OrderCount:  len(orders),
		TotalAmount: total,
	}
}

func (r *SalesReport) Subject() string {
	return fmt.Sprintf("[Sales statistics] %s", r.Date.Format(reportDateLayout))
}

func (r *SalesReport) Content() string {
	return fmt.Sprintf("Total sales: %d", r.TotalAmount)
}

// ObjectKey ключ отчёта в объектном хранилище
func (r *SalesReport) ObjectKey() string {
	return fmt.Sprintf("reports/%s.txt", r.Date.Format(reportDateLayout))
}

// ToObject превращает отчёт в текстовый объект для архива.
func (r *SalesReport) ToObject(bucket string) *Object {
	body := fmt.Sprintf("%s\nOrders: %d\n%s\n", r.Subject(), r.OrderCount, r.Content())
	return NewObject(bucket, r.ObjectKey(), []byte(body), "text/plain")
}
