package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
)

// OrderStatisticsUseCase считает дневную выручку и отправляет её письмом.
type OrderStatisticsUseCase struct {
	orderRepo    OrderRepository
	mailUC       MailUC
	reportsInfra ReportsInfra
	fromAddress  string
	logger       logger.Logger
}

func NewOrderStatisticsUC(
	orderRepo OrderRepository,
	mailUC MailUC,
	reportsInfra ReportsInfra,
	fromAddress string,
	logger logger.Logger,
) *OrderStatisticsUseCase {
	return &OrderStatisticsUseCase{
		orderRepo:    orderRepo,
		mailUC:       mailUC,
		reportsInfra: reportsInfra,
		fromAddress:  fromAddress,
		logger:       logger,
	}
}

// SendOrderStatisticsMail суммирует оплаченные заказы за день OrderDate и отправляет итог на Email.
func (s *OrderStatisticsUseCase) SendOrderStatisticsMail(ctx context.Context, req *OrderStatisticsReq) error {
	const op = "OrderStatisticsUseCase.SendOrderStatisticsMail"

	if strings.TrimSpace(req.Email) == "" {
		return e.Wrap(op, e.ErrEmailRequired)
	}

	d := req.OrderDate
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	to := from.AddDate(0, 0, 1)

	orders, err := s.orderRepo.FindOrdersBy(ctx, from, to, domain.OrderStatusPaymentCompleted)
	if err != nil {
		return e.Wrap(op, err)
	}

	report := domain.NewSalesReport(from, orders)
	s.reportsInfra.ArchiveReport(report)

	sent, err := s.mailUC.SendMail(ctx, NewSendMailReq(s.fromAddress, req.Email, report.Subject(), report.Content()))
	if err != nil {
		s.logger.Errorf(err, "sales statistics mail for %s failed", report.Date.Format(time.DateOnly))
		return e.Wrap(op, e.ErrMailSendFailed)
	}
	if !sent {
		return e.Wrap(op, e.ErrMailSendFailed)
	}

	return nil
}
