package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedOrders(store *memStore) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	store.orders = []domain.Order{
		{ID: 1, Status: domain.OrderStatusPaymentCompleted, TotalPrice: 3000, RegisteredAt: day.Add(9 * time.Hour)},
		{ID: 2, Status: domain.OrderStatusPaymentCompleted, TotalPrice: 4500, RegisteredAt: day.Add(23*time.Hour + 59*time.Minute)},
		{ID: 3, Status: domain.OrderStatusInit, TotalPrice: 9999, RegisteredAt: day.Add(10 * time.Hour)},
		{ID: 4, Status: domain.OrderStatusPaymentCompleted, TotalPrice: 7000, RegisteredAt: day.Add(24 * time.Hour)},
		{ID: 5, Status: domain.OrderStatusPaymentCompleted, TotalPrice: 1000, RegisteredAt: day.Add(-time.Second)},
	}
}

func TestSendOrderStatisticsMail(t *testing.T) {
	store := newMemStore()
	seedOrders(store)

	client := new(mockMailClient)
	client.On("SendMail", mock.Anything, NewSendMailReq(
		"no-reply@cafe.local", "owner@cafe.local", "[Sales statistics] 2024-03-05", "Total sales: 7500",
	)).Return(true, nil)

	reports := new(mockReportsInfra)
	reports.On("ArchiveReport", mock.MatchedBy(func(r *domain.SalesReport) bool {
		return r.TotalAmount == 7500 && r.OrderCount == 2
	})).Return()

	mailUC := NewMailUC(client, fakeMailHistoryRepo{store}, testLogger())
	uc := NewOrderStatisticsUC(fakeOrderRepo{store}, mailUC, reports, "no-reply@cafe.local", testLogger())

	err := uc.SendOrderStatisticsMail(context.Background(), &OrderStatisticsReq{
		OrderDate: time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC),
		Email:     "owner@cafe.local",
	})
	require.NoError(t, err)

	client.AssertExpectations(t)
	reports.AssertExpectations(t)
	require.Len(t, store.history, 1)
}

func TestSendOrderStatisticsMail_Failed(t *testing.T) {
	tests := []struct {
		name   string
		sent   bool
		sndErr error
	}{
		{"not accepted", false, nil},
		{"client error", false, errors.New("broker unreachable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			client := new(mockMailClient)
			client.On("SendMail", mock.Anything, mock.Anything).Return(tt.sent, tt.sndErr)
			reports := new(mockReportsInfra)
			reports.On("ArchiveReport", mock.Anything).Return()

			uc := NewOrderStatisticsUC(fakeOrderRepo{store}, NewMailUC(client, fakeMailHistoryRepo{store}, testLogger()),
				reports, "no-reply@cafe.local", testLogger())

			err := uc.SendOrderStatisticsMail(context.Background(), &OrderStatisticsReq{
				OrderDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				Email:     "owner@cafe.local",
			})
			assert.ErrorIs(t, err, e.ErrMailSendFailed)
		})
	}
}

func TestSendOrderStatisticsMail_EmailRequired(t *testing.T) {
	store := newMemStore()
	uc := NewOrderStatisticsUC(fakeOrderRepo{store}, NewMailUC(new(mockMailClient), fakeMailHistoryRepo{store}, testLogger()),
		new(mockReportsInfra), "no-reply@cafe.local", testLogger())

	err := uc.SendOrderStatisticsMail(context.Background(), &OrderStatisticsReq{OrderDate: time.Now()})
	assert.ErrorIs(t, err, e.ErrEmailRequired)
}
