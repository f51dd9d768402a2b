package usecase

import (
	"context"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
)

// TxManager выполняет fn в одной транзакции, прокидывая её через контекст.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type MessageProducer interface {
	GetPayloadBytes(req *WriteMessageReq) ([]byte, error)
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// MailSendClient возвращает false, если письмо не принято к отправке.
type MailSendClient interface {
	SendMail(ctx context.Context, req *SendMailReq) (bool, error)
}

type ReportsInfra interface {
	// ArchiveReport сохраняет отчёт в фоне, ошибки только логируются.
	ArchiveReport(report *domain.SalesReport)
}
