package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
)

// MailUseCase отправляет письма и ведёт историю отправок.
type MailUseCase struct {
	mailClient      MailSendClient
	mailHistoryRepo MailHistoryRepository
	logger          logger.Logger
}

func NewMailUC(mailClient MailSendClient, mailHistoryRepo MailHistoryRepository, logger logger.Logger) *MailUseCase {
	return &MailUseCase{
		mailClient:      mailClient,
		mailHistoryRepo: mailHistoryRepo,
		logger:          logger,
	}
}

// SendMail отправляет письмо. История пишется только для принятых к отправке писем.
func (m *MailUseCase) SendMail(ctx context.Context, req *SendMailReq) (bool, error) {
	const op = "MailUseCase.SendMail"

	if strings.TrimSpace(req.To) == "" {
		return false, e.Wrap(op, e.ErrEmailRequired)
	}

	sent, err := m.mailClient.SendMail(ctx, req)
	if err != nil {
		return false, e.Wrap(op, err)
	}

	if !sent {
		m.logger.Warnf("mail to %s was not accepted", req.To)
		return false, nil
	}

	if _, err := m.mailHistoryRepo.Save(ctx, domain.NewMailHistory(req.From, req.To, req.Subject, req.Content)); err != nil {
		return false, e.Wrap(op, err)
	}

	return true, nil
}
