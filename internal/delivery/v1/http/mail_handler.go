package http

import (
	"net/http"

	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
)

type MailHandler struct {
	mailUsecase usecase.MailUC
	logger      logger.Logger
}

func NewMailHandler(mailUsecase usecase.MailUC, logger logger.Logger) *MailHandler {
	return &MailHandler{mailUsecase: mailUsecase, logger: logger}
}

// sendMail
//
//	@Summary		Отправка письма
//	@Description	Ставит письмо в очередь и сохраняет его в истории отправок
//	@Tags			mail
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sendMailRequest						true	"Письмо"
//	@Success		200		{object}	ApiResponse{data=sendMailResponse}
//	@Failure		400		{object}	ApiResponse
//	@Router			/mail [post]
func (m *MailHandler) sendMail(w http.ResponseWriter, r *http.Request) {
	var req sendMailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	sent, err := m.mailUsecase.SendMail(r.Context(), usecase.NewSendMailReq(req.From, req.To, req.Subject, req.Content))
	if err != nil {
		m.logger.Errorf(err, "failed to send mail to %s", req.To)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, sendMailResponse{Sent: sent})
}
