package domain

import "time"

// MailHistory неизменяемая запись об отправленном письме
type MailHistory struct {
	ID        int64
	From      string
	To        string
	Subject   string
	Content   string
	CreatedAt time.Time
}

func NewMailHistory(from, to, subject, content string) *MailHistory {
	return &MailHistory{
		From:    from,
		To:      to,
		Subject: subject,
		Content: content,
	}
}
