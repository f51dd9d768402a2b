package pgdb

import (
	"context"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

type MailHistoryRepo struct {
	pool *pgxpool.Pool
	conv converter.MailHistoryConverter
}

func NewMailHistoryRepo(pool *pgxpool.Pool, conv converter.MailHistoryConverter) *MailHistoryRepo {
	return &MailHistoryRepo{
		pool: pool,
		conv: conv,
	}
}

func (m *MailHistoryRepo) Save(ctx context.Context, history *domain.MailHistory) (*domain.MailHistory, error) {
	q := tr.QuerierFromCtx(ctx, m.pool)

	model := m.conv.ToModel(history)
	query := `
		INSERT INTO mail_send_history (from_email, to_email, subject, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := q.QueryRow(ctx, query, model.From, model.To, model.Subject, model.Content).
		Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return m.conv.ToEntity(model), nil
}
