package minio

import (
	"bytes"
	"context"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ReportRepo реализует архив отчётов о продажах поверх MinIO.
type ReportRepo struct {
	mc *minio.Client
}

func NewReportRepo(mc *minio.Client) *ReportRepo {
	return &ReportRepo{mc: mc}
}

// Upload загружает объект в MinIO и возвращает ключ объекта. Отчёт за ту же дату перезаписывается.
func (r *ReportRepo) Upload(ctx context.Context, object *domain.Object) (string, error) {
	reader := bytes.NewReader(object.Bytes)

	info, err := r.mc.PutObject(ctx, object.Bucket, object.ObjectKey, reader, int64(len(object.Bytes)), minio.PutObjectOptions{
		ContentType: object.ContentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}
