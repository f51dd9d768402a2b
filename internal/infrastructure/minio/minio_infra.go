package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/jitter"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
)

const (
	archiveAttempts = 3
	archiveTimeout  = 30 * time.Second
	archiveBackoff  = time.Second
	archiveMaxDelay = 4 * time.Second
)

// MinioInfrastructure архивирует отчёты о продажах в MinIO в фоне.
type MinioInfrastructure struct {
	reportRepo  usecase.ReportRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(reportRepo usecase.ReportRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		reportRepo:  reportRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// ArchiveReport запускает фоновую загрузку отчёта. Отправка письма её не ждёт.
func (m *MinioInfrastructure) ArchiveReport(report *domain.SalesReport) {
	object := report.ToObject(m.cfg.BucketName)

	m.wg.Add(1)
	go m.upload(object)
}

// upload загружает объект с экспоненциальной задержкой и jitter между попытками.
func (m *MinioInfrastructure) upload(object *domain.Object) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.upload"

	ctx, cancel := context.WithTimeout(m.shutdownCtx, archiveTimeout)
	defer cancel()

	for attempt := 0; attempt < archiveAttempts; attempt++ {
		key, err := m.reportRepo.Upload(ctx, object)
		if err == nil {
			m.logger.Infof("%s: report archived, key=%s", op, key)
			return
		}

		m.logger.Warnf("%s: attempt %d failed, key=%s: %v", op, attempt+1, object.ObjectKey, err)
		if attempt == archiveAttempts-1 {
			break
		}

		delay := jitter.ExponentialBackoff(archiveBackoff, archiveMaxDelay, attempt, jitter.DefaultJitter)
		if err := jitter.Sleep(ctx, delay); err != nil {
			m.logger.Warnf("%s: archive interrupted by shutdown, key=%s", op, object.ObjectKey)
			return
		}
	}

	m.logger.Warnf("%s: report was not archived, key=%s", op, object.ObjectKey)
}

// WaitForArchive ожидает завершения фоновых загрузок с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForArchive(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio archive timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
