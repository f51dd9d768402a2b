package kafka

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/jitter"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/segmentio/kafka-go"
)

const statusUpdateTimeout = 5 * time.Second

type notificationConn interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type connectFunc func(ctx context.Context) (notificationConn, error)

// OutboxWorker отправляет события из outbox в Kafka: при старте и по каждому NOTIFY outbox_pending.
type OutboxWorker struct {
	repo     usecase.OutboxRepository
	logger   logger.Logger
	producer usecase.MessageProducer
	cfg      *cfg.OutboxCfg
	connect  connectFunc
	wake     chan struct{}
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	cfg *cfg.OutboxCfg,
	dbConnStr string,
) *OutboxWorker {
	return newOutboxWorker(repo, logger, producer, cfg, pgListen(dbConnStr))
}

func newOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	cfg *cfg.OutboxCfg,
	connect connectFunc,
) *OutboxWorker {
	return &OutboxWorker{
		repo:     repo,
		logger:   logger,
		producer: producer,
		cfg:      cfg,
		connect:  connect,
		wake:     make(chan struct{}, 1),
	}
}

// pgListen открывает отдельное соединение и подписывается на канал outbox.
func pgListen(dbConnStr string) connectFunc {
	return func(ctx context.Context) (notificationConn, error) {
		conn, err := pgx.Connect(ctx, dbConnStr)
		if err != nil {
			return nil, e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err := conn.Exec(ctx, "LISTEN "+usecase.OutboxNotifyChannel); err != nil {
			_ = conn.Close(ctx)
			return nil, e.Wrap("failed to LISTEN", err)
		}

		return conn, nil
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	// Запускаем слушатель уведомлений
	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

// Stop останавливает воркер и ждёт завершения горутин.
func (w *OutboxWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *OutboxWorker) run(ctx context.Context) {
	// Обрабатываем "остатки" при старте
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped")
			return
		case <-w.wake:
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	for attempt := 0; ctx.Err() == nil; attempt++ {
		conn, err := w.connect(ctx)
		if err != nil {
			w.logger.Warnf("Outbox listener connect failed: %v", err)
			if jitter.Sleep(ctx, jitter.Duration(w.cfg.ReconnectDelay, jitter.DefaultJitter)) != nil {
				return
			}
			continue
		}

		w.logger.Infof("Subscribed to '%s' channel", usecase.OutboxNotifyChannel)
		// после переподключения могли пропустить уведомления
		if attempt > 0 {
			w.notify()
		}

		err = w.waitNotifications(ctx, conn)
		_ = conn.Close(context.Background())
		if err == nil {
			return
		}

		w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
		if jitter.Sleep(ctx, jitter.Duration(w.cfg.ReconnectDelay, jitter.DefaultJitter)) != nil {
			return
		}
	}
}

// waitNotifications возвращает nil при остановке воркера и ошибку при потере соединения.
func (w *OutboxWorker) waitNotifications(ctx context.Context, conn notificationConn) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		waitCtx, cancel := context.WithTimeout(ctx, w.cfg.ListenTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// тишина в канале: периодически перечитываем outbox, чтобы повторить возвращённые в pending события
			if errors.Is(err, context.DeadlineExceeded) {
				w.notify()
				continue
			}
			return err
		}

		if notif != nil && notif.Channel == usecase.OutboxNotifyChannel {
			w.notify()
		}
	}
}

// notify будит обработчик; несколько уведомлений подряд схлопываются в одно.
func (w *OutboxWorker) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// processBatch отправляет одну пачку событий. hasMore истинно, если пачка была полной и ушла без ошибок.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.cfg.BatchSize)
	if err != nil {
		return false, err
	}

	failed := false
	for i, event := range events {
		// воркер останавливается: неотправленный остаток пачки возвращается в очередь
		if ctx.Err() != nil {
			w.release(ctx, events[i:])
			return false, nil
		}

		if err := w.processEvent(ctx, event); err != nil {
			failed = true
			w.handleFailure(ctx, event, err)
			continue
		}

		w.markProcessed(ctx, event)
	}

	return len(events) == w.cfg.BatchSize && !failed, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	return w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.OrderID, event.Payload))
}

// statusCtx отвязывает запись статуса события от остановки воркера.
func statusCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), statusUpdateTimeout)
}

func (w *OutboxWorker) markProcessed(ctx context.Context, event *usecase.OutboxEvent) {
	ctx, cancel := statusCtx(ctx)
	defer cancel()

	if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
		w.logger.Warnf("mark processed failed: %v", err)
	}
}

func (w *OutboxWorker) release(ctx context.Context, events []*usecase.OutboxEvent) {
	ctx, cancel := statusCtx(ctx)
	defer cancel()

	for _, event := range events {
		if err := w.repo.MarkAsPending(ctx, event.ID); err != nil {
			w.logger.Warnf("return to pending failed, event %s waits for lease expiry: %v", event.EventID, err)
		}
	}
}

// handleFailure возвращает событие в очередь при временной ошибке Kafka или остановке воркера.
// При постоянной ошибке событие помечается failed и больше не отправляется.
func (w *OutboxWorker) handleFailure(ctx context.Context, event *usecase.OutboxEvent, err error) {
	if ctx.Err() == nil && !isRetryableError(err) {
		w.logger.Errorf(err, "Permanent Kafka failure, event %s marked as failed", event.EventID)

		failCtx, cancel := statusCtx(ctx)
		defer cancel()
		if err := w.repo.MarkAsFailed(failCtx, event.ID); err != nil {
			w.logger.Warnf("mark failed failed: %v", err)
		}
		return
	}

	if ctx.Err() != nil {
		w.logger.Infof("Outbox worker stopping, event %s returned to pending", event.EventID)
	} else {
		w.logger.Warnf("Temporary Kafka failure, event %s will be retried: %v", event.EventID, err)
	}
	w.release(ctx, []*usecase.OutboxEvent{event})
}

// isRetryableError отделяет временные ошибки брокера и сети от постоянных (например, слишком большое сообщение).
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) {
		if writeErrs.Count() == 0 {
			return false
		}
		for _, we := range writeErrs {
			if we != nil && !isRetryableError(we) {
				return false
			}
		}
		return true
	}

	// kafka.Error тоже реализует net.Error, поэтому проверяется первым
	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
