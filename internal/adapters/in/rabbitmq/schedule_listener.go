package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/matchpoint-club/field-schedule-sync/internal/config"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/in"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/out"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/services/schedule_sync_service"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ScheduleListener принимает заявки на синхронизацию расписания из очереди.
// Путь для событий бэкенда (правка площадки), минуя HTTP.
type ScheduleListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.ScheduleSyncUseCase
	cfg     *config.Config
	cache   out.CachePort
	logger  out.LoggerPort
}

// ScheduleSyncMessage - заявка на один запуск синхронизации
type ScheduleSyncMessage struct {
	FieldID int64                 `json:"fieldId"`
	Mode    domain.GenerationMode `json:"mode"`
	Days    []domain.WeekdayRule  `json:"days"`
}

func NewScheduleListener(useCase in.ScheduleSyncUseCase, cfg *config.Config, cache out.CachePort, logger out.LoggerPort) (*ScheduleListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &ScheduleListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		cache:   cache,
		logger:  logger,
	}, nil
}

func (l *ScheduleListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("rabbitmq.channel.closed", out.LogFields{})
					return
				}
				l.handleDelivery(ctx, msg)
			}
		}
	}()

	l.logger.Info("rabbitmq.listener.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

// Сообщения обрабатываются по одному: не больше одного запуска
// синхронизации на площадку одновременно.
func (l *ScheduleListener) handleDelivery(ctx context.Context, msg amqp.Delivery) {
	if err := l.processMessage(ctx, msg); err != nil {
		// Отказ fetch временный, сообщение возвращаем в очередь.
		// Все остальное (битый JSON, невалидные правила) повторением не лечится.
		requeue := errors.Is(err, schedule_sync_service.ErrFetchFailed)

		l.logger.Error("rabbitmq.message.process_failed", out.LogFields{
			"error":   err.Error(),
			"requeue": requeue,
		})
		msg.Nack(false, requeue)
		return
	}
	msg.Ack(false)
}

func (l *ScheduleListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	var syncMessage ScheduleSyncMessage
	if err := json.Unmarshal(msg.Body, &syncMessage); err != nil {
		return err
	}

	// Заявка обычно приходит после правки площадки, длительность слота
	// могла измениться
	if l.cache != nil {
		l.cache.InvalidateField(ctx, syncMessage.FieldID)
	}

	report, err := l.useCase.SyncSchedule(ctx, syncMessage.FieldID, syncMessage.Days, syncMessage.Mode)
	if err != nil {
		return err
	}

	if report.HasItemFailures() {
		l.logger.Warn("rabbitmq.sync.partial_failures", out.LogFields{
			"runId":        report.RunID,
			"fieldId":      report.FieldID,
			"itemFailures": len(report.ItemFailures),
		})
	}

	return nil
}

func (l *ScheduleListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
