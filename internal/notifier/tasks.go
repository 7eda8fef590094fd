package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeNotificationSend тип задачи отправки уведомления о бронировании
const TypeNotificationSend = "notification:send"

// QueueNotifications имя очереди уведомлений
const QueueNotifications = "notifications"

var (
	// ErrEnqueueFailed возвращается при сбое постановки задачи в очередь
	ErrEnqueueFailed = errors.New("notifier: failed to enqueue task")

	// ErrInvalidPayload возвращается воркером при нечитаемой задаче
	ErrInvalidPayload = errors.New("notifier: invalid task payload")
)

// NotificationPayload полезная нагрузка задачи уведомления
type NotificationPayload struct {
	Recipient     string `json:"recipient"`
	Content       string `json:"content"`
	ReservationID string `json:"reservationId"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewNotificationTask собирает asynq-задачу из полезной нагрузки
func NewNotificationTask(payload NotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return asynq.NewTask(TypeNotificationSend, data), nil
}

// Enqueuer ставит задачи уведомлений в очередь
type Enqueuer struct {
	client *asynq.Client
	log    Logger
}

// NewEnqueuer создает новый экземпляр Enqueuer
func NewEnqueuer(client *asynq.Client, log Logger) *Enqueuer {
	return &Enqueuer{client: client, log: log}
}

// Enqueue ставит уведомление в очередь с ретраями на стороне воркера
func (e *Enqueuer) Enqueue(ctx context.Context, payload NotificationPayload) error {
	task, err := NewNotificationTask(payload)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueNotifications),
		asynq.MaxRetry(5),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnqueueFailed, err)
	}

	e.log.Info("Notifier: enqueued task id=%s, reservation=%s", info.ID, payload.ReservationID)
	return nil
}

// Close закрывает подключение клиента очереди
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
