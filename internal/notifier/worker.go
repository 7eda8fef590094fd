package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// MessageSender интерфейс клиента сервиса доставки сообщений
type MessageSender interface {
	SendMessage(ctx context.Context, recipient, content string) error
}

// Worker обрабатывает очередь уведомлений
// Доставка идет вне запроса бронирования: ретраями и бэкоффом
// управляет asynq, сбой доставки бронирование не трогает
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    Logger
}

// NewWorker создает воркер очереди уведомлений
func NewWorker(redisOpt asynq.RedisClientOpt, sender MessageSender, log Logger) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueNotifications: 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotificationSend, handleNotificationSend(sender, log))

	return &Worker{server: server, mux: mux, log: log}
}

// Run запускает обработку очереди; блокируется до Shutdown
func (w *Worker) Run() error {
	w.log.Info("Notifier: worker started")
	return w.server.Run(w.mux)
}

// Shutdown останавливает воркер, дожидаясь активных задач
func (w *Worker) Shutdown() {
	w.log.Info("Notifier: worker shutting down")
	w.server.Shutdown()
}

func handleNotificationSend(sender MessageSender, log Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload NotificationPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			// Нечитаемая задача не станет читаемой после ретрая
			return fmt.Errorf("notifier: invalid task payload: %v: %w", err, asynq.SkipRetry)
		}

		if err := sender.SendMessage(ctx, payload.Recipient, payload.Content); err != nil {
			log.Warn("Notifier: delivery failed for reservation=%s: %v", payload.ReservationID, err)
			return err
		}

		log.Info("Notifier: delivered notification for reservation=%s", payload.ReservationID)
		return nil
	}
}
