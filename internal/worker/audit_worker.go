package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/St1cky1/todo-backend/internal/entity"
	"github.com/St1cky1/todo-backend/internal/infrastructure/client"
	"github.com/St1cky1/todo-backend/internal/repository"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditWorker читает очередь аудита и складывает записи в Mongo.
// Держит собственное соединение с RabbitMQ и переподключается при обрывах
type AuditWorker struct {
	rabbitMQURL string
	auditRepo   repository.ITaskAuditRepository
}

func NewAuditWorker(rabbitMQURL string, auditRepo repository.ITaskAuditRepository) *AuditWorker {
	return &AuditWorker{
		rabbitMQURL: rabbitMQURL,
		auditRepo:   auditRepo,
	}
}

func (w *AuditWorker) Start(ctx context.Context) {
	fmt.Println("🔄 Audit Worker: Начинаем подключение к RabbitMQ...")

	for {
		select {
		case <-ctx.Done():
			fmt.Println("🛑 Audit Worker остановлен")
			return
		default:
			err := w.runWorker(ctx)
			if err != nil {
				log.Printf("❌ Audit Worker ошибка: %v, переподключение через 5 секунд...", err)
				time.Sleep(5 * time.Second)
			}
		}
	}
}

func (w *AuditWorker) runWorker(ctx context.Context) error {
	// Создаем отдельное соединение
	conn, err := amqp.Dial(w.rabbitMQURL)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("ошибка создания канала: %w", err)
	}
	defer channel.Close()

	// Убеждаемся, что очередь существует
	_, err = channel.QueueDeclare(
		client.AuditQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		return fmt.Errorf("ошибка объявления очереди: %w", err)
	}

	// Создаем consumer
	msgs, err := channel.Consume(
		client.AuditQueueName, // queue
		"audit_worker",        // consumer tag
		false,                 // auto-ack (false - подтверждаем вручную)
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("ошибка создания consumer: %w", err)
	}

	fmt.Println("✅ Audit Worker запущен. Ожидаем сообщения...")

	// Обрабатываем сообщения
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("канал сообщений закрыт")
			}
			w.processMessage(msg)
		}
	}
}

func (w *AuditWorker) processMessage(msg amqp.Delivery) {
	ctx := context.Background()

	// 1. Парсим сообщение
	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		log.Printf("❌ Ошибка парсинга сообщения: %v", err)
		msg.Nack(false, false) // Не возвращаем в очередь
		return
	}

	// 2. Конвертируем в TaskAudit
	taskAudit := convertToTaskAudit(&auditMsg)

	// 3. Сохраняем в БД
	if err := w.auditRepo.Create(ctx, taskAudit); err != nil {
		log.Printf("❌ Ошибка сохранения аудита: %v", err)
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	// 4. Подтверждаем обработку
	msg.Ack(false)
	log.Printf("✅ Аудит сохранен: %s задача ID=%s", taskAudit.Action, taskAudit.EntityID)
}

func convertToTaskAudit(msg *entity.AuditMessage) *entity.TaskAudit {
	eventId := msg.EventID
	if eventId == "" {
		eventId = uuid.NewString()
	}

	return &entity.TaskAudit{
		EventID:    eventId,
		Action:     msg.Action,
		EntityType: "task",
		EntityID:   msg.EntityID,
		OldValues:  msg.OldValues,
		NewValues:  msg.NewValues,
		Changes:    msg.Changes,
		ChangedAt:  msg.Timestamp,
	}
}
