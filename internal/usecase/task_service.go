package usecase

import (
	"context"
	"log"
	"time"

	"github.com/St1cky1/todo-backend/internal/entity"
	"github.com/St1cky1/todo-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RabbitMQPublisher интерфейс для публикации в RabbitMQ
type RabbitMQPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

type TaskService struct {
	taskRepo  repository.ITaskRepository
	auditRepo repository.ITaskAuditRepository
	rabbitMQ  RabbitMQPublisher
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	auditRepo repository.ITaskAuditRepository,
	rabbitMQ RabbitMQPublisher,
) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		auditRepo: auditRepo,
		rabbitMQ:  rabbitMQ,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, req *entity.CreateTaskRequest) (*entity.Task, error) {
	// 1. Проверяем, что title вообще передан (пустая строка допустима)
	if req.Title == nil {
		return nil, entity.ErrTitleRequired
	}

	// 2. Собираем документ с дефолтами
	priority := req.Priority
	if priority == "" {
		priority = entity.DefaultPriority
	}

	task := &entity.Task{
		Title:     *req.Title,
		Completed: false,
		Priority:  priority,
		DueDate:   req.DueDate,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}

	// 3. Вставляем и перечитываем по новому id
	newId, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	created, err := s.taskRepo.GetByTaskId(ctx, newId)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 4. Асинхронно отправляем аудит
	s.sendAuditMessage(entity.ActionCreate, newId.Hex(), nil, created, nil)

	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskId primitive.ObjectID) (*entity.Task, error) {
	task, err := s.taskRepo.GetByTaskId(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]entity.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *TaskService) UpdateTask(ctx context.Context, taskId primitive.ObjectID, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	// 1. Собираем обновления только из переданных не-null полей:
	// null через этот путь никогда не затирает сохраненное значение
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Completed != nil {
		updates["completed"] = *req.Completed
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	// 2. Пустое обновление работает как Get: updated_at не трогаем
	if len(updates) == 0 {
		return s.GetTask(ctx, taskId)
	}

	// 3. Получаем текущую задачу (для аудита и 404)
	oldTask, err := s.taskRepo.GetByTaskId(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if oldTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 4. Штампуем updated_at и обновляем
	updates["updated_at"] = time.Now().UTC()

	matched, err := s.taskRepo.Update(ctx, taskId, updates)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, entity.ErrTaskNotFound
	}

	// 5. Перечитываем и отправляем аудит
	updatedTask, err := s.taskRepo.GetByTaskId(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if updatedTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	s.sendAuditMessage(entity.ActionUpdate, taskId.Hex(), oldTask, updatedTask, updates)

	return updatedTask, nil
}

func (s *TaskService) ToggleTask(ctx context.Context, taskId primitive.ObjectID) (*entity.Task, error) {
	// 1. Получаем текущую задачу
	oldTask, err := s.taskRepo.GetByTaskId(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if oldTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 2. Переворачиваем completed и штампуем updated_at
	updates := map[string]interface{}{
		"completed":  !oldTask.Completed,
		"updated_at": time.Now().UTC(),
	}

	matched, err := s.taskRepo.Update(ctx, taskId, updates)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, entity.ErrTaskNotFound
	}

	// 3. Перечитываем и отправляем аудит
	updatedTask, err := s.taskRepo.GetByTaskId(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if updatedTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	s.sendAuditMessage(entity.ActionUpdate, taskId.Hex(), oldTask, updatedTask, updates)

	return updatedTask, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskId primitive.ObjectID) error {
	// 1. Получаем задачу (для аудита)
	task, err := s.taskRepo.GetByTaskId(ctx, taskId)
	if err != nil {
		return err
	}
	if task == nil {
		return entity.ErrTaskNotFound
	}

	// 2. Удаляем задачу
	deleted, err := s.taskRepo.Delete(ctx, taskId)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrTaskNotFound
	}

	// 3. Асинхронно отправляем аудит
	s.sendAuditMessage(entity.ActionDelete, taskId.Hex(), task, nil, nil)

	return nil
}

func (s *TaskService) ListTaskAudit(ctx context.Context, entityId string) ([]entity.TaskAudit, error) {
	return s.auditRepo.GetByEntityId(ctx, entityId)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// taskValues - снимок полей задачи для аудита
func taskValues(task *entity.Task) map[string]interface{} {
	values := map[string]interface{}{
		"title":     task.Title,
		"completed": task.Completed,
		"priority":  task.Priority,
	}
	if task.DueDate != nil {
		values["due_date"] = *task.DueDate
	}
	if task.Notes != nil {
		values["notes"] = *task.Notes
	}
	return values
}

// Вспомогательный метод для отправки аудита
func (s *TaskService) sendAuditMessage(
	action entity.ActionType,
	taskId string,
	oldTask *entity.Task,
	newTask *entity.Task,
	updates map[string]interface{},
) {
	// Без брокера аудит просто выключен
	if s.rabbitMQ == nil {
		return
	}

	auditMsg := &entity.AuditMessage{
		Action:    action,
		EntityID:  taskId,
		Timestamp: time.Now().UTC(),
	}

	// Заполняем данные в зависимости от действия
	switch action {
	case entity.ActionCreate:
		if newTask != nil {
			auditMsg.NewValues = taskValues(newTask)
		}

	case entity.ActionUpdate:
		if oldTask != nil && newTask != nil {
			auditMsg.OldValues = taskValues(oldTask)
			auditMsg.NewValues = taskValues(newTask)

			// Вычисляем изменения
			changes := make(map[string]interface{})
			if oldTask.Title != newTask.Title {
				changes["title"] = map[string]interface{}{"old": oldTask.Title, "new": newTask.Title}
			}
			if oldTask.Completed != newTask.Completed {
				changes["completed"] = map[string]interface{}{"old": oldTask.Completed, "new": newTask.Completed}
			}
			if oldTask.Priority != newTask.Priority {
				changes["priority"] = map[string]interface{}{"old": oldTask.Priority, "new": newTask.Priority}
			}
			if !timePtrEqual(oldTask.DueDate, newTask.DueDate) {
				changes["due_date"] = map[string]interface{}{"old": oldTask.DueDate, "new": newTask.DueDate}
			}
			if !strPtrEqual(oldTask.Notes, newTask.Notes) {
				changes["notes"] = map[string]interface{}{"old": oldTask.Notes, "new": newTask.Notes}
			}
			auditMsg.Changes = changes
		}

	case entity.ActionDelete:
		if oldTask != nil {
			auditMsg.OldValues = taskValues(oldTask)
		}
	}

	// Асинхронная отправка в RabbitMQ
	go func() {
		if err := s.rabbitMQ.PublishAuditMessage(context.Background(), auditMsg); err != nil {
			log.Printf("❌ Ошибка отправки аудита в RabbitMQ: %v", err)
		} else {
			log.Printf("Аудит отправлен в RabbitMQ: %s задача ID=%s", action, taskId)
		}
	}()
}
