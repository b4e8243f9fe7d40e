package repository

import (
	"context"

	"github.com/St1cky1/todo-backend/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, task *entity.Task) (primitive.ObjectID, error)
	GetByTaskId(ctx context.Context, taskId primitive.ObjectID) (*entity.Task, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context) ([]entity.Task, error)
}

// ITaskAuditRepository - интерфейс для TaskAuditRepository
type ITaskAuditRepository interface {
	Create(ctx context.Context, audit *entity.TaskAudit) error
	GetByEntityId(ctx context.Context, entityId string) ([]entity.TaskAudit, error)
}
