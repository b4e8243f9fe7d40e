package repository

import (
	"context"

	"github.com/St1cky1/todo-backend/internal/entity"
	"github.com/St1cky1/todo-backend/internal/infrastructure/client"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const taskAuditCollection = "task_audit"

type TaskAuditRepository struct {
	db *client.MongoClient
}

func NewTaskAuditRepository(db *client.MongoClient) *TaskAuditRepository {
	return &TaskAuditRepository{
		db: db,
	}
}

func (r *TaskAuditRepository) Create(ctx context.Context, audit *entity.TaskAudit) error {
	coll := r.db.Collection(taskAuditCollection)
	if coll == nil {
		return entity.ErrDatabaseNotConnected
	}

	_, err := coll.InsertOne(ctx, audit)
	return err
}

func (r *TaskAuditRepository) GetByEntityId(ctx context.Context, entityId string) ([]entity.TaskAudit, error) {
	coll := r.db.Collection(taskAuditCollection)
	if coll == nil {
		return nil, entity.ErrDatabaseNotConnected
	}

	filter := bson.M{"entity_id": entityId, "entity_type": "task"}
	opts := options.Find().SetSort(bson.D{{Key: "changed_at", Value: -1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var audits []entity.TaskAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, err
	}

	return audits, nil
}
