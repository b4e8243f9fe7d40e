package repository

import (
	"context"

	"github.com/St1cky1/todo-backend/internal/entity"
	"github.com/St1cky1/todo-backend/internal/infrastructure/client"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const taskCollection = "task"

type TaskRepository struct {
	db *client.MongoClient
}

func NewTaskRepository(db *client.MongoClient) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (primitive.ObjectID, error) {
	coll := r.db.Collection(taskCollection)
	if coll == nil {
		return primitive.NilObjectID, entity.ErrDatabaseNotConnected
	}

	res, err := coll.InsertOne(ctx, task)
	if err != nil {
		return primitive.NilObjectID, err
	}

	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *TaskRepository) GetByTaskId(ctx context.Context, taskId primitive.ObjectID) (*entity.Task, error) {
	coll := r.db.Collection(taskCollection)
	if coll == nil {
		return nil, entity.ErrDatabaseNotConnected
	}

	var task entity.Task
	err := coll.FindOne(ctx, bson.M{"_id": taskId}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

// Update - обновляет только переданные поля, возвращает matched
func (r *TaskRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (bool, error) {
	coll := r.db.Collection(taskCollection)
	if coll == nil {
		return false, entity.ErrDatabaseNotConnected
	}

	res, err := coll.UpdateByID(ctx, id, bson.M{"$set": updates})
	if err != nil {
		return false, err
	}

	return res.MatchedCount > 0, nil
}

// Delete - жесткое удаление, возвращает deleted
func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	coll := r.db.Collection(taskCollection)
	if coll == nil {
		return false, entity.ErrDatabaseNotConnected
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}

	return res.DeletedCount > 0, nil
}

// List - все задачи, новые сверху; документы без created_at уходят в конец
func (r *TaskRepository) List(ctx context.Context) ([]entity.Task, error) {
	coll := r.db.Collection(taskCollection)
	if coll == nil {
		return nil, entity.ErrDatabaseNotConnected
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []entity.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}
