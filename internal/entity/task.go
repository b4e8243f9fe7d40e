package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPriority подставляется, если клиент не передал приоритет
const DefaultPriority = "medium"

// Task - документ задачи в том виде, в котором он лежит в MongoDB
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Completed bool               `bson:"completed"`
	Priority  string             `bson:"priority"`
	DueDate   *time.Time         `bson:"due_date,omitempty"`
	Notes     *string            `bson:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty"`
}

// TaskResponse - задача в wire-формате: _id превращается в строку id,
// отсутствующие поля не попадают в JSON
type TaskResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Priority  string     `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ToResponse - единственное место, где документ переименовывается в wire-формат
func (t *Task) ToResponse() *TaskResponse {
	resp := &TaskResponse{
		ID:        t.ID.Hex(),
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  t.Priority,
		DueDate:   t.DueDate,
		Notes:     t.Notes,
		UpdatedAt: t.UpdatedAt,
	}

	if !t.CreatedAt.IsZero() {
		createdAt := t.CreatedAt
		resp.CreatedAt = &createdAt
	}

	return resp
}

// ToResponseList всегда возвращает непустой slice, чтобы пустой список
// сериализовался как [], а не null
func ToResponseList(tasks []Task) []*TaskResponse {
	responses := make([]*TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, tasks[i].ToResponse())
	}
	return responses
}

// валидация
type CreateTaskRequest struct {
	Title    *string    `json:"title"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"due_date"`
	Notes    *string    `json:"notes"`
}

type UpdateTaskRequest struct {
	Title     *string    `json:"title"` // nil - поле не передано или передан null
	Completed *bool      `json:"completed"`
	Priority  *string    `json:"priority"`
	DueDate   *time.Time `json:"due_date"`
	Notes     *string    `json:"notes"`
}
