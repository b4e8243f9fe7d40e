package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/St1cky1/todo-backend/internal/entity"
	"github.com/St1cky1/todo-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	taskService *usecase.TaskService
}

func NewTaskHandler(taskService *usecase.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// errorResponse - тело любой ошибки API
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, detail string) {
	writeJSON(w, status, errorResponse{Error: code, Detail: detail})
}

// writeServiceError - единый маппинг ошибок сервиса на статусы
func writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrTaskNotFound:
		writeError(w, http.StatusNotFound, "not_found", "Task not found")
	case entity.ErrTitleRequired:
		writeError(w, http.StatusBadRequest, "validation_error", "title is required")
	default:
		// ошибки стора не показываем клиенту, только в лог
		log.Printf("❌ Ошибка стора: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

// taskIdParam - валидация id до любого похода в стор:
// кривой id это 400, а не 404
func taskIdParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid task id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entity.ToResponseList(tasks))
}

// создаем новую задачу
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task.ToResponse())
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskId, ok := taskIdParam(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task.ToResponse())
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskId, ok := taskIdParam(w, r)
	if !ok {
		return
	}

	var req entity.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskId, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task.ToResponse())
}

func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	taskId, ok := taskIdParam(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleTask(r.Context(), taskId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task.ToResponse())
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskId, ok := taskIdParam(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskId); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// история изменений задачи
func (h *TaskHandler) ListTaskAudit(w http.ResponseWriter, r *http.Request) {
	taskId, ok := taskIdParam(w, r)
	if !ok {
		return
	}

	audits, err := h.taskService.ListTaskAudit(r.Context(), taskId.Hex())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if audits == nil {
		audits = []entity.TaskAudit{}
	}
	writeJSON(w, http.StatusOK, audits)
}
