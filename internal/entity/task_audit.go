package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActionType string

const (
	ActionCreate ActionType = "Create"
	ActionUpdate ActionType = "Update"
	ActionDelete ActionType = "Delete"
)

// TaskAudit - документ аудита в коллекции task_audit
type TaskAudit struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID    string             `bson:"event_id" json:"event_id"`
	Action     ActionType         `bson:"action" json:"action"`
	EntityType string             `bson:"entity_type" json:"entity_type"`
	EntityID   string             `bson:"entity_id" json:"entity_id"`
	OldValues  map[string]any     `bson:"old_values,omitempty" json:"old_values,omitempty"`
	NewValues  map[string]any     `bson:"new_values,omitempty" json:"new_values,omitempty"`
	Changes    map[string]any     `bson:"changes,omitempty" json:"changes,omitempty"`
	ChangedAt  time.Time          `bson:"changed_at" json:"changed_at"`
}

// AuditMessage - сообщение в очереди task_audit_logs
type AuditMessage struct {
	EventID   string         `json:"event_id"`
	Action    ActionType     `json:"action"`
	EntityID  string         `json:"entity_id"`
	OldValues map[string]any `json:"old_values,omitempty"`
	NewValues map[string]any `json:"new_values,omitempty"`
	Changes   map[string]any `json:"changes,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
