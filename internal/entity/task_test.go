package entity

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToResponse(t *testing.T) {
	id := primitive.NewObjectID()
	createdAt := time.Date(2025, 12, 1, 10, 30, 0, 0, time.UTC)
	notes := "wrap them"

	task := &Task{
		ID:        id,
		Title:     "Buy gifts",
		Completed: false,
		Priority:  "medium",
		Notes:     &notes,
		CreatedAt: createdAt,
	}

	resp := task.ToResponse()

	if resp.ID != id.Hex() {
		t.Errorf("Expected id %s, got %s", id.Hex(), resp.ID)
	}
	if resp.CreatedAt == nil || !resp.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected created_at %v, got %v", createdAt, resp.CreatedAt)
	}
	if resp.UpdatedAt != nil {
		t.Errorf("Expected no updated_at, got %v", resp.UpdatedAt)
	}
	if resp.Notes == nil || *resp.Notes != notes {
		t.Errorf("Expected notes kept, got %v", resp.Notes)
	}
}

// Документ без created_at (старые записи) не должен отдавать нулевую дату
func TestToResponseOmitsZeroCreatedAt(t *testing.T) {
	task := &Task{
		ID:       primitive.NewObjectID(),
		Title:    "Legacy",
		Priority: "medium",
	}

	data, err := json.Marshal(task.ToResponse())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire map[string]interface{}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := wire["created_at"]; ok {
		t.Errorf("Expected created_at omitted, got %v", wire["created_at"])
	}
	if _, ok := wire["due_date"]; ok {
		t.Errorf("Expected due_date omitted, got %v", wire["due_date"])
	}
	if _, ok := wire["notes"]; ok {
		t.Errorf("Expected notes omitted, got %v", wire["notes"])
	}
	if _, ok := wire["id"].(string); !ok {
		t.Errorf("Expected string id on the wire, got %v", wire["id"])
	}
}

// Даты на проводе в ISO-8601
func TestResponseDatesAreISO(t *testing.T) {
	due := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)

	task := &Task{
		ID:        primitive.NewObjectID(),
		Title:     "Dinner",
		Priority:  "high",
		DueDate:   &due,
		CreatedAt: time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(task.ToResponse())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire map[string]interface{}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	dueStr, ok := wire["due_date"].(string)
	if !ok {
		t.Fatalf("Expected due_date string, got %v", wire["due_date"])
	}
	if _, err := time.Parse(time.RFC3339, dueStr); err != nil {
		t.Errorf("Expected ISO-8601 due_date, got %q: %v", dueStr, err)
	}
}

func TestToResponseListNeverNil(t *testing.T) {
	responses := ToResponseList(nil)
	if responses == nil {
		t.Fatal("Expected non-nil slice for empty input")
	}
	if len(responses) != 0 {
		t.Errorf("Expected empty slice, got %d entries", len(responses))
	}

	data, err := json.Marshal(responses)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected [] on the wire, got %s", data)
	}
}
