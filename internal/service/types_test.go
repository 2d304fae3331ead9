package service

import (
	"encoding/json"
	"testing"
)

func TestStatusToggle(t *testing.T) {
	if StatusPending.Toggle() != StatusCompleted {
		t.Error("pending should toggle to completed")
	}
	if StatusCompleted.Toggle() != StatusPending {
		t.Error("completed should toggle to pending")
	}
	if Status("").Toggle() != StatusPending {
		t.Error("unknown status should toggle to pending")
	}
}

func TestPriorityNext(t *testing.T) {
	if PriorityLow.Next() != PriorityMedium || PriorityMedium.Next() != PriorityHigh || PriorityHigh.Next() != PriorityLow {
		t.Error("priority cycle is wrong")
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	if err != nil || p != PriorityHigh {
		t.Errorf("ParsePriority() = %q, %v", p, err)
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("expected error")
	}
	if _, err := ParseStatus("done"); err == nil {
		t.Error("expected error")
	}
}

func TestTaskUsesServerIDField(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"_id":"1","text":"a","status":"pending","priority":"low","__v":0}`), &task); err != nil {
		t.Fatal(err)
	}
	if task.ID != "1" || task.Text != "a" {
		t.Errorf("unexpected task %+v", task)
	}
}
