package tasks

import (
	"testing"
	"time"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask(TaskTypeSyncCalendar, "work")

	if task.ID == "" {
		t.Error("Expected non-empty task ID")
	}
	if task.Type != TaskTypeSyncCalendar {
		t.Errorf("Unexpected task type: %q", task.Type)
	}
	if task.CalendarName != "work" {
		t.Errorf("Unexpected calendar name: %q", task.CalendarName)
	}
	if task.RetryCount != 0 {
		t.Errorf("Expected zero retry count, got: %d", task.RetryCount)
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected default max retries, got: %d", task.MaxRetries)
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeSyncCalendar, "work")

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected retries exhausted after max increments")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Unexpected retry count: %d", task.GetRetryCount())
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeSyncCalendarConfig, "work")

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before Start")
	}

	task.Start()
	time.Sleep(10 * time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Error("Expected positive duration after Start")
	}
}

func TestNewTaskIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		task := NewTask(TaskTypeSyncCalendar, "work")
		if seen[task.ID] {
			t.Fatalf("Duplicate task ID: %s", task.ID)
		}
		seen[task.ID] = true
	}
}
