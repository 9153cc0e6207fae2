package domain

import "time"

// TaskType enumerates the calendar entry kinds a planner item can carry.
type TaskType string

const (
	TaskTypeTask     TaskType = "task"
	TaskTypeMeeting  TaskType = "meeting"
	TaskTypeDeadline TaskType = "deadline"
	TaskTypeHoliday  TaskType = "holiday"
	TaskTypeNews     TaskType = "news"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeTask, TaskTypeMeeting, TaskTypeDeadline, TaskTypeHoliday, TaskTypeNews:
		return true
	}
	return false
}

// TaskStatus enumerates completion states.
type TaskStatus string

const (
	TaskStatusTodo TaskStatus = "todo"
	TaskStatusDone TaskStatus = "done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusTodo || s == TaskStatusDone
}

// TaskSource records where a task came from.
type TaskSource string

const (
	TaskSourceLocal TaskSource = "local"
	TaskSourceNager TaskSource = "nager"
)

// TaskMeta holds provenance attached to imported tasks. Locally created
// tasks carry an empty meta so they never collide on the dedup key.
type TaskMeta struct {
	SourceID string `json:"source_id,omitempty"`
}

// Task is a single dated planner entry owned by exactly one user.
// Date is an ISO calendar date ("2006-01-02") kept in string form;
// lexicographic order on it equals chronological order.
type Task struct {
	ID        string
	OwnerID   string
	Title     string
	Date      string
	Type      TaskType
	Status    TaskStatus
	Source    TaskSource
	Meta      TaskMeta
	CreatedAt time.Time
	UpdatedAt time.Time
}
