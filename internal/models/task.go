package models

import "time"

// TaskStatus represents the status of a queued export task
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "Open"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusComplete   TaskStatus = "Complete"
	TaskStatusFailed     TaskStatus = "Failed"

	// Legacy documents carry a lowercase open status; accepted on read,
	// never written back.
	TaskStatusOpenLegacy TaskStatus = "open"
)

// Task represents an export task document in the System_tasks collection.
// Tasks are created upstream; this system only reads them and updates
// status and description.
type Task struct {
	TaskID         int                    `bson:"Task_Id" json:"taskId"`
	TemplateTaskID int                    `bson:"Template_Task_Id" json:"templateTaskId"`
	Status         TaskStatus             `bson:"task_status" json:"taskStatus"`
	Parameters     map[string]interface{} `bson:"parameters" json:"parameters"`
	Description    string                 `bson:"task_description,omitempty" json:"taskDescription,omitempty"`
	CreatedAt      time.Time              `bson:"created_dtm,omitempty" json:"createdAt,omitempty"`
}
