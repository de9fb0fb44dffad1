package producer

import (
	"time"

	"github.com/google/uuid"
)

// ChangePayload — the record state after the change was applied.
type ChangePayload struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	EmployeeID  string    `json:"employee_id"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	JoiningDate string    `json:"joining_date"`
	Salary      float64   `json:"salary"`
	Status      string    `json:"status"`
	IsDeleted   bool      `json:"is_deleted"`
}

// Envelope wraps every audit event on the wire.
type Envelope struct {
	Action     string        `json:"action"` // created | updated | deleted | restored
	MessageID  uuid.UUID     `json:"message_id"`
	EmployeeID string        `json:"employee_id"`
	Payload    ChangePayload `json:"payload"`
	Timestamp  time.Time     `json:"timestamp"`
	Source     string        `json:"source"`
}
