package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// departments allowed for an employee record.
var departments = []string{"IT", "HR", "Finance", "Marketing", "Sales", "Operations"}

func Departments() []string {
	out := make([]string, len(departments))
	copy(out, departments)
	return out
}

func IsValidDepartment(d string) bool {
	for _, known := range departments {
		if d == known {
			return true
		}
	}
	return false
}

func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

// Employee — a single employee record. Records are never physically
// removed; IsDeleted is the only deletion signal.
type Employee struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	EmployeeID  string    `json:"employeeId"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	JoiningDate time.Time `json:"joiningDate"`
	Salary      float64   `json:"salary"`
	Status      string    `json:"status"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SoftDelete marks the record as logically removed. A deleted record is
// always Inactive. Calling it on an already deleted record is a no-op.
func (e *Employee) SoftDelete() {
	e.IsDeleted = true
	e.Status = StatusInactive
}

// Restore clears the deletion flag. Status is intentionally left as-is:
// a restored record stays Inactive until edited.
func (e *Employee) Restore() {
	e.IsDeleted = false
}

// FormattedSalary renders the salary as INR with Indian digit grouping,
// e.g. 500000 -> "₹5,00,000.00".
func (e *Employee) FormattedSalary() string {
	return formatINR(e.Salary)
}

// Tenure reports elapsed time since JoiningDate as "X years, Y months".
func (e *Employee) Tenure(now time.Time) string {
	const (
		year  = time.Duration(365.25 * 24 * float64(time.Hour))
		month = time.Duration(30.44 * 24 * float64(time.Hour))
	)

	elapsed := now.Sub(e.JoiningDate)
	if elapsed < 0 {
		elapsed = 0
	}

	years := int(elapsed / year)
	months := int((elapsed % year) / month)

	return fmt.Sprintf("%d years, %d months", years, months)
}

func formatINR(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	intPart, fracPart, _ := strings.Cut(s, ".")

	grouped := groupIndian(intPart)
	if neg {
		return "-₹" + grouped + "." + fracPart
	}
	return "₹" + grouped + "." + fracPart
}

// groupIndian applies the lakh/crore grouping: the last three digits form
// one group, every two digits before that form another.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
