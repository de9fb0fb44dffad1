package employee

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gyanvix/employee-admin/internal/dto"
)

const maxSalary = 100_000_000

var (
	regexEmployeeID = regexp.MustCompile(`^[A-Z0-9]+$`)
	regexPhone      = regexp.MustCompile(`^[0-9]{10}$`)
	regexEmail      = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// buildEmployee normalizes the input and checks every field constraint,
// returning the candidate record and the list of violation messages.
// Fields are checked independently; joiningDate is the only one compared
// against the clock.
func (s *Service) buildEmployee(in Input) (dto.Employee, []string) {
	var msgs []string

	e := dto.Employee{
		Name:        strings.TrimSpace(in.Name),
		EmployeeID:  strings.ToUpper(strings.TrimSpace(in.EmployeeID)),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		Department:  strings.TrimSpace(in.Department),
		Designation: strings.TrimSpace(in.Designation),
		Status:      strings.TrimSpace(in.Status),
	}

	switch nameLen := utf8.RuneCountInString(e.Name); {
	case e.Name == "":
		msgs = append(msgs, "Employee name is required")
	case nameLen < 3:
		msgs = append(msgs, "Name must be at least 3 characters long")
	case nameLen > 100:
		msgs = append(msgs, "Name cannot exceed 100 characters")
	}

	switch {
	case e.EmployeeID == "":
		msgs = append(msgs, "Employee ID is required")
	case !regexEmployeeID.MatchString(e.EmployeeID):
		msgs = append(msgs, "Employee ID must contain only letters and numbers")
	}

	switch {
	case e.Email == "":
		msgs = append(msgs, "Email is required")
	case !regexEmail.MatchString(e.Email):
		msgs = append(msgs, "Please provide a valid email address")
	}

	switch {
	case e.Phone == "":
		msgs = append(msgs, "Phone number is required")
	case !regexPhone.MatchString(e.Phone):
		msgs = append(msgs, "Please provide a valid 10-digit phone number")
	}

	switch {
	case e.Department == "":
		msgs = append(msgs, "Department is required")
	case !dto.IsValidDepartment(e.Department):
		msgs = append(msgs, fmt.Sprintf("%s is not a valid department", e.Department))
	}

	switch designationLen := utf8.RuneCountInString(e.Designation); {
	case e.Designation == "":
		msgs = append(msgs, "Designation is required")
	case designationLen < 2:
		msgs = append(msgs, "Designation must be at least 2 characters long")
	case designationLen > 100:
		msgs = append(msgs, "Designation cannot exceed 100 characters")
	}

	if raw := strings.TrimSpace(in.JoiningDate); raw == "" {
		msgs = append(msgs, "Joining date is required")
	} else if parsed, err := time.Parse("2006-01-02", raw); err != nil {
		msgs = append(msgs, "Joining date must be a valid date (YYYY-MM-DD)")
	} else if parsed.After(s.now()) {
		msgs = append(msgs, "Joining date cannot be in the future")
	} else {
		e.JoiningDate = parsed
	}

	if raw := strings.TrimSpace(in.Salary); raw == "" {
		msgs = append(msgs, "Salary is required")
	} else if salary, err := strconv.ParseFloat(raw, 64); err != nil {
		msgs = append(msgs, "Salary must be a number")
	} else if salary < 0 {
		msgs = append(msgs, "Salary cannot be negative")
	} else if salary > maxSalary {
		msgs = append(msgs, "Salary seems too high")
	} else {
		e.Salary = salary
	}

	if e.Status == "" {
		e.Status = dto.StatusActive
	} else if !dto.IsValidStatus(e.Status) {
		msgs = append(msgs, fmt.Sprintf("%s is not a valid status", e.Status))
	}

	return e, msgs
}
