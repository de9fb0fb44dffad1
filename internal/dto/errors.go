package dto

import (
	"errors"
)

var (
	ErrNotFound            = errors.New("errRecordNotFound")
	ErrDuplicateEmployeeID = errors.New("errDuplicateEmployeeID")
	ErrDuplicateEmail      = errors.New("errDuplicateEmail")
)
