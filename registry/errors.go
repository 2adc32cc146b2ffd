package registry

import (
	"fmt"
)

// ValidationError names the first required field missing from a
// create request.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

type NotFoundError struct {
	Id int
}

func (e *NotFoundError) Error() string {
	return "Workflow not found"
}
