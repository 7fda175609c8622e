package service

import "fmt"

// NotFoundError indicates the addressed item does not exist
type NotFoundError struct {
	Kind string // "task", "cart item", "product"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ValidationError indicates a rejected request payload
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
