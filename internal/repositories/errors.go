package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError via errors.Is
var ErrNotFound = errors.New("not found")

// NotFoundError reports a node missing from the graph
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}
