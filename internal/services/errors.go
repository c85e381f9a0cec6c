package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrForbidden          = errors.New("role is not allowed to perform this action")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrRiskNotFound       = errors.New("risk not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrInviteInvalid      = errors.New("invite is invalid or has expired")
	ErrEmailTaken         = errors.New("a profile with this email already exists")
	ErrAlreadyMember      = errors.New("user is already a member of this project")
)

// InputError rejects a mutation before it reaches the store.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

// StoreError is a failed read or write against the database, tagged with the
// operation and the record it concerned.
type StoreError struct {
	Op     string
	Entity string
	ID     uuid.UUID
	Err    error
}

func (e *StoreError) Error() string {
	if e.ID == uuid.Nil {
		return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Entity, e.Err)
	}
	return fmt.Sprintf("failed to %s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op, entity string, id uuid.UUID, err error) error {
	return &StoreError{Op: op, Entity: entity, ID: id, Err: err}
}
