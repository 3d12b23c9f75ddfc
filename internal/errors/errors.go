package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this slug"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents a permission denial from the
// authorization policy. The Message is the human-readable reason
// surfaced to the caller.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// InvalidTransitionError represents a plan change in the wrong
// direction (upgrade to a lower tier or downgrade to a higher one)
type InvalidTransitionError struct {
	Message string
}

func (e *InvalidTransitionError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrTenantNotFound       = &NotFoundError{Entity: "tenant"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrTaskNotFound         = &NotFoundError{Entity: "task"}
	ErrSubscriptionNotFound = &NotFoundError{Entity: "active subscription"}
)

// Already Exists Errors
var (
	ErrTenantSlugExists         = &AlreadyExistsError{Entity: "tenant", Context: "with this slug"}
	ErrEmailExists              = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrActiveSubscriptionExists = &AlreadyExistsError{Entity: "active subscription", Context: "for this tenant"}
)

// Authentication Errors
var (
	ErrInvalidCredentials = &AuthenticationError{Message: "Invalid credentials"}
	ErrMissingToken       = &AuthenticationError{Message: "Authorization header is required"}
	ErrInvalidToken       = &AuthenticationError{Message: "Invalid token"}
	ErrTokenRevoked       = &AuthenticationError{Message: "Token has been revoked"}
)

// Authorization Errors
var (
	ErrCannotViewTask   = &AuthorizationError{Message: "You do not have permission to view this task"}
	ErrCannotEditTask   = &AuthorizationError{Message: "You do not have permission to update this task"}
	ErrCannotDeleteTask = &AuthorizationError{Message: "You do not have permission to delete this task"}
	ErrRoleNotAllowed   = &AuthorizationError{Message: "You do not have permission to access this resource"}
)

// Subscription Transition Errors
var (
	ErrInvalidUpgrade   = &InvalidTransitionError{Message: "Invalid upgrade. Please select a higher tier plan."}
	ErrInvalidDowngrade = &InvalidTransitionError{Message: "Invalid downgrade. Please select a lower tier plan."}
)

// Tenant Resolution Errors
var (
	ErrMissingTenantID = errors.New("missing tenant identifier in header (X-Tenant-ID or X-Tenant) or query parameter (tenant)")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsInvalidTransition checks if an error is an InvalidTransitionError
func IsInvalidTransition(err error) bool {
	var transitionErr *InvalidTransitionError
	return errors.As(err, &transitionErr)
}
