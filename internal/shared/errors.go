package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrInvalidLogin    = fmt.Errorf("invalid username or password")
	ErrTooManyAttempts = fmt.Errorf("too many login attempts")
	ErrUnauthorized    = fmt.Errorf("not authenticated")
	ErrInvalidToken    = fmt.Errorf("invalid session token")

	// Storage errors
	ErrNotFound = fmt.Errorf("not found")

	// Input validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
