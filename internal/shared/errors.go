package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Paste store errors
	ErrPasteNotFound = fmt.Errorf("paste not found")
	ErrDuplicateID   = fmt.Errorf("paste id already exists")
	ErrInvalidID     = fmt.Errorf("invalid paste id")
	ErrStorage       = fmt.Errorf("storage operation failed")

	// Clipboard errors
	ErrClipboardUnavailable = fmt.Errorf("clipboard unavailable")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrAPIRequest         = fmt.Errorf("API request failed")

	// Input validation errors
	ErrInvalidInput      = fmt.Errorf("invalid input")
	ErrMissingArgument   = fmt.Errorf("missing required argument")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrUnsupportedFormat = fmt.Errorf("unsupported format")
)
