package cli

import "errors"

// Common CLI errors
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidRecord  = errors.New("record must be a JSON object")
)
