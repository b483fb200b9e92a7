package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto the
// response error taxonomy; anything else becomes a generic 500.
var (
	ErrNotFound            = errors.New("record not found")
	ErrForbidden           = errors.New("acting user is not allowed to modify this record")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTextOrFileRequired  = errors.New("quote requires text or a file")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)
