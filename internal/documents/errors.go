package documents

import (
	"errors"

	"docqa-backend/internal/extract"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrMissingFile     = errors.New("no file part")
	ErrEmptyFileName   = errors.New("no selected file")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrExtraction      = extract.ErrExtraction
)

const (
	ErrorCodeValidation      = "validation_error"
	ErrorCodeUnsupportedType = "unsupported_type"
	ErrorCodeExtraction      = "extraction_failed"
	ErrorCodeTooLarge        = "upload_too_large"
	ErrorCodeInternal        = "internal_error"
)

// Client facing messages.
const (
	MsgMissingFile     = "No file part"
	MsgEmptyFileName   = "No selected file"
	MsgUnsupportedType = "Unsupported file type. Please upload a PDF, DOCX, or TXT file."
	MsgTooLarge        = "File too large"
)
