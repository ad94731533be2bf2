package answers

import "errors"

var (
	ErrMissingQuery = errors.New("missing query")
	ErrInvalidBody  = errors.New("invalid JSON body")
	ErrNoDocument   = errors.New("no document text available")
	ErrModel        = errors.New("model error")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeNoDocument = "no_document"
	ErrorCodeModel      = "model_error"
	ErrorCodeInternal   = "internal_error"
)

// Client facing messages.
const (
	MsgMissingQuery = "Missing query"
	MsgInvalidBody  = "Invalid JSON body"
	MsgNoDocument   = "No document text available. Upload a PDF, DOCX, or TXT file first."
)
