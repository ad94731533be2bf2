package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Format identifies a supported upload format by its file extension.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

var (
	// ErrUnsupportedFormat is returned for file names whose extension is not pdf, docx or txt.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrExtraction wraps every failure raised while turning file bytes into text.
	ErrExtraction = errors.New("extraction failed")
)

// Error reports a library failure for one format. It matches ErrExtraction
// under errors.Is and unwraps to the library error.
type Error struct {
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrExtraction, e.Format, e.Err)
}

// Is reports whether target is ErrExtraction.
func (e *Error) Is(target error) bool {
	return target == ErrExtraction
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FormatFromFileName returns the format named by the extension after the last dot.
// Matching is case-insensitive; names without a dot are rejected.
func FormatFromFileName(name string) (Format, error) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", ErrUnsupportedFormat
	}
	switch f := Format(strings.ToLower(name[idx+1:])); f {
	case FormatPDF, FormatDOCX, FormatTXT:
		return f, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Extractor implements text extraction for the supported formats.
type Extractor struct{}

// New constructs an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractText converts raw file bytes of the given format into plain text.
func (e *Extractor) ExtractText(ctx context.Context, data []byte, format Format) (string, error) {
	return ExtractText(ctx, data, format)
}

// ExtractText converts raw file bytes of the given format into plain text.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
func ExtractText(ctx context.Context, data []byte, format Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatTXT:
		text, err = extractTXT(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", &Error{Format: format, Err: err}
	}
	return text, nil
}
