package documents

import (
	"time"

	"docqa-backend/internal/extract"
)

// Document is the text extracted from the most recent upload of a session,
// plus metadata used for logging.
type Document struct {
	SessionID  string
	Text       string
	FileName   string
	Format     extract.Format
	SizeBytes  int64
	Checksum   string
	UploadedAt time.Time
}
