package documents

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/extract"
	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
	// MaxUploadBytes caps the request body; 0 means unlimited.
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	fileHeader, err := formFile(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file")
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), sessionID, fileHeader.Filename, file)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set("documentFormat", string(doc.Format))
	c.Set("documentChecksum", doc.Checksum)
	respond.OK(c, toResponse(doc))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFile):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, MsgMissingFile)
	case errors.Is(err, ErrEmptyFileName):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, MsgEmptyFileName)
	case errors.Is(err, ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, ErrorCodeUnsupportedType, MsgUnsupportedType)
	case isTooLarge(err):
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeTooLarge, MsgTooLarge)
	case errors.Is(err, ErrExtraction):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeExtraction, extractionMessage(err))
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to process upload")
	}
}

// formFile returns the "file" part. The multipart reader files a part without
// a filename as a plain value, which is how an empty selection arrives.
func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	fileHeader, err := c.FormFile("file")
	if err == nil {
		if fileHeader.Filename == "" {
			return nil, ErrEmptyFileName
		}
		return fileHeader, nil
	}
	if isTooLarge(err) {
		return nil, err
	}
	if form := c.Request.MultipartForm; form != nil {
		if _, ok := form.Value["file"]; ok {
			return nil, ErrEmptyFileName
		}
	}
	return nil, ErrMissingFile
}

// extractionMessage is the library's own message without the sentinel prefix.
func extractionMessage(err error) string {
	var extractErr *extract.Error
	if errors.As(err, &extractErr) && extractErr.Err != nil {
		return extractErr.Err.Error()
	}
	return err.Error()
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
