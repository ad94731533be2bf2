package answers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches answer routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/answer", h.answer)
}

func (h *Handler) answer(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	query, err := bindQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}

	answer, err := h.Svc.Ask(c.Request.Context(), sessionID, query)
	if err != nil {
		writeError(c, err)
		return
	}

	respond.OK(c, answer)
}

// bindQuery decodes the request body. An empty body carries no query at all.
func bindQuery(c *gin.Context) (string, error) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrMissingQuery
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return req.Query, nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingQuery):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, MsgMissingQuery)
	case errors.Is(err, ErrInvalidBody):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, MsgInvalidBody)
	case errors.Is(err, ErrNoDocument):
		respond.Error(c, http.StatusBadRequest, ErrorCodeNoDocument, MsgNoDocument)
	case errors.Is(err, ErrModel):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeModel, modelMessage(err))
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to answer question")
	}
}

// modelMessage strips the sentinel prefix so clients see the provider's message.
func modelMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrModel.Error()+": ")
}
