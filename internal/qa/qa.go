package qa

import (
	"context"
	"errors"
)

// Client abstracts pretrained question-answering models.
type Client interface {
	Answer(ctx context.Context, input Input) (Answer, error)
}

// Input is one question asked against one document text.
type Input struct {
	Question string
	Context  string
}

// Answer is a span of the context chosen by the model. Start and End are
// character offsets into the context; Score is the model's confidence.
type Answer struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

// ErrEmptyResponse is returned when a provider answers without any candidate span.
var ErrEmptyResponse = errors.New("model returned no answer")
