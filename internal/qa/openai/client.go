package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"docqa-backend/internal/qa"
)

const systemPrompt = `You answer questions about a document.
Reply with the shortest span of the document that answers the question, copied verbatim.
Do not add quotes, explanations or any other words. If the document does not contain the answer, reply with an empty message.`

// Client implements qa.Client using an OpenAI-compatible chat completion model.
// The model is asked for a verbatim span which is then located in the context.
type Client struct {
	model  string
	client openai.Client
}

// NewClient constructs a new OpenAI client. baseURL may be empty to use the public API.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("MODEL_NAME is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(1),
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSpace(baseURL)))
	}
	return &Client{
		model:  strings.TrimSpace(model),
		client: openai.NewClient(opts...),
	}, nil
}

// Answer asks the chat model for a span of input.Context answering input.Question.
func (c *Client) Answer(ctx context.Context, input qa.Input) (qa.Answer, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(input)),
		},
		Temperature: openai.Float(0),
		Logprobs:    openai.Bool(true),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return qa.Answer{}, fmt.Errorf("openai request timeout: %w", err)
		}
		return qa.Answer{}, fmt.Errorf("openai error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return qa.Answer{}, qa.ErrEmptyResponse
	}

	choice := resp.Choices[0]
	span := strings.TrimSpace(choice.Message.Content)
	start, end := qa.LocateSpan(input.Context, span)

	logprobs := make([]float64, 0, len(choice.Logprobs.Content))
	for _, tok := range choice.Logprobs.Content {
		logprobs = append(logprobs, tok.Logprob)
	}

	return qa.Answer{
		Answer: span,
		Score:  confidence(logprobs),
		Start:  start,
		End:    end,
	}, nil
}

func buildUserPrompt(input qa.Input) string {
	var b strings.Builder
	b.WriteString("Document:\n")
	b.WriteString(input.Context)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(input.Question)
	return b.String()
}

// confidence is the geometric mean token probability, clamped to [0,1].
func confidence(logprobs []float64) float64 {
	if len(logprobs) == 0 {
		return 0
	}
	var sum float64
	for _, lp := range logprobs {
		sum += lp
	}
	score := math.Exp(sum / float64(len(logprobs)))
	switch {
	case math.IsNaN(score) || score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}

var _ qa.Client = (*Client)(nil)
