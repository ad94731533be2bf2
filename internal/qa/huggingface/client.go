package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docqa-backend/internal/qa"
)

const defaultTimeout = 120 * time.Second

// Client implements qa.Client against the Hugging Face Inference API
// question-answering task.
type Client struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

// NewClient constructs a client for model served under baseURL. token may be empty
// for public endpoints; timeout <= 0 selects the default.
func NewClient(baseURL, model, token string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("HF_API_URL is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("MODEL_NAME is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		model:   strings.TrimSpace(model),
		token:   strings.TrimSpace(token),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type requestInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type answerRequest struct {
	Inputs  requestInputs  `json:"inputs"`
	Options requestOptions `json:"options"`
}

type answerPayload struct {
	Answer *string `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

type errorPayload struct {
	Error json.RawMessage `json:"error"`
}

// Answer asks the hosted model one question against the full context.
func (c *Client) Answer(ctx context.Context, input qa.Input) (qa.Answer, error) {
	payload, err := json.Marshal(answerRequest{
		Inputs:  requestInputs{Question: input.Question, Context: input.Context},
		Options: requestOptions{WaitForModel: true},
	})
	if err != nil {
		return qa.Answer{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.model, bytes.NewReader(payload))
	if err != nil {
		return qa.Answer{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return qa.Answer{}, fmt.Errorf("huggingface request timeout: %w", err)
		}
		return qa.Answer{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return qa.Answer{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return qa.Answer{}, apiError(resp.StatusCode, body)
	}
	return decodeAnswer(body)
}

// decodeAnswer accepts either a single answer object or a ranked list of them.
func decodeAnswer(body []byte) (qa.Answer, error) {
	trimmed := bytes.TrimSpace(body)
	var candidate answerPayload
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []answerPayload
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return qa.Answer{}, fmt.Errorf("huggingface response parse: %w", err)
		}
		if len(list) == 0 {
			return qa.Answer{}, qa.ErrEmptyResponse
		}
		candidate = list[0]
	} else if err := json.Unmarshal(trimmed, &candidate); err != nil {
		return qa.Answer{}, fmt.Errorf("huggingface response parse: %w", err)
	}
	if candidate.Answer == nil {
		return qa.Answer{}, qa.ErrEmptyResponse
	}
	return qa.Answer{
		Answer: *candidate.Answer,
		Score:  candidate.Score,
		Start:  candidate.Start,
		End:    candidate.End,
	}, nil
}

func apiError(status int, body []byte) error {
	var parsed errorPayload
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Error) > 0 {
		var msg string
		if err := json.Unmarshal(parsed.Error, &msg); err == nil {
			return fmt.Errorf("huggingface error (status %d): %s", status, msg)
		}
		var msgs []string
		if err := json.Unmarshal(parsed.Error, &msgs); err == nil {
			return fmt.Errorf("huggingface error (status %d): %s", status, strings.Join(msgs, "; "))
		}
	}
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	if snippet == "" {
		snippet = http.StatusText(status)
	}
	return fmt.Errorf("huggingface error (status %d): %s", status, snippet)
}

var _ qa.Client = (*Client)(nil)
