package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-evaluator/internal/config"
)

// huggingFaceClient calls the Hugging Face Inference API. It holds no
// mutable state and is safe for concurrent use.
type huggingFaceClient struct {
	baseURL string
	token   string
	timeout time.Duration
}

type huggingFaceTextClassifier struct {
	client *huggingFaceClient
	model  string
}

type huggingFaceZeroShotClassifier struct {
	client *huggingFaceClient
	model  string
}

type huggingFaceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

type huggingFaceError struct {
	Error string `json:"error"`
}

func NewHuggingFaceBundle(baseURL, token string, cfg config.ClassifierConfig) *ClassifierBundle {
	client := &huggingFaceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: cfg.Timeout,
	}

	return &ClassifierBundle{
		Fluency:   newHuggingFaceTextClassifier(client, cfg.FluencyModel),
		Grammar:   newHuggingFaceTextClassifier(client, cfg.GrammarModel),
		Sentiment: newHuggingFaceTextClassifier(client, cfg.SentimentModel),
		Relevance: newHuggingFaceZeroShotClassifier(client, cfg.RelevanceModel),
	}
}

func newHuggingFaceTextClassifier(client *huggingFaceClient, model string) TextClassifier {
	return &huggingFaceTextClassifier{client: client, model: model}
}

func newHuggingFaceZeroShotClassifier(client *huggingFaceClient, model string) ZeroShotClassifier {
	return &huggingFaceZeroShotClassifier{client: client, model: model}
}

// Classify implements TextClassifier. Only the top-scoring label is returned.
func (h *huggingFaceTextClassifier) Classify(ctx context.Context, text string) (*Prediction, error) {
	body, err := h.client.post(ctx, h.model, huggingFaceRequest{
		Inputs:  text,
		Options: map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return nil, err
	}

	predictions, err := decodeTextClassification(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", h.model, err)
	}

	return topPrediction(predictions)
}

// ClassifyZeroShot implements ZeroShotClassifier.
func (h *huggingFaceZeroShotClassifier) ClassifyZeroShot(ctx context.Context, sequence string, candidateLabels []string) (*ZeroShotPrediction, error) {
	body, err := h.client.post(ctx, h.model, huggingFaceRequest{
		Inputs:     sequence,
		Parameters: map[string]any{"candidate_labels": candidateLabels},
		Options:    map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return nil, err
	}

	prediction, err := decodeZeroShot(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", h.model, err)
	}

	return prediction, nil
}

func (c *huggingFaceClient) post(ctx context.Context, model string, payload huggingFaceRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classifier call cancelled: %w", err)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(c.baseURL + "/" + model)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.JSON(payload)
	agent.Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to call %s: %w", model, errs[0])
	}

	if code != fiber.StatusOK {
		var apiErr huggingFaceError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s returned status %d: %s", model, code, apiErr.Error)
		}
		return nil, fmt.Errorf("%s returned status %d", model, code)
	}

	return body, nil
}

// decodeTextClassification accepts both the nested ([[...]]) and flat
// ([...]) shapes the inference API returns for a single input.
func decodeTextClassification(body []byte) ([]Prediction, error) {
	var nested [][]Prediction
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, fmt.Errorf("empty classification result")
		}
		return nested[0], nil
	}

	var flat []Prediction
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return flat, nil
}

func topPrediction(predictions []Prediction) (*Prediction, error) {
	if len(predictions) == 0 {
		return nil, fmt.Errorf("empty classification result")
	}

	top := predictions[0]
	for _, p := range predictions[1:] {
		if p.Score > top.Score {
			top = p
		}
	}
	return &top, nil
}

// decodeZeroShot accepts the {labels, scores} object as well as a list of
// {label, score} entries.
func decodeZeroShot(body []byte) (*ZeroShotPrediction, error) {
	var prediction ZeroShotPrediction
	if err := json.Unmarshal(body, &prediction); err == nil {
		if len(prediction.Labels) == 0 {
			return nil, fmt.Errorf("empty zero-shot result")
		}
		return &prediction, nil
	}

	var entries []Prediction
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("empty zero-shot result")
	}

	for _, e := range entries {
		prediction.Labels = append(prediction.Labels, e.Label)
		prediction.Scores = append(prediction.Scores, e.Score)
	}
	return &prediction, nil
}
