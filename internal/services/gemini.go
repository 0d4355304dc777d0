package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, timeout time.Duration) (GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
		timeout:   timeout,
	}, nil
}

// GenerateJSON implements GeminiService.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  512,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Errorf("❌ Gemini API error: %v", err)
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

type geminiTextClassifier struct {
	gemini GeminiService
	prompt func(text string) string
}

type geminiZeroShotClassifier struct {
	gemini GeminiService
}

// NewGeminiBundle backs every classifier with prompted Gemini calls that
// answer in the same label vocabulary as the Hugging Face models.
func NewGeminiBundle(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*ClassifierBundle, error) {
	gemini, err := NewGeminiService(ctx, apiKey, modelName, timeout)
	if err != nil {
		return nil, err
	}

	return NewGeminiBundleWithService(gemini), nil
}

func NewGeminiBundleWithService(gemini GeminiService) *ClassifierBundle {
	prompts := NewPromptBuilder()

	return &ClassifierBundle{
		Fluency:   &geminiTextClassifier{gemini: gemini, prompt: prompts.BuildFluencyPrompt},
		Grammar:   &geminiTextClassifier{gemini: gemini, prompt: prompts.BuildGrammarPrompt},
		Sentiment: &geminiTextClassifier{gemini: gemini, prompt: prompts.BuildSentimentPrompt},
		Relevance: &geminiZeroShotClassifier{gemini: gemini},
	}
}

// Classify implements TextClassifier.
func (g *geminiTextClassifier) Classify(ctx context.Context, text string) (*Prediction, error) {
	response, err := g.gemini.GenerateJSON(ctx, g.prompt(text), 0)
	if err != nil {
		return nil, err
	}

	var prediction Prediction
	if err := parseJSONResponse(response, &prediction); err != nil {
		return nil, err
	}

	if prediction.Label == "" {
		return nil, fmt.Errorf("classification response has no label")
	}
	if prediction.Score < 0 || prediction.Score > 1 {
		return nil, fmt.Errorf("classification score out of range: %v", prediction.Score)
	}

	return &prediction, nil
}

// ClassifyZeroShot implements ZeroShotClassifier.
func (g *geminiZeroShotClassifier) ClassifyZeroShot(ctx context.Context, sequence string, candidateLabels []string) (*ZeroShotPrediction, error) {
	prompt := NewPromptBuilder().BuildZeroShotPrompt(sequence, candidateLabels)

	response, err := g.gemini.GenerateJSON(ctx, prompt, 0)
	if err != nil {
		return nil, err
	}

	var prediction ZeroShotPrediction
	if err := parseJSONResponse(response, &prediction); err != nil {
		return nil, err
	}

	if len(prediction.Labels) == 0 {
		return nil, fmt.Errorf("zero-shot response has no labels")
	}
	if err := prediction.Validate(); err != nil {
		return nil, err
	}

	return &prediction, nil
}

func parseJSONResponse(response string, target interface{}) error {
	// The model may still wrap JSON in markdown fences.
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
