package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGemini struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGemini) GenerateJSON(_ context.Context, prompt string, _ float32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestGeminiTextClassifier(t *testing.T) {
	gemini := &stubGemini{response: "```json\n{\"label\": \"LABEL_1\", \"score\": 0.92}\n```"}
	bundle := NewGeminiBundleWithService(gemini)

	prediction, err := bundle.Grammar.Classify(context.Background(), "She go to school.")
	require.NoError(t, err)
	assert.Equal(t, Prediction{Label: AcceptableLabel, Score: 0.92}, *prediction)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "She go to school.")
	assert.Contains(t, gemini.prompts[0], "grammatically well-formed")
}

func TestGeminiTextClassifier_SentimentPrompt(t *testing.T) {
	gemini := &stubGemini{response: `{"label": "NEGATIVE", "score": 0.7}`}
	bundle := NewGeminiBundleWithService(gemini)

	prediction, err := bundle.Sentiment.Classify(context.Background(), "I hated it.")
	require.NoError(t, err)
	assert.Equal(t, "NEGATIVE", prediction.Label)
	assert.Contains(t, gemini.prompts[0], PositiveLabel)
}

func TestGeminiTextClassifier_InvalidResponses(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"not json", "I think it is fine", "failed to unmarshal JSON"},
		{"missing label", `{"score": 0.4}`, "no label"},
		{"score out of range", `{"label": "LABEL_1", "score": 4}`, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := NewGeminiBundleWithService(&stubGemini{response: tt.response})
			_, err := bundle.Fluency.Classify(context.Background(), "text")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestGeminiTextClassifier_PropagatesAPIError(t *testing.T) {
	bundle := NewGeminiBundleWithService(&stubGemini{err: errors.New("quota exceeded")})

	_, err := bundle.Fluency.Classify(context.Background(), "text")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestGeminiZeroShotClassifier(t *testing.T) {
	gemini := &stubGemini{response: `{"labels": ["relevant", "somewhat relevant", "irrelevant"], "scores": [0.5, 0.4, 0.1]}`}
	bundle := NewGeminiBundleWithService(gemini)

	prediction, err := bundle.Relevance.ClassifyZeroShot(context.Background(), "q [SEP] a", RelevanceLabels)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.4, 0.1}, prediction.Scores)

	assert.Contains(t, gemini.prompts[0], `["relevant", "somewhat relevant", "irrelevant"]`)
	assert.Contains(t, gemini.prompts[0], "q [SEP] a")

	_, err = NewGeminiBundleWithService(&stubGemini{response: `{}`}).Relevance.ClassifyZeroShot(context.Background(), "q", RelevanceLabels)
	assert.ErrorContains(t, err, "no labels")
}

func TestGeminiZeroShotClassifier_InvalidScores(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"more labels than scores", `{"labels": ["relevant", "somewhat relevant", "irrelevant"], "scores": [0.5, 0.5]}`, "3 labels and 2 scores"},
		{"negative score", `{"labels": ["relevant", "somewhat relevant", "irrelevant"], "scores": [-0.5, 0, 0.2]}`, "out of range"},
		{"score above one", `{"labels": ["relevant", "somewhat relevant", "irrelevant"], "scores": [1.5, 0, 0]}`, "out of range"},
		{"scores sum above one", `{"labels": ["relevant", "somewhat relevant", "irrelevant"], "scores": [0.9, 0.9, 0.1]}`, "sum to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := NewGeminiBundleWithService(&stubGemini{response: tt.response})
			_, err := bundle.Relevance.ClassifyZeroShot(context.Background(), "q [SEP] a", RelevanceLabels)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestGeminiZeroShotClassifier_ToleratesRoundedScores(t *testing.T) {
	bundle := NewGeminiBundleWithService(&stubGemini{response: `{"labels": ["relevant", "somewhat relevant", "irrelevant"], "scores": [0.34, 0.33, 0.335]}`})

	_, err := bundle.Relevance.ClassifyZeroShot(context.Background(), "q [SEP] a", RelevanceLabels)
	assert.NoError(t, err)
}

func TestEvaluateAnswer_GeminiRelevanceOutOfRangeFails(t *testing.T) {
	bundle, _, _, _, _ := newStubBundle()
	bundle.Relevance = NewGeminiBundleWithService(&stubGemini{
		response: `{"labels": ["relevant", "somewhat relevant", "irrelevant"], "scores": [0.9, 0.9, 0.1]}`,
	}).Relevance

	result := NewEvaluatorService(bundle).EvaluateAnswer(context.Background(), "Tell me about yourself", "I am Dana.")

	require.False(t, result.Succeeded())
	assert.Equal(t, EvaluationErrorReason, result.Failure.Reason)
	assert.Contains(t, result.Failure.Details, "failed to evaluate relevance")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("Sure!\n```json\n{\"a\":1}\n```"))
	assert.Equal(t, "plain", extractJSON("  plain "))
}
